// Package stub is an in-process reference implementation of the task
// resource contract. It gives the harness a local target for its own
// scenario tests and doubles as an executable statement of what the
// external system is expected to do.
package stub

import (
	"io"
	"net/http"
	"strconv"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"tasksoak/domain"
)

const postTaskMaxSize = 1 << 16

// Register wires the task resource routes on the provided Echo instance.
func Register(e *echo.Echo, store *Store, logger *log.Logger) {
	e.GET("/api/tasks", getTasks(store))
	e.POST("/api/tasks", postTask(store, logger))
	e.PUT("/api/tasks/:id", putTask(store))
	e.DELETE("/api/tasks/:id", deleteTask(store))
	e.GET("/healthz", healthz())
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func getTasks(store *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, store.List())
	}
}

func postTask(store *Store, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		lr := io.LimitReader(c.Request().Body, postTaskMaxSize)
		dec := sonic.ConfigStd.NewDecoder(lr)
		dec.DisallowUnknownFields()

		var t domain.Task
		if err := dec.Decode(&t); err != nil {
			return c.String(http.StatusBadRequest, "invalid body")
		}
		if t.Title == "" || !t.Priority.Valid() {
			return c.String(http.StatusBadRequest, "title and priority are required")
		}
		if !store.Insert(t) {
			logger.Warnf("duplicate task id %d rejected", t.ID)
			return c.String(http.StatusConflict, "duplicate id")
		}
		return c.JSON(http.StatusCreated, t)
	}
}

type completedPatch struct {
	Completed *bool `json:"completed"`
}

func putTask(store *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.String(http.StatusBadRequest, "invalid id")
		}
		dec := sonic.ConfigStd.NewDecoder(c.Request().Body)
		var patch completedPatch
		if err := dec.Decode(&patch); err != nil || patch.Completed == nil {
			return c.String(http.StatusBadRequest, "body must carry completed")
		}
		if store.Faults.DropCompletedUpdates {
			return c.NoContent(http.StatusOK)
		}
		if !store.SetCompleted(id, *patch.Completed) {
			return c.String(http.StatusNotFound, "no such task")
		}
		return c.NoContent(http.StatusOK)
	}
}

func deleteTask(store *Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.String(http.StatusBadRequest, "invalid id")
		}
		if !store.Remove(id) {
			return c.String(http.StatusNotFound, "no such task")
		}
		return c.NoContent(http.StatusNoContent)
	}
}
