// Command taskstub serves an in-memory reference implementation of the task
// resource, a local target for soak runs.
package main

import (
	"os"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"tasksoak/stub"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}

	store := stub.NewStore()
	if drop, err := strconv.ParseBool(os.Getenv("FAULT_DROP_COMPLETED_UPDATES")); err == nil && drop {
		store.Faults.DropCompletedUpdates = true
		log.Warn("fault injection enabled: completed updates will be dropped")
	}

	e := echo.New()
	e.Use(middleware.Recover())

	logger := log.New()
	stub.Register(e, store, logger)

	listenAddr := ":8080"
	if val, ok := os.LookupEnv("PORT"); ok {
		listenAddr = ":" + val
	}

	e.Logger.Fatal(e.Start(listenAddr))
}
