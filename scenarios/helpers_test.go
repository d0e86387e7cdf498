package scenarios

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"tasksoak/stub"
	"tasksoak/taskapi"
)

// newTarget starts an in-process conforming task API and returns a client
// pointed at it.
func newTarget(t *testing.T) (*taskapi.Client, *stub.Store) {
	t.Helper()
	store := stub.NewStore()
	logger := log.New()
	logger.SetOutput(io.Discard)
	e := echo.New()
	stub.Register(e, store, logger)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return taskapi.New(srv.URL), store
}
