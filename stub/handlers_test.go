package stub

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"tasksoak/domain"
)

func newServer(store *Store) *echo.Echo {
	e := echo.New()
	Register(e, store, log.New())
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestCreateThenListGroupsByPriority(t *testing.T) {
	e := newServer(NewStore())
	order := []string{"low", "high", "medium", "high", "low"}
	for i, p := range order {
		body := `{"id":` + strconv.Itoa(i+1) + `,"title":"t","description":"","priority":"` + p + `","completed":false,"dueDate":"01/01/2026"}`
		if rec := doJSON(t, e, http.MethodPost, "/api/tasks", body); rec.Code != http.StatusCreated {
			t.Fatalf("create %d: status %d body %s", i+1, rec.Code, rec.Body.String())
		}
	}
	rec := doJSON(t, e, http.MethodGet, "/api/tasks", "")
	var tasks []domain.Task
	if err := sonic.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var got []string
	for _, tk := range tasks {
		got = append(got, string(tk.Priority))
	}
	want := []string{"high", "high", "medium", "low", "low"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
	// insertion order within the high group: ids 2 then 4
	if tasks[0].ID != 2 || tasks[1].ID != 4 {
		t.Fatalf("within-group order broken: %d, %d", tasks[0].ID, tasks[1].ID)
	}
}

func TestDuplicateIDConflicts(t *testing.T) {
	e := newServer(NewStore())
	body := `{"id":1,"title":"t","description":"","priority":"high","completed":false,"dueDate":"01/01/2026"}`
	if rec := doJSON(t, e, http.MethodPost, "/api/tasks", body); rec.Code != http.StatusCreated {
		t.Fatalf("first create: %d", rec.Code)
	}
	if rec := doJSON(t, e, http.MethodPost, "/api/tasks", body); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate create: %d, want 409", rec.Code)
	}
}

func TestPutTogglesCompleted(t *testing.T) {
	store := NewStore()
	e := newServer(store)
	doJSON(t, e, http.MethodPost, "/api/tasks", `{"id":1,"title":"t","description":"","priority":"low","completed":false,"dueDate":"01/01/2026"}`)
	if rec := doJSON(t, e, http.MethodPut, "/api/tasks/1", `{"completed":true}`); rec.Code != http.StatusOK {
		t.Fatalf("put: %d", rec.Code)
	}
	if tasks := store.List(); !tasks[0].Completed {
		t.Fatal("completed not applied")
	}
	if rec := doJSON(t, e, http.MethodPut, "/api/tasks/9", `{"completed":true}`); rec.Code != http.StatusNotFound {
		t.Fatalf("put missing: %d, want 404", rec.Code)
	}
	if rec := doJSON(t, e, http.MethodPut, "/api/tasks/1", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("put without completed: %d, want 400", rec.Code)
	}
}

func TestDeleteRemovesAndReports404(t *testing.T) {
	e := newServer(NewStore())
	doJSON(t, e, http.MethodPost, "/api/tasks", `{"id":1,"title":"t","description":"","priority":"low","completed":false,"dueDate":"01/01/2026"}`)
	if rec := doJSON(t, e, http.MethodDelete, "/api/tasks/1", ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: %d", rec.Code)
	}
	if rec := doJSON(t, e, http.MethodDelete, "/api/tasks/1", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("second delete: %d, want 404", rec.Code)
	}
}

func TestDropCompletedUpdatesFault(t *testing.T) {
	store := NewStore()
	store.Faults.DropCompletedUpdates = true
	e := newServer(store)
	doJSON(t, e, http.MethodPost, "/api/tasks", `{"id":1,"title":"t","description":"","priority":"low","completed":false,"dueDate":"01/01/2026"}`)
	if rec := doJSON(t, e, http.MethodPut, "/api/tasks/1", `{"completed":true}`); rec.Code != http.StatusOK {
		t.Fatalf("faulty put must still ack: %d", rec.Code)
	}
	if tasks := store.List(); tasks[0].Completed {
		t.Fatal("fault did not drop the update")
	}
}

func TestDueDateRoundTrip(t *testing.T) {
	e := newServer(NewStore())
	doJSON(t, e, http.MethodPost, "/api/tasks", `{"id":1,"title":"t","description":"","priority":"low","completed":false,"dueDate":"28/02/2027"}`)
	rec := doJSON(t, e, http.MethodGet, "/api/tasks", "")
	var tasks []domain.Task
	if err := sonic.Unmarshal(rec.Body.Bytes(), &tasks); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if tasks[0].DueDate != "28/02/2027" {
		t.Fatalf("dueDate mangled: %q", tasks[0].DueDate)
	}
}
