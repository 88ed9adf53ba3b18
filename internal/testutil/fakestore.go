// Package testutil provides testing utilities.
package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// StorePath is the path the fake store serves tasks under.
const StorePath = "/tasks"

// StoredTask mirrors the wire shape of a task.
type StoredTask struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Call is one request received by FakeStore.
type Call struct {
	Method    string
	Path      string
	Body      string
	RequestID string
}

// FakeStore is an in-memory HTTP task store for testing.
type FakeStore struct {
	mu     sync.Mutex
	tasks  []StoredTask
	nextID int64
	calls  []Call

	listStatus   int
	createStatus int
	deleteStatus int
	listBody     string
	beforeList   func()
}

// NewFakeStore creates a store seeded with tasks; new ids continue after the highest seed id.
func NewFakeStore(tasks ...StoredTask) *FakeStore {
	f := &FakeStore{nextID: 1}
	for _, t := range tasks {
		f.tasks = append(f.tasks, t)
		if t.ID >= f.nextID {
			f.nextID = t.ID + 1
		}
	}
	return f
}

// Start serves the store on a test server and returns the tasks endpoint URL.
func (f *FakeStore) Start(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(f)
	t.Cleanup(srv.Close)
	return srv.URL + StorePath
}

// Fail makes requests with the given method answer with status. Zero restores normal behaviour.
func (f *FakeStore) Fail(method string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch method {
	case http.MethodGet:
		f.listStatus = status
	case http.MethodPost:
		f.createStatus = status
	case http.MethodDelete:
		f.deleteStatus = status
	}
}

// SetListBody makes GET answer 200 with raw instead of the stored tasks.
func (f *FakeStore) SetListBody(raw string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listBody = raw
}

// SetBeforeList installs a hook that runs before a GET is answered, outside the lock.
func (f *FakeStore) SetBeforeList(fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.beforeList = fn
}

// SetTasks replaces the stored tasks.
func (f *FakeStore) SetTasks(tasks ...StoredTask) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append([]StoredTask(nil), tasks...)
}

// Tasks returns a copy of the stored tasks.
func (f *FakeStore) Tasks() []StoredTask {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]StoredTask(nil), f.tasks...)
}

// Calls returns a copy of all received requests in arrival order.
func (f *FakeStore) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// Count returns how many requests with the given method were received.
func (f *FakeStore) Count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (f *FakeStore) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.calls = append(f.calls, Call{
		Method:    r.Method,
		Path:      r.URL.Path,
		Body:      string(body),
		RequestID: r.Header.Get("X-Request-Id"),
	})
	f.mu.Unlock()

	switch {
	case r.URL.Path == StorePath && r.Method == http.MethodGet:
		f.handleList(w)
	case r.URL.Path == StorePath && r.Method == http.MethodPost:
		f.handleCreate(w, r, body)
	case strings.HasPrefix(r.URL.Path, StorePath+"/") && r.Method == http.MethodDelete:
		f.handleDelete(w, strings.TrimPrefix(r.URL.Path, StorePath+"/"))
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (f *FakeStore) handleList(w http.ResponseWriter) {
	f.mu.Lock()
	hook := f.beforeList
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	f.mu.Lock()
	status, raw := f.listStatus, f.listBody
	tasks := append([]StoredTask{}, f.tasks...)
	f.mu.Unlock()

	if status != 0 {
		http.Error(w, "list failed", status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if raw != "" {
		_, _ = io.WriteString(w, raw)
		return
	}
	_ = json.NewEncoder(w).Encode(tasks)
}

func (f *FakeStore) handleCreate(w http.ResponseWriter, r *http.Request, body []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createStatus != 0 {
		http.Error(w, "create failed", f.createStatus)
		return
	}
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		http.Error(w, "expected json", http.StatusUnsupportedMediaType)
		return
	}
	var in struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &in); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	t := StoredTask{ID: f.nextID, Name: in.Name}
	f.nextID++
	f.tasks = append(f.tasks, t)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(t)
}

func (f *FakeStore) handleDelete(w http.ResponseWriter, rawID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteStatus != 0 {
		http.Error(w, "delete failed", f.deleteStatus)
		return
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	http.Error(w, "not found", http.StatusNotFound)
}
