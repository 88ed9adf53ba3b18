// Package controller keeps the rendered task list in sync with the remote store.
//
// Every mutation is a one-shot request followed, on success, by exactly one
// refresh (list + render). Failures are logged and swallowed; the view then
// keeps showing the result of the last successful fetch.
package controller

import (
	"context"
	"strconv"
	"sync"
	"time"

	applog "github.com/elpatron68/tasklist-web/internal/log"
	"github.com/elpatron68/tasklist-web/internal/remote"
)

// Store is the remote task store as seen by the controller.
type Store interface {
	List(ctx context.Context) ([]remote.Task, error)
	Create(ctx context.Context, name string) error
	Delete(ctx context.Context, id int64) error
}

// Item is one rendered list entry. DeleteAction is the form target of its
// delete control and carries the task id.
type Item struct {
	ID           int64
	Name         string
	DeleteAction string
}

// View is the rendered list. Generation counts renders; 0 means never rendered.
type View struct {
	Items      []Item
	Generation uint64
	RenderedAt time.Time
}

type Option func(*Controller)

// WithSerializedActions queues mutations so that each create/delete and its
// refresh complete before the next one starts.
func WithSerializedActions(on bool) Option {
	return func(c *Controller) { c.serialize = on }
}

// WithClock replaces time.Now (tests).
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

type Controller struct {
	store     Store
	serialize bool
	now       func() time.Time

	actionMu sync.Mutex // held around mutate+refresh when serialize is set

	mu   sync.RWMutex
	view View
}

func New(store Store, opts ...Option) *Controller {
	c := &Controller{store: store, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DeleteActionFor is the path the delete control of task id posts to.
func DeleteActionFor(id int64) string {
	return "/tasks/" + strconv.FormatInt(id, 10) + "/delete"
}

// ListTasks issues one read request to the store.
func (c *Controller) ListTasks(ctx context.Context) ([]remote.Task, error) {
	return c.store.List(ctx)
}

// RenderTasks discards the current view and builds one item per task, in the
// order received.
func (c *Controller) RenderTasks(tasks []remote.Task) {
	items := make([]Item, 0, len(tasks))
	for _, t := range tasks {
		items = append(items, Item{ID: t.ID, Name: t.Name, DeleteAction: DeleteActionFor(t.ID)})
	}
	c.mu.Lock()
	c.view = View{Items: items, Generation: c.view.Generation + 1, RenderedAt: c.now()}
	c.mu.Unlock()
}

// Refresh lists and renders. On failure the previous view is left untouched.
func (c *Controller) Refresh(ctx context.Context) bool {
	tasks, err := c.ListTasks(ctx)
	if err != nil {
		applog.Errorf("error fetching tasks (%s): %v", remote.Kind(err), err)
		return false
	}
	c.RenderTasks(tasks)
	applog.Debugf("rendered %d task(s)", len(tasks))
	return true
}

// SubmitTask handles the task form. An empty name issues no request.
func (c *Controller) SubmitTask(ctx context.Context, name string) bool {
	if name == "" {
		applog.Debugf("empty task name, nothing submitted")
		return false
	}
	return c.CreateTask(ctx, name)
}

// CreateTask creates a task and refreshes once on success. It reports whether
// the create succeeded; the refresh outcome is only logged.
func (c *Controller) CreateTask(ctx context.Context, name string) bool {
	if c.serialize {
		c.actionMu.Lock()
		defer c.actionMu.Unlock()
	}
	if err := c.store.Create(ctx, name); err != nil {
		applog.Errorf("error adding task (%s): %v", remote.Kind(err), err)
		return false
	}
	applog.Infof("task created: %q", name)
	c.Refresh(ctx)
	return true
}

// DeleteTask removes a task and refreshes once on success. No confirmation, no retry.
func (c *Controller) DeleteTask(ctx context.Context, id int64) bool {
	if c.serialize {
		c.actionMu.Lock()
		defer c.actionMu.Unlock()
	}
	if err := c.store.Delete(ctx, id); err != nil {
		applog.Errorf("error deleting task %d (%s): %v", id, remote.Kind(err), err)
		return false
	}
	applog.Infof("task deleted: %d", id)
	c.Refresh(ctx)
	return true
}

// View returns a copy of the current view.
func (c *Controller) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v := c.view
	v.Items = append([]Item(nil), c.view.Items...)
	return v
}
