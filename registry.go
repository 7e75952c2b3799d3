package esthetic

import (
	"log/slog"
	"sync"

	"go.uber.org/atomic"

	"github.com/agiangrant/esthetic/internal/logging"
)

// ID identifies a widget within its Registry. IDs start at 1, increase with
// every registration and are never reused.
type ID uint64

// NoWidget is the zero ID. ExclusiveShow(NoWidget) closes every widget.
const NoWidget ID = 0

// Registry owns every widget built against it and is the only place that opens
// a widget, which keeps at most one of them visible.
type Registry struct {
	mu      sync.RWMutex
	widgets []*Widget // registration order
	nextID  atomic.Uint64
	log     *slog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		widgets: make([]*Widget, 0),
		log:     logging.Logger().With("component", "registry"),
	}
}

// Register appends w and assigns its ID.
func (r *Registry) Register(w *Widget) ID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := ID(r.nextID.Inc())
	w.id = id
	w.registry = r
	r.widgets = append(r.widgets, w)

	r.log.Debug("widget registered", "id", id, "name", w.name, "count", len(r.widgets))
	return id
}

// Unregister removes the widget with id and hides it.
// It returns false if no such widget is registered.
func (r *Registry) Unregister(id ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, w := range r.widgets {
		if w.id == id {
			w.visible.Store(false)
			r.widgets = append(r.widgets[:i], r.widgets[i+1:]...)
			r.log.Debug("widget unregistered", "id", id, "count", len(r.widgets))
			return true
		}
	}
	return false
}

// ExclusiveShow makes the widget with id visible and every other widget
// hidden. NoWidget, or an id that is not registered, hides them all.
func (r *Registry) ExclusiveShow(id ID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	shown := false
	for _, w := range r.widgets {
		visible := id != NoWidget && w.id == id
		w.visible.Store(visible)
		shown = shown || visible
	}

	r.log.Debug("exclusive show", "id", id, "shown", shown)
}

// CloseAll hides every widget.
func (r *Registry) CloseAll() {
	r.ExclusiveShow(NoWidget)
}

// Len returns the number of registered widgets.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.widgets)
}

// Get returns the widget with id.
func (r *Registry) Get(id ID) (*Widget, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, w := range r.widgets {
		if w.id == id {
			return w, true
		}
	}
	return nil, false
}

// Widgets returns the registered widgets in registration order.
func (r *Registry) Widgets() []*Widget {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Widget, len(r.widgets))
	copy(out, r.widgets)
	return out
}

// Visible returns the open widget, if any.
func (r *Registry) Visible() (*Widget, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, w := range r.widgets {
		if w.visible.Load() {
			return w, true
		}
	}
	return nil, false
}
