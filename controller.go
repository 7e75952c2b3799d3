package esthetic

import (
	"fmt"
	"io"
	"log/slog"
	"sync"

	"golang.org/x/net/html"

	"github.com/agiangrant/esthetic/internal/logging"
	"github.com/agiangrant/esthetic/option"
	"github.com/agiangrant/esthetic/source"
)

// Controller is the top-level owner of a Registry. It turns the selection
// controls of a document into widgets, routes interaction events to them and
// collects their values in a Form.
//
// Enhance and Dispatch run to completion one at a time, so a Controller may be
// shared between goroutines.
type Controller struct {
	mu sync.Mutex

	config    Config
	registry  *Registry
	observers []Observer
	form      *Form

	hosts   map[ID]*html.Node
	parents map[ID]ID // enclosing widget, for bubbling

	log *slog.Logger
}

// NewController validates config and creates a controller with an empty
// Registry. Observers are attached to every widget it builds.
func NewController(config Config, observers ...Observer) (*Controller, error) {
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Controller{
		config:    config,
		registry:  NewRegistry(),
		observers: observers,
		form:      NewForm("esthetic"),
		hosts:     make(map[ID]*html.Node),
		parents:   make(map[ID]ID),
		log:       logging.Logger().With("component", "controller"),
	}, nil
}

// Config returns the controller's configuration.
func (c *Controller) Config() Config {
	return c.config
}

// Registry returns the registry every widget of this controller is in.
func (c *Controller) Registry() *Registry {
	return c.registry
}

// Form returns the form the widgets' carried values are registered with.
func (c *Controller) Form() *Form {
	return c.form
}

// ============================================================================
// Construction
// ============================================================================

type pending struct {
	host *html.Node
	sel  *html.Node
	name string
	list *option.List
}

// Enhance builds a widget for every host element in doc, in document order.
// Each host's <select> is detached and replaced by the widget's trigger, list
// container and carrier.
//
// Every control is parsed before the document is touched, so a malformed
// control fails the whole call with a *ConstructionError and leaves doc and
// the Registry unchanged.
func (c *Controller) Enhance(doc *html.Node) ([]*Widget, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	class := c.config.Classes.Host
	hosts := source.Hosts(doc, class)

	prepared := make([]pending, 0, len(hosts))
	for i, host := range hosts {
		sel := source.OwnSelect(host, class)
		name := source.Name(sel)
		nodes, err := source.Nodes(sel)
		if err != nil {
			return nil, &ConstructionError{Op: fmt.Sprintf("enhance host %d (%q)", i, name), Err: err}
		}
		list, err := option.Parse(nodes)
		if err != nil {
			return nil, &ConstructionError{Op: fmt.Sprintf("enhance host %d (%q)", i, name), Err: err}
		}
		prepared = append(prepared, pending{host: host, sel: sel, name: name, list: list})
	}

	byHost := make(map[*html.Node]ID, len(prepared))
	widgets := make([]*Widget, 0, len(prepared))
	for _, p := range prepared {
		p.sel.Parent.RemoveChild(p.sel)

		w := newWidget(c.registry, p.name, p.list, c.config, c.observers)
		for _, n := range w.Nodes() {
			p.host.AppendChild(n)
		}

		c.hosts[w.id] = p.host
		byHost[p.host] = w.id
		if p.name != "" {
			c.form.RegisterField(p.name, w)
		}
		widgets = append(widgets, w)
	}

	for _, p := range prepared {
		if outer := source.EnclosingHost(p.host, class); outer != nil {
			if parent, ok := byHost[outer]; ok {
				c.parents[byHost[p.host]] = parent
			}
		}
	}

	c.log.Info("document enhanced", "widgets", len(widgets), "registered", c.registry.Len())
	return widgets, nil
}

// Add builds a widget from src without a host document.
func (c *Controller) Add(src Source) (*Widget, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w, err := NewWidget(c.registry, src, c.config, c.observers...)
	if err != nil {
		return nil, err
	}
	if src.Name != "" {
		c.form.RegisterField(src.Name, w)
	}
	return w, nil
}

// ============================================================================
// Interaction
// ============================================================================

// Dispatch delivers e to the widget with id and lets it bubble to enclosing
// widgets until one stops it. It reports whether any widget handled it.
func (c *Controller) Dispatch(id ID, e *Event) (bool, error) {
	if e == nil {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	w, ok := c.registry.Get(id)
	if !ok {
		return false, fmt.Errorf("dispatch %s to %d: %w", e.Type, id, ErrUnknownWidget)
	}

	chain := []*Widget{w}
	for parent, ok := c.parents[id]; ok; parent, ok = c.parents[parent] {
		pw, found := c.registry.Get(parent)
		if !found {
			break
		}
		chain = append(chain, pw)
	}

	handled := dispatch(chain, e)
	c.log.Debug("event dispatched", "id", id, "type", e.Type, "target", e.Target.Kind.String(), "handled", handled)
	return handled, nil
}

// CloseAll hides every widget.
func (c *Controller) CloseAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registry.CloseAll()
}

// Widgets returns the controller's widgets in registration order.
func (c *Controller) Widgets() []*Widget {
	return c.registry.Widgets()
}

// Widget returns the widget with id.
func (c *Controller) Widget(id ID) (*Widget, bool) {
	return c.registry.Get(id)
}

// Host returns the element the widget with id was built into. Widgets added
// without a document have none.
func (c *Controller) Host(id ID) (*html.Node, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	h, ok := c.hosts[id]
	return h, ok
}

// Teardown disposes every widget and forgets their hosts and form fields.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, w := range c.registry.Widgets() {
		w.Dispose()
		if w.name != "" {
			c.form.RemoveField(w.name)
		}
	}
	clear(c.hosts)
	clear(c.parents)
	c.log.Info("controller torn down")
}

// ============================================================================
// Output
// ============================================================================

// Write serializes doc with every widget's list reflecting its visibility.
func (c *Controller) Write(out io.Writer, doc *html.Node) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, w := range c.registry.Widgets() {
		w.mu.Lock()
		w.syncHiddenLocked()
		w.mu.Unlock()
	}
	return html.Render(out, doc)
}
