package esthetic

import (
	"fmt"
	"log/slog"
	"sync"

	"go.uber.org/atomic"
	"golang.org/x/net/html"

	"github.com/agiangrant/esthetic/internal/i18n"
	"github.com/agiangrant/esthetic/internal/logging"
	"github.com/agiangrant/esthetic/option"
	"github.com/agiangrant/esthetic/render"
)

// Source is the part of a selection control a widget is built from.
type Source struct {
	// Name is the control's form field name, carried to the hidden input.
	Name  string
	Nodes []option.Node
}

// Widget is one dropdown built from one selection control.
//
// A widget starts hidden. Opening always goes through its Registry so that
// at most one widget is visible; closing is local. The list markup is built on
// the first open and rebuilt on later opens when a selection changed it.
type Widget struct {
	mu sync.RWMutex

	id       ID
	registry *Registry
	visible  atomic.Bool

	config Config
	tokens render.Tokens
	list   *option.List

	name    string
	text    string // trigger label
	value   string // carried value
	initial string

	// Live markup, appended to the host by a Controller.
	trigger   *html.Node
	label     *html.Node // text node inside the trigger
	container *html.Node
	carrier   *html.Node
	listNode  *html.Node
	stale     bool // listNode no longer matches the model

	observers    []Observer
	formChangeFn []func(value any)

	log *slog.Logger
}

// NewWidget parses src, builds the widget's markup and registers it with
// registry. Observers get OnCreate before NewWidget returns.
func NewWidget(registry *Registry, src Source, config Config, observers ...Observer) (*Widget, error) {
	if registry == nil {
		return nil, &ConstructionError{Op: "new widget", Err: ErrNilRegistry}
	}
	config = config.withDefaults()
	if err := config.Validate(); err != nil {
		return nil, &ConstructionError{Op: "new widget", Err: err}
	}

	list, err := option.Parse(src.Nodes)
	if err != nil {
		return nil, &ConstructionError{Op: fmt.Sprintf("parse %q", src.Name), Err: err}
	}
	return newWidget(registry, src.Name, list, config, observers), nil
}

// newWidget takes a list parsed for this widget alone; config is already valid.
func newWidget(registry *Registry, name string, list *option.List, config Config, observers []Observer) *Widget {
	w := &Widget{
		config:    config,
		tokens:    config.Tokens(),
		list:      list,
		name:      name,
		observers: append([]Observer(nil), observers...),
		log:       logging.Logger().With("component", "widget", "name", name),
	}

	if sel, ok := list.Selected(); ok {
		w.text = sel.Text
		w.value = sel.Value
	} else {
		w.text = w.placeholder()
	}
	w.initial = w.value

	w.trigger = render.Trigger(w.tokens, w.text)
	w.label = w.trigger.FirstChild.FirstChild
	w.container = render.Container(w.tokens)
	w.carrier = render.Carrier(w.tokens, name, w.value)

	registry.Register(w)
	w.log = w.log.With("id", w.id)

	for _, o := range w.observers {
		o.OnCreate(w)
	}
	return w
}

func (w *Widget) placeholder() string {
	if w.config.Placeholder != "" {
		return w.config.Placeholder
	}
	if w.list.Len() == 0 {
		return i18n.Empty(w.config.Locale)
	}
	return i18n.Placeholder(w.config.Locale)
}

// ============================================================================
// State
// ============================================================================

// ID returns the id assigned by the Registry.
func (w *Widget) ID() ID {
	return w.id
}

// Name returns the control's form field name.
func (w *Widget) Name() string {
	return w.name
}

// Visible reports whether the list is open.
func (w *Widget) Visible() bool {
	return w.visible.Load()
}

// Text returns the trigger label.
func (w *Widget) Text() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.text
}

// Value returns the carried value.
func (w *Widget) Value() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.value
}

// Items returns a copy of the widget's option items.
func (w *Widget) Items() []option.Item {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.list.Items()
}

// Selected returns the canonical selected item.
func (w *Widget) Selected() (option.Item, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.list.Selected()
}

// Rendered reports whether the list markup has been built.
func (w *Widget) Rendered() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.listNode != nil
}

// Config returns the widget's configuration.
func (w *Widget) Config() Config {
	return w.config
}

// Observe adds an observer for later notifications.
func (w *Widget) Observe(o Observer) {
	w.mu.Lock()
	w.observers = append(w.observers, o)
	w.mu.Unlock()
}

// ============================================================================
// Transitions
// ============================================================================

// Toggle opens a hidden widget through the Registry and hides a visible one.
func (w *Widget) Toggle() {
	if w.visible.Load() {
		w.Close()
		return
	}
	w.Open()
}

// Open renders the list if needed and asks the Registry to show this widget
// alone. A widget that was disposed stays hidden and closes every other one.
func (w *Widget) Open() {
	w.Update()
	w.registry.ExclusiveShow(w.id)
}

// Close hides this widget without involving the Registry.
func (w *Widget) Close() {
	w.visible.Store(false)
}

// Update rebuilds the list markup when it is missing or stale, then tells
// observers through OnUpdate. It does nothing when the markup is current.
func (w *Widget) Update() {
	w.mu.Lock()
	if w.listNode != nil && !w.stale {
		w.mu.Unlock()
		return
	}
	if w.listNode != nil {
		w.container.RemoveChild(w.listNode)
	}
	w.listNode = render.List(w.list, w.tokens, true)
	w.container.AppendChild(w.listNode)
	w.stale = false
	observers := w.observersLocked()
	w.mu.Unlock()

	for _, o := range observers {
		o.OnUpdate(w)
	}
}

// Select makes value the widget's value: the trigger shows the selected
// item's text, the carrier holds value and the list marks the matching items.
// A value matching no item clears the selection and shows the placeholder.
func (w *Widget) Select(value string) {
	w.mu.Lock()
	matched := w.list.UpdateSelected(value)
	if sel, ok := w.list.Selected(); ok {
		w.text = sel.Text
	} else {
		w.text = w.placeholder()
	}
	w.value = value
	w.label.Data = w.text
	render.SetAttr(w.carrier, "value", value)
	w.stale = w.listNode != nil
	observers := w.observersLocked()
	formFns := append(([]func(any))(nil), w.formChangeFn...)
	w.mu.Unlock()

	if matched == 0 {
		w.log.Debug("selected value matches no item", "value", value)
	}

	for _, o := range observers {
		o.OnChange(w)
	}
	for _, fn := range formFns {
		fn(value)
	}
}

// Dispose unregisters the widget. It returns false if it was not registered.
func (w *Widget) Dispose() bool {
	return w.registry.Unregister(w.id)
}

func (w *Widget) observersLocked() []Observer {
	return append([]Observer(nil), w.observers...)
}

// ============================================================================
// Markup
// ============================================================================

// Nodes returns the live trigger, list container and carrier nodes. They are
// updated in place by later transitions; callers must not modify them.
func (w *Widget) Nodes() []*html.Node {
	return []*html.Node{w.trigger, w.container, w.carrier}
}

// Markup serializes the trigger, the list container and the carrier.
func (w *Widget) Markup() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.syncHiddenLocked()
	return render.String(w.trigger, w.container, w.carrier)
}

// ListMarkup serializes the list with its hidden attribute matching the
// widget's visibility. It is empty until the widget has been opened once.
func (w *Widget) ListMarkup() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.listNode == nil {
		return ""
	}
	w.syncHiddenLocked()
	return render.String(w.listNode)
}

// syncHiddenLocked writes the current visibility into the list markup.
// Visibility itself lives in an atomic flag owned by the Registry.
func (w *Widget) syncHiddenLocked() {
	if w.listNode != nil {
		render.SetHidden(w.listNode, w.tokens.Hidden, !w.visible.Load())
	}
}

// ============================================================================
// FormControl
// ============================================================================

// FormValue returns the carried value.
func (w *Widget) FormValue() any {
	return w.Value()
}

// SetFormValue selects the item carrying value.
func (w *Widget) SetFormValue(value any) {
	if s, ok := value.(string); ok {
		w.Select(s)
		return
	}
	w.Select(fmt.Sprint(value))
}

// OnFormChange registers a callback run after every selection.
func (w *Widget) OnFormChange(callback func(value any)) {
	w.mu.Lock()
	w.formChangeFn = append(w.formChangeFn, callback)
	w.mu.Unlock()
}

// FormReset restores the value the widget was built with.
func (w *Widget) FormReset() {
	w.Select(w.initial)
}
