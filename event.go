package esthetic

// ============================================================================
// Targets
// ============================================================================

// TargetKind identifies which of a widget's elements an event hit.
type TargetKind uint8

const (
	TargetNone TargetKind = iota
	TargetTrigger
	TargetItem
	TargetList
	TargetInput
)

var targetNames = map[TargetKind]string{
	TargetNone:    "none",
	TargetTrigger: "trigger",
	TargetItem:    "item",
	TargetList:    "list",
	TargetInput:   "input",
}

func (k TargetKind) String() string {
	if s, ok := targetNames[k]; ok {
		return s
	}
	return "none"
}

// ParseTargetKind maps "trigger", "item", "list" and "input" to their kinds.
// Anything else is TargetNone.
func ParseTargetKind(s string) TargetKind {
	for k, name := range targetNames {
		if name == s {
			return k
		}
	}
	return TargetNone
}

// Target is the element an event occurred on. Value is the item's value and
// is only read for TargetItem.
type Target struct {
	Kind  TargetKind
	Value string
}

// ============================================================================
// Event
// ============================================================================

// Event is an interaction reported by the host, independent of any toolkit's
// event representation.
type Event struct {
	// Type is the host's event name, e.g. "mousedown".
	Type   string
	Target Target

	// Widget is the widget currently handling the event while it bubbles.
	Widget ID

	propagationStopped bool
	defaultPrevented   bool
}

// NewEvent creates an event on a trigger, list or input element.
func NewEvent(eventType string, kind TargetKind) *Event {
	return &Event{Type: eventType, Target: Target{Kind: kind}}
}

// NewItemEvent creates an event on the rendered item carrying value.
func NewItemEvent(eventType, value string) *Event {
	return &Event{Type: eventType, Target: Target{Kind: TargetItem, Value: value}}
}

// StopPropagation keeps the event away from enclosing widgets.
func (e *Event) StopPropagation() { e.propagationStopped = true }

// IsPropagationStopped returns true if propagation was stopped.
func (e *Event) IsPropagationStopped() bool { return e.propagationStopped }

// PreventDefault tells the host to skip its own handling of the event.
func (e *Event) PreventDefault() { e.defaultPrevented = true }

// IsDefaultPrevented returns true if default was prevented.
func (e *Event) IsDefaultPrevented() bool { return e.defaultPrevented }
