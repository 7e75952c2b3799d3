package esthetic

// ============================================================================
// Delegated handler
// ============================================================================

// HandleEvent is the widget's single delegated handler for events on its
// trigger, list, carrier or any rendered item.
//
// Events of a type the widget does not listen for, or without a target, are
// left alone and HandleEvent returns false. Otherwise the event's default is
// prevented and its propagation stopped, so enclosing widgets never see it,
// and the widget toggles. An event on an item additionally selects that
// item's value. Disabled items swallow the event without toggling or
// selecting.
func (w *Widget) HandleEvent(e *Event) bool {
	if e == nil || e.Target.Kind == TargetNone || !w.config.Listens(e.Type) {
		return false
	}

	e.Widget = w.id
	e.PreventDefault()
	e.StopPropagation()

	if e.Target.Kind == TargetItem && w.itemDisabled(e.Target.Value) {
		w.log.Debug("event on disabled item ignored", "value", e.Target.Value)
		return true
	}

	w.Toggle()

	if e.Target.Kind == TargetItem {
		w.Select(e.Target.Value)
	}
	return true
}

func (w *Widget) itemDisabled(value string) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	it, ok := w.list.Lookup(value)
	return ok && it.Disabled
}

// ============================================================================
// Bubbling
// ============================================================================

// dispatch delivers e to chain[0] and then to each enclosing widget in turn
// until one of them stops propagation. It reports whether any widget
// handled the event.
func dispatch(chain []*Widget, e *Event) bool {
	handled := false
	for _, w := range chain {
		e.Widget = w.id
		if w.HandleEvent(e) {
			handled = true
		}
		if e.IsPropagationStopped() {
			break
		}
	}
	return handled
}
