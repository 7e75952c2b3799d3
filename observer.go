package esthetic

// Observer receives widget lifecycle notifications. Each method gets the
// widget and nothing else; read whatever state is needed from it.
type Observer interface {
	// OnCreate is called once, after the widget is built and registered.
	OnCreate(w *Widget)
	// OnChange is called after a selection updated the widget's value.
	OnChange(w *Widget)
	// OnUpdate is called after the list markup was (re)rendered.
	OnUpdate(w *Widget)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Create func(w *Widget)
	Change func(w *Widget)
	Update func(w *Widget)
}

func (o ObserverFuncs) OnCreate(w *Widget) {
	if o.Create != nil {
		o.Create(w)
	}
}

func (o ObserverFuncs) OnChange(w *Widget) {
	if o.Change != nil {
		o.Change(w)
	}
}

func (o ObserverFuncs) OnUpdate(w *Widget) {
	if o.Update != nil {
		o.Update(w)
	}
}
