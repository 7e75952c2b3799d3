package esthetic

import (
	"errors"
	"net/url"
	"regexp"
	"slices"
	"sync"
)

// ============================================================================
// FormControl
// ============================================================================

// FormControl is implemented by anything that carries a value for form
// submission. *Widget implements it through its hidden carrier.
type FormControl interface {
	// FormValue returns the current value of the control
	FormValue() any
	// SetFormValue sets the value programmatically
	SetFormValue(value any)
	// OnFormChange registers a callback for value changes
	OnFormChange(callback func(value any))
	// FormReset resets to the initial value
	FormReset()
}

// ============================================================================
// Form
// ============================================================================

// Form collects the carried values of named controls, the way a submitted
// form would.
type Form struct {
	name string

	mu          sync.RWMutex
	fields      map[string]*formField
	fieldOrder  []string // registration order
	fieldErrors map[string]error
	onSubmit    func(values map[string]any, valid bool)
}

type formField struct {
	control    FormControl
	validators []Validator
	value      any
}

// NewForm creates an empty form.
func NewForm(name string) *Form {
	return &Form{
		name:        name,
		fields:      make(map[string]*formField),
		fieldOrder:  make([]string, 0),
		fieldErrors: make(map[string]error),
	}
}

// Name returns the form's name.
func (f *Form) Name() string {
	return f.name
}

// RegisterField registers control under name. Registering a name again
// replaces the control but keeps its position.
func (f *Form) RegisterField(name string, control FormControl, validators ...Validator) {
	f.mu.Lock()
	defer f.mu.Unlock()

	value := control.FormValue()

	if existing, ok := f.fields[name]; ok {
		existing.control = control
		existing.validators = validators
		existing.value = value
	} else {
		f.fields[name] = &formField{
			control:    control,
			validators: validators,
			value:      value,
		}
		f.fieldOrder = append(f.fieldOrder, name)
	}

	control.OnFormChange(func(newValue any) {
		f.mu.Lock()
		// A replaced control may still fire; only track the current one.
		if field, ok := f.fields[name]; ok && field.control == control {
			field.value = newValue
			delete(f.fieldErrors, name)
		}
		f.mu.Unlock()
	})
}

// RemoveField forgets name.
func (f *Form) RemoveField(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.fields, name)
	delete(f.fieldErrors, name)
	f.fieldOrder = slices.DeleteFunc(f.fieldOrder, func(n string) bool { return n == name })
}

// Fields returns the field names in registration order.
func (f *Form) Fields() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.fieldOrder)
}

// ============================================================================
// Value Access
// ============================================================================

// Value returns the current value for a field.
func (f *Form) Value(name string) any {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if field, ok := f.fields[name]; ok {
		return field.value
	}
	return nil
}

// Values returns all field values as a map.
func (f *Form) Values() map[string]any {
	f.mu.RLock()
	defer f.mu.RUnlock()

	values := make(map[string]any, len(f.fields))
	for name, field := range f.fields {
		values[name] = field.value
	}
	return values
}

// Encode returns the values as an application/x-www-form-urlencoded body.
func (f *Form) Encode() string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	v := url.Values{}
	for _, name := range f.fieldOrder {
		if s, ok := f.fields[name].value.(string); ok {
			v.Set(name, s)
		}
	}
	return v.Encode()
}

// SetValue programmatically sets a field's value through its control.
func (f *Form) SetValue(name string, value any) {
	f.mu.RLock()
	field, ok := f.fields[name]
	f.mu.RUnlock()

	if !ok {
		return
	}

	// The control's change callback records the new value.
	field.control.SetFormValue(value)
}

// ============================================================================
// Validation
// ============================================================================

// Validator is a function that validates a field value.
// Returns nil if valid, or an error describing the validation failure.
type Validator func(value any) error

// FieldError returns the validation error for a field, or nil if valid.
func (f *Form) FieldError(name string) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fieldErrors[name]
}

// Errors returns all current validation errors.
func (f *Form) Errors() map[string]error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	errs := make(map[string]error, len(f.fieldErrors))
	for name, err := range f.fieldErrors {
		errs[name] = err
	}
	return errs
}

// Validate runs all validators on all fields.
// Returns true if all fields are valid.
func (f *Form) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.fieldErrors = make(map[string]error)

	allValid := true
	for name, field := range f.fields {
		for _, validator := range field.validators {
			if err := validator(field.value); err != nil {
				f.fieldErrors[name] = err
				allValid = false
				break // first error per field
			}
		}
	}

	return allValid
}

// ============================================================================
// Submit and Reset
// ============================================================================

// OnSubmit sets the callback invoked when Submit() is called.
func (f *Form) OnSubmit(callback func(values map[string]any, valid bool)) *Form {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onSubmit = callback
	return f
}

// Submit validates the form and invokes the OnSubmit callback.
func (f *Form) Submit() bool {
	valid := f.Validate()

	f.mu.RLock()
	callback := f.onSubmit
	f.mu.RUnlock()

	if callback != nil {
		callback(f.Values(), valid)
	}
	return valid
}

// Reset restores every control to its initial value.
func (f *Form) Reset() {
	f.mu.Lock()
	controls := make([]FormControl, 0, len(f.fields))
	for _, name := range f.fieldOrder {
		controls = append(controls, f.fields[name].control)
	}
	f.fieldErrors = make(map[string]error)
	f.mu.Unlock()

	for _, control := range controls {
		control.FormReset()
	}
}

// ============================================================================
// Common Validators
// ============================================================================

// Required returns a validator that rejects nil and empty strings.
func Required(message ...string) Validator {
	msg := "This field is required"
	if len(message) > 0 {
		msg = message[0]
	}

	return func(value any) error {
		if value == nil {
			return errors.New(msg)
		}
		if s, ok := value.(string); ok && s == "" {
			return errors.New(msg)
		}
		return nil
	}
}

// Pattern returns a validator that checks string values against a regex.
func Pattern(pattern string, message ...string) Validator {
	msg := "Invalid format"
	if len(message) > 0 {
		msg = message[0]
	}

	re := regexp.MustCompile(pattern)

	return func(value any) error {
		if s, ok := value.(string); ok {
			if s != "" && !re.MatchString(s) {
				return errors.New(msg)
			}
		}
		return nil
	}
}

// OneOfOptions returns a validator accepting only values of w's enabled items.
func OneOfOptions(w *Widget, message ...string) Validator {
	msg := "Not one of the available options"
	if len(message) > 0 {
		msg = message[0]
	}

	return func(value any) error {
		s, ok := value.(string)
		if !ok {
			return errors.New(msg)
		}
		for _, it := range w.Items() {
			if it.Value == s && !it.Disabled {
				return nil
			}
		}
		return errors.New(msg)
	}
}
