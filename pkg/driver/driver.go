// Package driver defines the boundary between the fill engine and the host
// page. The engine only sees abstract controls: a snapshot descriptor plus a
// mutate-and-dispatch capability. Hosts must fire input/change/blur events
// after mutation so page frameworks observe the change; beyond that the
// engine has no opinion about the host's event machinery.
package driver

import "github.com/entrhq/fillforge/pkg/field"

// Control is the mutation capability the host exposes for one form control.
type Control interface {
	// Descriptor returns the control's immutable attribute snapshot.
	Descriptor() field.Descriptor

	// Attached reports whether the control is still connected to the page.
	Attached() bool

	// Focus gives the control input focus.
	Focus() error

	// Blur removes focus, triggering page-side validation.
	Blur() error

	// Value returns the control's current value.
	Value() string

	// SetValue assigns the value directly and dispatches input and change
	// events. Used for instant fills.
	SetValue(value string) error

	// InsertText appends text at the caret as simulated keystrokes.
	InsertText(text string) error

	// Backspace removes the character before the caret as a keystroke.
	Backspace() error
}

// SelectControl is a Control backed by a select element.
type SelectControl interface {
	Control

	// Options returns the selectable option values in document order.
	Options() []string

	// SelectOption selects the option with the given value and dispatches
	// input and change events.
	SelectOption(value string) error
}

// CheckableControl is a Control backed by a radio button.
type CheckableControl interface {
	Control

	// Check marks the control checked and dispatches a change event.
	Check() error
}

// Page enumerates the fillable controls of one host page.
type Page interface {
	// Origin returns the page origin (URL or bare hostname).
	Origin() string

	// Controls returns the page's form controls in document order.
	Controls() ([]Control, error)
}
