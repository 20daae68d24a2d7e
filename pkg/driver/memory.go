package driver

import (
	"errors"
	"strings"

	"github.com/entrhq/fillforge/pkg/field"
)

// ErrDetached is returned when mutating a control no longer on the page.
var ErrDetached = errors.New("driver: control detached")

// MemoryControl is an in-memory Control. It backs the static-HTML driver and
// the engine's tests, recording every dispatched event so assertions can
// inspect exactly what a real page would have observed.
type MemoryControl struct {
	Desc     field.Descriptor
	Val      string
	Focused  bool
	Detached bool

	// Events records dispatched event names in order: "focus", "input",
	// "change", "blur", "backspace", "check".
	Events []string
}

// NewMemoryControl returns a control over the descriptor with an empty value.
func NewMemoryControl(desc field.Descriptor) *MemoryControl {
	return &MemoryControl{Desc: desc}
}

// Descriptor returns the control's attribute snapshot.
func (c *MemoryControl) Descriptor() field.Descriptor { return c.Desc }

// Attached reports whether the control is still connected.
func (c *MemoryControl) Attached() bool { return !c.Detached }

// Focus records focus on the control.
func (c *MemoryControl) Focus() error {
	if c.Detached {
		return ErrDetached
	}
	c.Focused = true
	c.Events = append(c.Events, "focus")
	return nil
}

// Blur removes focus and records a blur event.
func (c *MemoryControl) Blur() error {
	if c.Detached {
		return ErrDetached
	}
	c.Focused = false
	c.Events = append(c.Events, "blur")
	return nil
}

// Value returns the current value.
func (c *MemoryControl) Value() string { return c.Val }

// SetValue assigns the value directly, recording input and change events.
func (c *MemoryControl) SetValue(value string) error {
	if c.Detached {
		return ErrDetached
	}
	c.Val = value
	c.Events = append(c.Events, "input", "change")
	return nil
}

// InsertText appends text at the end of the value, one input event per call.
func (c *MemoryControl) InsertText(text string) error {
	if c.Detached {
		return ErrDetached
	}
	c.Val += text
	c.Events = append(c.Events, "input")
	return nil
}

// Backspace removes the last rune of the value.
func (c *MemoryControl) Backspace() error {
	if c.Detached {
		return ErrDetached
	}
	runes := []rune(c.Val)
	if len(runes) > 0 {
		c.Val = string(runes[:len(runes)-1])
	}
	c.Events = append(c.Events, "backspace")
	return nil
}

// EventCount returns how many events with the given name were dispatched.
func (c *MemoryControl) EventCount(name string) int {
	n := 0
	for _, e := range c.Events {
		if e == name {
			n++
		}
	}
	return n
}

// MemorySelect is a MemoryControl with selectable options.
type MemorySelect struct {
	MemoryControl
	Opts []string
}

// NewMemorySelect returns a select control with the given option values.
func NewMemorySelect(desc field.Descriptor, options []string) *MemorySelect {
	return &MemorySelect{MemoryControl: MemoryControl{Desc: desc}, Opts: options}
}

// Options returns the option values in document order.
func (c *MemorySelect) Options() []string { return c.Opts }

// SelectOption selects a matching option, case-insensitively.
func (c *MemorySelect) SelectOption(value string) error {
	if c.Detached {
		return ErrDetached
	}
	for _, opt := range c.Opts {
		if strings.EqualFold(opt, value) {
			c.Val = opt
			c.Events = append(c.Events, "input", "change")
			return nil
		}
	}
	return errors.New("driver: no option matching " + value)
}

// MemoryRadio is a checkable MemoryControl.
type MemoryRadio struct {
	MemoryControl
	Checked bool
}

// NewMemoryRadio returns an unchecked radio control.
func NewMemoryRadio(desc field.Descriptor) *MemoryRadio {
	return &MemoryRadio{MemoryControl: MemoryControl{Desc: desc}}
}

// Check marks the radio checked and records a change event.
func (c *MemoryRadio) Check() error {
	if c.Detached {
		return ErrDetached
	}
	c.Checked = true
	c.Events = append(c.Events, "check", "change")
	return nil
}

// MemoryPage is an in-memory Page over a fixed control list.
type MemoryPage struct {
	origin   string
	controls []Control
}

// NewMemoryPage builds a page from controls in document order.
func NewMemoryPage(origin string, controls ...Control) *MemoryPage {
	return &MemoryPage{origin: origin, controls: controls}
}

// Origin returns the page origin.
func (p *MemoryPage) Origin() string { return p.origin }

// Controls returns the page's controls.
func (p *MemoryPage) Controls() ([]Control, error) { return p.controls, nil }
