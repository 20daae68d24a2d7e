package playwright

import (
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/fillforge/pkg/field"
)

// liveControl mutates a real DOM element through its element handle.
// Playwright's fill and type primitives dispatch genuine input and change
// events, so page frameworks observe fills exactly like user typing.
type liveControl struct {
	el   playwright.ElementHandle
	desc field.Descriptor
}

func (c *liveControl) Descriptor() field.Descriptor {
	return c.desc
}

// Attached reports whether the element is still connected to the document.
// A navigation or DOM rewrite detaches the handle.
func (c *liveControl) Attached() bool {
	connected, err := evalBool(c.el, "el => el.isConnected")
	return err == nil && connected
}

func (c *liveControl) Focus() error {
	if err := c.el.Focus(); err != nil {
		return fmt.Errorf("playwright: focus: %w", err)
	}
	return nil
}

func (c *liveControl) Blur() error {
	if _, err := c.el.Evaluate("el => el.blur()"); err != nil {
		return fmt.Errorf("playwright: blur: %w", err)
	}
	return nil
}

func (c *liveControl) Value() string {
	v, err := c.el.InputValue()
	if err != nil {
		return ""
	}
	return v
}

func (c *liveControl) SetValue(value string) error {
	if err := c.el.Fill(value); err != nil {
		return fmt.Errorf("playwright: set value: %w", err)
	}
	return nil
}

func (c *liveControl) InsertText(text string) error {
	if err := c.el.Type(text); err != nil {
		return fmt.Errorf("playwright: insert text: %w", err)
	}
	return nil
}

func (c *liveControl) Backspace() error {
	if err := c.el.Press("Backspace"); err != nil {
		return fmt.Errorf("playwright: backspace: %w", err)
	}
	return nil
}

// liveSelect adds option enumeration and selection for select elements.
type liveSelect struct {
	liveControl
}

func (s *liveSelect) Options() []string {
	out, err := s.el.Evaluate("el => Array.from(el.options).map(o => o.value)")
	if err != nil {
		return nil
	}
	raw, ok := out.([]interface{})
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		str, _ := v.(string)
		values = append(values, str)
	}
	return values
}

func (s *liveSelect) SelectOption(value string) error {
	selected, err := s.el.SelectOption(playwright.SelectOptionValues{
		Values: &[]string{value},
	})
	if err != nil {
		return fmt.Errorf("playwright: select option %q: %w", value, err)
	}
	if len(selected) == 0 {
		return fmt.Errorf("playwright: no option matched %q", value)
	}
	return nil
}

// liveRadio adds checking for radio inputs.
type liveRadio struct {
	liveControl
}

func (r *liveRadio) Check() error {
	if err := r.el.Check(); err != nil {
		return fmt.Errorf("playwright: check: %w", err)
	}
	return nil
}
