package playwright

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/entrhq/fillforge/pkg/driver"
	"github.com/entrhq/fillforge/pkg/field"
)

// controlSelector matches every element that can carry form data.
const controlSelector = "input, textarea, select"

// livePage wraps a playwright page as a driver page.
type livePage struct {
	page playwright.Page
}

func (p *livePage) Origin() string {
	return p.page.URL()
}

// Controls snapshots the page's form controls in document order. Descriptor
// attributes are read once at enumeration time; the returned controls keep
// live element handles for mutation.
func (p *livePage) Controls() ([]driver.Control, error) {
	elements, err := p.page.QuerySelectorAll(controlSelector)
	if err != nil {
		return nil, fmt.Errorf("playwright: query controls: %w", err)
	}

	controls := make([]driver.Control, 0, len(elements))
	for _, el := range elements {
		c, err := wrapElement(el, len(controls))
		if err != nil {
			return nil, err
		}
		if c != nil {
			controls = append(controls, c)
		}
	}
	return controls, nil
}

// wrapElement builds the right control wrapper for one element, or nil for
// element types the engine never fills (buttons, checkboxes).
func wrapElement(el playwright.ElementHandle, position int) (driver.Control, error) {
	tag, err := tagName(el)
	if err != nil {
		return nil, err
	}

	switch tag {
	case "textarea":
		desc, err := describeElement(el, field.KindTextArea, position)
		if err != nil {
			return nil, err
		}
		return &liveControl{el: el, desc: desc}, nil
	case "select":
		desc, err := describeElement(el, field.KindSelect, position)
		if err != nil {
			return nil, err
		}
		return &liveSelect{liveControl{el: el, desc: desc}}, nil
	}

	typ, _ := attribute(el, "type")
	switch strings.ToLower(typ) {
	case "submit", "button", "reset", "image", "checkbox":
		return nil, nil
	case "radio":
		desc, err := describeElement(el, field.KindRadio, position)
		if err != nil {
			return nil, err
		}
		return &liveRadio{liveControl{el: el, desc: desc}}, nil
	case "file":
		desc, err := describeElement(el, field.KindFile, position)
		if err != nil {
			return nil, err
		}
		return &liveControl{el: el, desc: desc}, nil
	}

	desc, err := describeElement(el, field.KindText, position)
	if err != nil {
		return nil, err
	}
	return &liveControl{el: el, desc: desc}, nil
}

// describeElement reads one element's attributes into a descriptor snapshot.
func describeElement(el playwright.ElementHandle, kind field.ControlKind, position int) (field.Descriptor, error) {
	desc := field.Descriptor{Kind: kind, Position: position}

	typ, err := attribute(el, "type")
	if err != nil {
		return desc, err
	}
	desc.Type = strings.ToLower(typ)
	desc.Name, _ = attribute(el, "name")
	desc.ID, _ = attribute(el, "id")
	desc.Placeholder, _ = attribute(el, "placeholder")
	desc.AriaLabel, _ = attribute(el, "aria-label")
	desc.Autocomplete, _ = attribute(el, "autocomplete")
	desc.Pattern, _ = attribute(el, "pattern")
	desc.Accept, _ = attribute(el, "accept")
	desc.ClassName, _ = attribute(el, "class")

	if disabled, err := el.IsDisabled(); err == nil {
		desc.Disabled = disabled
	}
	if readOnly, err := evalBool(el, "el => el.readOnly === true"); err == nil {
		desc.ReadOnly = readOnly
	}
	if visible, err := el.IsVisible(); err == nil {
		desc.Hidden = !visible
	}
	if desc.Type == "hidden" {
		desc.Hidden = true
	}
	return desc, nil
}

func tagName(el playwright.ElementHandle) (string, error) {
	out, err := el.Evaluate("el => el.tagName.toLowerCase()")
	if err != nil {
		return "", fmt.Errorf("playwright: read tag name: %w", err)
	}
	tag, _ := out.(string)
	return tag, nil
}

// attribute returns the attribute value, empty when absent.
func attribute(el playwright.ElementHandle, name string) (string, error) {
	v, err := el.GetAttribute(name)
	if err != nil {
		return "", fmt.Errorf("playwright: read attribute %s: %w", name, err)
	}
	return v, nil
}

func evalBool(el playwright.ElementHandle, expr string) (bool, error) {
	out, err := el.Evaluate(expr)
	if err != nil {
		return false, err
	}
	b, _ := out.(bool)
	return b, nil
}
