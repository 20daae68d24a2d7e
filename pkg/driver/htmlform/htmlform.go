// Package htmlform builds driver pages from static HTML. It backs the CLI's
// offline analyze/dry-run paths: markup is parsed once, each form control
// becomes an in-memory control, and fills mutate only the parsed snapshot.
package htmlform

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/entrhq/fillforge/pkg/driver"
	"github.com/entrhq/fillforge/pkg/field"
)

// Parse reads HTML from r and returns a page exposing its form controls in
// document order. origin is the hostname or URL the markup is attributed to.
func Parse(origin string, r io.Reader) (*driver.MemoryPage, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("htmlform: parse: %w", err)
	}

	var controls []driver.Control
	position := 0

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if c := controlFor(n, position); c != nil {
				controls = append(controls, c)
				position++
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(root)

	return driver.NewMemoryPage(origin, controls...), nil
}

// ParseFile parses the HTML file at path.
func ParseFile(origin, path string) (*driver.MemoryPage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("htmlform: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(origin, f)
}

// controlFor converts a form element node into a control, or nil for nodes
// that are not fillable form controls.
func controlFor(n *html.Node, position int) driver.Control {
	switch n.Data {
	case "input":
		return inputControl(n, position)
	case "textarea":
		desc := descriptorFor(n, field.KindTextArea, position)
		c := driver.NewMemoryControl(desc)
		c.Val = textContent(n)
		return c
	case "select":
		desc := descriptorFor(n, field.KindSelect, position)
		return driver.NewMemorySelect(desc, optionValues(n))
	}
	return nil
}

func inputControl(n *html.Node, position int) driver.Control {
	typ := strings.ToLower(attr(n, "type"))
	switch typ {
	case "submit", "button", "reset", "image", "checkbox":
		// Not fillable by this engine.
		return nil
	case "radio":
		return driver.NewMemoryRadio(descriptorFor(n, field.KindRadio, position))
	case "file":
		return driver.NewMemoryControl(descriptorFor(n, field.KindFile, position))
	}

	desc := descriptorFor(n, field.KindText, position)
	if typ == "hidden" {
		desc.Hidden = true
	}
	c := driver.NewMemoryControl(desc)
	c.Val = attr(n, "value")
	return c
}

func descriptorFor(n *html.Node, kind field.ControlKind, position int) field.Descriptor {
	return field.Descriptor{
		Kind:         kind,
		Type:         strings.ToLower(attr(n, "type")),
		Name:         attr(n, "name"),
		ID:           attr(n, "id"),
		Placeholder:  attr(n, "placeholder"),
		AriaLabel:    attr(n, "aria-label"),
		Autocomplete: attr(n, "autocomplete"),
		Pattern:      attr(n, "pattern"),
		Accept:       attr(n, "accept"),
		ClassName:    attr(n, "class"),
		Disabled:     hasAttr(n, "disabled"),
		ReadOnly:     hasAttr(n, "readonly"),
		Hidden:       hasAttr(n, "hidden"),
		Position:     position,
	}
}

func optionValues(selectNode *html.Node) []string {
	var out []string
	for child := selectNode.FirstChild; child != nil; child = child.NextSibling {
		if child.Type != html.ElementNode || child.Data != "option" {
			continue
		}
		v := attr(child, "value")
		if v == "" {
			v = strings.TrimSpace(textContent(child))
		}
		out = append(out, v)
	}
	return out
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(n *html.Node, name string) bool {
	for _, a := range n.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}
