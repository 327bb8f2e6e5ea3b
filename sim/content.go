package sim

import (
	"fmt"
	"strings"
)

// Content is the category of whatever occupies a single belt slot.
type Content int

const (
	Empty Content = iota
	ComponentA
	ComponentB
	Product
)

// AllContents lists every category in reporting order.
var AllContents = []Content{ComponentA, ComponentB, Empty, Product}

// IsComponent reports whether c can be used for assembly.
func (c Content) IsComponent() bool {
	return c == ComponentA || c == ComponentB
}

// Complement returns the component that pairs with c, or Empty if c is not a component.
func (c Content) Complement() Content {
	switch c {
	case ComponentA:
		return ComponentB
	case ComponentB:
		return ComponentA
	default:
		return Empty
	}
}

func (c Content) String() string {
	switch c {
	case Empty:
		return "EMPTY"
	case ComponentA:
		return "A"
	case ComponentB:
		return "B"
	case Product:
		return "PRODUCT"
	default:
		return fmt.Sprintf("Content(%d)", int(c))
	}
}

// ParseContent maps a label such as "A", "b", "P" or "empty" to a Content.
func ParseContent(s string) (Content, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "E", "EMPTY", "-":
		return Empty, nil
	case "A":
		return ComponentA, nil
	case "B":
		return ComponentB, nil
	case "P", "PRODUCT":
		return Product, nil
	}
	return Empty, fmt.Errorf("unknown content %q; valid: A, B, PRODUCT, EMPTY", s)
}

// ParseContents parses a list of labels, stopping at the first invalid one.
func ParseContents(labels []string) ([]Content, error) {
	out := make([]Content, 0, len(labels))
	for i, l := range labels {
		c, err := ParseContent(l)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out = append(out, c)
	}
	return out, nil
}
