package host

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/roach88/chalmers-thesis/internal/ir"
)

// Invocation is one element of a document tree. An invocation without a
// name is plain text and carries its text in Data.
type Invocation struct {
	Name      string         `yaml:"name,omitempty" json:"name,omitempty"`
	Data      string         `yaml:"data,omitempty" json:"data,omitempty"`
	Arguments map[string]any `yaml:"arguments,omitempty" json:"arguments,omitempty"`
	Children  []Invocation   `yaml:"children,omitempty" json:"children,omitempty"`
}

// Text creates a plain text invocation.
func Text(s string) Invocation {
	return Invocation{Data: s}
}

// IsText reports whether the invocation is plain text.
func (inv Invocation) IsText() bool {
	return inv.Name == ""
}

// Element converts the invocation into the element handed to a transform.
// Children are passed in their JSON form, unevaluated.
func (inv Invocation) Element() (ir.Element, error) {
	el := ir.Element{
		Name:      inv.Name,
		Data:      inv.Data,
		Arguments: make(map[string]any, len(inv.Arguments)),
	}
	for k, v := range inv.Arguments {
		el.Arguments[k] = v
	}
	for i, c := range inv.Children {
		raw, err := c.MarshalJSON()
		if err != nil {
			return ir.Element{}, fmt.Errorf("%s child %d: %w", inv.Name, i, err)
		}
		el.Children = append(el.Children, raw)
	}
	return el, nil
}

func (inv Invocation) value() any {
	if inv.IsText() {
		return inv.Data
	}
	obj := map[string]any{
		"name": inv.Name,
		"data": inv.Data,
	}
	if len(inv.Arguments) > 0 {
		obj["arguments"] = inv.Arguments
	}
	if len(inv.Children) > 0 {
		children := make([]any, len(inv.Children))
		for i, c := range inv.Children {
			children[i] = c.value()
		}
		obj["children"] = children
	}
	return obj
}

// MarshalJSON encodes text as a JSON string and elements as objects.
func (inv Invocation) MarshalJSON() ([]byte, error) {
	return ir.MarshalCanonical(inv.value())
}

// UnmarshalJSON accepts both shapes written by MarshalJSON.
func (inv *Invocation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*inv = Text(s)
		return nil
	}
	type plain Invocation
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invocation: %w", err)
	}
	if p.Name == "" {
		return fmt.Errorf("invocation: object without name")
	}
	*inv = Invocation(p)
	return nil
}

// UnmarshalYAML accepts a bare scalar as a text invocation.
func (inv *Invocation) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*inv = Text(node.Value)
		return nil
	}
	type plain Invocation
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	if p.Name == "" {
		return fmt.Errorf("line %d: element without name", node.Line)
	}
	*inv = Invocation(p)
	return nil
}

// fromNode turns a transform output node back into an invocation, if it
// asks the host to evaluate something. Native nodes report false.
func fromNode(n ir.Node) (Invocation, bool, error) {
	if n.Passthrough != nil {
		var inv Invocation
		if err := json.Unmarshal(n.Passthrough, &inv); err != nil {
			return Invocation{}, false, err
		}
		return inv, true, nil
	}
	switch n.Name {
	case "", ir.ModuleRaw, ir.ModuleInlineContent, ir.ModuleBlockContent, ir.ModuleListPush:
		return Invocation{}, false, nil
	}
	return Invocation{Name: n.Name, Data: n.Data, Arguments: n.Arguments}, true, nil
}

// nodeInvocation wraps an already rendered node so it can be passed to a
// parent as a child.
func nodeInvocation(n ir.Node) Invocation {
	if n.Name == "" {
		return Text(n.Text)
	}
	return Invocation{Name: n.Name, Data: n.Data, Arguments: n.Arguments}
}
