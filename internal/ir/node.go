package ir

import (
	"encoding/json"
	"fmt"
)

// Module names the host understands natively.
const (
	ModuleRaw           = "raw"
	ModuleInlineContent = "inline_content"
	ModuleBlockContent  = "block_content"
	ModuleListPush      = "list-push"
)

// Node is one entry of a transform's output array.
//
// A node is exactly one of: plain text (Name empty), a module invocation
// (Name set), or a passthrough of an already-rendered child (Passthrough set).
type Node struct {
	Text        string
	Name        string
	Data        string
	Arguments   map[string]any
	Passthrough json.RawMessage
}

// Text creates a plain text node.
func Text(s string) Node {
	return Node{Text: s}
}

// Raw creates a raw output node that the host copies verbatim.
func Raw(s string) Node {
	return Node{Name: ModuleRaw, Data: s}
}

// Inline delegates inline markup back to the host for parsing.
func Inline(s string) Node {
	return Node{Name: ModuleInlineContent, Data: s}
}

// Block delegates block markup back to the host for parsing.
func Block(s string) Node {
	return Node{Name: ModuleBlockContent, Data: s}
}

// Push asks the host to append entry to the named list variable.
func Push(list, entry string) Node {
	return Node{
		Name:      ModuleListPush,
		Data:      entry,
		Arguments: map[string]any{"name": list},
	}
}

// Module invokes another module with the given arguments.
func Module(name, data string, args map[string]any) Node {
	return Node{Name: name, Data: data, Arguments: args}
}

// Child passes an already-rendered child through untouched.
func Child(raw json.RawMessage) Node {
	return Node{Passthrough: raw}
}

// IsPush reports whether the node is a list-push request.
func (n Node) IsPush() bool {
	return n.Name == ModuleListPush
}

// PushTarget returns the list name of a list-push node.
func (n Node) PushTarget() string {
	if !n.IsPush() {
		return ""
	}
	name, _ := n.Arguments["name"].(string)
	return name
}

// value converts the node to the generic form consumed by the canonical encoder.
func (n Node) value() (any, error) {
	if n.Passthrough != nil {
		var v any
		if err := json.Unmarshal(n.Passthrough, &v); err != nil {
			return nil, fmt.Errorf("passthrough child: %w", err)
		}
		return v, nil
	}
	if n.Name == "" {
		return n.Text, nil
	}
	obj := map[string]any{
		"name": n.Name,
		"data": n.Data,
	}
	if len(n.Arguments) > 0 {
		obj["arguments"] = n.Arguments
	}
	return obj, nil
}

// MarshalJSON encodes the node canonically.
func (n Node) MarshalJSON() ([]byte, error) {
	v, err := n.value()
	if err != nil {
		return nil, err
	}
	return MarshalCanonical(v)
}

// UnmarshalJSON decodes a node from either of its two JSON shapes.
func (n *Node) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = Node{Text: s}
		return nil
	}
	var obj struct {
		Name      string         `json:"name"`
		Data      any            `json:"data"`
		Arguments map[string]any `json:"arguments"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("node: %w", err)
	}
	if obj.Name == "" {
		return fmt.Errorf("node: object without name")
	}
	*n = Node{Name: obj.Name, Arguments: obj.Arguments}
	switch d := obj.Data.(type) {
	case nil:
	case string:
		n.Data = d
	default:
		raw, err := json.Marshal(d)
		if err != nil {
			return fmt.Errorf("node data: %w", err)
		}
		n.Data = string(raw)
	}
	return nil
}

// MarshalNodes encodes an output array canonically.
func MarshalNodes(nodes []Node) ([]byte, error) {
	arr := make([]any, len(nodes))
	for i, n := range nodes {
		v, err := n.value()
		if err != nil {
			return nil, fmt.Errorf("node[%d]: %w", i, err)
		}
		arr[i] = v
	}
	return MarshalCanonical(arr)
}
