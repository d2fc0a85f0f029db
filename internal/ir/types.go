package ir

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Element is the input record the host sends for one element invocation.
type Element struct {
	Name      string            `json:"name"`
	Data      string            `json:"data"`
	Arguments map[string]any    `json:"arguments"`
	Children  []json.RawMessage `json:"children,omitempty"` // already rendered by the host
}

// ParseElement decodes an element record from its JSON form.
func ParseElement(data []byte) (Element, error) {
	var el Element
	if err := json.Unmarshal(data, &el); err != nil {
		return Element{}, fmt.Errorf("parse element: %w", err)
	}
	if el.Arguments == nil {
		el.Arguments = map[string]any{}
	}
	return el, nil
}

// Arg returns the named argument rendered as a string.
// Numbers keep their shortest decimal form; missing arguments yield "".
func (e Element) Arg(name string) string {
	v, ok := e.Arguments[name]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	default:
		return fmt.Sprint(val)
	}
}

// HasArg reports whether the argument was supplied.
func (e Element) HasArg(name string) bool {
	_, ok := e.Arguments[name]
	return ok
}
