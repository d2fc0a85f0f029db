// Package manifest declares the transforms this plugin offers and the
// host variables each of them reads or pushes.
//
// The manifest is written in CUE (manifest.cue) so that its shape is
// checked when it is loaded: argument types, variable access modes and
// output formats are constrained by definitions in the same file.
package manifest

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
)

//go:embed manifest.cue
var manifestCUE string

// Variable access modes.
const (
	AccessRead = "read"
	AccessPush = "push"
	AccessAdd  = "add"

	// AccessAppend reads a list as it stands when the transform runs and
	// pushes to it. Only earlier pushers are waited for.
	AccessAppend = "append"
)

// Manifest is the decoded capability declaration.
type Manifest struct {
	Version     string      `json:"version"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Transforms  []Transform `json:"transforms"`

	value cue.Value
}

// Transform declares one element the plugin can transform.
type Transform struct {
	From           string              `json:"from"`
	To             []string            `json:"to"`
	Description    string              `json:"description,omitempty"`
	Type           string              `json:"type,omitempty"`
	UnknownContent bool                `json:"unknown-content,omitempty"`
	Arguments      []Argument          `json:"arguments"`
	Variables      map[string]Variable `json:"variables,omitempty"`
}

// Argument declares one element argument.
type Argument struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Default     any    `json:"default,omitempty"`
	Type        any    `json:"type,omitempty"` // "string", "f64", "u64" or a list of allowed values
}

// Variable declares how a transform accesses a host variable.
type Variable struct {
	Type   string `json:"type"`
	Access string `json:"access"`
}

var (
	defaultOnce     sync.Once
	defaultManifest *Manifest
	defaultErr      error
)

// Default returns the embedded manifest, loading it on first use.
func Default() (*Manifest, error) {
	defaultOnce.Do(func() {
		defaultManifest, defaultErr = Load()
	})
	return defaultManifest, defaultErr
}

// Load compiles and validates the embedded manifest.
func Load() (*Manifest, error) {
	return Compile(manifestCUE)
}

// Compile compiles a manifest from CUE source. The source must define a
// concrete top-level "manifest" field.
func Compile(src string) (*Manifest, error) {
	ctx := cuecontext.New()
	root := ctx.CompileString(src, cue.Filename("manifest.cue"))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("compile manifest: %s", errors.Details(err, nil))
	}

	v := root.LookupPath(cue.ParsePath("manifest"))
	if !v.Exists() {
		return nil, fmt.Errorf("compile manifest: no manifest field")
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("validate manifest: %s", errors.Details(err, nil))
	}

	m := &Manifest{value: v}
	if err := v.Decode(m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	seen := make(map[string]bool, len(m.Transforms))
	for _, t := range m.Transforms {
		if seen[t.From] {
			return nil, fmt.Errorf("validate manifest: duplicate transform %q", t.From)
		}
		seen[t.From] = true
	}
	return m, nil
}

// JSON returns the manifest as JSON, in declaration order.
func (m *Manifest) JSON() ([]byte, error) {
	if m.value.Exists() {
		return m.value.MarshalJSON()
	}
	return json.Marshal(m)
}

// Transform returns the declaration for an element.
func (m *Manifest) Transform(from string) (Transform, bool) {
	for _, t := range m.Transforms {
		if t.From == from {
			return t, true
		}
	}
	return Transform{}, false
}

// Supports reports whether the element can be transformed to format.
func (t Transform) Supports(format string) bool {
	for _, to := range t.To {
		if to == format || to == "any" {
			return true
		}
	}
	return false
}

// Reads reports whether the transform reads the named host variable.
func (t Transform) Reads(variable string) bool {
	v, ok := t.Variables[variable]
	return ok && (v.Access == AccessRead || v.Access == AccessAppend)
}

// Appends reports whether the transform both reads and pushes the named
// list, seeing only what was pushed before it.
func (t Transform) Appends(variable string) bool {
	v, ok := t.Variables[variable]
	return ok && v.Access == AccessAppend
}

// Pushes reports whether the transform appends to the named host variable.
func (t Transform) Pushes(variable string) bool {
	v, ok := t.Variables[variable]
	return ok && (v.Access == AccessPush || v.Access == AccessAdd || v.Access == AccessAppend)
}

// ReadVariables returns the names of every variable the transform reads.
func (t Transform) ReadVariables() []string {
	var names []string
	for name, v := range t.Variables {
		if v.Access == AccessRead || v.Access == AccessAppend {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

// Enum returns the allowed values of an enumerated argument.
func (a Argument) Enum() []string {
	list, ok := a.Type.([]any)
	if !ok {
		return nil
	}
	values := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}

// Kind returns the scalar type of the argument ("string", "f64", "u64"),
// or "enum" for enumerated arguments.
func (a Argument) Kind() string {
	switch t := a.Type.(type) {
	case string:
		return t
	case []any:
		return "enum"
	default:
		return "string"
	}
}
