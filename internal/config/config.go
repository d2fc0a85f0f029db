// Package config reads the host variables handed to one element invocation.
//
// The host passes every variable a transform declared in the manifest as an
// environment variable of the same name. Lists and sets are JSON arrays of
// strings; constants are plain strings.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// Host variable names.
const (
	VarStructure = "structure"
	VarNotes     = "notes"
	VarImports   = "imports"
	VarAuthors   = "authors"
)

// Document constants read by __document.
var Constants = []string{"title", "subtitle", "language"}

// LookupFunc looks up a variable by name, like os.LookupEnv.
type LookupFunc func(name string) (string, bool)

// MapLookup adapts a map to a LookupFunc.
func MapLookup(m map[string]string) LookupFunc {
	return func(name string) (string, bool) {
		v, ok := m[name]
		return v, ok
	}
}

// Variables holds the decoded host variables of one invocation.
type Variables struct {
	Structure []string
	Notes     []string
	Imports   []json.RawMessage
	Authors   []string
	Consts    map[string]string
}

// Load decodes host variables. Missing lists decode as empty; malformed
// JSON is an error.
func Load(lookup LookupFunc) (*Variables, error) {
	v := &Variables{Consts: make(map[string]string)}

	var err error
	if v.Structure, err = stringList(lookup, VarStructure); err != nil {
		return nil, err
	}
	if v.Notes, err = stringList(lookup, VarNotes); err != nil {
		return nil, err
	}
	if v.Authors, err = stringList(lookup, VarAuthors); err != nil {
		return nil, err
	}
	if raw, ok := lookup(VarImports); ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &v.Imports); err != nil {
			return nil, fmt.Errorf("variable %q: %w", VarImports, err)
		}
	}
	for _, name := range Constants {
		if value, ok := lookup(name); ok {
			v.Consts[name] = value
		}
	}
	return v, nil
}

// Const returns a document constant, logging a warning when it is missing.
func (v *Variables) Const(logger *slog.Logger, name string) (string, bool) {
	value, ok := v.Consts[name]
	if !ok && logger != nil {
		logger.Warn("missing constant", "name", name)
	}
	return value, ok
}

func stringList(lookup LookupFunc, name string) ([]string, error) {
	raw, ok := lookup(name)
	if !ok || raw == "" {
		return nil, nil
	}
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("variable %q: %w", name, err)
	}
	return list, nil
}
