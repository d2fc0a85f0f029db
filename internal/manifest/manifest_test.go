package manifest

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/chalmers-thesis/internal/ir"
)

func TestLoad(t *testing.T) {
	m, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ir.PluginVersion, m.Version)
	assert.Equal(t, ir.PluginName, m.Name)

	for _, from := range []string{
		"cite", "note", "note-label", "__document", "__heading",
		"latex", "tex", "Latex", "Tex",
		"fancy-image", "fancy-table", "fancy-big-table",
		"label", "reference", "element-number",
	} {
		_, ok := m.Transform(from)
		assert.True(t, ok, "missing transform %q", from)
	}
}

func TestDefault_Cached(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestJSON(t *testing.T) {
	m, err := Load()
	require.NoError(t, err)

	data, err := m.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "chalmers-thesis", decoded["name"])

	transforms, ok := decoded["transforms"].([]any)
	require.True(t, ok)
	assert.Len(t, transforms, len(m.Transforms))

	first := transforms[0].(map[string]any)
	assert.Equal(t, "cite", first["from"])
}

func TestVariables(t *testing.T) {
	m, err := Load()
	require.NoError(t, err)

	heading, _ := m.Transform("__heading")
	assert.True(t, heading.Pushes("structure"))
	assert.False(t, heading.Reads("structure"))

	ref, _ := m.Transform("reference")
	assert.True(t, ref.Reads("structure"))
	assert.False(t, ref.Pushes("structure"))

	image, _ := m.Transform("fancy-image")
	assert.True(t, image.Pushes("structure"))
	assert.True(t, image.Pushes("imports"))

	note, _ := m.Transform("note")
	assert.True(t, note.Reads("notes"))
	assert.True(t, note.Pushes("notes"))
	assert.True(t, note.Appends("notes"))
	assert.Equal(t, []string{"notes"}, note.ReadVariables())

	label, _ := m.Transform("note-label")
	assert.False(t, label.Appends("notes"))

	doc, _ := m.Transform("__document")
	assert.Equal(t, []string{"authors", "imports", "language", "notes", "subtitle", "title"}, doc.ReadVariables())
}

func TestSupports(t *testing.T) {
	m, err := Load()
	require.NoError(t, err)

	label, _ := m.Transform("note-label")
	assert.True(t, label.Supports("html"))
	assert.False(t, label.Supports("latex"))

	number, _ := m.Transform("element-number")
	assert.True(t, number.Supports("latex"))
	assert.True(t, number.Supports("html"))
}

func TestCompile_RejectsInvalidAccess(t *testing.T) {
	src := strings.Replace(manifestCUE, `notes: {type: "list", access: "append"}`, `notes: {type: "list", access: "write"}`, 1)
	require.NotEqual(t, manifestCUE, src)

	_, err := Compile(src)
	require.Error(t, err)
}

func TestCompile_RejectsConflictingVersion(t *testing.T) {
	_, err := Compile(manifestCUE + "\nmanifest: version: \"0.2\"\n")
	require.Error(t, err)
}

func TestCompile_MissingManifest(t *testing.T) {
	_, err := Compile(`other: 1`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no manifest field")
}

func TestApply_Defaults(t *testing.T) {
	m, err := Load()
	require.NoError(t, err)
	image, _ := m.Transform("fancy-image")

	el, err := image.Apply(ir.Element{Name: "fancy-image", Arguments: map[string]any{"label": "fig:a"}})
	require.NoError(t, err)

	assert.Equal(t, "fig:a", el.Arguments["label"])
	assert.Equal(t, 1.0, el.Arguments["width"])
	assert.Equal(t, "center", el.Arguments["caption-alignment"])
	assert.Equal(t, "false", el.Arguments["embed"])
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	m, err := Load()
	require.NoError(t, err)
	cite, _ := m.Transform("cite")

	args := map[string]any{}
	_, err = cite.Apply(ir.Element{Arguments: args})
	require.NoError(t, err)
	assert.Empty(t, args)
}

func TestApply_Invalid(t *testing.T) {
	m, err := Load()
	require.NoError(t, err)
	image, _ := m.Transform("fancy-image")
	table, _ := m.Transform("fancy-table")

	tests := []struct {
		name string
		tr   Transform
		args map[string]any
	}{
		{"width not a number", image, map[string]any{"width": "wide"}},
		{"embed outside enum", image, map[string]any{"embed": "maybe"}},
		{"borders outside enum", table, map[string]any{"borders": "dotted"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.tr.Apply(ir.Element{Arguments: tt.args})
			require.Error(t, err)
			assert.True(t, ir.IsCode(err, ir.ErrCodeInvalidArgument))
		})
	}
}

func TestApply_NumericStrings(t *testing.T) {
	m, err := Load()
	require.NoError(t, err)
	image, _ := m.Transform("fancy-image")

	el, err := image.Apply(ir.Element{Arguments: map[string]any{"width": "0.5"}})
	require.NoError(t, err)
	assert.Equal(t, 0.5, el.Arguments["width"])
}

func TestArgument_Kind(t *testing.T) {
	assert.Equal(t, "string", Argument{}.Kind())
	assert.Equal(t, "f64", Argument{Type: "f64"}.Kind())
	assert.Equal(t, "enum", Argument{Type: []any{"a", "b"}}.Kind())
	assert.Equal(t, []string{"a", "b"}, Argument{Type: []any{"a", "b"}}.Enum())
}
