package host

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/roach88/chalmers-thesis/internal/ir"
)

func TestInvocation_MarshalJSON(t *testing.T) {
	inv := Invocation{
		Name:      "__heading",
		Arguments: map[string]any{"level": 2},
		Children:  []Invocation{Text("Intro "), {Name: "cite", Data: "knuth"}},
	}

	raw, err := json.Marshal(inv)
	require.NoError(t, err)
	assert.Equal(t,
		`{"arguments":{"level":2},"children":["Intro ",{"data":"knuth","name":"cite"}],"data":"","name":"__heading"}`,
		string(raw))

	var back Invocation
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, "__heading", back.Name)
	require.Len(t, back.Children, 2)
	assert.True(t, back.Children[0].IsText())
	assert.Equal(t, "cite", back.Children[1].Name)
}

func TestInvocation_UnmarshalJSONRejectsNameless(t *testing.T) {
	var inv Invocation
	assert.Error(t, json.Unmarshal([]byte(`{"data":"x"}`), &inv))
}

func TestInvocation_UnmarshalYAML(t *testing.T) {
	src := `
- name: __heading
  arguments: {level: 1}
  children:
    - Introduction
- name: label
  data: intro
- plain text
`
	var invs []Invocation
	require.NoError(t, yaml.Unmarshal([]byte(src), &invs))
	require.Len(t, invs, 3)

	assert.Equal(t, []Invocation{Text("Introduction")}, invs[0].Children)
	assert.Equal(t, 1, invs[0].Arguments["level"])
	assert.Equal(t, Invocation{Name: "label", Data: "intro"}, invs[1])
	assert.Equal(t, Text("plain text"), invs[2])
}

func TestInvocation_UnmarshalYAMLRejectsNameless(t *testing.T) {
	var inv Invocation
	err := yaml.Unmarshal([]byte("data: x\n"), &inv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "element without name")
}

func TestInvocation_Element(t *testing.T) {
	inv := Invocation{Name: "note", Data: "body", Arguments: map[string]any{"a": "b"}, Children: []Invocation{Text("x")}}

	el, err := inv.Element()
	require.NoError(t, err)
	assert.Equal(t, "note", el.Name)
	assert.Equal(t, "body", el.Data)
	assert.Equal(t, "b", el.Arg("a"))
	require.Len(t, el.Children, 1)
	assert.JSONEq(t, `"x"`, string(el.Children[0]))

	el.Arguments["a"] = "changed"
	assert.Equal(t, "b", inv.Arguments["a"])
}

func TestFromNode(t *testing.T) {
	tests := []struct {
		name string
		node ir.Node
		want Invocation
		ok   bool
	}{
		{"text", ir.Text("x"), Invocation{}, false},
		{"raw", ir.Raw("x"), Invocation{}, false},
		{"inline", ir.Inline("x"), Invocation{}, false},
		{"block", ir.Block("x"), Invocation{}, false},
		{"push", ir.Push("structure", "fig"), Invocation{}, false},
		{"module", ir.Module("note-label", "", map[string]any{"id": "1"}), Invocation{Name: "note-label", Arguments: map[string]any{"id": "1"}}, true},
		{"passthrough text", ir.Child(json.RawMessage(`"hi"`)), Text("hi"), true},
		{"passthrough element", ir.Child(json.RawMessage(`{"name":"label","data":"a"}`)), Invocation{Name: "label", Data: "a"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := fromNode(tt.node)
			require.NoError(t, err)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNodeInvocation(t *testing.T) {
	assert.Equal(t, Text("a"), nodeInvocation(ir.Text("a")))
	assert.Equal(t, Invocation{Name: "raw", Data: "<b>"}, nodeInvocation(ir.Raw("<b>")))
}
