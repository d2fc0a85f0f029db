package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validScenario = `
name: minimal
description: one label
document:
  format: html
  elements:
    - name: label
      data: a
assertions:
  - type: label_number
    label: a
    number: ""
`

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validScenario), 0o644))

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "minimal", s.Name)
	assert.Equal(t, "html", s.Document.Format)
	require.Len(t, s.Document.Elements, 1)
	assert.Equal(t, "label", s.Document.Elements[0].Name)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_UnknownField(t *testing.T) {
	_, err := ParseScenario([]byte(validScenario + "assertion: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_Validation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing name",
			yaml: "description: d\ndocument: {format: html, elements: [x]}\nassertions: [{type: output_contains, text: x}]\n",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: n\ndocument: {format: html, elements: [x]}\nassertions: [{type: output_contains, text: x}]\n",
			want: "description is required",
		},
		{
			name: "missing format",
			yaml: "name: n\ndescription: d\ndocument: {elements: [x]}\nassertions: [{type: output_contains, text: x}]\n",
			want: "document.format is required",
		},
		{
			name: "bad format",
			yaml: "name: n\ndescription: d\ndocument: {format: pdf, elements: [x]}\nassertions: [{type: output_contains, text: x}]\n",
			want: `document.format "pdf" is not html or latex`,
		},
		{
			name: "no elements",
			yaml: "name: n\ndescription: d\ndocument: {format: html}\nassertions: [{type: output_contains, text: x}]\n",
			want: "document.elements list is required",
		},
		{
			name: "no assertions",
			yaml: "name: n\ndescription: d\ndocument: {format: html, elements: [x]}\n",
			want: "assertions list is required",
		},
		{
			name: "unknown assertion",
			yaml: "name: n\ndescription: d\ndocument: {format: html, elements: [x]}\nassertions: [{type: nope}]\n",
			want: `unknown assertion type "nope"`,
		},
		{
			name: "step_error without code",
			yaml: "name: n\ndescription: d\ndocument: {format: html, elements: [x]}\nassertions: [{type: step_error, element: cite}]\n",
			want: "element and code are required",
		},
		{
			name: "negative count",
			yaml: "name: n\ndescription: d\ndocument: {format: html, elements: [x]}\nassertions: [{type: trace_count, element: cite, count: -1}]\n",
			want: "count must be non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
