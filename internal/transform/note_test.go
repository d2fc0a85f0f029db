package transform

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/chalmers-thesis/internal/config"
	"github.com/roach88/chalmers-thesis/internal/ir"
	"github.com/roach88/chalmers-thesis/internal/manifest"
)

func TestNote_LaTeX(t *testing.T) {
	tr := newTransformer(t, nil)

	nodes, err := tr.Transform("note", "latex", ir.Element{Name: "note", Data: "See *appendix*."})
	require.NoError(t, err)
	assert.Equal(t, `["\\footnote{",{"data":"See *appendix*.","name":"inline_content"},"}"]`, render(t, nodes))
}

func TestNote_HTML(t *testing.T) {
	tr := newTransformer(t, nil)

	nodes, err := tr.Transform("note", "html", ir.Element{Name: "note", Data: "First note"})
	require.NoError(t, err)
	require.Len(t, nodes, 2)

	assert.Equal(t, "notes", nodes[0].PushTarget())

	var payload Note
	require.NoError(t, json.Unmarshal([]byte(nodes[0].Data), &payload))
	assert.Equal(t, Note{ID: "1", Note: "First note"}, payload)

	assert.Equal(t, "note-label", nodes[1].Name)
	assert.Equal(t, "1", nodes[1].Arguments["id"])
}

func TestNote_IDCountsEarlierNotes(t *testing.T) {
	vars := &config.Variables{Notes: []string{
		notePayload(t, "1", "Same"),
		notePayload(t, "2", "Other"),
	}}
	tr := newTransformer(t, vars)

	nodes, err := tr.Transform("note", "html", ir.Element{Name: "note", Data: "Same"})
	require.NoError(t, err)
	assert.Equal(t,
		`[{"arguments":{"name":"notes"},"data":"{\"id\":\"3\",\"note\":\"Same\"}","name":"list-push"},`+
			`{"arguments":{"id":"3"},"data":"","name":"note-label"}]`,
		render(t, nodes))
}

func TestNextNoteID(t *testing.T) {
	assert.Equal(t, "1", NextNoteID(nil))
	assert.Equal(t, "3", NextNoteID([]string{"a", "b"}))
}

func notePayload(t *testing.T, id, text string) string {
	t.Helper()
	data, err := json.Marshal(Note{ID: id, Note: text})
	require.NoError(t, err)
	return string(data)
}

func TestNoteLabel(t *testing.T) {
	vars := &config.Variables{Notes: []string{
		notePayload(t, "1", "one"),
		notePayload(t, "2", "two"),
		notePayload(t, "3", "one"),
		notePayload(t, "4", "three"),
	}}
	tr := newTransformer(t, vars)

	for id, want := range map[string]string{"1": "1", "2": "2", "3": "3", "4": "4"} {
		nodes, err := tr.Transform("note-label", "html", ir.Element{
			Name:      "note-label",
			Arguments: map[string]any{"id": id},
		})
		require.NoError(t, err)
		assert.Equal(t,
			`<a id="note-backlink:`+id+`"></a><a href="#note:`+id+`"><sup>`+want+`</sup></a>`,
			nodes[0].Text)
	}
}

func TestNoteLabel_Unknown(t *testing.T) {
	tr := newTransformer(t, &config.Variables{Notes: []string{notePayload(t, "1", "one")}})

	_, err := tr.Transform("note-label", "html", ir.Element{
		Name:      "note-label",
		Arguments: map[string]any{"id": "2"},
	})
	require.Error(t, err)
	assert.True(t, ir.IsCode(err, ir.ErrCodeUnknownNote))
}

func TestParseNotes_Malformed(t *testing.T) {
	_, err := ParseNotes([]string{"not json"})
	require.Error(t, err)
	assert.True(t, ir.IsCode(err, ir.ErrCodeMalformedEntry))
}

func TestDocument_HTML(t *testing.T) {
	vars := &config.Variables{
		Notes:   []string{notePayload(t, "1", "a note"), notePayload(t, "2", "a note")},
		Authors: []string{"Ada Lovelace"},
		Consts:  map[string]string{"title": "On Engines"},
	}
	tr := newTransformer(t, vars)

	nodes, err := tr.Transform("__document", "html", ir.Element{
		Name:     "__document",
		Children: []json.RawMessage{json.RawMessage(`"<p>body</p>"`)},
	})
	require.NoError(t, err)

	out := render(t, nodes)
	assert.Contains(t, out, "<title>On Engines</title>")
	assert.Contains(t, out, "<li>Ada Lovelace</li>")
	assert.Contains(t, out, `"<p>body</p>"`)
	assert.Contains(t, out, `<li id=\"note:1\">`)
	assert.Contains(t, out, `<li id=\"note:2\">`)
	assert.Contains(t, out, `{"data":"a note","name":"inline_content"}`)
	assert.Contains(t, out, "</article></body></html>")
}

func TestDocument_MissingTitleWarns(t *testing.T) {
	var buf bytes.Buffer
	m, err := manifest.Default()
	require.NoError(t, err)
	tr := New(m, nil, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))

	nodes, err := tr.Transform("__document", "latex", ir.Element{Name: "__document"})
	require.NoError(t, err)

	out := render(t, nodes)
	assert.Contains(t, out, `\\title{Missing title}`)
	assert.Contains(t, out, `\\begin{document}`)
	assert.Contains(t, buf.String(), "missing constant")
	assert.Contains(t, buf.String(), "authors")
}
