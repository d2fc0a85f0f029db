package transform

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/roach88/chalmers-thesis/internal/config"
	"github.com/roach88/chalmers-thesis/internal/ir"
)

// Note is one entry of the "notes" host list.
type Note struct {
	ID   string `json:"id"`
	Note string `json:"note"`
}

// ParseNotes decodes the notes list in push order.
func ParseNotes(entries []string) ([]Note, error) {
	notes := make([]Note, len(entries))
	for i, entry := range entries {
		if err := json.Unmarshal([]byte(entry), &notes[i]); err != nil {
			return nil, ir.Errorf(ir.ErrCodeMalformedEntry, "", "notes[%d]: %v", i, err)
		}
	}
	return notes, nil
}

// NextNoteID is the id of a note placed after every entry of notes. Ids
// count up from 1 within one document compile.
func NextNoteID(notes []string) string {
	return strconv.Itoa(len(notes) + 1)
}

// NoteNumber returns the display number of the note with id: its position
// in the notes list, counting from 1. It returns 0 if the note was never
// pushed.
func NoteNumber(notes []Note, id string) int {
	for i, note := range notes {
		if note.ID == id {
			return i + 1
		}
	}
	return 0
}

// note renders a footnote. LaTeX numbers footnotes itself; HTML pushes the
// note onto the notes list and delegates the marker to note-label, which
// runs once every note is known.
func (t *Transformer) note(el ir.Element, to string) ([]ir.Node, error) {
	if to == ir.FormatLaTeX {
		return []ir.Node{
			ir.Text(`\footnote{`),
			ir.Inline(el.Data),
			ir.Text("}"),
		}, nil
	}

	id := NextNoteID(t.vars.Notes)
	payload, err := ir.MarshalCanonical(map[string]any{"id": id, "note": el.Data})
	if err != nil {
		return nil, fmt.Errorf("note payload: %w", err)
	}
	return []ir.Node{
		ir.Push(config.VarNotes, string(payload)),
		ir.Module("note-label", "", map[string]any{"id": id}),
	}, nil
}

func (t *Transformer) noteLabel(el ir.Element, _ string) ([]ir.Node, error) {
	id := el.Arg("id")
	notes, err := ParseNotes(t.vars.Notes)
	if err != nil {
		return nil, err
	}
	number := NoteNumber(notes, id)
	if number == 0 {
		return nil, ir.Errorf(ir.ErrCodeUnknownNote, el.Name, "no note with id %q", id)
	}
	return []ir.Node{ir.Text(fmt.Sprintf(
		`<a id="note-backlink:%s"></a><a href="#note:%s"><sup>%d</sup></a>`, id, id, number,
	))}, nil
}
