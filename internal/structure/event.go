package structure

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/roach88/chalmers-thesis/internal/ir"
)

// ListName is the host list variable that carries the structure log.
const ListName = "structure"

// LabelPrefix distinguishes label entries from structural markers.
const LabelPrefix = "label/"

// Heading levels accepted by the heading element.
const (
	MinHeadingLevel = 1
	MaxHeadingLevel = 6
)

// Kind identifies the variant of an Event.
type Kind int

const (
	KindHeading Kind = iota + 1
	KindFigure
	KindTable
	KindLabel
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindFigure:
		return "figure"
	case KindTable:
		return "table"
	case KindLabel:
		return "label"
	default:
		return "unknown"
	}
}

// Event is one immutable fact in the structure log.
//
// The zero Event is invalid; construct events with Heading, Figure, Table,
// Label or ParseEntry.
type Event struct {
	kind  Kind
	level int
	name  string
}

// Heading creates a heading event. Levels outside 1..6 are rejected.
func Heading(level int) (Event, error) {
	if level < MinHeadingLevel || level > MaxHeadingLevel {
		return Event{}, ir.Errorf(ir.ErrCodeHeadingLevel, "__heading", "invalid heading level '%d'", level)
	}
	return Event{kind: KindHeading, level: level}, nil
}

// Figure creates a figure placement event.
func Figure() Event {
	return Event{kind: KindFigure}
}

// Table creates a table placement event.
func Table() Event {
	return Event{kind: KindTable}
}

// Label creates a label placement event. Names are NFC normalized so that
// composed and decomposed spellings of the same label match.
func Label(name string) Event {
	return Event{kind: KindLabel, name: norm.NFC.String(name)}
}

// Kind returns the event variant.
func (e Event) Kind() Kind { return e.kind }

// Level returns the heading level, or 0 for other kinds.
func (e Event) Level() int { return e.level }

// Name returns the label name, or "" for other kinds.
func (e Event) Name() string { return e.name }

// Entry encodes the event in the host's list representation.
func (e Event) Entry() string {
	switch e.kind {
	case KindHeading:
		return "h" + strconv.Itoa(e.level)
	case KindFigure:
		return "fig"
	case KindTable:
		return "tab"
	case KindLabel:
		return LabelPrefix + e.name
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (e Event) String() string {
	switch e.kind {
	case KindHeading:
		return "Heading(" + strconv.Itoa(e.level) + ")"
	case KindFigure:
		return "FigurePlaced"
	case KindTable:
		return "TablePlaced"
	case KindLabel:
		return "Label(" + strconv.Quote(e.name) + ")"
	default:
		return "Invalid"
	}
}

// Push returns the list-push node that appends the event to the host log.
func (e Event) Push() ir.Node {
	return ir.Push(ListName, e.Entry())
}

// ParseEntry decodes one host list entry.
func ParseEntry(entry string) (Event, error) {
	switch {
	case entry == "fig":
		return Figure(), nil
	case entry == "tab":
		return Table(), nil
	case strings.HasPrefix(entry, LabelPrefix):
		name := strings.TrimPrefix(entry, LabelPrefix)
		if name == "" {
			return Event{}, ir.Errorf(ir.ErrCodeMalformedEntry, "", "label entry without a name")
		}
		return Label(name), nil
	case len(entry) == 2 && entry[0] == 'h':
		level, err := strconv.Atoi(entry[1:])
		if err != nil {
			return Event{}, ir.Errorf(ir.ErrCodeMalformedEntry, "", "unknown structure entry %q", entry)
		}
		ev, err := Heading(level)
		if err != nil {
			return Event{}, ir.Errorf(ir.ErrCodeMalformedEntry, "", "heading entry %q out of range", entry)
		}
		return ev, nil
	default:
		return Event{}, ir.Errorf(ir.ErrCodeMalformedEntry, "", "unknown structure entry %q", entry)
	}
}
