package structure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHeading(t *testing.T, level int) Event {
	t.Helper()
	ev, err := Heading(level)
	require.NoError(t, err)
	return ev
}

func TestResolve(t *testing.T) {
	h := func(level int) Event { return mustHeading(t, level) }

	tests := []struct {
		name   string
		events []Event
		label  string
		want   string
	}{
		{
			name:   "label after chapter",
			events: []Event{h(1), Label("x")},
			label:  "x",
			want:   "1",
		},
		{
			name:   "figure in section",
			events: []Event{h(1), h(2), Figure(), Label("f")},
			label:  "f",
			want:   "1.1",
		},
		{
			name:   "second figure in chapter",
			events: []Event{h(1), Figure(), Figure(), Label("f")},
			label:  "f",
			want:   "1.2",
		},
		{
			name:   "second section",
			events: []Event{h(1), h(2), h(2), Label("x")},
			label:  "x",
			want:   "1.2",
		},
		{
			name:   "table uses table counter",
			events: []Event{h(1), Figure(), Table(), Figure(), Table(), Label("t")},
			label:  "t",
			want:   "1.2",
		},
		{
			name:   "deep heading",
			events: []Event{h(1), h(2), h(3), h(3), h(4), Label("x")},
			label:  "x",
			want:   "1.1.2.1",
		},
		{
			name:   "skipped level keeps zero out of number",
			events: []Event{h(1), h(3), Label("x")},
			label:  "x",
			want:   "1.1",
		},
		{
			name:   "section figures keep chapter prefix",
			events: []Event{h(1), h(2), h(2), Figure(), Label("f")},
			label:  "f",
			want:   "1.1",
		},
		{
			name:   "figure counter survives level two heading",
			events: []Event{h(1), Figure(), h(2), Figure(), Label("f")},
			label:  "f",
			want:   "1.2",
		},
		{
			name:   "heading after figure switches kind",
			events: []Event{h(1), Figure(), h(2), Label("s")},
			label:  "s",
			want:   "1.1",
		},
		{
			name:   "label before any structure",
			events: []Event{Label("x"), h(1)},
			label:  "x",
			want:   "",
		},
		{
			name:   "figure before any chapter",
			events: []Event{Figure(), Label("f")},
			label:  "f",
			want:   "0.1",
		},
		{
			name:   "level six heading",
			events: []Event{h(1), h(2), h(6), Label("x")},
			label:  "x",
			want:   "1.1",
		},
		{
			name:   "missing label",
			events: []Event{h(1), Figure(), Label("f")},
			label:  "nope",
			want:   "",
		},
		{
			name:   "empty log",
			events: nil,
			label:  "x",
			want:   "",
		},
		{
			name:   "first placement wins",
			events: []Event{h(1), Label("dup"), h(1), Label("dup")},
			label:  "dup",
			want:   "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(NewLog(tt.events...), tt.label)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_ChapterReset(t *testing.T) {
	log := NewLog(
		mustHeading(t, 1), Figure(), Label("a"),
		mustHeading(t, 1), Figure(), Label("b"),
	)

	assert.Equal(t, "1.1", Resolve(log, "a"))
	assert.Equal(t, "2.1", Resolve(log, "b"))
}

func TestResolve_ChapterResetsSections(t *testing.T) {
	log := NewLog(
		mustHeading(t, 1), mustHeading(t, 2), mustHeading(t, 2),
		mustHeading(t, 1), mustHeading(t, 2), Label("x"),
	)

	assert.Equal(t, "2.1", Resolve(log, "x"))
}

func TestResolve_Idempotent(t *testing.T) {
	log := NewLog(mustHeading(t, 1), mustHeading(t, 2), Table(), Label("t"))

	first := Resolve(log, "t")
	second := Resolve(log, "t")

	assert.Equal(t, first, second)
	assert.Equal(t, "1.1", first)
}

func TestResolve_NormalizesLabel(t *testing.T) {
	// "é" precomposed vs "e" + combining acute accent
	log := NewLog(mustHeading(t, 1), Label("caf\u00e9"))

	assert.Equal(t, "1", Resolve(log, "cafe\u0301"))
}

func TestResolveAll(t *testing.T) {
	log := NewLog(
		Label("early"),
		mustHeading(t, 1), Label("intro"),
		Figure(), Label("fig"),
		mustHeading(t, 2), Label("sec"),
		Table(), Label("tab"),
		mustHeading(t, 1), Label("intro"),
	)

	numbers := ResolveAll(log)

	assert.Equal(t, map[string]string{
		"early": "",
		"intro": "1",
		"fig":   "1.1",
		"sec":   "1.1",
		"tab":   "1.1",
	}, numbers)

	for label, number := range numbers {
		assert.Equal(t, number, Resolve(log, label), "label %q", label)
	}
}

func TestCounters_Apply(t *testing.T) {
	var c Counters
	assert.Equal(t, "", c.Number())

	c.Apply(mustHeading(t, 1))
	c.Apply(mustHeading(t, 2))
	c.Apply(Figure())
	c.Apply(Figure())
	c.Apply(Table())

	assert.Equal(t, [5]int{1, 1, 0, 0, 0}, c.Sections)
	assert.Equal(t, 2, c.Figures)
	assert.Equal(t, 1, c.Tables)
	assert.Equal(t, KindTable, c.Last)

	c.Apply(mustHeading(t, 1))
	assert.Equal(t, [5]int{2, 0, 0, 0, 0}, c.Sections)
	assert.Zero(t, c.Figures)
	assert.Zero(t, c.Tables)
	assert.Equal(t, "2", c.Number())

	// Labels leave counters untouched.
	before := c
	c.Apply(Label("x"))
	assert.Equal(t, before, c)
}
