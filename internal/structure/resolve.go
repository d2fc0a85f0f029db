package structure

import (
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// sectionDepth is the number of section levels that are numbered.
// Level 6 headings are valid but carry no counter of their own.
const sectionDepth = 5

// Counters is the state derived by folding the log up to some point.
// It is never persisted; every resolution starts from a zero Counters.
type Counters struct {
	Sections [sectionDepth]int
	Figures  int
	Tables   int
	Last     Kind // KindHeading, KindFigure, KindTable, or 0 for none
}

// Apply advances the counters by one event. Label events do not change them.
func (c *Counters) Apply(ev Event) {
	switch ev.kind {
	case KindHeading:
		if ev.level <= sectionDepth {
			for i := ev.level; i < sectionDepth; i++ {
				c.Sections[i] = 0
			}
			c.Sections[ev.level-1]++
		}
		// Figures and tables are numbered per chapter.
		if ev.level == 1 {
			c.Figures = 0
			c.Tables = 0
		}
		c.Last = KindHeading
	case KindFigure:
		c.Figures++
		c.Last = KindFigure
	case KindTable:
		c.Tables++
		c.Last = KindTable
	}
}

// Number projects the counters to the display number of a label placed now.
func (c *Counters) Number() string {
	switch c.Last {
	case KindFigure:
		return strconv.Itoa(c.Sections[0]) + "." + strconv.Itoa(c.Figures)
	case KindTable:
		return strconv.Itoa(c.Sections[0]) + "." + strconv.Itoa(c.Tables)
	case KindHeading:
		parts := make([]string, 0, sectionDepth)
		for _, n := range c.Sections {
			if n != 0 {
				parts = append(parts, strconv.Itoa(n))
			}
		}
		return strings.Join(parts, ".")
	default:
		return ""
	}
}

// Resolve replays the log and returns the display number of label.
// An unknown label resolves to "".
func Resolve(log Log, label string) string {
	target := norm.NFC.String(label)
	var c Counters
	for _, ev := range log.events {
		if ev.kind == KindLabel {
			if ev.name == target {
				return c.Number()
			}
			continue
		}
		c.Apply(ev)
	}
	return ""
}

// ResolveAll returns the display number of every label in the log.
// The first placement of a repeated name wins, matching Resolve.
func ResolveAll(log Log) map[string]string {
	numbers := make(map[string]string)
	var c Counters
	for _, ev := range log.events {
		if ev.kind != KindLabel {
			c.Apply(ev)
			continue
		}
		if _, ok := numbers[ev.name]; !ok {
			numbers[ev.name] = c.Number()
		}
	}
	return numbers
}
