package structure

import "fmt"

// Log is the ordered structure log of one document compile.
//
// A Log is a value: Append returns a new Log and never modifies the
// receiver's events, so logs can be shared freely between readers.
type Log struct {
	events []Event
}

// NewLog creates a log from events in document order.
func NewLog(events ...Event) Log {
	return Log{events: append([]Event(nil), events...)}
}

// ParseLog decodes the host's string list representation.
func ParseLog(entries []string) (Log, error) {
	events := make([]Event, 0, len(entries))
	for i, entry := range entries {
		ev, err := ParseEntry(entry)
		if err != nil {
			return Log{}, fmt.Errorf("structure[%d]: %w", i, err)
		}
		events = append(events, ev)
	}
	return Log{events: events}, nil
}

// Append returns a log with ev added at the end.
func (l Log) Append(ev Event) Log {
	events := make([]Event, len(l.events), len(l.events)+1)
	copy(events, l.events)
	return Log{events: append(events, ev)}
}

// Events returns a copy of the events in order.
func (l Log) Events() []Event {
	return append([]Event(nil), l.events...)
}

// Len returns the number of events.
func (l Log) Len() int {
	return len(l.events)
}

// Entries encodes the log in the host's string list representation.
func (l Log) Entries() []string {
	entries := make([]string, len(l.events))
	for i, ev := range l.events {
		entries[i] = ev.Entry()
	}
	return entries
}

// Labels returns the distinct label names in order of first placement.
func (l Log) Labels() []string {
	seen := make(map[string]bool)
	var names []string
	for _, ev := range l.events {
		if ev.kind != KindLabel || seen[ev.name] {
			continue
		}
		seen[ev.name] = true
		names = append(names, ev.name)
	}
	return names
}
