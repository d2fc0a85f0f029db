// Package structure implements the document structure log and the
// resolution engine that turns a label into its display number.
//
// The log is an ordered, append-only sequence of events (headings, figure
// placements, table placements and label placements) in document pre-order.
// The host owns and persists it between element invocations; this package
// only decodes it, appends to a value copy, and replays it.
//
// # Resolution
//
// Resolve replays the log from the beginning for every query. There is no
// running state between calls, so a resolution is a pure function of
// (log, label):
//
//	Heading(n)   reset section counters >= n, increment counter n;
//	             Heading(1) also resets the figure and table counters
//	FigurePlaced increment the figure counter
//	TablePlaced  increment the table counter
//	Label(name)  stop if name is the target
//
// The number is projected from the counters according to the kind of the
// last structural event before the label:
//
//	Figure  → "<chapter>.<figure>"
//	Table   → "<chapter>.<table>"
//	Heading → non-zero section counters joined by "."
//	None    → ""
//
// A label that never appears resolves to "". When a label name is placed
// more than once the first placement wins.
//
// # Host encoding
//
// The host stores the log as a flat list of strings:
//
//	h1 .. h6      Heading(level)
//	fig           FigurePlaced
//	tab           TablePlaced
//	label/<name>  Label(name)
package structure
