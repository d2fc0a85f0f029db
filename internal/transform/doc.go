// Package transform renders single elements for the host.
//
// Each call handles exactly one element: it validates the arguments against
// the manifest, renders markup for the requested format, and returns the
// output nodes. Structural elements (headings, labels, figures, tables)
// also return list-push nodes that append events to the structure log;
// the host applies them in order before any reader of the log runs.
//
// Readers (reference, element-number, note-label) never push. They replay
// the variables they were handed, so the same input always renders the
// same output.
package transform
