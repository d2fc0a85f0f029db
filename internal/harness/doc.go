// Package harness runs document scenarios against the reference host.
//
// A scenario is a YAML file describing one document compile: its format,
// constants and element tree, plus assertions about the result. Each
// scenario runs in a fresh in-memory store with a deterministic clock and
// a fixed document token, so its trace is byte-for-byte reproducible and
// can be compared against a golden file.
//
// Assertion types:
//
//   - label_number:    a label resolves to the given number
//   - trace_order:     elements were evaluated in the given relative order
//   - trace_count:     an element was evaluated exactly N times
//   - step_error:      an element's evaluation failed with the given code
//   - output_contains: the rendered output contains a string
//   - list_entries:    a host list holds exactly the given entries
package harness
