// Package host is a reference ModMark host for the chalmers-thesis plugin.
//
// It compiles one document: a tree of element invocations evaluated in the
// order a ModMark host would use. The host variables the plugin pushes to
// (structure, notes, imports) are persisted in the store, so every compile
// can be replayed later.
//
// Scheduling:
//
// Parents run before their children; a parent's output passes its children
// through and the host expands them in place. Among pending invocations the
// host always runs the first one, in document order, that is ready. An
// invocation is ready when no other pending invocation pushes to a variable
// it reads. This guarantees every reader of "structure" sees the complete
// log, which is what makes forward references resolve.
//
// A variable declared with "append" access (notes) is read and pushed by the
// same invocation. Such an invocation only waits for pushers ahead of it, so
// each one sees exactly the entries placed before it and can number itself.
//
// Determinism:
//
// Every step and every applied push is stamped from a logical clock. No wall
// clock is consulted and nothing runs concurrently, so the same document
// with the same clock and token produces the same trace and the same store
// rows.
package host
