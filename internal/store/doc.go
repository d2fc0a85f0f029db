// Package store provides SQLite-backed storage for the host variables of
// simulated document compiles.
//
// Each compile is a document identified by a token. Every list-push an
// element requests becomes one row in list_entries, stamped with a logical
// sequence number. Reading a list returns its entries in seq order, which
// is the order the host applied the pushes: for the "structure" list this
// is the structure log.
//
// # Ordering
//
//   - All ordering uses seq INTEGER (logical clock), never timestamps
//   - All list queries use ORDER BY seq ASC, id ASC
//   - Rows are never updated or deleted; the log is append-only
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
