// Package store implements the shared variable store for the sharevar
// application.
//
// A Store binds a JSON data file to a lock strategy and exposes Read,
// Update, and List. Each operation runs a complete critical section of its
// own: acquire the lock, load and decode the full variable map, optionally
// mutate one key and rewrite the file, release the lock. Because the file
// is the only shared state and every read-modify-write happens under the
// lock, cooperating processes get linearizable single-key semantics: in
// particular, concurrent increments are never lost.
//
// # Data Model
//
// The file holds a single UTF-8 JSON object whose members are variable
// names and whose values are numbers or strings (the Value union). Empty
// file content is equivalent to the empty object. There is no versioning,
// header, or envelope.
//
// # What This Is Not
//
// The whole map is rewritten on every update, which is only sensible for
// small maps. There is no write-ahead log, no atomic-rename persistence,
// and no multi-key isolation: this is a coordination primitive for a
// handful of counters and strings, not a database.
package store
