// Package repositories implements SQLite persistence for the tag editor's entities.
//
// Key Implementations:
//   - [EditRepository] : edit history with lookups by file and by session
//   - [HistoryRecorder] : adapts [EditRepository] to the editor's change notifications
//
// Rows are soft-deleted via deleted_at timestamps and excluded from queries by default.
// Sequence numbers provide stable ordering independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
