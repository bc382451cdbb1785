// Package tasks runs tag operations over a batch of loaded audio files with progress reporting.
//
// # Core Operations
//
// [TagEngine] wraps an [editor.Coordinator] and adds three operations:
//
//  1. [TagEngine.Edit] : write one tag on every file
//     - Resolves the tag name once, before any file is touched
//     - Replaces the value, or appends to list tags
//     - Writes files in order, or across a bounded number of workers
//
//  2. [TagEngine.Import] : write a table, one row per file
//     - Rejects tables whose shape does not match the files
//     - Reports failures per cell
//
//  3. [TagEngine.SaveAll] : write changed files back to disk
//     - Worker pool throttled by a rate limiter
//     - Optional backup copy per file
//     - Results kept in file order
//
// # Progress Reporting
//
// All operations accept an optional channel of [ProgressUpdate]. Updates use select with default,
// so a slow reader misses updates instead of stalling the batch.
//
// # History
//
// [EngineOpts.OnChange] receives every value written. The CLI passes
// repositories.HistoryRecorder.Record to persist edits.
package tasks
