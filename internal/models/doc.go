// Package models defines the persistent entities of the tag editor.
//
//   - [Edit] : one tag value written to one file, grouped by session
//
// Persistent entities implement the Model interface providing IDs, timestamps and validation.
// The Repository[T] interface defines the data access operations for a model type.
package models
