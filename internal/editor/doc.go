// Package editor writes typed tag values into metadata targets, one at a time or in batches.
//
// # Targets
//
// A [Target] is a borrowed, mutable metadata record of one audio file. It declares the shape it
// stores for every tag it supports; shapes may differ from the catalog (ID3v2 keeps a list of
// comments) and from other targets (ID3v1 supports only a few fields). [Record] is the in-memory
// implementation.
//
// # Applying values
//
// [Apply] replaces a field. A scalar written into a list-shaped field becomes a one-element list;
// any other mismatch fails with [ErrShapeMismatch]. [Append] is the explicit list-merging
// alternative.
//
// # Batches
//
// [Coordinator] applies one value to many targets ([Coordinator.ApplyToAll],
// [Coordinator.ApplyToAllParallel]) or a whole import [Table] ([Coordinator.ApplyTable]).
// Failures are isolated per target and per cell and collected into a [Report]. The only batch-wide
// failure is a table that does not line up with its targets, which is rejected before anything is
// written.
package editor
