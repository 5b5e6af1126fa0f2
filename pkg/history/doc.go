// Package history provides bounded, linear undo/redo over document
// snapshots.
//
// Snapshots are opaque strings; the package only compares them for equality
// and stores them by position. The log is a fixed-capacity [Ring] plus a
// cursor pointing at the live state:
//
//	entries: [s0 s1 s2 s3]
//	cursor:         ^
//	CanUndo: cursor > 0, CanRedo: cursor < len-1
//
// # Recording
//
// [Manager.Record] appends a snapshot unless it equals the one at the
// cursor. Anything after the cursor is discarded first, so a new edit after
// an undo invalidates redo. When the ring is full the oldest snapshot is
// evicted and the cursor shifts down with it.
//
// # Replaying
//
// [Manager.Undo] and [Manager.Redo] move the cursor and hand the snapshot to
// a caller-supplied apply function. While apply runs the manager is in the
// [Applying] state and ignores Record, so restoring a snapshot never records
// itself as a new edit. The state returns to [Idle] when apply returns,
// fails or panics.
//
// # Recovery
//
// A manager may be given a [Saver]. Every time the live snapshot changes it
// is handed to the saver, which is expected to persist it in the background
// without blocking the caller.
package history
