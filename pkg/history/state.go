package history

// State is the manager's activity.
type State int

const (
	// Idle accepts Record, Undo and Redo.
	Idle State = iota
	// Recording is held while a snapshot is appended and its hooks and
	// saver run. Record and Undo/Redo are no-ops meanwhile.
	Recording
	// Applying is held while a caller applies an undo/redo snapshot.
	// Record is ignored and further Undo/Redo calls are no-ops.
	Applying
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Applying:
		return "applying"
	default:
		return "unknown"
	}
}
