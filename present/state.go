package present

// State is the lifecycle state of a surface.
type State int32

const (
	// Idle: no buffers allocated. Unknown handles also report Idle.
	Idle State = iota
	// Open: buffers allocated, accepting draws and flushes.
	Open
	// Closing: close requested; waiting for the in-flight locked section.
	Closing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Open:
		return "open"
	case Closing:
		return "closing"
	default:
		return "unknown"
	}
}
