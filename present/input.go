package present

import (
	"sync"
	"time"
)

// Key is a minimal key identifier.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeySpace
	KeyBackspace
	KeyTab
	KeyDelete
	KeyHome
	KeyEnd
	KeyF1
	KeyF2
	KeyF3
)

// KeyEvent is a keyboard event. Text input arrives with Code KeyUnknown and
// a non-zero Rune.
type KeyEvent struct {
	Code  Key
	Press bool
	Rune  rune
}

// PointerKind distinguishes pointer events.
type PointerKind uint8

const (
	PointerPress PointerKind = iota + 1
	PointerRelease
	PointerClick
	PointerMove
)

func (k PointerKind) String() string {
	switch k {
	case PointerPress:
		return "press"
	case PointerRelease:
		return "release"
	case PointerClick:
		return "click"
	case PointerMove:
		return "move"
	default:
		return "unknown"
	}
}

// PointerEvent carries device-space coordinates until DispatchPointer
// rewrites them into content space.
type PointerEvent struct {
	Kind   PointerKind
	Button int
	X, Y   float64
	Time   time.Time
}

// Input is the per-surface input state. It is created at Open and
// destroyed at Close.
//
// The display side is the only producer and the drawing side the only
// consumer of each event queue.
type Input struct {
	mu     sync.RWMutex
	held   map[Key]bool
	closed bool

	keys     ring[KeyEvent]
	pointers ring[PointerEvent]
}

func newInput() *Input {
	return &Input{held: make(map[Key]bool)}
}

// PushKey records press/release state and queues the event. It returns
// false if the surface is closed or the queue is full.
func (in *Input) PushKey(ev KeyEvent) bool {
	in.mu.Lock()
	if in.closed {
		in.mu.Unlock()
		return false
	}
	if ev.Code != KeyUnknown {
		in.held[ev.Code] = ev.Press
	}
	in.mu.Unlock()
	return in.keys.tryPush(ev)
}

// IsHeld reports whether key is currently pressed.
func (in *Input) IsHeld(key Key) bool {
	in.mu.RLock()
	defer in.mu.RUnlock()
	return in.held[key]
}

// NextKey dequeues the oldest key event.
func (in *Input) NextKey() (KeyEvent, bool) { return in.keys.tryPop() }

// NextPointer dequeues the oldest content-space pointer event.
func (in *Input) NextPointer() (PointerEvent, bool) { return in.pointers.tryPop() }

func (in *Input) pushPointer(ev PointerEvent) bool {
	in.mu.RLock()
	closed := in.closed
	in.mu.RUnlock()
	if closed {
		return false
	}
	return in.pointers.tryPush(ev)
}

func (in *Input) destroy() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.closed = true
	clear(in.held)
}
