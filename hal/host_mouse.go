//go:build cgo

package hal

import (
	"time"

	"framefit/present"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var mouseButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonMiddle,
	ebiten.MouseButtonRight,
}

type hostMouse struct {
	x, y    int
	pressAt [3][2]int
}

// poll turns this tick's cursor movement and button transitions into
// pointer events in window coordinates. dispatch remaps them.
func (m *hostMouse) poll(now time.Time, dispatch func(*present.PointerEvent)) {
	x, y := ebiten.CursorPosition()
	emit := func(kind present.PointerKind, button int) {
		dispatch(&present.PointerEvent{Kind: kind, Button: button, X: float64(x), Y: float64(y), Time: now})
	}

	if x != m.x || y != m.y {
		m.x, m.y = x, y
		emit(present.PointerMove, 0)
	}
	for i, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			m.pressAt[i] = [2]int{x, y}
			emit(present.PointerPress, i+1)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			emit(present.PointerRelease, i+1)
			if m.pressAt[i] == [2]int{x, y} {
				emit(present.PointerClick, i+1)
			}
		}
	}
}
