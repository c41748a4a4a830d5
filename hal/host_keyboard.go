//go:build cgo

package hal

import (
	"framefit/present"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyMap = []struct {
	key  ebiten.Key
	code present.Key
}{
	{ebiten.KeyArrowUp, present.KeyUp},
	{ebiten.KeyArrowDown, present.KeyDown},
	{ebiten.KeyArrowLeft, present.KeyLeft},
	{ebiten.KeyArrowRight, present.KeyRight},
	{ebiten.KeyEnter, present.KeyEnter},
	{ebiten.KeyEscape, present.KeyEscape},
	{ebiten.KeySpace, present.KeySpace},
	{ebiten.KeyBackspace, present.KeyBackspace},
	{ebiten.KeyTab, present.KeyTab},
	{ebiten.KeyDelete, present.KeyDelete},
	{ebiten.KeyHome, present.KeyHome},
	{ebiten.KeyEnd, present.KeyEnd},
	{ebiten.KeyF1, present.KeyF1},
	{ebiten.KeyF2, present.KeyF2},
	{ebiten.KeyF3, present.KeyF3},
}

// pollKeyboard forwards this tick's key transitions and typed runes. A full
// queue drops events.
func pollKeyboard(in *present.Input) {
	for _, r := range ebiten.AppendInputChars(nil) {
		in.PushKey(present.KeyEvent{Press: true, Rune: r})
	}
	for _, m := range keyMap {
		if inpututil.IsKeyJustPressed(m.key) {
			in.PushKey(present.KeyEvent{Code: m.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(m.key) {
			in.PushKey(present.KeyEvent{Code: m.code})
		}
	}
}
