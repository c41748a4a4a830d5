package app

import (
	"errors"
	"fmt"
	"image/color"
	"runtime/debug"
	"strings"

	"github.com/gogpu/gg"
)

// ErrPanic wraps a recovered panic from a drawing step.
var ErrPanic = errors.New("app: panic in step")

var panicFG = color.RGBA{A: 0xff}

// panicScreen replaces the write-target with the panic message and stack,
// syncs it so it stays on screen, and returns the panic as an error.
func (e *eyes) panicScreen(v any) error {
	stack := debug.Stack()
	e.log.Error().
		Interface("panic", v).
		Bytes("stack", stack).
		Msg("step panicked")

	e.dc.ClearWithColor(gg.RGB(1, 1, 1))

	lines := []string{
		"framefit panic:",
		fmt.Sprintf("panic: %v", v),
		"stack:",
	}
	for _, line := range strings.Split(string(stack), "\n") {
		if line != "" {
			lines = append(lines, strings.ReplaceAll(line, "\t", "  "))
		}
	}

	box := newTextBox(e.dc, 0, 0)
	for _, line := range lines {
		if !box.WriteLine(line, panicFG) {
			break
		}
	}

	if err := e.p.Sync(e.h); err != nil {
		e.log.Warn().Err(err).Msg("sync panic screen")
	}
	return fmt.Errorf("%w: %v", ErrPanic, v)
}
