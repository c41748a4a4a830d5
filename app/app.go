// Package app is the blinking-eye demo drawn on a framefit surface.
package app

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"framefit/hal"
	"framefit/present"

	"github.com/gogpu/gg"
	"github.com/rs/zerolog"
)

// ErrQuit is returned by a step after Escape is pressed.
var ErrQuit = errors.New("app: quit requested")

var hudColor = color.RGBA{A: 0xff}

type Config struct {
	Logger zerolog.Logger

	// HUD draws the frame rate and poke count in the top-left corner.
	HUD bool

	// Overlay, if set, draws over the eye each frame.
	Overlay func(dc *gg.Context) error
}

type eyes struct {
	cfg Config
	log zerolog.Logger

	p     *present.Presenter
	h     present.Handle
	dc    *gg.Context
	in    *present.Input
	clock *hal.FrameClock
	now   func() time.Time

	eye   Eye
	pokes int
}

// New returns a hal.NewApp that draws the eye on each step.
func New(cfg Config) hal.NewApp {
	return func(p *present.Presenter, h present.Handle) (hal.Step, error) {
		e, err := newEyes(cfg, p, h)
		if err != nil {
			return nil, err
		}
		return e.step, nil
	}
}

func newEyes(cfg Config, p *present.Presenter, h present.Handle) (*eyes, error) {
	dc, err := p.DrawTarget(h)
	if err != nil {
		return nil, err
	}
	in, err := p.Input(h)
	if err != nil {
		return nil, err
	}
	return &eyes{
		cfg:   cfg,
		log:   cfg.Logger.With().Str("component", "eyes").Logger(),
		p:     p,
		h:     h,
		dc:    dc,
		in:    in,
		clock: hal.NewFrameClock(),
		now:   time.Now,
		eye:   CenteredEye(dc.Width(), dc.Height()),
	}, nil
}

func (e *eyes) step() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = e.panicScreen(r)
		}
	}()

	e.clock.Tick()
	if err := e.handleInput(); err != nil {
		return err
	}

	lid := Lid(e.now())
	if e.in.IsHeld(present.KeySpace) {
		lid = 1
	}
	if err := e.eye.Draw(e.dc, lid); err != nil {
		return fmt.Errorf("app: draw eye: %w", err)
	}
	if e.cfg.Overlay != nil {
		if err := e.cfg.Overlay(e.dc); err != nil {
			return err
		}
	}
	if e.cfg.HUD {
		newTextBox(e.dc, 2, 0).WriteLine(fmt.Sprintf("%.0f fps  %d pokes", e.clock.FPS(), e.pokes), hudColor)
	}

	e.log.Debug().
		Uint64("frame", e.clock.Frames()).
		Float64("fps", e.clock.FPS()).
		Dur("dt", e.clock.Delta()).
		Msg("frame")
	return e.p.Present(e.h)
}

func (e *eyes) handleInput() error {
	for {
		ev, ok := e.in.NextKey()
		if !ok {
			break
		}
		if ev.Code == present.KeyEscape && ev.Press {
			return ErrQuit
		}
	}
	for {
		ev, ok := e.in.NextPointer()
		if !ok {
			return nil
		}
		if ev.Kind == present.PointerClick && ev.Button == 1 && e.eye.Region().Hit(ev.X, ev.Y) {
			e.pokes++
			e.log.Info().
				Int("pokes", e.pokes).
				Float64("x", ev.X).
				Float64("y", ev.Y).
				Msg("eye poked")
		}
	}
}
