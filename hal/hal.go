// Package hal hosts a presenter surface: an ebiten window on desktop builds
// or a ticker-driven headless loop. The drawing collaborator runs on its
// own goroutine and never touches the window.
package hal

import (
	"image/color"

	"framefit/geom"
	"framefit/present"

	"github.com/rs/zerolog"
)

// Step draws and presents one frame.
type Step func() error

// NewApp builds the drawing collaborator for an opened surface.
type NewApp func(p *present.Presenter, h present.Handle) (Step, error)

// Config is everything a runner needs to open and show one surface.
type Config struct {
	Width, Height int
	Quality       present.Quality
	// Mode is passed to the presenter as is. The zero Mode centres the
	// content at native size without fitting; set geom.Fit (or
	// geom.DefaultMode) to scale it.
	Mode       geom.Mode
	Background color.Color
	Bars       color.Color

	Title string
	Scale float64

	// Headless only.
	Hz    int
	Ticks uint64

	Logger zerolog.Logger
}

func (c Config) withDefaults() Config {
	if c.Hz <= 0 {
		c.Hz = 60
	}
	if c.Scale <= 0 {
		c.Scale = 1
	}
	if c.Title == "" {
		c.Title = "framefit"
	}
	return c
}

// surfaceSize is the initial display surface: the content size times Scale.
func (c Config) surfaceSize() (int, int) {
	return max(1, int(float64(c.Width)*c.Scale+0.5)), max(1, int(float64(c.Height)*c.Scale+0.5))
}

func (c Config) presenter() *present.Presenter {
	opts := []present.Option{
		present.WithLogger(c.Logger),
		present.WithMode(c.Mode),
	}
	if c.Background != nil {
		opts = append(opts, present.WithBackground(c.Background))
	}
	if c.Bars != nil {
		opts = append(opts, present.WithBarColor(c.Bars))
	}
	return present.New(opts...)
}
