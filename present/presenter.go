// Package present owns double-buffered raster surfaces: a write-target the
// drawing goroutine renders into and a present-target the display goroutine
// reads, swapped under a single lock scoped to the present-target.
package present

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"sync/atomic"

	"framefit/geom"

	"github.com/gogpu/gg"
	"github.com/rs/zerolog"
)

var (
	ErrUnknownHandle = errors.New("present: unknown surface handle")
	ErrNotOpen       = errors.New("present: surface not open")
	// ErrDegenerate is geom.ErrDegenerate, so either sentinel matches.
	ErrDegenerate = geom.ErrDegenerate
)

// Handle identifies a surface. The zero Handle is never issued.
type Handle uint32

// Option configures a Presenter.
type Option func(*Presenter)

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Presenter) { p.log = l }
}

// WithBackground sets the opaque colour the write-target is composited over
// on every present. The default is white.
func WithBackground(c color.Color) Option {
	return func(p *Presenter) { p.background = image.NewUniform(opaque(c)) }
}

// WithBarColor sets the colour of letterbox bars at paint time. The
// default is black.
func WithBarColor(c color.Color) Option {
	return func(p *Presenter) { p.bars = image.NewUniform(c) }
}

// WithMode sets the fit and alignment mode used to place content on the
// display surface. The default is geom.DefaultMode. Without geom.Fit the
// content is shown at native size, aligned inside the surface.
func WithMode(m geom.Mode) Option {
	return func(p *Presenter) { p.mode = m }
}

// Presenter resolves handles to surfaces.
type Presenter struct {
	log        zerolog.Logger
	background *image.Uniform
	bars       *image.Uniform
	mode       geom.Mode

	mu       sync.RWMutex
	surfaces map[Handle]*surface
	next     atomic.Uint32
}

// New returns a Presenter with no open surfaces.
func New(opts ...Option) *Presenter {
	p := &Presenter{
		log:        zerolog.Nop(),
		background: image.NewUniform(color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}),
		bars:       image.NewUniform(color.RGBA{A: 0xff}),
		mode:       geom.DefaultMode,
		surfaces:   make(map[Handle]*surface),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mode returns the fit mode used for paints and pointer remapping.
func (p *Presenter) Mode() geom.Mode { return p.mode }

// Open allocates a width x height surface. The quality preference fixes the
// rasterizer profile of the draw target and biases every paint toward
// smooth scaling.
func (p *Presenter) Open(width, height int, q Quality) (Handle, error) {
	if err := geom.CheckSize(float64(width), float64(height)); err != nil {
		return 0, fmt.Errorf("present: open: %w", err)
	}

	h := Handle(p.next.Add(1))
	s := newSurface(h, width, height, q, p.background)

	p.mu.Lock()
	p.surfaces[h] = s
	p.mu.Unlock()

	p.log.Info().
		Uint32("surface", uint32(h)).
		Int("width", width).
		Int("height", height).
		Str("quality", q.String()).
		Str("mode", p.mode.String()).
		Msg("surface opened")
	return h, nil
}

func (p *Presenter) lookup(h Handle) (*surface, error) {
	p.mu.RLock()
	s, ok := p.surfaces[h]
	p.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	return s, nil
}

func (p *Presenter) openSurface(h Handle) (*surface, error) {
	s, err := p.lookup(h)
	if err != nil {
		return nil, err
	}
	if st := s.loadState(); st != Open {
		return nil, fmt.Errorf("%w: surface %d is %s", ErrNotOpen, h, st)
	}
	return s, nil
}

// State reports the lifecycle state of h. Unknown handles are Idle.
func (p *Presenter) State(h Handle) State {
	s, err := p.lookup(h)
	if err != nil {
		return Idle
	}
	return s.loadState()
}

// DrawTarget returns the draw context bound to the write-target. It is
// owned by the drawing goroutine and must not be used after Close.
func (p *Presenter) DrawTarget(h Handle) (*gg.Context, error) {
	s, err := p.openSurface(h)
	if err != nil {
		return nil, err
	}
	return s.dc, nil
}

// Present makes the write-target visible and clears it for the next frame.
//
// The copy happens under the present-target lock, so a concurrent Paint or
// View observes either the previous frame or this one in full. The repaint
// notification never blocks.
func (p *Presenter) Present(h Handle) error {
	s, err := p.openSurface(h)
	if err != nil {
		return err
	}
	if err := s.flip(p.background); err != nil {
		return err
	}
	s.frames.Add(1)
	s.notify()
	s.dc.Clear()
	return nil
}

// Sync is Present without clearing the write-target.
func (p *Presenter) Sync(h Handle) error {
	s, err := p.openSurface(h)
	if err != nil {
		return err
	}
	if err := s.flip(p.background); err != nil {
		return err
	}
	s.syncs.Add(1)
	s.notify()
	return nil
}

// Close releases the surface once any in-flight present or paint has
// finished. The handle is invalid afterwards.
func (p *Presenter) Close(h Handle) error {
	s, err := p.lookup(h)
	if err != nil {
		return err
	}
	if !s.state.CompareAndSwap(int32(Open), int32(Closing)) {
		return fmt.Errorf("%w: surface %d is %s", ErrNotOpen, h, s.loadState())
	}

	s.release()

	p.mu.Lock()
	delete(p.surfaces, h)
	p.mu.Unlock()

	p.log.Info().
		Uint32("surface", uint32(h)).
		Uint64("frames", s.frames.Load()).
		Uint64("syncs", s.syncs.Load()).
		Msg("surface closed")
	return nil
}

// Resize records the live size of the display surface showing h.
func (p *Presenter) Resize(h Handle, surfaceW, surfaceH int) error {
	s, err := p.openSurface(h)
	if err != nil {
		return err
	}
	if err := geom.CheckSize(float64(surfaceW), float64(surfaceH)); err != nil {
		return fmt.Errorf("present: resize: %w", err)
	}
	s.setSurfaceSize(surfaceW, surfaceH)
	return nil
}

// RemapPointer converts a device-space point into content space using the
// fit for the current display-surface size. The fit is recomputed on every
// call because the surface may be resized between events.
func (p *Presenter) RemapPointer(h Handle, deviceX, deviceY float64) (x, y float64, err error) {
	s, err := p.openSurface(h)
	if err != nil {
		return 0, 0, err
	}
	sw, sh := s.surfaceSize()
	if err := geom.CheckSize(float64(sw), float64(sh)); err != nil {
		return 0, 0, fmt.Errorf("present: remap: %w", err)
	}
	x, y = Remap(deviceX, deviceY, float64(s.width), float64(s.height), float64(sw), float64(sh), p.mode)
	return x, y, nil
}

// DispatchPointer rewrites ev into content space and queues it on the
// surface's input state.
func (p *Presenter) DispatchPointer(h Handle, ev *PointerEvent) error {
	x, y, err := p.RemapPointer(h, ev.X, ev.Y)
	if err != nil {
		return err
	}
	ev.X, ev.Y = x, y

	s, err := p.openSurface(h)
	if err != nil {
		return err
	}
	if !s.input.pushPointer(*ev) {
		p.log.Debug().Uint32("surface", uint32(h)).Msg("pointer event dropped")
	}
	return nil
}

// Input returns the input state owned by h.
func (p *Presenter) Input(h Handle) (*Input, error) {
	s, err := p.openSurface(h)
	if err != nil {
		return nil, err
	}
	return s.input, nil
}

// Repaints returns a channel that receives after each present or sync.
// Notifications coalesce: a slow reader sees one pending signal.
func (p *Presenter) Repaints(h Handle) (<-chan struct{}, error) {
	s, err := p.openSurface(h)
	if err != nil {
		return nil, err
	}
	return s.repaint, nil
}

// Done returns a channel closed when h is closed.
func (p *Presenter) Done(h Handle) (<-chan struct{}, error) {
	s, err := p.lookup(h)
	if err != nil {
		return nil, err
	}
	return s.done, nil
}

// Stats is a snapshot of surface counters.
type Stats struct {
	Width, Height int
	Quality       Quality
	State         State
	Frames        uint64
	Syncs         uint64
	SurfaceW      int
	SurfaceH      int
}

func (p *Presenter) Stats(h Handle) (Stats, error) {
	s, err := p.lookup(h)
	if err != nil {
		return Stats{}, err
	}
	sw, sh := s.surfaceSize()
	return Stats{
		Width:    s.width,
		Height:   s.height,
		Quality:  s.quality,
		State:    s.loadState(),
		Frames:   s.frames.Load(),
		Syncs:    s.syncs.Load(),
		SurfaceW: sw,
		SurfaceH: sh,
	}, nil
}

func opaque(c color.Color) color.RGBA {
	r, g, b, _ := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}
}

// rgbaView exposes a gg pixmap as an image.RGBA without copying.
func rgbaView(pm *gg.Pixmap) *image.RGBA {
	return &image.RGBA{
		Pix:    pm.Data(),
		Stride: pm.Width() * 4,
		Rect:   image.Rect(0, 0, pm.Width(), pm.Height()),
	}
}
