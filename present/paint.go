package present

import (
	"fmt"
	"image"
	"image/color"

	"framefit/geom"

	"golang.org/x/image/draw"
)

var debugColor = color.RGBA{R: 0xff, A: 0xff}

// Paint draws the last presented frame onto dst, letterboxed with the bar
// colour. The hint set is chosen for this paint alone, and dst's size
// becomes the live display-surface size used by RemapPointer.
func (p *Presenter) Paint(h Handle, dst draw.Image) error {
	s, err := p.openSurface(h)
	if err != nil {
		return err
	}
	b := dst.Bounds()
	if err := geom.CheckSize(float64(b.Dx()), float64(b.Dy())); err != nil {
		return fmt.Errorf("present: paint: %w", err)
	}
	s.setSurfaceSize(b.Dx(), b.Dy())

	fit := geom.Fit(float64(s.width), float64(s.height), float64(b.Dx()), float64(b.Dy()), float64(b.Min.X), float64(b.Min.Y), p.mode)
	hints := ChooseHints(s.quality.Smooth(), s.width, s.height, b.Dx(), b.Dy())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadState() != Open {
		return fmt.Errorf("%w: surface %d is %s", ErrNotOpen, h, s.loadState())
	}

	if hints.Name != s.lastHints {
		p.log.Debug().
			Uint32("surface", uint32(h)).
			Str("hints", hints.Name).
			Int("surface_w", b.Dx()).
			Int("surface_h", b.Dy()).
			Msg("paint quality changed")
		s.lastHints = hints.Name
	}

	draw.Draw(dst, b, p.bars, image.Point{}, draw.Src)
	hints.Interpolator.Scale(dst, fit.Rect(), s.front, s.front.Bounds(), draw.Src, nil)
	if p.mode.Has(geom.Debug) {
		outline(dst, fit.Rect(), debugColor)
	}
	return nil
}

// View runs fn with the present-target held under its lock. fn must not
// retain frame or call back into the Presenter for h.
func (p *Presenter) View(h Handle, fn func(frame *image.RGBA)) error {
	s, err := p.openSurface(h)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadState() != Open {
		return fmt.Errorf("%w: surface %d is %s", ErrNotOpen, h, s.loadState())
	}
	fn(s.front)
	return nil
}

// Viewport returns where the content lands on the live display surface and
// the hint set a paint at that size would use.
func (p *Presenter) Viewport(h Handle) (geom.Region, Hints, error) {
	s, err := p.openSurface(h)
	if err != nil {
		return geom.Region{}, Hints{}, err
	}
	sw, sh := s.surfaceSize()
	fit := geom.Fit(float64(s.width), float64(s.height), float64(sw), float64(sh), 0, 0, p.mode)
	return fit, ChooseHints(s.quality.Smooth(), s.width, s.height, sw, sh), nil
}

// outline draws r's border and its top-left to bottom-right diagonal.
func outline(dst draw.Image, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	u := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(dst.Bounds()), u, image.Point{}, draw.Src)
	}

	steps := max(r.Dx(), r.Dy())
	for i := 0; i <= steps; i++ {
		x := r.Min.X + i*(r.Dx()-1)/max(steps, 1)
		y := r.Min.Y + i*(r.Dy()-1)/max(steps, 1)
		dst.Set(x, y, c)
	}
}
