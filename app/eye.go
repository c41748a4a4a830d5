package app

import (
	"math"
	"time"

	"framefit/geom"

	"github.com/gogpu/gg"
)

var (
	eyeBall  = gg.RGB(0.5, 0.5, 0.5)
	eyeIris  = gg.RGB(1, 0, 0)
	eyePupil = gg.RGB(0, 0, 0)
	eyeLid   = gg.Hex("#ffafaf")
	eyeLine  = gg.RGB(0, 0, 0)
)

// Eye is a circle of radius R centred on (X, Y).
type Eye struct {
	X, Y, R float64
}

// CenteredEye places an eye in the middle of a w x h canvas with a radius
// of a fifth of the shorter side.
func CenteredEye(w, h int) Eye {
	return Eye{X: float64(w / 2), Y: float64(h / 2), R: float64(min(w, h) / 5)}
}

// Region is the eye's bounding box.
func (e Eye) Region() geom.Region {
	return geom.NewRegion(e.X-e.R, e.Y-e.R, 2*e.R, 2*e.R)
}

// Lid is the blink cycle at t: 0 open, 1 shut, one close-and-open per
// second.
func Lid(t time.Time) float64 {
	lid := float64(t.UnixMilli()%1000) / 1000
	if lid < 0.5 {
		return lid * 2
	}
	return 1 - (lid-0.5)*2
}

// Draw paints the eye with its lid lowered to lid (0..1).
func (e Eye) Draw(dc *gg.Context, lid float64) error {
	lid = min(max(lid, 0), 1)
	x, y, r := e.X, e.Y, e.R

	fill := func(c gg.RGBA, radius float64) error {
		dc.SetRGBA(c.R, c.G, c.B, c.A)
		dc.DrawCircle(x, y, radius)
		return dc.Fill()
	}
	if err := fill(eyeBall, r); err != nil {
		return err
	}
	if err := fill(eyeIris, math.Floor(r/5)); err != nil {
		return err
	}
	if err := fill(eyePupil, math.Floor(r/7)); err != nil {
		return err
	}

	h := math.Floor(2 * r * lid)
	if h > 0 {
		dc.Push()
		dc.ClipRect(x-r, y-r, 2*r, h)
		err := fill(eyeLid, r)
		dc.Pop()
		if err != nil {
			return err
		}
	}

	dc.SetRGBA(eyeLine.R, eyeLine.G, eyeLine.B, eyeLine.A)
	dc.SetLineWidth(1)
	dc.DrawCircle(x, y, r)
	if err := dc.Stroke(); err != nil {
		return err
	}

	h2 := math.Abs(r - h)
	rl := math.Floor(math.Sqrt(r*r - h2*h2))
	dc.DrawLine(x-rl, y-r+h, x+rl, y-r+h)
	return dc.Stroke()
}
