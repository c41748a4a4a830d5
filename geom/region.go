// Package geom computes aspect-preserving fit rectangles and axis-aligned
// overlap tests. Every function is pure; Regions are values.
package geom

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrDegenerate reports a zero or negative size handed to a fit guard.
var ErrDegenerate = errors.New("geom: degenerate size")

// Region is a rectangle with scale and alignment flags.
//
// Scaled width and height are always derived as W*Scale and H*Scale.
// Z is an ordering value the engine never interprets.
type Region struct {
	X, Y  float64
	Z     float64
	W, H  float64
	Scale float64
	Mode  Mode
}

// NewRegion returns a Region with scale 1 and DefaultMode.
func NewRegion(x, y, w, h float64) Region {
	return NewRegionMode(x, y, w, h, DefaultMode)
}

func NewRegionMode(x, y, w, h float64, mode Mode) Region {
	return Region{X: x, Y: y, W: w, H: h, Scale: 1, Mode: mode}
}

// Dup returns a copy of r.
func (r Region) Dup() Region { return r }

func (r Region) String() string {
	return fmt.Sprintf("Region %.2f x %.2f at (%.2f,%.2f)", r.W, r.H, r.X, r.Y)
}

func (r Region) scale() float64 {
	// The zero Region behaves like scale 1.
	if r.Scale == 0 {
		return 1
	}
	return r.Scale
}

func (r Region) ScaledW() float64 { return r.W * r.scale() }
func (r Region) ScaledH() float64 { return r.H * r.scale() }

// ScaledX resolves the horizontal alignment of the scaled box inside the
// Region's own unscaled bounds.
func (r Region) ScaledX() float64 {
	switch {
	case r.Mode&Left != 0:
		return r.X
	case r.Mode&Right != 0:
		return r.X + (r.W - r.ScaledW())
	}
	return r.X + r.W/2 - r.ScaledW()/2
}

// ScaledY resolves the vertical alignment of the scaled box inside the
// Region's own unscaled bounds.
func (r Region) ScaledY() float64 {
	switch {
	case r.Mode&Top != 0:
		return r.Y
	case r.Mode&Bottom != 0:
		return r.Y + (r.H - r.ScaledH())
	}
	return r.Y + r.H/2 - r.ScaledH()/2
}

// Hit reports whether (x, y) lies inside the scaled bounds. Edges count.
func (r Region) Hit(x, y float64) bool {
	return CollidesRect(x, y, 0, 0, r.ScaledX(), r.ScaledY(), r.ScaledW(), r.ScaledH())
}

// Rect returns the scaled bounds rounded to whole pixels.
func (r Region) Rect() image.Rectangle {
	x0 := int(math.Round(r.ScaledX()))
	y0 := int(math.Round(r.ScaledY()))
	x1 := int(math.Round(r.ScaledX() + r.ScaledW()))
	y1 := int(math.Round(r.ScaledY() + r.ScaledH()))
	return image.Rect(x0, y0, x1, y1)
}

// Fit places a contentW x contentH box inside the frame at (frameX, frameY).
//
// With the Fit flag the box is scaled to the largest size that preserves
// its aspect ratio; otherwise it keeps its requested size. Slack goes to
// the side named by the alignment flags, or is split evenly. Bottom wins
// over Top and Left over Right when both are set.
//
// Zero sizes are a caller error; use CheckSize to guard.
func Fit(contentW, contentH, frameW, frameH, frameX, frameY float64, mode Mode) Region {
	w, h := contentW, contentH

	if mode&Fit != 0 {
		a := frameW / frameH
		A := contentW / contentH
		if a/A > 1 {
			// frame relatively wider: left/right bars
			w = contentW * frameH / contentH
			h = frameH
		} else {
			w = frameW
			h = contentH * frameW / contentW
		}
	}

	var offX, offY float64
	switch {
	case mode&Bottom != 0:
		offY = frameH - h
	case mode&Top != 0:
		offY = 0
	default:
		offY = (frameH - h) / 2
	}
	switch {
	case mode&Left != 0:
		offX = 0
	case mode&Right != 0:
		offX = frameW - w
	default:
		offX = (frameW - w) / 2
	}

	return Region{X: frameX + offX, Y: frameY + offY, W: w, H: h, Scale: 1, Mode: mode}
}

// FitIn fits content inside the scaled bounds of another Region.
func FitIn(contentW, contentH float64, frame Region, mode Mode) Region {
	return Fit(contentW, contentH, frame.ScaledW(), frame.ScaledH(), frame.ScaledX(), frame.ScaledY(), mode)
}

// FitSize fits content in a frame at the origin using the Fit flag only.
func FitSize(contentW, contentH, frameW, frameH float64) Region {
	return Fit(contentW, contentH, frameW, frameH, 0, 0, Fit)
}

// CheckSize returns ErrDegenerate unless both dimensions are positive.
func CheckSize(w, h float64) error {
	if !(w > 0) || !(h > 0) {
		return fmt.Errorf("%w: %gx%g", ErrDegenerate, w, h)
	}
	return nil
}
