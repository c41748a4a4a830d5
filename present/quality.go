package present

import (
	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

// Quality is the caller's rendering preference, fixed at Open.
type Quality uint8

const (
	QualityFast Quality = iota
	QualitySmooth
)

func (q Quality) String() string {
	if q == QualitySmooth {
		return "smooth"
	}
	return "fast"
}

// Smooth reports whether the caller asked for smoothing.
func (q Quality) Smooth() bool { return q == QualitySmooth }

// Hints is a rendering hint set applied either to a draw target (at Open)
// or to a single paint.
type Hints struct {
	Name string
	// Interpolator scales the present-target onto the display surface.
	Interpolator draw.Interpolator
	// Linear is true when Interpolator filters (bilinear); window
	// backends map it to their own filter setting.
	Linear bool
	// Antialias applies at paint time only (window overlays). gg
	// antialiases draw-target fills under every rasterizer.
	Antialias bool
	// Rasterizer is the gg rasterization strategy for draw targets.
	Rasterizer gg.RasterizerMode
}

var (
	// HighQuality: bilinear interpolation, antialiasing on, quality-biased
	// rasterization.
	HighQuality = Hints{
		Name:         "high",
		Interpolator: draw.BiLinear,
		Linear:       true,
		Antialias:    true,
		Rasterizer:   gg.RasterizerSDF,
	}

	// LowQuality: nearest neighbor, antialiasing off, minimal rasterizer
	// overhead.
	LowQuality = Hints{
		Name:         "low",
		Interpolator: draw.NearestNeighbor,
		Linear:       false,
		Antialias:    false,
		Rasterizer:   gg.RasterizerAnalytic,
	}
)

// HintsFor returns the fixed profile associated with a draw target. Only
// Rasterizer reaches the draw target; gg antialiases with either
// rasterizer, so fast and smooth surfaces draw the same edges and differ
// in rasterization cost and in paint-time scaling.
func HintsFor(q Quality) Hints {
	if q.Smooth() {
		return HighQuality
	}
	return LowQuality
}

// ChooseHints picks the hint set for one paint. The high quality set is
// used when smoothing was requested or when the surface is larger than the
// native buffer on either axis.
func ChooseHints(smooth bool, nativeW, nativeH, surfaceW, surfaceH int) Hints {
	if smooth || surfaceW > nativeW || surfaceH > nativeH {
		return HighQuality
	}
	return LowQuality
}
