package present

import (
	"context"
	"image"
	"image/color"
	"math/rand"
	"testing"

	"framefit/geom"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var (
	red   = color.RGBA{R: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
	black = color.RGBA{A: 0xff}
)

func fillTarget(t *testing.T, dc *gg.Context, c gg.RGBA) {
	t.Helper()
	for y := 0; y < dc.Height(); y++ {
		for x := 0; x < dc.Width(); x++ {
			dc.SetPixel(x, y, c)
		}
	}
}

func TestPaintLetterbox(t *testing.T) {
	p := New()
	h := openSurface(t, p, 4, 2, QualityFast)
	dc, err := p.DrawTarget(h)
	require.NoError(t, err)
	fillTarget(t, dc, gg.RGBA{R: 1, A: 1})
	require.NoError(t, p.Present(h))

	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	require.NoError(t, p.Paint(h, dst))

	// 4x2 into 8x8: 8x4 band from y=2 to y=6.
	for y := 0; y < 8; y++ {
		want := black
		if y >= 2 && y < 6 {
			want = red
		}
		for x := 0; x < 8; x++ {
			require.Equal(t, want, dst.RGBAAt(x, y), "pixel %d,%d", x, y)
		}
	}

	st, err := p.Stats(h)
	require.NoError(t, err)
	assert.Equal(t, 8, st.SurfaceW)
	assert.Equal(t, 8, st.SurfaceH)
}

func TestPaintPillarboxBarColor(t *testing.T) {
	bar := color.RGBA{R: 1, G: 2, B: 3, A: 0xff}
	p := New(WithBarColor(bar))
	h := openSurface(t, p, 2, 2, QualityFast)
	dc, err := p.DrawTarget(h)
	require.NoError(t, err)
	fillTarget(t, dc, gg.RGBA{B: 1, A: 1})
	require.NoError(t, p.Present(h))

	dst := image.NewRGBA(image.Rect(0, 0, 6, 2))
	require.NoError(t, p.Paint(h, dst))
	assert.Equal(t, bar, dst.RGBAAt(0, 0))
	assert.Equal(t, blue, dst.RGBAAt(3, 1))
	assert.Equal(t, bar, dst.RGBAAt(5, 1))
}

func TestPaintDebugOutline(t *testing.T) {
	p := New(WithMode(geom.Fit | geom.Debug))
	h := openSurface(t, p, 4, 2, QualityFast)
	dc, err := p.DrawTarget(h)
	require.NoError(t, err)
	fillTarget(t, dc, gg.RGBA{B: 1, A: 1})
	require.NoError(t, p.Present(h))

	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	require.NoError(t, p.Paint(h, dst))
	assert.Equal(t, red, dst.RGBAAt(0, 2), "top-left corner")
	assert.Equal(t, red, dst.RGBAAt(7, 5), "bottom-right corner")
	assert.Equal(t, blue, dst.RGBAAt(2, 4), "interior off the diagonal")
}

func TestChooseHints(t *testing.T) {
	tests := []struct {
		name   string
		smooth bool
		sw, sh int
		want   string
	}{
		{"same size fast", false, 800, 450, "low"},
		{"downscale fast", false, 400, 225, "low"},
		{"upscale width", false, 1600, 450, "high"},
		{"upscale height", false, 800, 900, "high"},
		{"smooth requested", true, 400, 225, "high"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ChooseHints(tt.smooth, 800, 450, tt.sw, tt.sh).Name)
		})
	}
	assert.True(t, HighQuality.Linear)
	assert.False(t, LowQuality.Antialias)
	assert.Equal(t, HighQuality, HintsFor(QualitySmooth))
	assert.Equal(t, LowQuality, HintsFor(QualityFast))
}

// The quality preference reaches the draw target as the rasterizer only.
func TestDrawTargetProfileIsRasterizerOnly(t *testing.T) {
	p := New()
	fast := openSurface(t, p, 8, 8, QualityFast)
	smooth := openSurface(t, p, 8, 8, QualitySmooth)

	fdc, err := p.DrawTarget(fast)
	require.NoError(t, err)
	sdc, err := p.DrawTarget(smooth)
	require.NoError(t, err)
	assert.Equal(t, HintsFor(QualityFast).Rasterizer, fdc.RasterizerMode())
	assert.Equal(t, HintsFor(QualitySmooth).Rasterizer, sdc.RasterizerMode())
	assert.NotEqual(t, fdc.RasterizerMode(), sdc.RasterizerMode())
}

func TestViewportFollowsPaintSize(t *testing.T) {
	p := New()
	h := openSurface(t, p, 800, 450, QualityFast)

	_, hints, err := p.Viewport(h)
	require.NoError(t, err)
	assert.Equal(t, "low", hints.Name)

	require.NoError(t, p.Paint(h, image.NewRGBA(image.Rect(0, 0, 1600, 1600))))
	fit, hints, err := p.Viewport(h)
	require.NoError(t, err)
	assert.Equal(t, "high", hints.Name)
	assert.InDelta(t, 1600, fit.ScaledW(), 1e-9)
	assert.InDelta(t, 900, fit.ScaledH(), 1e-9)
	assert.InDelta(t, 350, fit.ScaledY(), 1e-9)
}

func TestRemapRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	const cw, ch = 640.0, 360.0
	for i := 0; i < 1000; i++ {
		sw := cw + rng.Float64()*3000
		sh := ch + rng.Float64()*3000
		cx := rng.Float64() * cw
		cy := rng.Float64() * ch
		for _, mode := range []geom.Mode{geom.Fit, geom.Fit | geom.Top | geom.Right, geom.Fit | geom.Bottom | geom.Left} {
			dx, dy := Unmap(cx, cy, cw, ch, sw, sh, mode)
			x, y := Remap(dx, dy, cw, ch, sw, sh, mode)
			require.InDelta(t, cx, x, 1e-6)
			require.InDelta(t, cy, y, 1e-6)

			// and device -> content -> device
			rx, ry := Unmap(x, y, cw, ch, sw, sh, mode)
			require.InDelta(t, dx, rx, 1e-6)
			require.InDelta(t, dy, ry, 1e-6)
		}
	}
}

// Each frame writes its number into the corner pixels and the middle row.
// A reader holding the present-target must always see the markers agree.
func TestPresentNeverTearsUnderConcurrentReads(t *testing.T) {
	const (
		w, h   = 64, 48
		frames = 500
	)
	p := New()
	handle := openSurface(t, p, w, h, QualityFast)
	dc, err := p.DrawTarget(handle)
	require.NoError(t, err)

	marker := func(n int) gg.RGBA {
		return gg.RGBA{R: float64(n%256) / 255, G: float64(n/256%256) / 255, B: 1, A: 1}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer cancel()
		for n := 1; n <= frames; n++ {
			dc.SetPixel(0, 0, marker(n))
			for x := 1; x < w-1; x++ {
				dc.SetPixel(x, h/2, marker(n))
			}
			dc.SetPixel(w-1, h-1, marker(n))
			if err := p.Present(handle); err != nil {
				return err
			}
		}
		return nil
	})

	g.Go(func() error {
		dst := image.NewRGBA(image.Rect(0, 0, 2*w, 2*h))
		for gctx.Err() == nil {
			var first, last, mid color.RGBA
			if err := p.View(handle, func(frame *image.RGBA) {
				first = frame.RGBAAt(0, 0)
				mid = frame.RGBAAt(w/2, h/2)
				last = frame.RGBAAt(w-1, h-1)
			}); err != nil {
				return err
			}
			if first != last || first != mid {
				t.Errorf("torn frame: first=%v mid=%v last=%v", first, mid, last)
				return nil
			}
			if err := p.Paint(handle, dst); err != nil {
				return err
			}
		}
		return nil
	})

	require.NoError(t, g.Wait())

	st, err := p.Stats(handle)
	require.NoError(t, err)
	assert.Equal(t, uint64(frames), st.Frames)
}
