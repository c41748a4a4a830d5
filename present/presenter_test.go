package present

import (
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"framefit/geom"

	"github.com/gogpu/gg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSurface(t *testing.T, p *Presenter, w, h int, q Quality) Handle {
	t.Helper()
	handle, err := p.Open(w, h, q)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close(handle) })
	return handle
}

func frontPixel(t *testing.T, p *Presenter, h Handle, x, y int) color.RGBA {
	t.Helper()
	var c color.RGBA
	require.NoError(t, p.View(h, func(frame *image.RGBA) {
		c = frame.RGBAAt(x, y)
	}))
	return c
}

func TestOpenRejectsDegenerateSize(t *testing.T) {
	p := New()
	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		_, err := p.Open(sz[0], sz[1], QualityFast)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrDegenerate), "%v", err)
	}
}

func TestLifecycle(t *testing.T) {
	p := New()
	assert.Equal(t, Idle, p.State(1))

	h, err := p.Open(32, 16, QualitySmooth)
	require.NoError(t, err)
	assert.NotZero(t, h)
	assert.Equal(t, Open, p.State(h))

	dc, err := p.DrawTarget(h)
	require.NoError(t, err)
	assert.Equal(t, 32, dc.Width())
	assert.Equal(t, 16, dc.Height())
	assert.Equal(t, HighQuality.Rasterizer, dc.RasterizerMode())

	again, err := p.DrawTarget(h)
	require.NoError(t, err)
	assert.Same(t, dc, again)

	done, err := p.Done(h)
	require.NoError(t, err)

	require.NoError(t, p.Close(h))
	assert.Equal(t, Idle, p.State(h))
	select {
	case <-done:
	default:
		t.Fatal("Done not closed after Close")
	}

	_, err = p.DrawTarget(h)
	assert.True(t, errors.Is(err, ErrUnknownHandle))
	assert.True(t, errors.Is(p.Present(h), ErrUnknownHandle))
	assert.True(t, errors.Is(p.Sync(h), ErrUnknownHandle))
	assert.True(t, errors.Is(p.Close(h), ErrUnknownHandle))
	_, _, err = p.RemapPointer(h, 1, 1)
	assert.True(t, errors.Is(err, ErrUnknownHandle))
}

func TestFastQualityProfile(t *testing.T) {
	p := New()
	h := openSurface(t, p, 8, 8, QualityFast)
	dc, err := p.DrawTarget(h)
	require.NoError(t, err)
	assert.Equal(t, LowQuality.Rasterizer, dc.RasterizerMode())
}

func TestHandlesAreDistinct(t *testing.T) {
	p := New()
	a := openSurface(t, p, 4, 4, QualityFast)
	b := openSurface(t, p, 4, 4, QualityFast)
	assert.NotEqual(t, a, b)

	require.NoError(t, p.Close(a))
	assert.Equal(t, Open, p.State(b))
}

func TestInitialFrameIsBackground(t *testing.T) {
	p := New(WithBackground(color.RGBA{R: 10, G: 20, B: 30, A: 40}))
	h := openSurface(t, p, 4, 4, QualityFast)

	assert.Equal(t, color.RGBA{R: 10, G: 20, B: 30, A: 0xff}, frontPixel(t, p, h, 2, 2))
}

func TestPresentCopiesAndClears(t *testing.T) {
	p := New()
	h := openSurface(t, p, 16, 8, QualityFast)
	dc, err := p.DrawTarget(h)
	require.NoError(t, err)

	dc.SetPixel(3, 4, gg.RGBA{R: 1, A: 1})
	require.NoError(t, p.Present(h))

	assert.Equal(t, color.RGBA{R: 0xff, A: 0xff}, frontPixel(t, p, h, 3, 4))
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, frontPixel(t, p, h, 0, 0), "transparent pixels show the background")

	for i, v := range dc.ResizeTarget().Data() {
		if v != 0 {
			t.Fatalf("write-target byte %d = %d after present, want 0", i, v)
		}
	}

	// Presenting the cleared target shows a blank frame.
	require.NoError(t, p.Present(h))
	assert.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, frontPixel(t, p, h, 3, 4))

	st, err := p.Stats(h)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), st.Frames)
}

func TestPresentFilledShape(t *testing.T) {
	p := New()
	h := openSurface(t, p, 20, 20, QualitySmooth)
	dc, err := p.DrawTarget(h)
	require.NoError(t, err)

	dc.SetRGB(0, 0, 1)
	dc.DrawRectangle(0, 0, 20, 20)
	require.NoError(t, dc.Fill())
	require.NoError(t, p.Present(h))

	assert.Equal(t, color.RGBA{B: 0xff, A: 0xff}, frontPixel(t, p, h, 10, 10))
}

func TestSyncKeepsWriteTarget(t *testing.T) {
	p := New()
	h := openSurface(t, p, 8, 8, QualityFast)
	dc, err := p.DrawTarget(h)
	require.NoError(t, err)

	dc.SetPixel(1, 1, gg.RGBA{G: 1, A: 1})
	require.NoError(t, p.Sync(h))
	assert.Equal(t, color.RGBA{G: 0xff, A: 0xff}, frontPixel(t, p, h, 1, 1))
	assert.Equal(t, gg.RGBA{G: 1, A: 1}, dc.ResizeTarget().GetPixel(1, 1))

	// The same contents can be flushed again.
	require.NoError(t, p.Present(h))
	assert.Equal(t, color.RGBA{G: 0xff, A: 0xff}, frontPixel(t, p, h, 1, 1))

	st, err := p.Stats(h)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), st.Syncs)
	assert.Equal(t, uint64(1), st.Frames)
}

func TestRepaintNotificationCoalesces(t *testing.T) {
	p := New()
	h := openSurface(t, p, 4, 4, QualityFast)
	repaints, err := p.Repaints(h)
	require.NoError(t, err)

	select {
	case <-repaints:
		t.Fatal("repaint before any present")
	default:
	}

	require.NoError(t, p.Present(h))
	require.NoError(t, p.Present(h))
	require.NoError(t, p.Sync(h))

	select {
	case <-repaints:
	default:
		t.Fatal("no repaint after present")
	}
	select {
	case <-repaints:
		t.Fatal("repaints did not coalesce")
	default:
	}
}

func TestCloseWaitsForInFlightView(t *testing.T) {
	p := New()
	h, err := p.Open(4, 4, QualityFast)
	require.NoError(t, err)

	entered := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = p.View(h, func(*image.RGBA) {
			close(entered)
			<-release
		})
	}()
	<-entered

	closed := make(chan error, 1)
	go func() { closed <- p.Close(h) }()

	require.Eventually(t, func() bool { return p.State(h) == Closing }, time.Second, time.Millisecond)
	assert.True(t, errors.Is(p.Present(h), ErrNotOpen))
	select {
	case <-closed:
		t.Fatal("Close returned while a view was in flight")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	require.NoError(t, <-closed)
	assert.Equal(t, Idle, p.State(h))
}

func TestRemapPointer(t *testing.T) {
	p := New()
	h := openSurface(t, p, 640, 480, QualityFast)

	// Before any resize the surface matches the content.
	x, y, err := p.RemapPointer(h, 10, 20)
	require.NoError(t, err)
	assert.InDelta(t, 10, x, 1e-9)
	assert.InDelta(t, 20, y, 1e-9)

	require.NoError(t, p.Resize(h, 800, 450))
	x, y, err = p.RemapPointer(h, 100, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)

	x, y, err = p.RemapPointer(h, 700, 450)
	require.NoError(t, err)
	assert.InDelta(t, 640, x, 1e-9)
	assert.InDelta(t, 480, y, 1e-9)

	// On the bar, outside the content.
	x, _, err = p.RemapPointer(h, 50, 10)
	require.NoError(t, err)
	assert.Less(t, x, 0.0)

	// Recomputed after another resize.
	require.NoError(t, p.Resize(h, 320, 240))
	x, y, err = p.RemapPointer(h, 160, 120)
	require.NoError(t, err)
	assert.InDelta(t, 320, x, 1e-9)
	assert.InDelta(t, 240, y, 1e-9)

	assert.True(t, errors.Is(p.Resize(h, 0, 240), ErrDegenerate))
}

func TestDispatchPointer(t *testing.T) {
	p := New()
	h := openSurface(t, p, 640, 480, QualityFast)
	require.NoError(t, p.Resize(h, 800, 450))

	ev := PointerEvent{Kind: PointerClick, Button: 1, X: 400, Y: 225, Time: time.Unix(5, 0)}
	require.NoError(t, p.DispatchPointer(h, &ev))
	assert.InDelta(t, 320, ev.X, 1e-9, "remapped in place")
	assert.InDelta(t, 240, ev.Y, 1e-9, "remapped in place")

	in, err := p.Input(h)
	require.NoError(t, err)
	got, ok := in.NextPointer()
	require.True(t, ok)
	assert.Equal(t, ev, got)

	_, ok = in.NextPointer()
	assert.False(t, ok)
}

func TestInputDestroyedOnClose(t *testing.T) {
	p := New()
	h, err := p.Open(4, 4, QualityFast)
	require.NoError(t, err)
	in, err := p.Input(h)
	require.NoError(t, err)

	require.True(t, in.PushKey(KeyEvent{Code: KeySpace, Press: true}))
	assert.True(t, in.IsHeld(KeySpace))

	require.NoError(t, p.Close(h))
	assert.False(t, in.IsHeld(KeySpace))
	assert.False(t, in.PushKey(KeyEvent{Code: KeyEnter, Press: true}))
	_, err = p.Input(h)
	assert.True(t, errors.Is(err, ErrUnknownHandle))
}

func TestModeOption(t *testing.T) {
	p := New(WithMode(geom.Fit | geom.Top | geom.Left))
	assert.Equal(t, geom.Fit|geom.Top|geom.Left, p.Mode())
	h := openSurface(t, p, 640, 480, QualityFast)
	require.NoError(t, p.Resize(h, 800, 450))

	x, y, err := p.RemapPointer(h, 0, 0)
	require.NoError(t, err)
	assert.InDelta(t, 0, x, 1e-9)
	assert.InDelta(t, 0, y, 1e-9)

	fit, _, err := p.Viewport(h)
	require.NoError(t, err)
	assert.InDelta(t, 0, fit.ScaledX(), 1e-9)
	assert.InDelta(t, 600, fit.ScaledW(), 1e-9)
}
