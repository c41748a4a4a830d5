//go:build cgo

package hal

import (
	"context"
	"image"
	"image/color"
	"time"

	"framefit/geom"
	"framefit/internal/buildinfo"
	"framefit/present"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/sync/errgroup"
)

var debugColor = color.RGBA{R: 0xff, A: 0xff}

// RunWindow opens a resizable desktop window showing the surface
// letterboxed to the window size, and forwards keyboard and pointer input.
// It blocks until the window closes, ctx is done or the app fails.
func RunWindow(ctx context.Context, cfg Config, newApp NewApp) error {
	cfg = cfg.withDefaults()
	h, err := open(cfg, newApp)
	if err != nil {
		return err
	}
	defer h.close()

	in, err := h.p.Input(h.h)
	if err != nil {
		return err
	}
	repaints, err := h.p.Repaints(h.h)
	if err != nil {
		return err
	}
	done, err := h.p.Done(h.h)
	if err != nil {
		return err
	}

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error { return drawLoop(gctx, h.step) })

	bars := cfg.Bars
	if bars == nil {
		bars = color.Black
	}
	game := &hostGame{host: h, ctx: gctx, in: in, repaints: repaints, done: done, bars: bars}

	sw, sh := cfg.surfaceSize()
	ebiten.SetWindowTitle(cfg.Title + " (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(sw, sh)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(60)

	h.log.Info().
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Str("mode", cfg.Mode.String()).
		Str("quality", cfg.Quality.String()).
		Msg("window open")

	runErr := ebiten.RunGame(game)
	stop()
	if err := g.Wait(); err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	return ctx.Err()
}

type hostGame struct {
	*host
	ctx      context.Context
	in       *present.Input
	repaints <-chan struct{}
	done     <-chan struct{}
	mouse    hostMouse
	bars     color.Color

	img        *ebiten.Image
	uploaded   bool
	outW, outH int
	sized      [2]int
}

func (g *hostGame) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	select {
	case <-g.done:
		return ebiten.Termination
	default:
	}
	if g.outW > 0 && g.outH > 0 && g.sized != [2]int{g.outW, g.outH} {
		if err := g.p.Resize(g.h, g.outW, g.outH); err != nil {
			return err
		}
		g.sized = [2]int{g.outW, g.outH}
	}

	pollKeyboard(g.in)
	g.mouse.poll(time.Now(), func(ev *present.PointerEvent) {
		if err := g.p.DispatchPointer(g.h, ev); err != nil {
			g.log.Debug().Err(err).Msg("dispatch pointer")
		}
	})
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	screen.Fill(g.bars)

	fit, hints, err := g.p.Viewport(g.h)
	if err != nil {
		return
	}
	if g.img == nil {
		g.img = ebiten.NewImage(g.cfg.Width, g.cfg.Height)
	}
	if g.needsUpload() {
		if err := g.p.View(g.h, func(frame *image.RGBA) {
			g.img.WritePixels(frame.Pix)
		}); err != nil {
			return
		}
		g.uploaded = true
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(fit.ScaledW()/float64(g.cfg.Width), fit.ScaledH()/float64(g.cfg.Height))
	op.GeoM.Translate(fit.ScaledX(), fit.ScaledY())
	op.Filter = ebiten.FilterNearest
	if hints.Linear {
		op.Filter = ebiten.FilterLinear
	}
	screen.DrawImage(g.img, op)

	if g.p.Mode().Has(geom.Debug) {
		x, y := float32(fit.ScaledX()), float32(fit.ScaledY())
		w, h := float32(fit.ScaledW()), float32(fit.ScaledH())
		vector.StrokeRect(screen, x, y, w, h, 1, debugColor, false)
		vector.StrokeLine(screen, x, y, x+w, y+h, 1, debugColor, hints.Antialias)
	}
}

// needsUpload reports whether the present-target changed since the last
// upload. The first frame always uploads.
func (g *hostGame) needsUpload() bool {
	return takeRepaint(g.repaints) || !g.uploaded
}

// Layout keeps the screen at the window size; letterboxing is ours.
func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.outW, g.outH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
