package hal

import (
	"context"
	"fmt"
	"image"
	"time"

	"golang.org/x/sync/errgroup"
)

// PaintFunc observes each headless paint. frame is reused between calls.
type PaintFunc func(frame *image.RGBA, tick uint64)

// RunHeadless runs the app without opening a window. The app draws on its
// own goroutine while a display goroutine paints into an in-memory surface,
// at most cfg.Hz times a second and only after a present or sync. It stops
// after cfg.Ticks paints when non-zero.
func RunHeadless(ctx context.Context, cfg Config, newApp NewApp, onPaint PaintFunc) error {
	cfg = cfg.withDefaults()
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h, err := open(cfg, newApp)
	if err != nil {
		return err
	}
	defer h.close()

	repaints, err := h.p.Repaints(h.h)
	if err != nil {
		return err
	}
	done, err := h.p.Done(h.h)
	if err != nil {
		return err
	}

	sw, sh := cfg.surfaceSize()
	h.log.Info().
		Int("width", cfg.Width).
		Int("height", cfg.Height).
		Int("surface_w", sw).
		Int("surface_h", sh).
		Int("hz", cfg.Hz).
		Uint64("ticks", cfg.Ticks).
		Msg("headless run")

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	g, gctx := errgroup.WithContext(runCtx)

	g.Go(func() error { return drawLoop(gctx, h.step) })

	g.Go(func() error {
		dst := image.NewRGBA(image.Rect(0, 0, sw, sh))
		t := time.NewTicker(d)
		defer t.Stop()

		var tick uint64
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-done:
				return nil
			case <-t.C:
				if !takeRepaint(repaints) {
					continue
				}
				if err := h.p.Paint(h.h, dst); err != nil {
					return err
				}
				tick++
				if onPaint != nil {
					onPaint(dst, tick)
				}
				if cfg.Ticks > 0 && tick >= cfg.Ticks {
					stop()
					return nil
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
