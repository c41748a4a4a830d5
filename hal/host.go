package hal

import (
	"fmt"

	"framefit/present"

	"github.com/rs/zerolog"
)

type host struct {
	cfg  Config
	log  zerolog.Logger
	p    *present.Presenter
	h    present.Handle
	step Step
}

// open creates the presenter, opens the surface and builds the app.
func open(cfg Config, newApp NewApp) (*host, error) {
	p := cfg.presenter()
	h, err := p.Open(cfg.Width, cfg.Height, cfg.Quality)
	if err != nil {
		return nil, err
	}
	w, hh := cfg.surfaceSize()
	if err := p.Resize(h, w, hh); err != nil {
		_ = p.Close(h)
		return nil, err
	}
	step, err := newApp(p, h)
	if err != nil {
		_ = p.Close(h)
		return nil, fmt.Errorf("hal: build app: %w", err)
	}
	return &host{cfg: cfg, log: cfg.Logger, p: p, h: h, step: step}, nil
}

func (h *host) close() {
	if st, err := h.p.Stats(h.h); err == nil {
		h.log.Info().
			Uint64("frames", st.Frames).
			Uint64("syncs", st.Syncs).
			Int("surface_w", st.SurfaceW).
			Int("surface_h", st.SurfaceH).
			Msg("run finished")
	}
	if err := h.p.Close(h.h); err != nil {
		h.log.Warn().Err(err).Msg("close surface")
	}
}
