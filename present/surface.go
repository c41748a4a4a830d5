package present

import (
	"fmt"
	"image"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gg"
	"golang.org/x/image/draw"
)

type surface struct {
	id      Handle
	width   int
	height  int
	quality Quality
	state   atomic.Int32

	// Owned by the drawing goroutine; never locked.
	dc *gg.Context

	// mu guards front and nothing else.
	mu        sync.Mutex
	front     *image.RGBA
	lastHints string

	// Live display-surface size packed as w<<32 | h.
	display atomic.Uint64

	frames atomic.Uint64
	syncs  atomic.Uint64

	input   *Input
	repaint chan struct{}
	done    chan struct{}
}

func newSurface(id Handle, width, height int, q Quality, bg *image.Uniform) *surface {
	pm := gg.NewPixmap(width, height)
	dc := gg.NewContext(width, height, gg.WithPixmap(pm))
	dc.SetRasterizerMode(HintsFor(q).Rasterizer)

	front := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(front, front.Bounds(), bg, image.Point{}, draw.Src)

	s := &surface{
		id:      id,
		width:   width,
		height:  height,
		quality: q,
		dc:      dc,
		front:   front,
		input:   newInput(),
		repaint: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	s.setSurfaceSize(width, height)
	s.state.Store(int32(Open))
	return s
}

func (s *surface) loadState() State { return State(s.state.Load()) }

func (s *surface) setSurfaceSize(w, h int) {
	s.display.Store(uint64(uint32(w))<<32 | uint64(uint32(h)))
}

func (s *surface) surfaceSize() (w, h int) {
	v := s.display.Load()
	return int(uint32(v >> 32)), int(uint32(v))
}

// flip overwrites the present-target with the write-target composited over
// bg. It is the only writer of front.
func (s *surface) flip(bg *image.Uniform) error {
	if err := s.dc.FlushGPU(); err != nil {
		return fmt.Errorf("present: flush draw target: %w", err)
	}
	back := rgbaView(s.dc.ResizeTarget())

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loadState() != Open {
		return fmt.Errorf("%w: surface %d is %s", ErrNotOpen, s.id, s.loadState())
	}
	r := s.front.Bounds()
	draw.Draw(s.front, r, bg, image.Point{}, draw.Src)
	draw.Draw(s.front, r, back, image.Point{}, draw.Over)
	return nil
}

func (s *surface) notify() {
	select {
	case s.repaint <- struct{}{}:
	default:
	}
}

// release runs in the Closing state. Taking mu waits for any present or
// paint that already holds the present-target.
func (s *surface) release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.front = nil
	s.input.destroy()
	_ = s.dc.Close()
	s.state.Store(int32(Idle))
	close(s.done)
}
