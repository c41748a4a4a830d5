package app

import (
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/gogpu/gg"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

var hudFont tinyfont.Fonter = &proggy.TinySZ8pt7b

// ggDisplay lets tinyfont draw into a gg context.
type ggDisplay struct {
	dc *gg.Context
}

var _ drivers.Displayer = ggDisplay{}

func (d ggDisplay) Size() (x, y int16) {
	return int16(d.dc.Width()), int16(d.dc.Height())
}

func (d ggDisplay) SetPixel(x, y int16, c color.RGBA) {
	if x < 0 || y < 0 || int(x) >= d.dc.Width() || int(y) >= d.dc.Height() {
		return
	}
	d.dc.SetPixel(int(x), int(y), gg.FromColor(c))
}

func (d ggDisplay) Display() error { return nil }

// textBox lays out monospaced lines top to bottom, wrapping at the right
// edge and stopping at the bottom one.
type textBox struct {
	d          ggDisplay
	font       tinyfont.Fonter
	x, y       int16
	lineHeight int16
	charWidth  int16
}

func newTextBox(dc *gg.Context, x, y int16) *textBox {
	_, w := tinyfont.LineWidth(hudFont, "0")
	return &textBox{
		d:          ggDisplay{dc: dc},
		font:       hudFont,
		x:          x,
		y:          y,
		lineHeight: int16(hudFont.GetYAdvance()),
		charWidth:  int16(w),
	}
}

// full reports whether another line would run off the bottom.
func (b *textBox) full() bool {
	_, h := b.d.Size()
	return b.lineHeight <= 0 || b.y+b.lineHeight > h
}

// WriteLine writes s, wrapped, and returns false once the box is full.
func (b *textBox) WriteLine(s string, c color.RGBA) bool {
	sw, _ := b.d.Size()
	cols := int16(1)
	if b.charWidth > 0 {
		cols = max((sw-b.x)/b.charWidth, 1)
	}
	for {
		if b.full() {
			return false
		}
		chunk, rest := takeRunes(s, cols)
		b.y += b.lineHeight
		tinyfont.WriteLine(b.d, b.font, b.x, b.y, chunk, c)
		s = strings.TrimLeft(rest, " ")
		if s == "" {
			return true
		}
	}
}

func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	var i int
	for count := int16(0); i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i], s[i:]
}
