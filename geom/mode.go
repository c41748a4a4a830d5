package geom

import (
	"errors"
	"fmt"
	"strings"
)

// Mode is a set of alignment and fit flags.
//
// Absence of Left/Right centers horizontally; absence of Top/Bottom centers
// vertically.
type Mode uint8

const (
	Left Mode = 1 << iota
	Right
	Top
	Bottom
	Fit
	Debug
)

// DefaultMode scales to fit and centers on both axes.
const DefaultMode = Fit

const (
	horizontalMask = Left | Right
	verticalMask   = Top | Bottom
	allFlags       = Left | Right | Top | Bottom | Fit | Debug
)

var (
	ErrConflictingAlign = errors.New("geom: conflicting alignment flags")
	ErrUnknownFlag      = errors.New("geom: unknown mode flag")
)

// HAlign is the horizontal alignment part of a Mode.
type HAlign uint8

const (
	HCenter HAlign = iota
	AlignLeft
	AlignRight
)

// VAlign is the vertical alignment part of a Mode.
type VAlign uint8

const (
	VCenter VAlign = iota
	AlignTop
	AlignBottom
)

// Align builds a Mode from one horizontal and one vertical alignment plus
// extra flags (Fit, Debug). It cannot express a conflicting pair.
func Align(h HAlign, v VAlign, flags ...Mode) Mode {
	var m Mode
	switch h {
	case AlignLeft:
		m |= Left
	case AlignRight:
		m |= Right
	}
	switch v {
	case AlignTop:
		m |= Top
	case AlignBottom:
		m |= Bottom
	}
	for _, f := range flags {
		m |= f &^ (horizontalMask | verticalMask)
	}
	return m
}

// Has reports whether all bits of flag are set.
func (m Mode) Has(flag Mode) bool { return m&flag == flag }

// Valid reports whether at most one flag per axis is set.
func (m Mode) Valid() error {
	if m&^allFlags != 0 {
		return fmt.Errorf("%w: %#x", ErrUnknownFlag, uint8(m&^allFlags))
	}
	if m&horizontalMask == horizontalMask {
		return fmt.Errorf("%w: left and right", ErrConflictingAlign)
	}
	if m&verticalMask == verticalMask {
		return fmt.Errorf("%w: top and bottom", ErrConflictingAlign)
	}
	return nil
}

var flagNames = []struct {
	flag Mode
	name string
}{
	{Fit, "fit"},
	{Top, "top"},
	{Bottom, "bottom"},
	{Left, "left"},
	{Right, "right"},
	{Debug, "debug"},
}

func (m Mode) String() string {
	var parts []string
	for _, f := range flagNames {
		if m.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}
	if len(parts) == 0 {
		return "center"
	}
	return strings.Join(parts, "|")
}

// ParseMode parses a flag list such as "fit|top|left" or "debug,fit".
// "center" and the empty string name the zero Mode.
func ParseMode(s string) (Mode, error) {
	var m Mode
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return r == '|' || r == ',' || r == '+' || r == ' '
	})
	for _, field := range fields {
		if field == "center" {
			continue
		}
		found := false
		for _, f := range flagNames {
			if f.name == field {
				m |= f.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: %q", ErrUnknownFlag, field)
		}
	}
	if err := m.Valid(); err != nil {
		return 0, err
	}
	return m, nil
}
