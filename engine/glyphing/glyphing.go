// Package glyphing defines the boundary to shaping engines.
//
// A shaping engine turns a run of text, set in a single face, into
// positioned glyphs in visual order. Package engine/glyphing/harfbuzz
// provides the production engine; tests substitute their own.
//
/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package glyphing

import (
	"fmt"

	"github.com/npillmayer/typeshape/core/dimen"
	"github.com/npillmayer/typeshape/core/font"
	"golang.org/x/text/language"
)

// Direction is the direction of text.
type Direction int8

// Directions of text
const (
	LeftToRight Direction = iota
	RightToLeft
	TopToBottom
	BottomToTop
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "left-to-right"
	case RightToLeft:
		return "right-to-left"
	case TopToBottom:
		return "top-to-bottom"
	case BottomToTop:
		return "bottom-to-top"
	}
	return "direction-unknown"
}

// IsHorizontal is true for the two horizontal directions.
func (d Direction) IsHorizontal() bool {
	return d == LeftToRight || d == RightToLeft
}

// IsPositive is true if the direction runs along the growing axis, i.e.
// text indices increase in visual order.
func (d Direction) IsPositive() bool {
	return d == LeftToRight || d == TopToBottom
}

// --- OpenType features -------------------------------------------------------

// Tag is a 4-byte OpenType tag, e.g. 'liga'.
type Tag uint32

// MakeTag builds a tag from its four bytes.
func MakeTag(a, b, c, d byte) Tag {
	return Tag(uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d))
}

// ParseTag builds a tag from a string, padding with spaces or truncating
// to 4 bytes as necessary.
func ParseTag(s string) Tag {
	b := []byte{' ', ' ', ' ', ' '}
	copy(b, s)
	return MakeTag(b[0], b[1], b[2], b[3])
}

func (t Tag) String() string {
	return fmt.Sprintf("%c%c%c%c", byte(t>>24), byte(t>>16), byte(t>>8), byte(t))
}

// Feature is an OpenType feature setting, applied to the whole run.
// A value of 0 disables the feature, 1 enables it; some features take
// larger selector values.
type Feature struct {
	Tag   Tag
	Value uint32
}

// --- Shaping -----------------------------------------------------------------

// RawGlyph is one glyph as produced by a shaping engine.
type RawGlyph struct {
	GID           font.GlyphIndex
	Cluster       int      // byte offset of the glyph's cluster in the text
	XAdvance      dimen.Em // horizontal advance, font-relative
	XOffset       dimen.Em // horizontal offset, font-relative
	UnsafeToBreak bool     // re-shaping may not start/stop at this glyph
}

// Params collects everything an engine needs besides the text itself.
type Params struct {
	Face      *font.Face
	Direction Direction
	Script    language.Script
	Language  language.Tag
	Features  []Feature
}

// Engine shapes a run of text set in a single face.
//
// The returned glyphs are in visual order: for right-to-left runs, cluster
// offsets decrease. Shaping is infallible; characters the face cannot map
// come back as glyph index 0 (tofu).
type Engine interface {
	Shape(text string, params Params) []RawGlyph
}
