/*
Package frame renders shaped text into a frame of positioned, drawable
elements: glyph runs, decorative lines and link regions. A frame is backend
agnostic; consumers walk Frame.Elements and draw with whatever they have.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package frame

import (
	"image/color"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/typeshape/core/dimen"
	"github.com/npillmayer/typeshape/core/font"
)

// tracer traces with key 'typeshape.frame'.
func tracer() tracing.Trace {
	return tracing.Select("typeshape.frame")
}

// Glyph is one glyph of a text element, positioned relative to its
// predecessor's advance.
type Glyph struct {
	GID      font.GlyphIndex
	XAdvance dimen.Em
	XOffset  dimen.Em
}

// Text is a run of glyphs set in a single face. Its position within the
// frame is the leftmost point on the baseline.
type Text struct {
	Face   font.FaceID
	Size   dimen.Dimen
	Fill   color.Color
	Glyphs []Glyph
}

// Width sums up the advances of the text's glyphs.
func (t *Text) Width() dimen.Dimen {
	var w dimen.Dimen
	for _, g := range t.Glyphs {
		w += g.XAdvance.Resolve(t.Size)
	}
	return w
}

// Stroke is how a line is drawn.
type Stroke struct {
	Paint     color.Color
	Thickness dimen.Dimen
}

// Line is a stroked line from its position to position+To.
type Line struct {
	To     dimen.Point
	Stroke Stroke
}

// Link is a hyperlink region of the given extent.
type Link struct {
	URL    string
	Width  dimen.Dimen
	Height dimen.Dimen
}

// Element is a drawable item of a frame.
type Element interface {
	element()
}

func (t Text) element() {}
func (l Line) element() {}
func (l Link) element() {}

// Positioned is an element placed within a frame. Y grows downward; the
// frame's origin is its top-left corner.
type Positioned struct {
	At   dimen.Point
	Elem Element
}

// Frame is a finished piece of rendered text.
type Frame struct {
	Width    dimen.Dimen
	Height   dimen.Dimen
	Baseline dimen.Dimen // distance from the top edge
	Elements []Positioned
}

// New creates an empty frame of the given extent.
func New(w, h, baseline dimen.Dimen) *Frame {
	return &Frame{Width: w, Height: h, Baseline: baseline}
}

// Push appends an element on top of the frame's existing elements.
func (f *Frame) Push(at dimen.Point, e Element) {
	f.Elements = append(f.Elements, Positioned{At: at, Elem: e})
}

// Layer returns an insertion index for Insert, one above everything pushed
// so far.
func (f *Frame) Layer() int {
	return len(f.Elements)
}

// Insert places an element at a z-index obtained from Layer, below
// everything pushed since.
func (f *Frame) Insert(layer int, at dimen.Point, e Element) {
	f.Elements = append(f.Elements, Positioned{})
	copy(f.Elements[layer+1:], f.Elements[layer:])
	f.Elements[layer] = Positioned{At: at, Elem: e}
}
