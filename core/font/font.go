// Package font provides font faces and a font store.
//
// A face is a parsed OpenType font, together with the metric information the
// shaping and decoration machinery needs: vertical metrics, decoration line
// metrics, glyph outlines and glyph bounds. Faces are registered with a Store
// and selected by (family, variant).
//
/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"os"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/typeshape/core"
	"github.com/npillmayer/typeshape/core/dimen"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer traces with key 'typeshape.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("typeshape.fonts")
}

// FaceID identifies a face within a Store.
type FaceID int32

// NoFace is the ID of the absent face.
const NoFace FaceID = -1

// GlyphIndex is a font-internal glyph number. Index 0 is the "tofu"
// (missing character) glyph in every OpenType font.
type GlyphIndex uint16

// --- Vertical metrics --------------------------------------------------------

// MetricKind selects one of a face's vertical metrics.
type MetricKind uint8

// Vertical metric kinds. Values are measured upward from the baseline.
const (
	Ascender MetricKind = iota
	CapHeight
	XHeight
	Baseline
	Descender
	FixedMetric // not face-relative; an absolute length
)

// VerticalMetric is either a face-relative vertical metric or a fixed length.
type VerticalMetric struct {
	Kind   MetricKind
	Length dimen.Dimen // used for FixedMetric only
}

// LineMetrics describes a decoration line relative to a face: the line's
// position above the baseline (negative = below) and its thickness, both
// font-relative.
type LineMetrics struct {
	Position  dimen.Em
	Thickness dimen.Em
}

// Defaults for faces without a usable post table.
const (
	defaultUnderlinePosition dimen.Em = -0.1
	defaultLineThickness     dimen.Em = 0.06
)

// --- Face --------------------------------------------------------------------

// Face is a parsed OpenType font with cached metrics.
//
// Faces are created by a Store and are not safe for concurrent use: the
// embedded sfnt buffer is reused across metric and outline queries.
type Face struct {
	ID       FaceID
	Fontname string  // full font name, e.g. "IBM Plex Serif Bold"
	Family   string  // normalized (lowercased) family name
	Variant  Variant // style, weight and stretch of this face
	Binary   []byte  // the raw OpenType data, as given to the shaping engine
	otf      *sfnt.Font
	upem     float64
	buffer   sfnt.Buffer

	ascender      dimen.Em
	capheight     dimen.Em
	xheight       dimen.Em
	descender     dimen.Em // negative, below the baseline
	underline     LineMetrics
	strikethrough LineMetrics
	overline      LineMetrics
}

// ParseOpenTypeFont parses OpenType font binary data into a Face.
// The face is not yet registered with a store and carries ID NoFace.
func ParseOpenTypeFont(data []byte) (*Face, error) {
	otf, err := sfnt.Parse(data)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "not a parsable OpenType font")
	}
	f := &Face{
		ID:      NoFace,
		Binary:  data,
		otf:     otf,
		upem:    float64(otf.UnitsPerEm()),
		Variant: NormalVariant(),
	}
	if name, err := otf.Name(&f.buffer, sfnt.NameIDFull); err == nil {
		f.Fontname = name
	}
	if name, err := otf.Name(&f.buffer, sfnt.NameIDFamily); err == nil {
		f.Family = NormalizeFamilyName(name)
	}
	f.Variant = GuessVariant(f.Fontname)
	f.readMetrics()
	tracer().P("font", f.Fontname).Debugf("parsed OpenType font, %d units/em", int(f.upem))
	return f, nil
}

// LoadOpenTypeFont loads an OpenType font from a file.
func LoadOpenTypeFont(path string) (*Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot read font file %q", path)
	}
	return ParseOpenTypeFont(data)
}

// readMetrics caches the face's vertical and decoration-line metrics,
// font-relative. Queried at ppem = units-per-em, so pixel values equal
// font design units.
func (f *Face) readMetrics() {
	ppem := fixed.I(int(f.upem))
	if m, err := f.otf.Metrics(&f.buffer, ppem, xfont.HintingNone); err == nil {
		f.ascender = f.toEm(m.Ascent)
		f.capheight = f.toEm(m.CapHeight)
		f.xheight = f.toEm(m.XHeight)
		f.descender = -f.toEm(m.Descent)
	}
	f.underline = LineMetrics{
		Position:  defaultUnderlinePosition,
		Thickness: defaultLineThickness,
	}
	if post := f.otf.PostTable(); post != nil && post.UnderlineThickness != 0 {
		f.underline = LineMetrics{
			Position:  dimen.EmFromUnits(float64(post.UnderlinePosition), f.upem),
			Thickness: dimen.EmFromUnits(float64(post.UnderlineThickness), f.upem),
		}
	}
	// sfnt does not expose the OS/2 strikeout and no table carries an
	// overline, so both are derived from the metrics above.
	f.strikethrough = LineMetrics{
		Position:  f.xheight / 2,
		Thickness: f.underline.Thickness,
	}
	f.overline = LineMetrics{
		Position:  f.ascender,
		Thickness: f.underline.Thickness,
	}
}

// toEm converts a 26.6 fixed-point value in font design units to Em.
func (f *Face) toEm(v fixed.Int26_6) dimen.Em {
	return dimen.EmFromUnits(float64(v)/64, f.upem)
}

// UnitsPerEm returns the number of font design units per em.
func (f *Face) UnitsPerEm() float64 {
	return f.upem
}

// ToEm converts a distance in this face's design units to Em.
func (f *Face) ToEm(units float64) dimen.Em {
	return dimen.EmFromUnits(units, f.upem)
}

// VerticalMetric resolves a vertical metric against a font size. The result
// is measured upward from the baseline; the descender comes out negative.
func (f *Face) VerticalMetric(m VerticalMetric, size dimen.Dimen) dimen.Dimen {
	switch m.Kind {
	case Ascender:
		return f.ascender.Resolve(size)
	case CapHeight:
		return f.capheight.Resolve(size)
	case XHeight:
		return f.xheight.Resolve(size)
	case Baseline:
		return 0
	case Descender:
		return f.descender.Resolve(size)
	case FixedMetric:
		return m.Length
	}
	return 0
}

// Underline returns the face's underline metrics.
func (f *Face) Underline() LineMetrics { return f.underline }

// Strikethrough returns the face's strikethrough metrics.
func (f *Face) Strikethrough() LineMetrics { return f.strikethrough }

// Overline returns the face's overline metrics.
func (f *Face) Overline() LineMetrics { return f.overline }

// GlyphIndex returns the glyph mapped to a rune, or 0 if the face has none.
func (f *Face) GlyphIndex(r rune) GlyphIndex {
	gid, err := f.otf.GlyphIndex(&f.buffer, r)
	if err != nil {
		return 0
	}
	return GlyphIndex(gid)
}

// --- Outlines and bounds -----------------------------------------------------

// OutlineOp is the operation of one outline segment.
type OutlineOp uint8

// Outline segment operations.
const (
	OutlineMoveTo OutlineOp = iota
	OutlineLineTo
	OutlineQuadTo
	OutlineCubeTo
)

// OutlinePoint is a point of a glyph outline, in big points, with y growing
// downward (page convention, baseline at y = 0).
type OutlinePoint struct {
	X, Y float64
}

// OutlineSegment is one segment of a glyph outline. MoveTo and LineTo use
// Args[0], QuadTo uses Args[0..1], CubeTo all three.
type OutlineSegment struct {
	Op   OutlineOp
	Args [3]OutlinePoint
}

// GlyphOutline loads a glyph's outline, scaled to the given font size.
// Coordinates are big points with y growing downward. ok is false if the
// glyph has no loadable outline.
func (f *Face) GlyphOutline(gid GlyphIndex, size dimen.Dimen) (segs []OutlineSegment, ok bool) {
	ppem := fixed.Int26_6(size.Points() * 64)
	raw, err := f.otf.LoadGlyph(&f.buffer, sfnt.GlyphIndex(gid), ppem, nil)
	if err != nil {
		tracer().Debugf("glyph %d of %s has no outline: %v", gid, f.Fontname, err)
		return nil, false
	}
	segs = make([]OutlineSegment, len(raw))
	for i, s := range raw {
		seg := OutlineSegment{Args: [3]OutlinePoint{
			fixedPoint(s.Args[0]),
			fixedPoint(s.Args[1]),
			fixedPoint(s.Args[2]),
		}}
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			seg.Op = OutlineMoveTo
		case sfnt.SegmentOpLineTo:
			seg.Op = OutlineLineTo
		case sfnt.SegmentOpQuadTo:
			seg.Op = OutlineQuadTo
		case sfnt.SegmentOpCubeTo:
			seg.Op = OutlineCubeTo
		}
		segs[i] = seg
	}
	return segs, true
}

// GlyphBounds returns the vertical extent of a glyph's ink at the given font
// size, in big points with y growing downward. ok is false for glyphs
// without bounds (or without ink).
func (f *Face) GlyphBounds(gid GlyphIndex, size dimen.Dimen) (yMin, yMax float64, ok bool) {
	ppem := fixed.Int26_6(size.Points() * 64)
	rect, _, err := f.otf.GlyphBounds(&f.buffer, sfnt.GlyphIndex(gid), ppem, xfont.HintingNone)
	if err != nil {
		return 0, 0, false
	}
	return float64(rect.Min.Y) / 64, float64(rect.Max.Y) / 64, true
}

func fixedPoint(p fixed.Point26_6) OutlinePoint {
	return OutlinePoint{
		X: float64(p.X) / 64,
		Y: float64(p.Y) / 64,
	}
}
