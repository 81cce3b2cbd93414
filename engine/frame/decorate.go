package frame

import (
	"sort"

	"github.com/npillmayer/typeshape/core/dimen"
	"github.com/npillmayer/typeshape/core/font"
	"github.com/npillmayer/typeshape/engine/shape"
)

// decorate draws one line decoration for a run of text set in a single face.
//
// Without evasion this is a single stroked line. With evasion the glyph
// outlines are intersected with the decoration line, and the line is split
// into segments leaving a padded gap around every stretch of glyph ink.
func decorate(fr *Frame, deco shape.Decoration, fonts *font.Store, text *Text,
	pos dimen.Point, width dimen.Dimen,
) {
	face := fonts.Get(text.Face)
	if face == nil {
		return
	}
	var metrics font.LineMetrics
	switch deco.Line {
	case shape.Strikethrough:
		metrics = face.Strikethrough()
	case shape.Overline:
		metrics = face.Overline()
	default:
		metrics = face.Underline()
	}

	// Strikethrough never evades: it is supposed to cross the glyphs.
	evade := deco.Evade && deco.Line != shape.Strikethrough

	extent := deco.Extent
	offset := -metrics.Position.Resolve(text.Size)
	if deco.Offset != nil {
		offset = *deco.Offset
	}
	stroke := Stroke{
		Paint:     deco.Stroke,
		Thickness: metrics.Thickness.Resolve(text.Size),
	}
	if stroke.Paint == nil {
		stroke.Paint = text.Fill
	}
	if deco.Thickness != nil {
		stroke.Thickness = *deco.Thickness
	}

	size := text.Size.Points()
	gapPadding := 0.08 * size
	minWidth := 0.162 * size
	offsetPt := offset.Points()

	start := (pos.X - extent).Points()
	end := (pos.X + width + 2*extent).Points()

	pushSegment := func(from, to float64) {
		if to-from >= minWidth || !evade {
			origin := dimen.Point{X: dimen.FromPoints(from), Y: pos.Y + offset}
			target := dimen.Point{X: dimen.FromPoints(to - from), Y: 0}
			fr.Push(origin, Line{To: target, Stroke: stroke})
		}
	}

	if !evade {
		pushSegment(start, end)
		return
	}

	// Collect the x coordinates where glyph outlines cross the decoration
	// line. Outlines are y-down with the baseline at 0, like the offset.
	x := pos.X
	var intersections []float64
	for _, g := range text.Glyphs {
		dx := (x + g.XOffset.Resolve(text.Size)).Points()
		x += g.XAdvance.Resolve(text.Size)

		// Cheap bounding-box test before the outline intersection.
		yMin, yMax, ok := face.GlyphBounds(g.GID, text.Size)
		if !ok || offsetPt < yMin || offsetPt > yMax {
			continue
		}
		outline, ok := face.GlyphOutline(g.GID, text.Size)
		if !ok {
			continue
		}
		for _, ix := range intersectHorizontal(outline, offsetPt) {
			intersections = append(intersections, ix+dx)
		}
	}

	// Walk the intersections from left to right; consecutive pairs bracket
	// one stretch of ink each.
	sort.Float64s(intersections)
	for i := 0; i+1 < len(intersections); i += 2 {
		l := intersections[i] - gapPadding
		r := intersections[i+1] + gapPadding
		if start >= end {
			break
		}
		if start >= l {
			start = r
			continue
		}
		pushSegment(start, l)
		start = r
	}
	if start < end {
		pushSegment(start, end)
	}
}
