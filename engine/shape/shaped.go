package shape

import (
	"sort"

	"github.com/npillmayer/typeshape/core/dimen"
	"github.com/npillmayer/typeshape/core/font"
	"github.com/npillmayer/typeshape/engine/glyphing"
)

// ShapedGlyph is one glyph of a shaping result.
type ShapedGlyph struct {
	Face      font.FaceID
	GID       font.GlyphIndex
	XAdvance  dimen.Em
	XOffset   dimen.Em
	TextIndex int // byte offset of the glyph's cluster in the shaped text
	// SafeToBreak is true if splitting the shaping result before this glyph
	// yields the same glyphs as shaping the two sides separately.
	SafeToBreak bool
}

// ShapedText is the result of shaping a run of text: glyphs in visual order,
// plus the measured extent. Reshape derives new ShapedText values for
// sub-ranges; those may share the glyph slice with their parent, so callers
// must treat Glyphs() as read-only.
type ShapedText struct {
	Text     string // the shaped text, after case transformation
	Dir      glyphing.Direction
	Styles   *TextStyles
	Width    dimen.Dimen
	Height   dimen.Dimen
	Baseline dimen.Dimen // distance from the top edge, see TextStyles.TopEdge
	glyphs   []ShapedGlyph
}

// Glyphs returns the shaped glyphs in visual order. The slice may be shared
// with other ShapedText values and must not be modified.
func (st *ShapedText) Glyphs() []ShapedGlyph {
	return st.glyphs
}

// visual side
type side uint8

const (
	left side = iota
	right
)

// Reshape returns the shaping result for the byte range [from,to) of the
// shaped text. If both boundaries are safe to break at, the glyph slice is
// reused and only re-measured; otherwise the sub-range is shaped anew.
func (sh *Shaper) Reshape(st *ShapedText, from, to int) *ShapedText {
	if glyphs, ok := st.sliceSafeToBreak(from, to); ok {
		w, h, baseline := sh.measure(glyphs, st.Styles, familiesOf(st.Styles))
		return &ShapedText{
			Text:     st.Text[from:to],
			Dir:      st.Dir,
			Styles:   st.Styles,
			Width:    w,
			Height:   h,
			Baseline: baseline,
			glyphs:   glyphs,
		}
	}
	tracer().Debugf("range %d..%d not safe to break, reshaping", from, to)
	return sh.shape(st.Text[from:to], st.Styles, st.Dir)
}

// sliceSafeToBreak finds the glyph subslice representing the text range, if
// both of its boundaries are safe to break at.
func (st *ShapedText) sliceSafeToBreak(from, to int) ([]ShapedGlyph, bool) {
	start, end := from, to
	if !st.Dir.IsPositive() {
		start, end = end, start
	}
	lo, ok := st.findSafeToBreak(start, left)
	if !ok {
		return nil, false
	}
	hi, ok := st.findSafeToBreak(end, right)
	if !ok {
		return nil, false
	}
	return st.glyphs[lo:hi], true
}

// findSafeToBreak finds the offset of the glyph matching a text index that
// is most towards the given visual side, provided the break there is safe.
func (st *ShapedText) findSafeToBreak(textIndex int, towards side) (int, bool) {
	ltr := st.Dir.IsPositive()
	n := len(st.glyphs)

	// The text boundaries are always safe.
	if textIndex == 0 {
		if ltr {
			return 0, true
		}
		return n, true
	}
	if textIndex == len(st.Text) {
		if ltr {
			return n, true
		}
		return 0, true
	}

	// Text indices are monotonic in visual order: ascending for LTR,
	// descending for RTL. Find any glyph with the wanted text index.
	idx := sort.Search(n, func(i int) bool {
		if ltr {
			return st.glyphs[i].TextIndex >= textIndex
		}
		return st.glyphs[i].TextIndex <= textIndex
	})
	if idx == n || st.glyphs[idx].TextIndex != textIndex {
		return 0, false // boundary inside a cluster
	}

	// Search for the outermost glyph with the text index.
	step := 1
	if towards == left {
		step = -1
	}
	for next := idx + step; next >= 0 && next < n; next += step {
		if st.glyphs[next].TextIndex != textIndex {
			break
		}
		idx = next
	}

	// For RTL the left side of the glyph range is exclusive and the right
	// side inclusive, contrary to the usual range convention.
	if !ltr {
		idx++
	}
	if idx >= n {
		return 0, false
	}
	if !st.glyphs[idx].SafeToBreak {
		return 0, false
	}
	return idx, true
}
