package shape

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typeshape/core/dimen"
	"github.com/npillmayer/typeshape/core/font"
	"github.com/npillmayer/typeshape/engine/glyphing"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/font/gofont/goregular"
)

// fakeEngine is a deterministic glyphing engine for testing the segment
// shaper: one glyph per rune, the glyph index is the rune value (or tofu, if
// the face's coverage says so), advances are 0.5em. Output is in visual
// order, as the engine contract demands.
type fakeEngine struct {
	covers map[font.FaceID]func(rune) bool // nil function: covers everything
	unsafe func(off int) bool              // marks unsafe-to-break clusters
}

func (fe *fakeEngine) Shape(text string, params glyphing.Params) []glyphing.RawGlyph {
	covers := fe.covers[params.Face.ID]
	var glyphs []glyphing.RawGlyph
	for off, r := range text {
		var gid font.GlyphIndex
		if covers == nil || covers(r) {
			gid = font.GlyphIndex(r)
		}
		g := glyphing.RawGlyph{GID: gid, Cluster: off, XAdvance: 0.5}
		if fe.unsafe != nil && fe.unsafe(off) {
			g.UnsafeToBreak = true
		}
		glyphs = append(glyphs, g)
	}
	if !params.Direction.IsPositive() {
		for i, j := 0, len(glyphs)-1; i < j; i, j = i+1, j-1 {
			glyphs[i], glyphs[j] = glyphs[j], glyphs[i]
		}
	}
	return glyphs
}

func ascii(r rune) bool { return r < 128 }

// newTestShaper builds a shaper over two registered families: "alpha"
// covers ASCII only, "omega" covers everything.
func newTestShaper(t *testing.T, unsafe func(int) bool) (*Shaper, font.FaceID, font.FaceID) {
	store := font.NewStore()
	alpha, err := store.AddNamed("alpha", font.NormalVariant(), goregular.TTF)
	assert.NoError(t, err)
	omega, err := store.AddNamed("omega", font.NormalVariant(), goregular.TTF)
	assert.NoError(t, err)
	engine := &fakeEngine{
		covers: map[font.FaceID]func(rune) bool{alpha: ascii},
		unsafe: unsafe,
	}
	return NewShaper(store, engine), alpha, omega
}

func testStyles(families ...string) *TextStyles {
	st := DefaultStyles()
	st.Family = nil
	for _, f := range families {
		st.Family = append(st.Family, NamedFamily(f))
	}
	st.Fallback = false
	st.Size = 10 * dimen.BP // keeps resolved advances free of rounding
	return st
}

func TestShapeSimple(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shape")
	defer teardown()
	//
	sh, alpha, _ := newTestShaper(t, nil)
	st := testStyles("alpha")
	shaped := sh.Shape("Hi", st, glyphing.LeftToRight)
	glyphs := shaped.Glyphs()
	if !assert.Len(t, glyphs, 2) {
		t.FailNow()
	}
	assert.Equal(t, alpha, glyphs[0].Face)
	assert.Equal(t, font.GlyphIndex('H'), glyphs[0].GID)
	assert.Equal(t, 0, glyphs[0].TextIndex)
	assert.Equal(t, 1, glyphs[1].TextIndex)
	assert.True(t, glyphs[1].SafeToBreak)
	assert.Equal(t, dimen.Em(1.0).Resolve(st.Size), shaped.Width, "2 glyphs x 0.5em")
	assert.True(t, shaped.Height > 0)
	assert.Equal(t, shaped.Baseline, shaped.Height, "cap-height to baseline: all above the baseline")
}

func TestShapeFallbackFace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shape")
	defer teardown()
	//
	sh, alpha, omega := newTestShaper(t, nil)
	shaped := sh.Shape("a☺b", testStyles("alpha", "omega"), glyphing.LeftToRight)
	glyphs := shaped.Glyphs()
	if !assert.Len(t, glyphs, 3) {
		t.FailNow()
	}
	// '☺' is not covered by alpha and has to come from omega.
	assert.Equal(t, alpha, glyphs[0].Face)
	assert.Equal(t, omega, glyphs[1].Face)
	assert.Equal(t, alpha, glyphs[2].Face)
	assert.Equal(t, []int{0, 1, 4}, textIndices(glyphs), "'☺' is 3 bytes long")
	for i, g := range glyphs {
		assert.NotEqual(t, font.GlyphIndex(0), g.GID, "glyph #%d must not be tofu", i)
	}
}

func TestShapeTofu(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shape")
	defer teardown()
	//
	sh, alpha, _ := newTestShaper(t, nil)
	shaped := sh.Shape("a☺b", testStyles("alpha"), glyphing.LeftToRight)
	glyphs := shaped.Glyphs()
	if !assert.Len(t, glyphs, 3) {
		t.FailNow()
	}
	// No family maps '☺': it stays tofu, shaped with the first face.
	assert.Equal(t, font.GlyphIndex(0), glyphs[1].GID)
	assert.Equal(t, alpha, glyphs[1].Face)
	assert.Equal(t, 1, glyphs[1].TextIndex)
}

func TestShapeRTLFallback(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shape")
	defer teardown()
	//
	sh, alpha, omega := newTestShaper(t, nil)
	shaped := sh.Shape("a☺b", testStyles("alpha", "omega"), glyphing.RightToLeft)
	glyphs := shaped.Glyphs()
	if !assert.Len(t, glyphs, 3) {
		t.FailNow()
	}
	// Visual order: text indices decrease for RTL.
	assert.Equal(t, []int{4, 1, 0}, textIndices(glyphs))
	assert.Equal(t, alpha, glyphs[0].Face)
	assert.Equal(t, omega, glyphs[1].Face)
	assert.Equal(t, alpha, glyphs[2].Face)
	assert.NotEqual(t, font.GlyphIndex(0), glyphs[1].GID)
}

func TestShapeNoResolvableFamily(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shape")
	defer teardown()
	//
	sh, _, _ := newTestShaper(t, nil)
	shaped := sh.Shape("Hi", testStyles(), glyphing.LeftToRight)
	assert.Empty(t, shaped.Glyphs())
	assert.Equal(t, dimen.Zero, shaped.Width)
	assert.Equal(t, dimen.Zero, shaped.Height, "no face, no metrics")
}

func TestShapeLinebreaksOnly(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shape")
	defer teardown()
	//
	sh, _, _ := newTestShaper(t, nil)
	shaped := sh.Shape("\n\n", testStyles("alpha"), glyphing.LeftToRight)
	assert.Empty(t, shaped.Glyphs(), "newlines are never shaped")
	assert.Equal(t, dimen.Zero, shaped.Width)
	assert.True(t, shaped.Height > 0, "an empty run still has the face's vertical extent")
}

func TestShapeCaseTransform(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shape")
	defer teardown()
	//
	sh, _, _ := newTestShaper(t, nil)
	st := testStyles("alpha")
	st.Case = CaseUpper
	shaped := sh.Shape("hi", st, glyphing.LeftToRight)
	assert.Equal(t, "HI", shaped.Text)
	assert.Equal(t, font.GlyphIndex('H'), shaped.Glyphs()[0].GID)
}

func TestShapeTracking(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.shape")
	defer teardown()
	//
	sh, _, _ := newTestShaper(t, nil)
	st := testStyles("alpha")
	st.Tracking = 0.1
	shaped := sh.Shape("ab", st, glyphing.LeftToRight)
	glyphs := shaped.Glyphs()
	if !assert.Len(t, glyphs, 2) {
		t.FailNow()
	}
	assert.InDelta(t, 0.6, float64(glyphs[0].XAdvance), 1e-9)
	assert.InDelta(t, 0.5, float64(glyphs[1].XAdvance), 1e-9, "no tracking after the last cluster")
	assert.Equal(t, dimen.Em(1.1).Resolve(st.Size), shaped.Width)
}

func TestTrackingClusters(t *testing.T) {
	glyphs := []ShapedGlyph{
		{TextIndex: 0, XAdvance: 1}, // first glyph of a two-glyph cluster
		{TextIndex: 0, XAdvance: 1},
		{TextIndex: 2, XAdvance: 1},
	}
	track(glyphs, 0.25)
	assert.Equal(t, dimen.Em(1), glyphs[0].XAdvance, "tracking goes between clusters, not into them")
	assert.Equal(t, dimen.Em(1.25), glyphs[1].XAdvance)
	assert.Equal(t, dimen.Em(1), glyphs[2].XAdvance, "no tracking after the run")
}

func TestVariantFolding(t *testing.T) {
	st := DefaultStyles()
	st.Strong = true
	assert.Equal(t, font.WeightBold, st.variant().Weight)
	st.Strong = false
	st.Emph = true
	assert.Equal(t, font.StyleItalic, st.variant().Style)
	st.Style = font.StyleItalic
	assert.Equal(t, font.StyleNormal, st.variant().Style, "emph toggles italic off again")
}

func textIndices(glyphs []ShapedGlyph) []int {
	var idx []int
	for _, g := range glyphs {
		idx = append(idx, g.TextIndex)
	}
	return idx
}
