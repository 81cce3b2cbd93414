package shape

import (
	"github.com/npillmayer/typeshape/core/dimen"
	"github.com/npillmayer/typeshape/core/font"
	"github.com/npillmayer/typeshape/engine/glyphing"
)

// Shaper shapes styled text, using a font store for face selection and a
// glyphing engine for the actual glyph substitution and positioning.
type Shaper struct {
	fonts  *font.Store
	engine glyphing.Engine
}

// NewShaper creates a shaper on top of a font store and a glyphing engine.
func NewShaper(fonts *font.Store, engine glyphing.Engine) *Shaper {
	return &Shaper{fonts: fonts, engine: engine}
}

// Fonts returns the shaper's font store.
func (sh *Shaper) Fonts() *font.Store {
	return sh.fonts
}

// Shape shapes a run of text into a ShapedText. Characters the first
// resolvable face cannot map are re-shaped with faces further down the
// family list; if no face at all maps them, they stay as tofu glyphs of the
// first face. Shape never fails: a degenerate store yields an empty result
// with zero metrics.
func (sh *Shaper) Shape(text string, styles *TextStyles, dir glyphing.Direction) *ShapedText {
	if styles.Case != CaseNone {
		text = styles.Case.Apply(text)
	}
	return sh.shape(text, styles, dir)
}

// shape is Shape after case transformation; the reshaper re-enters here.
func (sh *Shaper) shape(text string, styles *TextStyles, dir glyphing.Direction) *ShapedText {
	var glyphs []ShapedGlyph
	families := familiesOf(styles)
	if len(text) > 0 {
		glyphs = sh.shapeSegment(glyphs, 0, text, styles.variant(),
			families, font.NoFace, dir, featureList(styles), styles)
	}
	track(glyphs, styles.Tracking)
	w, h, baseline := sh.measure(glyphs, styles, families.restart())
	tracer().Debugf("shaped %q into %d glyphs, width %s", text, len(glyphs), w)
	return &ShapedText{
		Text:     text,
		Dir:      dir,
		Styles:   styles,
		Width:    w,
		Height:   h,
		Baseline: baseline,
		glyphs:   glyphs,
	}
}

// shapeSegment shapes text with font fallback along the families sequence,
// appending to glyphs. firstFace anchors the recursion: once the family
// list is exhausted, remaining tofus are shaped with the first face that
// was originally used.
func (sh *Shaper) shapeSegment(
	glyphs []ShapedGlyph,
	base int,
	text string,
	variant font.Variant,
	families familySequence,
	firstFace font.FaceID,
	dir glyphing.Direction,
	features []glyphing.Feature,
	styles *TextStyles,
) []ShapedGlyph {
	// No font has newlines.
	if allLinebreaks(text) {
		return glyphs
	}

	// Select the face, walking down the family sequence. fallback is false
	// once the sequence is exhausted: tofus of the anchor face are then
	// accepted instead of recursed on.
	faceID, fallback := font.NoFace, true
	for faceID == font.NoFace {
		family, ok := families.next()
		if !ok {
			if firstFace == font.NoFace {
				return glyphs // no face at all resolves; give up on this segment
			}
			faceID, fallback = firstFace, false
			break
		}
		if id, found := sh.fonts.Select(family, variant); found {
			faceID = id
		}
	}
	if firstFace == font.NoFace {
		firstFace = faceID
	}

	raw := sh.engine.Shape(text, glyphing.Params{
		Face:      sh.fonts.Get(faceID),
		Direction: dir,
		Script:    styles.Script,
		Language:  styles.Language,
		Features:  features,
	})

	// Collect the shaped glyphs, recursively shaping stretches of tofu with
	// the next family.
	for i := 0; i < len(raw); i++ {
		g := raw[i]
		if g.GID != 0 || !fallback {
			glyphs = append(glyphs, ShapedGlyph{
				Face:        faceID,
				GID:         g.GID,
				XAdvance:    g.XAdvance,
				XOffset:     g.XOffset,
				TextIndex:   base + g.Cluster,
				SafeToBreak: !g.UnsafeToBreak,
			})
			continue
		}

		// Determine the source text range of the tofu stretch. Glyphs are
		// in visual order, so for RTL the byte range starts at the LAST
		// tofu glyph and ends before the glyph preceding the first one.
		k := i
		for i+1 < len(raw) && raw[i+1].GID == 0 {
			i++
		}
		first := k
		if !dir.IsPositive() {
			first = i
		}
		start := raw[first].Cluster
		end := len(text)
		if dir.IsPositive() {
			if i+1 < len(raw) {
				end = raw[i+1].Cluster
			}
		} else if k-1 >= 0 {
			end = raw[k-1].Cluster
		}

		glyphs = sh.shapeSegment(glyphs, base+start, text[start:end],
			variant, families, firstFace, dir, features, styles)
	}
	return glyphs
}

// allLinebreaks is true if text consists of newlines only.
func allLinebreaks(text string) bool {
	for _, r := range text {
		if r != '\n' {
			return false
		}
	}
	return true
}

// track applies letter tracking: extra advance on the last glyph of every
// cluster, except at the very end of the run.
func track(glyphs []ShapedGlyph, tracking dimen.Em) {
	if tracking.IsZero() {
		return
	}
	for i := range glyphs {
		if i+1 < len(glyphs) && glyphs[i].TextIndex != glyphs[i+1].TextIndex {
			glyphs[i].XAdvance += tracking
		}
	}
}

// measure computes width, height and baseline of a run of shaped glyphs.
// The vertical extent spans from the styles' top edge down to their bottom
// edge, maximized over the faces occurring in the run; the baseline is the
// distance from the top edge down to y = 0.
func (sh *Shaper) measure(glyphs []ShapedGlyph, styles *TextStyles, families familySequence) (w, h, baseline dimen.Dimen) {
	var width, top, bottom dimen.Dimen
	size := styles.Size

	expand := func(face *font.Face) {
		top = dimen.Max(top, face.VerticalMetric(styles.TopEdge, size))
		bottom = dimen.Max(bottom, -face.VerticalMetric(styles.BottomEdge, size))
	}

	if len(glyphs) == 0 {
		// No glyphs; use the vertical metrics of the first available face.
		for {
			family, ok := families.next()
			if !ok {
				break
			}
			if id, found := sh.fonts.Select(family, styles.variant()); found {
				expand(sh.fonts.Get(id))
				break
			}
		}
	} else {
		current := font.NoFace
		for _, g := range glyphs {
			if g.Face != current {
				current = g.Face
				expand(sh.fonts.Get(current))
			}
			width += g.XAdvance.Resolve(size)
		}
	}
	return width, top + bottom, top
}
