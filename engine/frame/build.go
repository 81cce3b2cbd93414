package frame

import (
	"github.com/npillmayer/typeshape/core/dimen"
	"github.com/npillmayer/typeshape/core/font"
	"github.com/npillmayer/typeshape/engine/shape"
)

// Build renders a shaping result into a frame. Glyphs are grouped into one
// text element per face run; every group gets the styles' line decorations,
// drawn on top of it. A non-empty link style annotates the whole frame.
func Build(shaped *shape.ShapedText, fonts *font.Store) *Frame {
	styles := shaped.Styles
	fr := New(shaped.Width, shaped.Height, shaped.Baseline)
	glyphs := shaped.Glyphs()

	var offset dimen.Dimen
	for i := 0; i < len(glyphs); {
		j := i
		for j < len(glyphs) && glyphs[j].Face == glyphs[i].Face {
			j++
		}
		pos := dimen.Point{X: offset, Y: shaped.Baseline}
		text := Text{
			Face:   glyphs[i].Face,
			Size:   styles.Size,
			Fill:   styles.Fill,
			Glyphs: make([]Glyph, 0, j-i),
		}
		for _, g := range glyphs[i:j] {
			text.Glyphs = append(text.Glyphs, Glyph{
				GID:      g.GID,
				XAdvance: g.XAdvance,
				XOffset:  g.XOffset,
			})
		}
		layer := fr.Layer()
		width := text.Width()

		for _, deco := range styles.Lines {
			decorate(fr, deco, fonts, &text, pos, width)
		}
		fr.Insert(layer, pos, text)
		offset += width
		i = j
	}

	if styles.Link != "" {
		fr.Push(dimen.Origin, Link{URL: styles.Link, Width: fr.Width, Height: fr.Height})
	}
	tracer().Debugf("built frame %s x %s with %d elements", fr.Width, fr.Height, len(fr.Elements))
	return fr
}
