/*
Package harfbuzz wraps the HarfBuzz shaper as a glyphing engine.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package harfbuzz

import (
	"bytes"
	"encoding/binary"
	"math"
	"unicode"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/typeshape/core/font"
	"github.com/npillmayer/typeshape/engine/glyphing"
	"golang.org/x/text/language"
)

// tracer traces with key 'typeshape.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("typeshape.glyphs")
}

// --- Type conversion -------------------------------------------------------

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script.
func Script4HB(s language.Script) hblang.Script {
	b := []byte(s.String())
	b[0] = byte(unicode.ToLower(rune(b[0])))
	h := binary.BigEndian.Uint32(b)
	return hblang.Script(h)
}

// Direction4HB translates a direction to a HarfBuzz direction.
func Direction4HB(d glyphing.Direction) hb.Direction {
	switch d {
	case glyphing.LeftToRight:
		return hb.LeftToRight
	case glyphing.RightToLeft:
		return hb.RightToLeft
	case glyphing.TopToBottom:
		return hb.TopToBottom
	case glyphing.BottomToTop:
		return hb.BottomToTop
	}
	return hb.LeftToRight
}

// Feature4HB converts a feature setting to a HarfBuzz feature switch,
// applied to the whole buffer.
func Feature4HB(feat glyphing.Feature) hb.Feature {
	return hb.Feature{
		Tag:   hbtt.Tag(feat.Tag),
		Value: feat.Value,
		Start: 0,
		End:   math.MaxInt32,
	}
}

// --- Shaper ------------------------------------------------------------------

// Shaper is a glyphing engine backed by HarfBuzz. It caches one HarfBuzz
// font per face; faces that HarfBuzz cannot parse are remembered as broken
// and produce tofu output instead of failing.
//
// A Shaper is not safe for concurrent use.
type Shaper struct {
	fonts map[font.FaceID]*hb.Font
}

// NewShaper creates a HarfBuzz-backed glyphing engine.
func NewShaper() *Shaper {
	return &Shaper{fonts: make(map[font.FaceID]*hb.Font)}
}

var _ glyphing.Engine = &Shaper{}

func (sh *Shaper) hbFont(face *font.Face) *hb.Font {
	if f, ok := sh.fonts[face.ID]; ok {
		return f
	}
	var hbFont *hb.Font
	hbFace, err := hbtt.Parse(bytes.NewReader(face.Binary), true)
	if err != nil {
		tracer().Errorf("HarfBuzz cannot parse font %s: %v", face.Fontname, err)
	} else {
		hbFont = hb.NewFont(hbFace)
	}
	sh.fonts[face.ID] = hbFont
	return hbFont
}

// Shape shapes a run of text with HarfBuzz, turning its Unicode characters
// into positioned glyphs in visual order. Cluster values of the returned
// glyphs are byte offsets into text. Advances and offsets are font-relative.
func (sh *Shaper) Shape(text string, params glyphing.Params) []glyphing.RawGlyph {
	if text == "" || params.Face == nil {
		return nil
	}
	hbFont := sh.hbFont(params.Face)
	if hbFont == nil {
		return tofuRun(text, params)
	}
	runes := []rune(text)
	// HarfBuzz reports clusters as rune indices; map them back to bytes.
	byteOf := make([]int, len(runes)+1)
	for i, off := 0, 0; i < len(runes); i++ {
		byteOf[i] = off
		off += len(string(runes[i]))
	}
	byteOf[len(runes)] = len(text)

	buf := hb.NewBuffer()
	buf.Props = segmentProps(params)
	features := make([]hb.Feature, 0, len(params.Features))
	for _, feat := range params.Features {
		features = append(features, Feature4HB(feat))
	}
	buf.AddRunes(runes, 0, len(runes))
	buf.Shape(hbFont, features)

	glyphs := make([]glyphing.RawGlyph, len(buf.Info))
	for i, info := range buf.Info {
		pos := buf.Pos[i]
		glyphs[i] = glyphing.RawGlyph{
			GID:           font.GlyphIndex(info.Glyph),
			Cluster:       byteOf[info.Cluster],
			XAdvance:      params.Face.ToEm(float64(pos.XAdvance)),
			XOffset:       params.Face.ToEm(float64(pos.XOffset)),
			UnsafeToBreak: info.Mask&hb.GlyphUnsafeToBreak != 0,
		}
	}
	return glyphs
}

// tofuRun synthesizes one tofu glyph per rune, in visual order. Used when
// HarfBuzz cannot handle a face; the glyphs count as unmapped, so the
// segment shaper will try other faces.
func tofuRun(text string, params glyphing.Params) []glyphing.RawGlyph {
	var glyphs []glyphing.RawGlyph
	for off := range text {
		glyphs = append(glyphs, glyphing.RawGlyph{GID: 0, Cluster: off})
	}
	if !params.Direction.IsPositive() {
		for i, j := 0, len(glyphs)-1; i < j; i, j = i+1, j-1 {
			glyphs[i], glyphs[j] = glyphs[j], glyphs[i]
		}
	}
	return glyphs
}

// segmentProps converts shaping parameters to HarfBuzz's format.
func segmentProps(params glyphing.Params) hb.SegmentProperties {
	var props hb.SegmentProperties
	if params.Language != language.Und {
		props.Language = Lang4HB(params.Language)
	}
	var none language.Script
	if params.Script != none {
		props.Script = Script4HB(params.Script)
	}
	props.Direction = Direction4HB(params.Direction)
	return props
}
