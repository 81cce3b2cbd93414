/*
Package shape turns styled text into positioned glyphs.

Shaping selects faces along a prioritized family list, calls into a
glyphing engine, and recursively re-shapes sub-ranges the current face
cannot map. The result is a ShapedText, which can later be re-shaped
incrementally for sub-ranges whose boundaries are safe to break at.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package shape

import (
	"image/color"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/typeshape/core/dimen"
	"github.com/npillmayer/typeshape/core/font"
	"github.com/npillmayer/typeshape/engine/glyphing"
	"golang.org/x/text/language"
)

// tracer traces with key 'typeshape.shape'.
func tracer() tracing.Trace {
	return tracing.Select("typeshape.shape")
}

// --- Font families -----------------------------------------------------------

type familyKind uint8

const (
	kindNamed familyKind = iota
	kindSerif
	kindSansSerif
	kindMonospace
)

// FontFamily is either a concrete, named font family or one of the three
// generic families. Named families are normalized, so FontFamily values
// compare equal regardless of the spelling they were created from.
type FontFamily struct {
	kind familyKind
	name string
}

// The generic font families.
var (
	Serif     = FontFamily{kind: kindSerif}
	SansSerif = FontFamily{kind: kindSansSerif}
	Monospace = FontFamily{kind: kindMonospace}
)

// NamedFamily creates a concrete font family from its name.
func NamedFamily(name string) FontFamily {
	return FontFamily{kind: kindNamed, name: font.NormalizeFamilyName(name)}
}

func (ff FontFamily) String() string {
	switch ff.kind {
	case kindSerif:
		return "serif"
	case kindSansSerif:
		return "sans-serif"
	case kindMonospace:
		return "monospace"
	}
	return ff.name
}

// --- Case transform ----------------------------------------------------------

// Case is a case transformation applied to text before shaping.
type Case uint8

// Case transformations.
const (
	CaseNone Case = iota
	CaseUpper
	CaseLower
)

// Apply transforms a string.
func (c Case) Apply(s string) string {
	switch c {
	case CaseUpper:
		return strings.ToUpper(s)
	case CaseLower:
		return strings.ToLower(s)
	}
	return s
}

// --- Numbers -----------------------------------------------------------------

// NumberType selects the design of digits.
type NumberType uint8

// Number types. The zero value leaves the choice to the font.
const (
	NumbersAuto NumberType = iota
	NumbersLining
	NumbersOldStyle
)

// NumberWidth selects the width of digits.
type NumberWidth uint8

// Number widths. The zero value leaves the choice to the font.
const (
	NumberWidthAuto NumberWidth = iota
	NumbersProportional
	NumbersTabular
)

// NumberPosition selects the vertical position of digits.
type NumberPosition uint8

// Number positions.
const (
	NumbersNormal NumberPosition = iota
	NumbersSubscript
	NumbersSuperscript
)

// --- Decoration --------------------------------------------------------------

// LineKind is the kind of a decorative line.
type LineKind uint8

// Kinds of decorative lines.
const (
	Underline LineKind = iota
	Strikethrough
	Overline
)

func (k LineKind) String() string {
	switch k {
	case Strikethrough:
		return "strikethrough"
	case Overline:
		return "overline"
	}
	return "underline"
}

// Decoration is a decorative line to draw under, through or over shaped text.
type Decoration struct {
	Line      LineKind
	Stroke    color.Color  // nil: use the text fill
	Thickness *dimen.Dimen // nil: use the face's metric
	Offset    *dimen.Dimen // nil: use the face's metric; positive = below baseline
	Extent    dimen.Dimen  // horizontal extension beyond the text on both sides
	Evade     bool         // skip over glyph ink (ignored for strikethrough)
}

// --- Text styles -------------------------------------------------------------

// TextStyles collects all resolved style values the shaper consults. It is
// a plain value; callers construct it (usually starting from DefaultStyles)
// and hand it to Shaper.Shape. The shaper never mutates it.
type TextStyles struct {
	// Face selection
	Family    []FontFamily
	Serif     []string // concrete families substituted for the generic serif
	SansSerif []string
	Monospace []string
	Fallback  bool // append the built-in fallback families

	Style   font.Style
	Weight  font.Weight
	Stretch font.Stretch
	Strong  bool // fold into Weight, see variant()
	Emph    bool // fold into Style, see variant()

	// Geometry and paint
	Size       dimen.Dimen
	Fill       color.Color
	Tracking   dimen.Em
	TopEdge    font.VerticalMetric
	BottomEdge font.VerticalMetric

	// Script and language, handed through to the glyphing engine
	Script   language.Script
	Language language.Tag

	// OpenType features
	Kerning                bool
	SmallCaps              bool
	Alternates             bool
	StylisticSet           int // 1–20, 0 = none
	Ligatures              bool
	DiscretionaryLigatures bool
	HistoricalLigatures    bool
	NumberType             NumberType
	NumberWidth            NumberWidth
	NumberPosition         NumberPosition
	SlashedZero            bool
	Fractions              bool
	Features               []glyphing.Feature // raw features, appended last

	// Transformations and decorations
	Monospaced bool // force the monospace families to the front
	Case       Case
	Lines      []Decoration
	Link       string // non-empty: annotate the built frame with a link
}

// DefaultStyles returns the style values in effect when nothing is set.
func DefaultStyles() *TextStyles {
	return &TextStyles{
		Family:     []FontFamily{SansSerif},
		Serif:      []string{"ibm plex serif"},
		SansSerif:  []string{"ibm plex sans"},
		Monospace:  []string{"ibm plex mono"},
		Fallback:   true,
		Style:      font.StyleNormal,
		Weight:     font.WeightRegular,
		Stretch:    font.StretchNormal,
		Size:       11 * dimen.PT,
		Fill:       color.Black,
		TopEdge:    font.VerticalMetric{Kind: font.CapHeight},
		BottomEdge: font.VerticalMetric{Kind: font.Baseline},
		Kerning:    true,
		Ligatures:  true,
	}
}

// variant resolves the styles into a face variant, folding Strong and Emph
// into weight and style.
func (st *TextStyles) variant() font.Variant {
	v := font.Variant{Style: st.Style, Weight: st.Weight, Stretch: st.Stretch}
	if st.Strong {
		v.Weight = v.Weight.Thicken(300)
	}
	if st.Emph {
		if v.Style == font.StyleNormal {
			v.Style = font.StyleItalic
		} else {
			v.Style = font.StyleNormal
		}
	}
	return v
}
