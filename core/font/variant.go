package font

import (
	"fmt"
	"strings"
)

// Style is the slant of a face.
type Style uint8

// Face slants.
const (
	StyleNormal Style = iota
	StyleItalic
	StyleOblique
)

func (s Style) String() string {
	switch s {
	case StyleItalic:
		return "italic"
	case StyleOblique:
		return "oblique"
	}
	return "normal"
}

// Weight is the boldness of a face, on the usual OpenType scale of 1–1000.
type Weight uint16

// Common weights.
const (
	WeightThin       Weight = 100
	WeightExtraLight Weight = 200
	WeightLight      Weight = 300
	WeightRegular    Weight = 400
	WeightMedium     Weight = 500
	WeightSemiBold   Weight = 600
	WeightBold       Weight = 700
	WeightExtraBold  Weight = 800
	WeightBlack      Weight = 900
)

// Thicken returns a weight shifted by delta, clamped to the valid range.
func (w Weight) Thicken(delta int) Weight {
	v := int(w) + delta
	if v < 1 {
		v = 1
	} else if v > 1000 {
		v = 1000
	}
	return Weight(v)
}

// Stretch is the width of a face in percent, with 100 being normal.
type Stretch uint16

// StretchNormal is the default face width.
const StretchNormal Stretch = 100

// Variant is the combination of style, weight and stretch used to select
// a face within a family.
type Variant struct {
	Style   Style
	Weight  Weight
	Stretch Stretch
}

// NormalVariant returns a regular upright variant.
func NormalVariant() Variant {
	return Variant{Style: StyleNormal, Weight: WeightRegular, Stretch: StretchNormal}
}

func (v Variant) String() string {
	return fmt.Sprintf("%s-%d-%d", v.Style, v.Weight, v.Stretch)
}

// --- Variant matching --------------------------------------------------------

// MatchConfidence is a type for expressing the confidence level of font matching.
type MatchConfidence int

// Confidence levels for variant matching.
const (
	NoConfidence      MatchConfidence = 0
	LowConfidence     MatchConfidence = 2
	HighConfidence    MatchConfidence = 3
	PerfectConfidence MatchConfidence = 4
)

// matchStyle tries to match a face's style to a requested style.
func matchStyle(have, want Style) MatchConfidence {
	if have == want {
		return PerfectConfidence
	}
	switch {
	case have == StyleItalic && want == StyleOblique:
		return HighConfidence
	case have == StyleOblique && want == StyleItalic:
		return HighConfidence
	}
	return NoConfidence
}

// matchWeight tries to match a face's weight to a requested weight.
func matchWeight(have, want Weight) MatchConfidence {
	d := int(have) - int(want)
	if d < 0 {
		d = -d
	}
	switch {
	case d == 0:
		return PerfectConfidence
	case d <= 100:
		return HighConfidence
	case d <= 200:
		return LowConfidence
	}
	return NoConfidence
}

// matchVariant scores a face variant against a requested variant.
func matchVariant(have, want Variant) MatchConfidence {
	s := matchStyle(have.Style, want.Style)
	w := matchWeight(have.Weight, want.Weight)
	if s == NoConfidence && w == NoConfidence {
		return NoConfidence
	}
	return (s + w) / 2
}

// GuessVariant tries to guess a face's style and weight from its name.
// Font files rarely carry machine-readable variant metadata in their names,
// so this is heuristic, as in every font registry.
func GuessVariant(name string) Variant {
	name = strings.ToLower(name)
	v := NormalVariant()
	if strings.Contains(name, "italic") {
		v.Style = StyleItalic
	} else if strings.Contains(name, "oblique") {
		v.Style = StyleOblique
	}
	switch {
	case strings.Contains(name, "thin"):
		v.Weight = WeightThin
	case strings.Contains(name, "extralight"), strings.Contains(name, "ultralight"):
		v.Weight = WeightExtraLight
	case strings.Contains(name, "semilight"), strings.Contains(name, "light"):
		v.Weight = WeightLight
	case strings.Contains(name, "medium"):
		v.Weight = WeightMedium
	case strings.Contains(name, "semibold"), strings.Contains(name, "demibold"):
		v.Weight = WeightSemiBold
	case strings.Contains(name, "extrabold"), strings.Contains(name, "ultrabold"):
		v.Weight = WeightExtraBold
	case strings.Contains(name, "black"), strings.Contains(name, "heavy"):
		v.Weight = WeightBlack
	case strings.Contains(name, "bold"):
		v.Weight = WeightBold
	}
	return v
}
