package shape

import (
	"github.com/npillmayer/typeshape/engine/glyphing"
)

// featureList collects the OpenType feature settings for a set of styles.
// Only deviations from the fonts' defaults are emitted: kerning and common
// ligatures are on in every font, so they only appear here when disabled.
// Raw features from the styles are appended last, without deduplication, so
// they win over the derived settings.
func featureList(st *TextStyles) []glyphing.Feature {
	var feats []glyphing.Feature
	add := func(tag string, value uint32) {
		feats = append(feats, glyphing.Feature{Tag: glyphing.ParseTag(tag), Value: value})
	}
	if !st.Kerning {
		add("kern", 0)
	}
	if st.SmallCaps {
		add("smcp", 1)
	}
	if st.Alternates {
		add("salt", 1)
	}
	if n := st.StylisticSet; n >= 1 && n <= 20 {
		tag := [4]byte{'s', 's', '0' + byte(n/10), '0' + byte(n%10)}
		feats = append(feats, glyphing.Feature{
			Tag:   glyphing.MakeTag(tag[0], tag[1], tag[2], tag[3]),
			Value: 1,
		})
	}
	if !st.Ligatures {
		add("liga", 0)
		add("clig", 0)
	}
	if st.DiscretionaryLigatures {
		add("dlig", 1)
	}
	if st.HistoricalLigatures {
		add("hlig", 1)
	}
	switch st.NumberType {
	case NumbersLining:
		add("lnum", 1)
	case NumbersOldStyle:
		add("onum", 1)
	}
	switch st.NumberWidth {
	case NumbersProportional:
		add("pnum", 1)
	case NumbersTabular:
		add("tnum", 1)
	}
	switch st.NumberPosition {
	case NumbersSubscript:
		add("subs", 1)
	case NumbersSuperscript:
		add("sups", 1)
	}
	if st.SlashedZero {
		add("zero", 1)
	}
	if st.Fractions {
		add("frac", 1)
	}
	feats = append(feats, st.Features...)
	return feats
}
