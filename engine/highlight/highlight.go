/*
Package highlight turns source code into syntax-highlighted text runs.

Highlighting is a separate pass in front of shaping: the package tokenizes
code with chroma and emits styled sub-strings, which callers shape like any
other styled text. It never shapes by itself.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2021–2023 Norbert Pillmayer <norbert@pillmayer.com>

*/
package highlight

import (
	"image/color"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/typeshape/engine/shape"
)

// tracer traces with key 'typeshape.highlight'.
func tracer() tracing.Trace {
	return tracing.Select("typeshape.highlight")
}

// StyleName is the chroma style used for token colors.
const StyleName = "github"

// Run is a stretch of code with the styles to shape it with.
type Run struct {
	Text   string
	Styles *shape.TextStyles
}

// Runs tokenizes code in the given language and returns one run per token,
// styled according to the token type: bold becomes a strong run, italic an
// emphasized one, underline an underline decoration, and token colors the
// fill. All runs are monospaced. For an unknown language (or when the
// tokenizer fails) the whole code becomes a single monospaced run.
func Runs(code, lang string, base *shape.TextStyles) []Run {
	if base == nil {
		base = shape.DefaultStyles()
	}
	plain := *base
	plain.Monospaced = true

	lexer := lexers.Get(lang)
	if lexer == nil {
		tracer().Debugf("no lexer for language %q", lang)
		return []Run{{Text: code, Styles: &plain}}
	}
	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		tracer().Errorf("tokenizing %q code failed: %v", lang, err)
		return []Run{{Text: code, Styles: &plain}}
	}
	style := styles.Get(StyleName)

	var runs []Run
	for tok := iterator(); tok != chroma.EOF; tok = iterator() {
		if tok.Value == "" {
			continue
		}
		runs = append(runs, Run{
			Text:   tok.Value,
			Styles: tokenStyles(&plain, style.Get(tok.Type)),
		})
	}
	return runs
}

// tokenStyles derives the styles for one token from the base styles.
func tokenStyles(base *shape.TextStyles, entry chroma.StyleEntry) *shape.TextStyles {
	st := *base
	if entry.Colour.IsSet() {
		st.Fill = color.NRGBA{
			R: entry.Colour.Red(),
			G: entry.Colour.Green(),
			B: entry.Colour.Blue(),
			A: 0xff,
		}
	}
	if entry.Bold == chroma.Yes {
		st.Strong = true
	}
	if entry.Italic == chroma.Yes {
		st.Emph = true
	}
	if entry.Underline == chroma.Yes {
		st.Lines = append(st.Lines[:len(st.Lines):len(st.Lines)],
			shape.Decoration{Line: shape.Underline, Evade: true})
	}
	return &st
}
