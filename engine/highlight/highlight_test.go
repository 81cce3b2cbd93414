package highlight_test

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typeshape/engine/highlight"
	"github.com/npillmayer/typeshape/engine/shape"
	"github.com/stretchr/testify/assert"
)

const goCode = `package main

func main() {}
`

func TestRunsCoverInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.highlight")
	defer teardown()
	//
	runs := highlight.Runs(goCode, "go", nil)
	assert.True(t, len(runs) > 1, "expected the code to be split into styled runs")
	var b strings.Builder
	for _, run := range runs {
		b.WriteString(run.Text)
		assert.True(t, run.Styles.Monospaced, "code runs are monospaced")
	}
	assert.Equal(t, goCode, b.String(), "runs have to concatenate back to the input")
}

func TestRunsStyleTokens(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.highlight")
	defer teardown()
	//
	base := shape.DefaultStyles()
	runs := highlight.Runs(goCode, "go", base)
	styled := 0
	for _, run := range runs {
		if run.Styles.Strong || run.Styles.Emph || run.Styles.Fill != base.Fill {
			styled++
		}
	}
	assert.True(t, styled > 0, "expected at least one token to be styled, e.g. the keywords")
}

func TestRunsUnknownLanguage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.highlight")
	defer teardown()
	//
	runs := highlight.Runs("some text", "no-such-language", nil)
	if !assert.Len(t, runs, 1) {
		t.FailNow()
	}
	assert.Equal(t, "some text", runs[0].Text)
	assert.True(t, runs[0].Styles.Monospaced)
	assert.False(t, runs[0].Styles.Strong)
}
