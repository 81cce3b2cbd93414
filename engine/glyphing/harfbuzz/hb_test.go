package harfbuzz_test

import (
	"fmt"
	"testing"

	hb "github.com/benoitkugler/textlayout/harfbuzz"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/typeshape/core/font"
	"github.com/npillmayer/typeshape/engine/glyphing"
	"github.com/npillmayer/typeshape/engine/glyphing/harfbuzz"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/language"
)

func TestHBScript(t *testing.T) {
	id := "Plrd"
	script := language.MustParseScript(id)
	hbScript := harfbuzz.Script4HB(script)
	hstr := fmt.Sprintf("%x", uint32(hbScript))
	if hstr != "706c7264" {
		t.Logf("script %q: %x => %x", id, script, uint32(hbScript))
		t.Errorf("expected HB script of 706c7264, is %s", hstr)
	}
}

func TestHBLang(t *testing.T) {
	l := "de_DE"
	langT, err := language.Parse(l)
	if err != nil {
		t.Error(err)
	}
	h := harfbuzz.Lang4HB(langT)
	if h != "de-de" {
		t.Logf("Go lang = %v", langT)
		t.Logf("HB lang = %v, expected de-de", h)
		t.Fail()
	}
}

func TestHBDir(t *testing.T) {
	var d glyphing.Direction = glyphing.TopToBottom
	dir := harfbuzz.Direction4HB(d)
	if dir != hb.TopToBottom {
		t.Errorf("expected dir to be %d, is %d", hb.TopToBottom, dir)
	}
}

func TestHBFeature(t *testing.T) {
	feat := harfbuzz.Feature4HB(glyphing.Feature{Tag: glyphing.ParseTag("liga"), Value: 0})
	if feat.Value != 0 {
		t.Errorf("expected feature value 0, is %d", feat.Value)
	}
	if fmt.Sprintf("%c%c%c%c", byte(feat.Tag>>24), byte(feat.Tag>>16), byte(feat.Tag>>8),
		byte(feat.Tag)) != "liga" {
		t.Errorf("expected feature tag 'liga', is %x", uint32(feat.Tag))
	}
}

func TestHBShape(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.glyphs")
	defer teardown()
	//
	input := "Hello"
	face := loadGoFont(t)
	sh := harfbuzz.NewShaper()
	glyphs := sh.Shape(input, glyphing.Params{
		Face:      face,
		Direction: glyphing.LeftToRight,
	})
	if glyphs == nil {
		t.Fatal("expected shaping output to be non-nil")
	}
	if len(glyphs) != len(input) {
		t.Errorf("expected %d output glyphs, have %d", len(input), len(glyphs))
	}
	for i, g := range glyphs {
		if g.GID == 0 {
			t.Errorf("glyph #%d is tofu, should not happen for %q", i, input)
		}
		if g.Cluster != i {
			t.Errorf("expected glyph #%d to have cluster %d, has %d", i, i, g.Cluster)
		}
		if g.XAdvance <= 0 {
			t.Errorf("expected glyph #%d to have a positive advance", i)
		}
	}
}

func TestHBShapeByteClusters(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.glyphs")
	defer teardown()
	//
	input := "Straße" // 'ß' is 2 bytes long
	face := loadGoFont(t)
	sh := harfbuzz.NewShaper()
	glyphs := sh.Shape(input, glyphing.Params{
		Face:      face,
		Direction: glyphing.LeftToRight,
	})
	if len(glyphs) != 6 {
		t.Fatalf("expected 6 glyphs, have %d", len(glyphs))
	}
	want := []int{0, 1, 2, 3, 4, 6} // byte offsets, not rune indices
	for i, g := range glyphs {
		if g.Cluster != want[i] {
			t.Errorf("expected glyph #%d at byte offset %d, is at %d", i, want[i], g.Cluster)
		}
	}
}

func TestHBShapeRTL(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "typeshape.glyphs")
	defer teardown()
	//
	face := loadGoFont(t)
	sh := harfbuzz.NewShaper()
	glyphs := sh.Shape("ab", glyphing.Params{
		Face:      face,
		Direction: glyphing.RightToLeft,
	})
	if len(glyphs) != 2 {
		t.Fatalf("expected 2 glyphs, have %d", len(glyphs))
	}
	if glyphs[0].Cluster != 1 || glyphs[1].Cluster != 0 {
		t.Errorf("expected clusters in visual order [1 0], have [%d %d]",
			glyphs[0].Cluster, glyphs[1].Cluster)
	}
}

// ---------------------------------------------------------------------------

func loadGoFont(t *testing.T) *font.Face {
	face, err := font.ParseOpenTypeFont(goregular.TTF)
	if err != nil {
		t.Fatal("cannot load Go font") // this cannot happen
	}
	face.ID = 0
	return face
}

// ---------------------------------------------------------------------------

func BenchmarkHBShape(b *testing.B) {
	face, err := font.ParseOpenTypeFont(goregular.TTF)
	if err != nil {
		b.Fatal("cannot load Go font") // this cannot happen
	}
	face.ID = 0
	sh := harfbuzz.NewShaper()
	params := glyphing.Params{Face: face, Direction: glyphing.LeftToRight}
	for i := 0; i < b.N; i++ {
		for _, line := range corpus {
			if glyphs := sh.Shape(line, params); glyphs == nil {
				b.Fatal("expected shaping output to be non-nil")
			}
		}
	}
}

var corpus = []string{
	`Im deutschen Grundgesetz ist der soziale Gedanke grundlegend verankert und sogar vor Änderungen geschützt.`,
	`Soziale Gerechtigkeit ist nicht gleichbedeutend mit vollständiger Gleichheit.`,
	`Dieses Verständnis ist keineswegs universell; andere Gesellschaften akzentuieren den Gerechtigkeitsbegriff anders.`,
	`Geschichtliche Entwicklung`,
	`Mit dem Begriff der Gerechtigkeit befassten sich bereits Aristoteles und Platon.`,
}
