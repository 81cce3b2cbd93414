package shape

import "github.com/npillmayer/typeshape/core/font"

// fallbackTail is appended to every family sequence when styles ask for
// fallback. The first entry is the store's always-present embedded face.
var fallbackTail = []string{
	font.FallbackFamily,
	"latin modern math",
	"noto color emoji",
}

// familySequence is a prioritized sequence of concrete family names. It is
// a cursor over a fixed name list: copies share the names but iterate
// independently, so the segment shaper can hand the remaining sequence to a
// recursive call and keep its own position.
type familySequence struct {
	names []string
	pos   int
}

// familiesOf builds the family sequence for a set of styles: the monospace
// families first if a monospaced run is requested, then the selected
// families with generic ones expanded, then the fallback tail.
func familiesOf(st *TextStyles) familySequence {
	var names []string
	if st.Monospaced {
		names = append(names, st.Monospace...)
	}
	for _, ff := range st.Family {
		switch ff.kind {
		case kindSerif:
			names = append(names, st.Serif...)
		case kindSansSerif:
			names = append(names, st.SansSerif...)
		case kindMonospace:
			names = append(names, st.Monospace...)
		default:
			names = append(names, ff.name)
		}
	}
	if st.Fallback {
		names = append(names, fallbackTail...)
	}
	return familySequence{names: names}
}

// next returns the next family name, advancing the cursor.
func (fs *familySequence) next() (string, bool) {
	if fs.pos >= len(fs.names) {
		return "", false
	}
	name := fs.names[fs.pos]
	fs.pos++
	return name, true
}

// restart returns a fresh cursor over the same names.
func (fs familySequence) restart() familySequence {
	return familySequence{names: fs.names}
}
