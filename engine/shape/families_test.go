package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func collect(fs familySequence) []string {
	var names []string
	for {
		name, ok := fs.next()
		if !ok {
			return names
		}
		names = append(names, name)
	}
}

func TestFamiliesGenericExpansion(t *testing.T) {
	st := DefaultStyles()
	st.Family = []FontFamily{NamedFamily("EB Garamond"), Serif}
	st.Serif = []string{"ibm plex serif", "noto serif"}
	st.Fallback = false
	assert.Equal(t,
		[]string{"eb garamond", "ibm plex serif", "noto serif"},
		collect(familiesOf(st)))
}

func TestFamiliesMonospaceHead(t *testing.T) {
	st := DefaultStyles()
	st.Monospaced = true
	st.Fallback = false
	assert.Equal(t,
		[]string{"ibm plex mono", "ibm plex sans"},
		collect(familiesOf(st)))
}

func TestFamiliesFallbackTail(t *testing.T) {
	st := DefaultStyles()
	st.Family = nil
	names := collect(familiesOf(st))
	assert.Equal(t, fallbackTail, names)
}

func TestFamiliesRestartable(t *testing.T) {
	st := DefaultStyles()
	fs := familiesOf(st)
	first := collect(fs)
	// The collect above advanced fs past its end.
	_, ok := fs.next()
	assert.False(t, ok)
	assert.Equal(t, first, collect(fs.restart()))
}

func TestFamiliesIndependentCursors(t *testing.T) {
	st := DefaultStyles()
	st.Family = []FontFamily{NamedFamily("one"), NamedFamily("two"), NamedFamily("three")}
	st.Fallback = false
	fs := familiesOf(st)
	name, ok := fs.next()
	assert.True(t, ok)
	assert.Equal(t, "one", name)
	// A copy of the cursor iterates independently from where it was taken.
	fork := fs
	assert.Equal(t, []string{"two", "three"}, collect(fork))
	assert.Equal(t, []string{"two", "three"}, collect(fs))
}

func TestFontFamilyNormalized(t *testing.T) {
	assert.Equal(t, NamedFamily("IBM  Plex Sans"), NamedFamily("ibm plex sans"))
	assert.Equal(t, "sans-serif", SansSerif.String())
}
