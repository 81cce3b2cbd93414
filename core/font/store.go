package font

import (
	"strings"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/typeshape/core"
	"golang.org/x/image/font/gofont/goregular"
)

// FallbackFamily is the family name of the embedded fallback face, which is
// always present in a Store. Shaping therefore never runs out of faces.
const FallbackFamily = "go regular"

// Store is a collection of faces, selectable by family name and variant.
//
// A store always contains at least the embedded Go Regular face, registered
// under FallbackFamily. When a family is not registered, Select will try
// once to locate it among the system fonts before giving up.
//
// A Store is not safe for concurrent use.
type Store struct {
	faces     []*Face
	families  map[string][]FaceID
	triedDisk map[string]bool
}

// NewStore creates a font store holding the embedded fallback face.
func NewStore() *Store {
	s := &Store{
		families:  make(map[string][]FaceID),
		triedDisk: make(map[string]bool),
	}
	fallback, err := ParseOpenTypeFont(goregular.TTF)
	if err != nil {
		// The embedded font is known-good; this cannot happen.
		panic(err)
	}
	s.register(fallback, FallbackFamily)
	return s
}

// NormalizeFamilyName maps a family name to its canonical form: lowercased,
// with surrounding and duplicate inner whitespace removed.
func NormalizeFamilyName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Add parses OpenType font data and registers the face under the family
// name found in the font's naming table.
func (s *Store) Add(data []byte) (FaceID, error) {
	f, err := ParseOpenTypeFont(data)
	if err != nil {
		return NoFace, err
	}
	if f.Family == "" {
		return NoFace, core.Error(core.EINVALID, "font carries no family name")
	}
	return s.register(f, f.Family), nil
}

// AddNamed registers a face under an explicit family name and variant,
// overriding whatever the font's naming table says. Mainly useful for tests
// and for aliasing.
func (s *Store) AddNamed(family string, variant Variant, data []byte) (FaceID, error) {
	f, err := ParseOpenTypeFont(data)
	if err != nil {
		return NoFace, err
	}
	f.Variant = variant
	return s.register(f, NormalizeFamilyName(family)), nil
}

func (s *Store) register(f *Face, family string) FaceID {
	f.ID = FaceID(len(s.faces))
	f.Family = family
	s.faces = append(s.faces, f)
	s.families[family] = append(s.families[family], f.ID)
	tracer().P("font", f.Fontname).Debugf("registered as family %q, %v", family, f.Variant)
	return f.ID
}

// Get returns the face for an ID, or nil for NoFace and unknown IDs.
func (s *Store) Get(id FaceID) *Face {
	if id < 0 || int(id) >= len(s.faces) {
		return nil
	}
	return s.faces[id]
}

// Select returns the best-matching face of a family for a variant. If the
// family is not registered, it is searched for among the system fonts once.
// found is false if the family cannot be provided at all; Select never
// falls through to a different family.
func (s *Store) Select(family string, variant Variant) (id FaceID, found bool) {
	fam := NormalizeFamilyName(family)
	if fam == "" {
		return NoFace, false
	}
	if ids, ok := s.families[fam]; ok {
		return s.bestOf(ids, variant)
	}
	if s.triedDisk[fam] {
		return NoFace, false
	}
	s.triedDisk[fam] = true
	path, err := findfont.Find(fam + ".ttf")
	if err != nil {
		tracer().Debugf("family %q not found among system fonts", fam)
		return NoFace, false
	}
	f, err := LoadOpenTypeFont(path)
	if err != nil {
		tracer().Errorf("system font %q unusable, error code %d: %v", path, core.Code(err), err)
		return NoFace, false
	}
	return s.register(f, fam), true
}

func (s *Store) bestOf(ids []FaceID, variant Variant) (FaceID, bool) {
	best, confidence := NoFace, NoConfidence
	for _, id := range ids {
		if c := matchVariant(s.faces[id].Variant, variant); c > confidence {
			best, confidence = id, c
		}
	}
	if best == NoFace { // family registered, but nothing matches even loosely
		best = ids[0]
	}
	return best, true
}
