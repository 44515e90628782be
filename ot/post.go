package ot

import "fmt"

var postLayout = NewLayout("post", []FieldDef{
	{"version", Uint32}, // 2.5 is encoded as 0x00025000, which is not a Fixed
	{"italicAngle", Fixed},
	{"underlinePosition", Int16},
	{"underlineThickness", Int16},
	{"isFixedPitch", Uint32},
	{"minMemType42", Uint32},
	{"maxMemType42", Uint32},
	{"minMemType1", Uint32},
	{"maxMemType1", Uint32},
})

// Versions of table 'post'.
const (
	PostVersion1  = 0x00010000 // the 258 standard Macintosh glyphs
	PostVersion2  = 0x00020000 // glyph names in the table
	PostVersion25 = 0x00025000 // offsets into the standard Macintosh glyphs
	PostVersion3  = 0x00030000 // no glyph names
)

// PostTable contains additional information needed to use TrueType or
// OpenType fonts on PostScript printers, including the PostScript names of
// glyphs.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/post
type PostTable struct {
	tableBase
	Record
	names []string // decoded on first use, indexed by glyph
}

func newPostTable(tag Tag, b []byte) (Table, error) {
	rec, err := NewRecord(postLayout, b)
	if err != nil {
		return nil, err
	}
	t := &PostTable{tableBase: tableBase{data: b, name: tag}, Record: rec}
	t.self = t
	return t, nil
}

// NewPostTableFormat3 creates a post table of version 3.0, i.e. without glyph
// names. All fields are zero, except maxMemType1, which is set to numGlyphs.
func NewPostTableFormat3(numGlyphs uint16) *PostTable {
	b := make([]byte, postLayout.Size())
	t, _ := newPostTable(T("post"), b)
	post := t.(*PostTable)
	post.SetUint("version", PostVersion3)
	post.SetUint("maxMemType1", uint32(numGlyphs))
	return post
}

// Version returns the version of the table, e.g. PostVersion2.
func (t *PostTable) Version() uint32 {
	return t.Uint("version")
}

// GlyphName returns the PostScript name of glyph g. If the table does not
// contain a name for g, ok is false.
func (t *PostTable) GlyphName(g GlyphIndex) (name string, ok bool) {
	if t.names == nil {
		names, err := t.decodeNames()
		if err != nil {
			tracer().Errorf("post: %v", err)
		}
		t.names = names
	}
	if int(g) >= len(t.names) || t.names[g] == "" {
		return "", false
	}
	return t.names[g], true
}

func (t *PostTable) decodeNames() ([]string, error) {
	names := []string{}
	base := postLayout.Size()
	switch t.Version() {
	case PostVersion1:
		names = macGlyphNames[:]
	case PostVersion2:
		n, err := t.data.u16(base)
		if err != nil {
			return names, errTruncated(t.name, "numGlyphs", base+2, len(t.data))
		}
		indexes, err := t.data.view(base+2, 2*int(n))
		if err != nil {
			return names, errTruncated(t.name, "glyphNameIndex", base+2+2*int(n), len(t.data))
		}
		var custom []string
		for pos := base + 2 + 2*int(n); pos < len(t.data); {
			l := int(t.data[pos])
			s, err := t.data.view(pos+1, l)
			if err != nil {
				return names, errFontFormat(t.name, "names", fmt.Sprintf("string at %d exceeds table", pos))
			}
			custom = append(custom, string(s))
			pos += 1 + l
		}
		names = make([]string, n)
		for i := range int(n) {
			switch ni := int(u16(indexes[2*i:])); {
			case ni < len(macGlyphNames):
				names[i] = macGlyphNames[ni]
			case ni-len(macGlyphNames) < len(custom):
				names[i] = custom[ni-len(macGlyphNames)]
			default:
				tracer().Debugf("post: glyph %d refers to name %d outside of name list", i, ni)
			}
		}
	case PostVersion25:
		n, err := t.data.u16(base)
		if err != nil {
			return names, errTruncated(t.name, "numGlyphs", base+2, len(t.data))
		}
		offsets, err := t.data.view(base+2, int(n))
		if err != nil {
			return names, errTruncated(t.name, "offsets", base+2+int(n), len(t.data))
		}
		names = make([]string, n)
		for i := range int(n) {
			if ni := i + int(int8(offsets[i])); ni >= 0 && ni < len(macGlyphNames) {
				names[i] = macGlyphNames[ni]
			}
		}
	}
	return names, nil
}

// GlyphName returns the name of glyph g from table 'post'. Glyph 0 is named
// '.notdef' if the font does not name it otherwise. Name '.notdef' is
// reserved for glyph 0; any other glyph carrying it counts as unnamed, as
// post format 2 tables use name index 0 for glyphs without a name.
func (otf *Font) GlyphName(g GlyphIndex) (string, bool) {
	if post, err := otf.Post(); err == nil && post != nil {
		if name, ok := post.GlyphName(g); ok && (g == 0 || name != NotdefGlyphName) {
			return name, true
		}
	}
	if g == 0 {
		return NotdefGlyphName, true
	}
	return "", false
}
