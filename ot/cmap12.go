package ot

import (
	"fmt"
	"slices"
)

// CMapSegment is a group of a cmap subtable of format 12: a maximal run of
// code-points c (StartCharCode ≤ c ≤ EndCharCode), mapping to glyph
// StartGlyphID + (c − StartCharCode).
type CMapSegment struct {
	StartCharCode uint32
	EndCharCode   uint32
	StartGlyphID  uint32
}

var (
	cmap12HeaderLayout = NewLayout("cmap12", []FieldDef{
		{"format", Uint16},
		{"reserved", Uint16},
		{"length", Uint32},
		{"language", Uint32},
		{"numGroups", Uint32},
	})
	cmap12GroupLayout = NewLayout("cmap12.group", []FieldDef{
		{"startCharCode", Uint32},
		{"endCharCode", Uint32},
		{"startGlyphID", Uint32},
	})
)

// This value is arbitrary, but defends against parsing malicious font
// files causing excessive memory allocations. For reference, Adobe's
// SourceHanSansSC-Regular.otf has 65535 glyphs and:
//   - its format-4  cmap table has  1581 segments.
//   - its format-12 cmap table has 16498 segments.
const maxCMapSegments = 65536

// CMapFormat12 is a cmap subtable of format 12 (segmented coverage).
// See https://docs.microsoft.com/en-us/typography/opentype/spec/cmap#format-12-segmented-coverage
type CMapFormat12 struct {
	Record // the 16-byte header
	data   binarySegm
}

// NewCMapFormat12 interprets b as a cmap subtable of format 12.
// b has to contain the header and all groups.
func NewCMapFormat12(b []byte) (*CMapFormat12, error) {
	hdr, err := NewRecord(cmap12HeaderLayout, b)
	if err != nil {
		return nil, err
	}
	if format := hdr.Uint("format"); format != 12 {
		return nil, errFontFormat(T("cmap"), "format12", fmt.Sprintf("subtable has format %d", format))
	}
	n := hdr.Uint("numGroups")
	if n > maxCMapSegments {
		return nil, errFontFormat(T("cmap"), "format12", fmt.Sprintf("more than %d cmap segments not supported", maxCMapSegments))
	}
	size := cmap12HeaderLayout.Size() + int(n)*cmap12GroupLayout.Size()
	if len(b) < size {
		return nil, errTruncated(T("cmap"), "format12", size, len(b))
	}
	return &CMapFormat12{Record: hdr, data: b[:size:size]}, nil
}

// Binary returns the bytes of the subtable.
func (c *CMapFormat12) Binary() []byte {
	return c.data
}

// Groups returns the segments of the subtable, in the order they are stored.
func (c *CMapFormat12) Groups() []CMapSegment {
	n := int(c.Uint("numGroups"))
	groups := make([]CMapSegment, n)
	gsize := cmap12GroupLayout.Size()
	for i := range n {
		// bounds have been checked by NewCMapFormat12
		g, _ := NewRecordAt(cmap12GroupLayout, c.data, cmap12HeaderLayout.Size()+i*gsize, gsize)
		groups[i] = CMapSegment{
			StartCharCode: g.Uint("startCharCode"),
			EndCharCode:   g.Uint("endCharCode"),
			StartGlyphID:  g.Uint("startGlyphID"),
		}
	}
	return groups
}

// GlyphIndexMap expands the groups of the subtable to a map from code-points
// to glyph indices. A subtable without groups results in an empty map.
//
// Groups mapping code-points beyond glyph index 0xFFFF are rejected with an
// error wrapping ErrGlyphIndexOverflow, as glyph indices would wrap around to
// the reserved glyph 0.
func (c *CMapFormat12) GlyphIndexMap() (map[rune]GlyphIndex, error) {
	m := make(map[rune]GlyphIndex)
	for i, g := range c.Groups() {
		if g.EndCharCode < g.StartCharCode || g.EndCharCode > 0x10FFFF {
			return nil, errFontFormat(T("cmap"), "format12",
				fmt.Sprintf("group %d has illegal range [%#x, %#x]", i, g.StartCharCode, g.EndCharCode))
		}
		if uint64(g.StartGlyphID)+uint64(g.EndCharCode-g.StartCharCode) > 0xFFFF {
			return nil, FontError{
				Table:    T("cmap"),
				Section:  "format12",
				Issue:    fmt.Sprintf("group %d maps beyond glyph 0xFFFF", i),
				Severity: SeverityCritical,
				Err:      ErrGlyphIndexOverflow,
			}
		}
		for cp := g.StartCharCode; cp <= g.EndCharCode; cp++ {
			m[rune(cp)] = GlyphIndex(g.StartGlyphID + cp - g.StartCharCode)
		}
	}
	return m, nil
}

// SegmentsFromMap computes the minimal list of segments for a map from
// code-points to glyph indices, in ascending code-point order. A segment is
// extended as long as both the code-point and the glyph index increase by
// exactly one.
func SegmentsFromMap(m map[rune]GlyphIndex) ([]CMapSegment, error) {
	codepoints := make([]rune, 0, len(m))
	for r := range m {
		if r < 0 || r > 0x10FFFF {
			return nil, errFontFormat(T("cmap"), "format12", fmt.Sprintf("illegal code-point %#x", r))
		}
		codepoints = append(codepoints, r)
	}
	slices.Sort(codepoints)
	var segments []CMapSegment
	for i, r := range codepoints {
		c, g := uint32(r), uint32(m[r])
		if i > 0 {
			cur := &segments[len(segments)-1]
			// glyph indices are compared as uint32: 0xFFFF is never followed by 0
			if c == cur.EndCharCode+1 && g == cur.StartGlyphID+(cur.EndCharCode-cur.StartCharCode)+1 {
				cur.EndCharCode = c
				continue
			}
		}
		segments = append(segments, CMapSegment{StartCharCode: c, EndCharCode: c, StartGlyphID: g})
	}
	return segments, nil
}

// EncodeCMapFormat12 creates a cmap subtable of format 12 from a map of
// code-points to glyph indices. The subtable has language 0.
func EncodeCMapFormat12(m map[rune]GlyphIndex) (*CMapFormat12, error) {
	segments, err := SegmentsFromMap(m)
	if err != nil {
		return nil, err
	}
	size := cmap12HeaderLayout.Size() + len(segments)*cmap12GroupLayout.Size()
	b := make([]byte, size)
	hdr, err := NewRecord(cmap12HeaderLayout, b)
	if err != nil {
		return nil, err
	}
	hdr.SetUint("format", 12)
	hdr.SetUint("length", uint32(size))
	hdr.SetUint("numGroups", uint32(len(segments)))
	gsize := cmap12GroupLayout.Size()
	for i, s := range segments {
		g, err := NewRecordAt(cmap12GroupLayout, b, cmap12HeaderLayout.Size()+i*gsize, gsize)
		if err != nil {
			return nil, err
		}
		g.SetUint("startCharCode", s.StartCharCode)
		g.SetUint("endCharCode", s.EndCharCode)
		g.SetUint("startGlyphID", s.StartGlyphID)
	}
	return &CMapFormat12{Record: hdr, data: b}, nil
}
