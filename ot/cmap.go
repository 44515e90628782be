package ot

import (
	"fmt"
	"slices"
)

// CMapTable represents an OpenType cmap table, i.e. the table to receive glyphs
// from code-points.
//
// See https://docs.microsoft.com/de-de/typography/opentype/spec/cmap
type CMapTable struct {
	tableBase
	Record                    // version and numTables
	records  []EncodingRecord // encoding records, as found in the font
	selected int              // index of the encoding record in use, or -1
	mapping  map[rune]GlyphIndex
}

// EncodingRecord is an entry of the cmap table header, pointing to a subtable
// for a platform and encoding.
type EncodingRecord struct {
	PlatformID uint16
	EncodingID uint16
	Offset     uint32
	Format     uint16
}

var (
	cmapHeaderLayout = NewLayout("cmap", []FieldDef{
		{"version", Uint16},
		{"numTables", Uint16},
	})
	cmapEncodingLayout = NewLayout("cmap.encoding", []FieldDef{
		{"platformID", Uint16},
		{"encodingID", Uint16},
		{"subtableOffset", Uint32},
	})
)

// Platform IDs and Platform Specific IDs as per
// https://www.microsoft.com/typography/otspec/name.htm
const (
	pidUnicode   = 0
	pidMacintosh = 1
	pidWindows   = 3

	psidUnicode2BMPOnly        = 3
	psidUnicode2FullRepertoire = 4
	psidMacintoshRoman         = 0
	psidWindowsSymbol          = 0
	psidWindowsUCS2            = 1
	psidWindowsUCS4            = 10
)

func newCMapTable(tag Tag, b []byte) (Table, error) {
	hdr, err := NewRecord(cmapHeaderLayout, b)
	if err != nil {
		return nil, err
	}
	t := &CMapTable{
		tableBase: tableBase{data: b, name: tag},
		Record:    hdr,
		selected:  -1,
	}
	t.self = t
	n := int(hdr.Uint("numTables"))
	esize := cmapEncodingLayout.Size()
	best := 0
	for i := range n {
		rec, err := NewRecordAt(cmapEncodingLayout, b, cmapHeaderLayout.Size()+i*esize, esize)
		if err != nil {
			return nil, err
		}
		er := EncodingRecord{
			PlatformID: uint16(rec.Uint("platformID")),
			EncodingID: uint16(rec.Uint("encodingID")),
			Offset:     rec.Uint("subtableOffset"),
		}
		format, err := t.data.u16(int(er.Offset))
		if err != nil {
			return nil, errFontFormat(tag, "encodingRecord",
				fmt.Sprintf("subtable offset %d out of bounds", er.Offset))
		}
		er.Format = format
		t.records = append(t.records, er)
		if score := subtablePreference(er); score > best {
			best, t.selected = score, i
		}
	}
	if t.selected < 0 {
		tracer().Infof("cmap contains no supported Unicode subtable")
	} else {
		er := t.records[t.selected]
		tracer().Debugf("cmap uses subtable platform=%d encoding=%d format=%d", er.PlatformID, er.EncodingID, er.Format)
	}
	return t, nil
}

// subtablePreference ranks a subtable; 0 means unusable. Full-repertoire
// format 12 subtables are preferred over BMP-only format 4 subtables, which
// in turn are preferred over the byte/trimmed formats.
//
// Note that FontForge may generate a bogus Platform Specific ID (value 10)
// for the Unicode Platform ID (value 0). See
// https://github.com/fontforge/fontforge/issues/2728
func subtablePreference(er EncodingRecord) int {
	unicode := er.PlatformID == pidUnicode ||
		(er.PlatformID == pidWindows && (er.EncodingID == psidWindowsUCS2 || er.EncodingID == psidWindowsUCS4))
	switch er.Format {
	case 12:
		if unicode {
			return 4
		}
	case 4:
		if unicode || (er.PlatformID == pidWindows && er.EncodingID == psidWindowsSymbol) {
			return 3
		}
	case 6:
		if unicode {
			return 2
		}
	case 0:
		if unicode || (er.PlatformID == pidMacintosh && er.EncodingID == psidMacintoshRoman) {
			return 1
		}
	}
	return 0
}

// EncodingRecords returns the encoding records of the table.
func (t *CMapTable) EncodingRecords() []EncodingRecord {
	return slices.Clone(t.records)
}

// Selected returns the encoding record used for mapping code-points.
func (t *CMapTable) Selected() (EncodingRecord, bool) {
	if t.selected < 0 {
		return EncodingRecord{}, false
	}
	return t.records[t.selected], true
}

// GlyphIndexMap returns the mapping from code-points to glyph indices of the
// preferred Unicode subtable. Code-points mapping to glyph 0 are left out.
// The map is decoded on first use and must not be modified by clients.
func (t *CMapTable) GlyphIndexMap() (map[rune]GlyphIndex, error) {
	if t.mapping != nil {
		return t.mapping, nil
	}
	if t.selected < 0 {
		t.mapping = map[rune]GlyphIndex{}
		return t.mapping, nil
	}
	er := t.records[t.selected]
	sub := t.data[er.Offset:]
	var m map[rune]GlyphIndex
	var err error
	switch er.Format {
	case 0:
		m, err = decodeCMapFormat0(sub)
	case 4:
		m, err = decodeCMapFormat4(sub)
	case 6:
		m, err = decodeCMapFormat6(sub)
	case 12:
		var c *CMapFormat12
		if c, err = NewCMapFormat12(sub); err == nil {
			m, err = c.GlyphIndexMap()
		}
	}
	if err != nil {
		return nil, err
	}
	for r, g := range m {
		if g == 0 {
			delete(m, r)
		}
	}
	t.mapping = m
	return m, nil
}

// Lookup returns the glyph index for a code-point, or 0 if the code-point
// is not mapped.
//
// From the OpenType specification: character codes that do not correspond to any glyph in
// the font should be mapped to glyph index 0. The glyph at this location must be a special
// glyph representing a missing character, commonly known as '.notdef'.
func (t *CMapTable) Lookup(r rune) GlyphIndex {
	m, err := t.GlyphIndexMap()
	if err != nil {
		tracer().Errorf("cmap: %v", err)
		return 0
	}
	return m[r]
}

// NewCMapTable creates a cmap table with a single subtable of format 12,
// referenced from two encoding records: Unicode full repertoire (0, 4) and
// Windows UCS-4 (3, 10).
func NewCMapTable(m map[rune]GlyphIndex) (*CMapTable, error) {
	sub, err := EncodeCMapFormat12(m)
	if err != nil {
		return nil, err
	}
	const headerSize = 4 + 2*8
	b := make([]byte, 0, headerSize+len(sub.Binary()))
	b = appendU16(b, 0) // version
	b = appendU16(b, 2) // numTables
	for _, enc := range [][2]uint16{
		{pidUnicode, psidUnicode2FullRepertoire},
		{pidWindows, psidWindowsUCS4},
	} {
		b = appendU16(b, enc[0])
		b = appendU16(b, enc[1])
		b = appendU32(b, headerSize)
	}
	b = append(b, sub.Binary()...)
	t, err := newCMapTable(T("cmap"), b)
	if err != nil {
		return nil, err
	}
	return t.(*CMapTable), nil
}

// --- Subtable decoders -----------------------------------------------------

// Format 0: Byte encoding table.
func decodeCMapFormat0(b binarySegm) (map[rune]GlyphIndex, error) {
	glyphs, err := b.view(6, 256)
	if err != nil {
		return nil, errTruncated(T("cmap"), "format0", 6+256, len(b))
	}
	m := make(map[rune]GlyphIndex, 256)
	for c, g := range glyphs {
		m[rune(c)] = GlyphIndex(g)
	}
	return m, nil
}

// Format 4: Segment mapping to delta values
// This is the standard character-to-glyph-index mapping subtable for fonts that support
// only Unicode Basic Multilingual Plane characters (U+0000 to U+FFFF).
//
// The format-dependent data is divided into three parts, which must occur in the following
// order:
// - A four-word header gives parameters for an optimized search of the segment list;
// - Four parallel arrays describe the segments (one segment for each contiguous range of codes);
// - A variable-length array of glyph IDs (unsigned words).
type cmapEntry16 struct {
	end, start, delta, offset uint16
}

func decodeCMapFormat4(b binarySegm) (map[rune]GlyphIndex, error) {
	const headerSize = 14
	if len(b) < headerSize {
		return nil, errTruncated(T("cmap"), "format4", headerSize, len(b))
	}
	if length := int(u16(b[2:])); length < len(b) {
		b = b[:length]
	}
	segCount := u16(b[6:])
	if segCount&1 != 0 {
		return nil, errFontFormat(T("cmap"), "format4", "illegal segment count")
	}
	segCount /= 2
	eLength, err := checkedMulInt(8, int(segCount))
	if err != nil {
		return nil, errFontFormat(T("cmap"), "format4", err.Error())
	}
	segmentsData, err := b.view(headerSize, eLength+2)
	if err != nil {
		return nil, errTruncated(T("cmap"), "format4", headerSize+eLength+2, len(b))
	}
	n := int(segCount)
	entries := make([]cmapEntry16, n)
	for i := range entries {
		entries[i] = cmapEntry16{
			end:    u16(segmentsData[0*n+0+2*i:]),
			start:  u16(segmentsData[2*n+2+2*i:]),
			delta:  u16(segmentsData[4*n+2+2*i:]),
			offset: u16(segmentsData[6*n+2+2*i:]),
		}
	}
	// idRangeOffset values are relative to their own position in the table
	rangeOffsetBase := headerSize + 6*n + 2
	m := make(map[rune]GlyphIndex)
	for i, e := range entries {
		if e.start > e.end {
			continue
		}
		for c := uint32(e.start); c <= uint32(e.end); c++ {
			if c == 0xFFFF {
				break
			}
			var g uint16
			if e.offset == 0 {
				g = uint16(c) + e.delta
			} else {
				at := rangeOffsetBase + 2*i + int(e.offset) + 2*int(c-uint32(e.start))
				x, err := b.u16(at)
				if err != nil {
					return nil, errFontFormat(T("cmap"), "format4",
						fmt.Sprintf("glyph id array index %d out of bounds", at))
				}
				if x != 0 {
					g = x + e.delta
				}
			}
			if g != 0 {
				m[rune(c)] = GlyphIndex(g)
			}
		}
	}
	return m, nil
}

// Format 6: Trimmed table mapping.
func decodeCMapFormat6(b binarySegm) (map[rune]GlyphIndex, error) {
	const headerSize = 10
	if len(b) < headerSize {
		return nil, errTruncated(T("cmap"), "format6", headerSize, len(b))
	}
	first, count := int(u16(b[6:])), int(u16(b[8:]))
	glyphs, err := b.view(headerSize, 2*count)
	if err != nil {
		return nil, errTruncated(T("cmap"), "format6", headerSize+2*count, len(b))
	}
	m := make(map[rune]GlyphIndex, count)
	for i := range count {
		m[rune(first+i)] = GlyphIndex(u16(glyphs[2*i:]))
	}
	return m, nil
}

// --- Font level character mapping ------------------------------------------

// CharToGlyphIndex returns the glyph index for a code-point. Code-points not
// contained in the font's cmap map to glyph 0 ('.notdef').
func (otf *Font) CharToGlyphIndex(r rune) GlyphIndex {
	cmap, err := otf.CMap()
	if err != nil || cmap == nil {
		return 0
	}
	return cmap.Lookup(r)
}

// TextToGlyphIndexes maps each code-point of text to a glyph index.
func (otf *Font) TextToGlyphIndexes(text string) []GlyphIndex {
	indexes := make([]GlyphIndex, 0, len(text))
	for _, r := range text {
		indexes = append(indexes, otf.CharToGlyphIndex(r))
	}
	return indexes
}

// CodePointsForGlyph returns all code-points mapping to glyph g, ascending.
func (otf *Font) CodePointsForGlyph(g GlyphIndex) []rune {
	cmap, err := otf.CMap()
	if err != nil || cmap == nil {
		return nil
	}
	m, err := cmap.GlyphIndexMap()
	if err != nil {
		return nil
	}
	var runes []rune
	for r, gl := range m {
		if gl == g {
			runes = append(runes, r)
		}
	}
	slices.Sort(runes)
	return runes
}
