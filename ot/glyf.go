package ot

import (
	"fmt"
	"math"
)

// LocaTable stores the offsets to the locations of the glyphs in the font,
// relative to the beginning of the glyph data table.
// By definition, index zero points to the "missing character", which is the
// character that appears if a character is not found in the font.
//
// Offsets are either 16 bit (in units of 2 bytes) or 32 bit, depending on
// field indexToLocFormat of table 'head'. The format is not part of the loca
// table itself and has to be passed in by clients.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/loca
type LocaTable struct {
	tableBase
}

func newLocaTable(tag Tag, b []byte) (Table, error) {
	t := &LocaTable{tableBase{data: b, name: tag}}
	t.self = t
	return t, nil
}

// NewLocaTable creates a loca table in long format (indexToLocFormat = 1).
func NewLocaTable(offsets []uint32) *LocaTable {
	b := make([]byte, 0, 4*len(offsets))
	for _, o := range offsets {
		b = appendU32(b, o)
	}
	t, _ := newLocaTable(T("loca"), b)
	return t.(*LocaTable)
}

// Len returns the number of offsets in the table. This is the number of
// glyphs plus one.
func (t *LocaTable) Len(long bool) int {
	if long {
		return len(t.data) / 4
	}
	return len(t.data) / 2
}

// Offset returns the i-th offset into table 'glyf'.
func (t *LocaTable) Offset(i int, long bool) (uint32, error) {
	if long {
		o, err := t.data.u32(4 * i)
		if err != nil {
			return 0, errTruncated(t.name, "offsets", 4*i+4, len(t.data))
		}
		return o, nil
	}
	o, err := t.data.u16(2 * i)
	if err != nil {
		return 0, errTruncated(t.name, "offsets", 2*i+2, len(t.data))
	}
	return uint32(o) * 2, nil
}

// Offsets returns all offsets into table 'glyf'.
func (t *LocaTable) Offsets(long bool) []uint32 {
	n := t.Len(long)
	offsets := make([]uint32, n)
	for i := range n {
		offsets[i], _ = t.Offset(i, long)
	}
	return offsets
}

// LocaOffsets computes the offsets of a loca table for outlines stored
// consecutively in a glyf table: one offset per outline plus the end offset.
// If the outlines exceed 4 GB, an error wrapping ErrFontFormat is returned.
func LocaOffsets(outlines [][]byte) ([]uint32, error) {
	offsets := make([]uint32, 1, len(outlines)+1)
	var end uint32
	for i, o := range outlines {
		if uint64(len(o)) > math.MaxUint32 {
			return nil, errFontFormat(T("glyf"), fmt.Sprintf("glyph %d", i), "outline exceeds 4 GB")
		}
		var err error
		if end, err = checkedAddUint32(end, uint32(len(o))); err != nil {
			return nil, errFontFormat(T("glyf"), fmt.Sprintf("glyph %d", i), err.Error())
		}
		offsets = append(offsets, end)
	}
	return offsets, nil
}

// GlyfTable contains the outline data of glyphs with TrueType outlines.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/glyf
type GlyfTable struct {
	tableBase
}

func newGlyfTable(tag Tag, b []byte) (Table, error) {
	t := &GlyfTable{tableBase{data: b, name: tag}}
	t.self = t
	return t, nil
}

// NewGlyfTable creates a glyf table by concatenating outline data.
func NewGlyfTable(outlines [][]byte) *GlyfTable {
	size := 0
	for _, o := range outlines {
		size += len(o)
	}
	b := make([]byte, 0, size)
	for _, o := range outlines {
		b = append(b, o...)
	}
	t, _ := newGlyfTable(T("glyf"), b)
	return t.(*GlyfTable)
}

// GlyphData returns the outline bytes for glyph g, as located by loca.
// The bytes returned are a view onto the table's bytes. Glyphs without an
// outline, such as the space character, have no bytes.
func (t *GlyfTable) GlyphData(loca *LocaTable, long bool, g GlyphIndex) ([]byte, error) {
	if int(g)+1 >= loca.Len(long) {
		return nil, errFontFormat(T("loca"), "offsets", fmt.Sprintf("glyph %d out of range", g))
	}
	start, err := loca.Offset(int(g), long)
	if err != nil {
		return nil, err
	}
	end, err := loca.Offset(int(g)+1, long)
	if err != nil {
		return nil, err
	}
	if start > end || end > uint32(len(t.data)) {
		return nil, errFontFormat(t.name, fmt.Sprintf("glyph %d", g),
			fmt.Sprintf("outline range [%d:%d] exceeds table size %d", start, end, len(t.data)))
	}
	return t.data[start:end:end], nil
}

// GlyphData returns the outline bytes for glyph g, using tables 'head',
// 'loca' and 'glyf'.
func (otf *Font) GlyphData(g GlyphIndex) ([]byte, error) {
	head, err := otf.Head()
	if err != nil {
		return nil, err
	}
	loca, err := otf.Loca()
	if err != nil {
		return nil, err
	}
	glyf, err := otf.Glyf()
	if err != nil {
		return nil, err
	}
	switch {
	case head == nil:
		return nil, MissingTableError(T("head"), "glyph data")
	case loca == nil:
		return nil, MissingTableError(T("loca"), "glyph data")
	case glyf == nil:
		return nil, MissingTableError(T("glyf"), "glyph data")
	}
	return glyf.GlyphData(loca, head.IndexToLocFormat() == 1, g)
}
