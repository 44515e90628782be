package ot

import (
	"fmt"
	"time"
)

// TableEntry is an entry of a font's table directory.
type TableEntry struct {
	Tag  Tag
	Data []byte
}

// Font represents an SFNT font as an ordered directory of tables.
//
// Tables are materialized on first access and cached. A Font owns the bytes
// of its tables; tables handed out by a Font are views onto these bytes and
// writes to them change the font. Tables are replaced with Set and removed
// with Delete; the directory order of existing tables is preserved.
//
// A Font is not safe for concurrent use. Use Clone to hand out independent
// copies to concurrent workers.
type Font struct {
	entries []TableEntry
	cache   map[Tag]Table
}

// NewFont creates a font from a table directory. The font takes ownership
// of the entries' bytes.
func NewFont(entries []TableEntry) *Font {
	f := &Font{
		entries: make([]TableEntry, 0, len(entries)),
		cache:   make(map[Tag]Table, len(entries)),
	}
	for _, e := range entries {
		if f.indexOf(e.Tag) >= 0 {
			tracer().Errorf("font directory contains table %s twice, ignoring second entry", e.Tag)
			continue
		}
		f.entries = append(f.entries, e)
	}
	return f
}

func (otf *Font) indexOf(tag Tag) int {
	for i, e := range otf.entries {
		if e.Tag == tag {
			return i
		}
	}
	return -1
}

// Table returns the font table for a given tag. If the font does not contain
// a table for tag, Table returns nil and no error; many tables legitimately
// do not exist in a given font.
//
// Table will return at least a RawTable for each table contained in the font,
// i.e. no table information will be dropped. An error is returned if a table
// type is registered for tag but the table's bytes do not fit it.
//
// For example to receive the `loca` table, clients may call
//
//	t, err := otf.Table(ot.T("loca"))
//	loca := t.Self().AsLoca()
func (otf *Font) Table(tag Tag) (Table, error) {
	if t, ok := otf.cache[tag]; ok {
		return t, nil
	}
	i := otf.indexOf(tag)
	if i < 0 {
		return nil, nil
	}
	t, err := materialize(tag, otf.entries[i].Data)
	if err != nil {
		return nil, fmt.Errorf("table %s: %w", tag, err)
	}
	otf.cache[tag] = t
	return t, nil
}

// Has reports whether the font contains a table for tag.
func (otf *Font) Has(tag Tag) bool {
	return otf.indexOf(tag) >= 0
}

// Set stores a table under tag, replacing an existing table. The directory
// entry for tag will refer to the table's bytes from now on. Tables with a
// tag not yet contained in the font are appended to the directory.
// Setting a nil table is equivalent to Delete.
func (otf *Font) Set(tag Tag, t Table) {
	if t == nil {
		otf.Delete(tag)
		return
	}
	otf.cache[tag] = t
	if i := otf.indexOf(tag); i >= 0 {
		otf.entries[i].Data = t.Binary()
		return
	}
	otf.entries = append(otf.entries, TableEntry{Tag: tag, Data: t.Binary()})
}

// Delete removes the table for tag from the font, if present.
func (otf *Font) Delete(tag Tag) {
	delete(otf.cache, tag)
	if i := otf.indexOf(tag); i >= 0 {
		otf.entries = append(otf.entries[:i], otf.entries[i+1:]...)
	}
}

// Clone returns a deep copy of the font. Changes to the clone will never
// affect the original font, and vice versa.
func (otf *Font) Clone() *Font {
	entries := make([]TableEntry, len(otf.entries))
	for i, e := range otf.entries {
		data := make([]byte, len(e.Data))
		copy(data, e.Data)
		entries[i] = TableEntry{Tag: e.Tag, Data: data}
	}
	return NewFont(entries)
}

// TableTags returns a list of tags, one for each table contained in the font,
// in directory order.
func (otf *Font) TableTags() []Tag {
	tags := make([]Tag, len(otf.entries))
	for i, e := range otf.entries {
		tags[i] = e.Tag
	}
	return tags
}

// Entries returns the table directory of the font, in directory order.
// The entries' bytes are shared with the font.
func (otf *Font) Entries() []TableEntry {
	entries := make([]TableEntry, len(otf.entries))
	copy(entries, otf.entries)
	return entries
}

// --- Typed access ----------------------------------------------------------

func typedTable[T Table](otf *Font, tag Tag) (T, error) {
	var zero T
	t, err := otf.Table(tag)
	if err != nil || t == nil {
		return zero, err
	}
	tt, ok := t.(T)
	if !ok {
		return zero, errFontFormat(tag, "type", fmt.Sprintf("table is of type %T", t))
	}
	return tt, nil
}

// Head returns the head table, or nil if the font has none.
func (otf *Font) Head() (*HeadTable, error) { return typedTable[*HeadTable](otf, T("head")) }

// MaxP returns the maxp table, or nil if the font has none.
func (otf *Font) MaxP() (*MaxPTable, error) { return typedTable[*MaxPTable](otf, T("maxp")) }

// HHea returns the hhea table, or nil if the font has none.
func (otf *Font) HHea() (*HHeaTable, error) { return typedTable[*HHeaTable](otf, T("hhea")) }

// VHea returns the vhea table, or nil if the font has none.
func (otf *Font) VHea() (*VHeaTable, error) { return typedTable[*VHeaTable](otf, T("vhea")) }

// HMtx returns the hmtx table, or nil if the font has none.
func (otf *Font) HMtx() (*HMtxTable, error) { return typedTable[*HMtxTable](otf, T("hmtx")) }

// VMtx returns the vmtx table, or nil if the font has none.
func (otf *Font) VMtx() (*VMtxTable, error) { return typedTable[*VMtxTable](otf, T("vmtx")) }

// Loca returns the loca table, or nil if the font has none.
func (otf *Font) Loca() (*LocaTable, error) { return typedTable[*LocaTable](otf, T("loca")) }

// Glyf returns the glyf table, or nil if the font has none.
func (otf *Font) Glyf() (*GlyfTable, error) { return typedTable[*GlyfTable](otf, T("glyf")) }

// CMap returns the cmap table, or nil if the font has none.
func (otf *Font) CMap() (*CMapTable, error) { return typedTable[*CMapTable](otf, T("cmap")) }

// Post returns the post table, or nil if the font has none.
func (otf *Font) Post() (*PostTable, error) { return typedTable[*PostTable](otf, T("post")) }

// Name returns the name table, or nil if the font has none.
func (otf *Font) Name() (*NameTable, error) { return typedTable[*NameTable](otf, T("name")) }

// --- Font level properties -------------------------------------------------

// UnitsPerEm returns the size of the em square in font units, or 1000 if it
// cannot be read from table 'head'.
func (otf *Font) UnitsPerEm() uint16 {
	if head, err := otf.Head(); err == nil && head != nil && head.UnitsPerEm() > 0 {
		return head.UnitsPerEm()
	}
	return 1000
}

// Ascender returns the typographic ascender from table 'hhea', or 0.
func (otf *Font) Ascender() int16 {
	if hhea, err := otf.HHea(); err == nil && hhea != nil {
		return hhea.Ascender()
	}
	return 0
}

// Descender returns the typographic descender from table 'hhea', or 0.
func (otf *Font) Descender() int16 {
	if hhea, err := otf.HHea(); err == nil && hhea != nil {
		return hhea.Descender()
	}
	return 0
}

// Created returns the creation date of the font, or the zero time.
func (otf *Font) Created() time.Time {
	if head, err := otf.Head(); err == nil && head != nil {
		return head.Created()
	}
	return time.Time{}
}

// Modified returns the modification date of the font, or the zero time.
func (otf *Font) Modified() time.Time {
	if head, err := otf.Head(); err == nil && head != nil {
		return head.Modified()
	}
	return time.Time{}
}

// NumGlyphs returns the number of glyphs as stated by table 'maxp'.
func (otf *Font) NumGlyphs() (int, error) {
	maxp, err := otf.MaxP()
	if err != nil {
		return 0, err
	}
	if maxp == nil {
		return 0, MissingTableError(T("maxp"), "NumGlyphs")
	}
	return int(maxp.NumGlyphs()), nil
}
