/*
Package container reads and writes the SFNT container of a font: the offset
table, the table directory and the table data.

Parse turns the bytes of a font file into an ot.Font, Assemble writes an
ot.Font back to bytes, computing table checksums and the file checksum
adjustment stored in table 'head'.

Font collections (TTC) are not supported.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package container

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"
	"slices"

	"github.com/npillmayer/fontmin/ot"
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.fontmin'
func tracer() tracing.Trace {
	return tracing.Select("font.fontmin")
}

// Font types as stored in the offset table.
const (
	TypeTrueType     uint32 = 0x00010000
	TypeOpenTypeCFF  uint32 = 0x4f54544f // OTTO
	TypeAppleTrue    uint32 = 0x74727565 // true
	typeTTCollection uint32 = 0x74746366 // ttcf
)

// ChecksumMagic is the value the checksum of a complete font file has to sum
// up to, once checkSumAdjustment in table 'head' is set.
const ChecksumMagic uint32 = 0xB1B0AFBA

// FontHeader is the offset table at the start of an SFNT file.
//
// OpenType fonts that contain TrueType outlines should use the value of 0x00010000
// for the FontType. OpenType fonts containing CFF data (version 1 or 2) should
// use 0x4F54544F ('OTTO', when re-interpreted as a Tag).
// The Apple specification for TrueType fonts allows for 'true' and 'typ1',
// but these version tags should not be used for OpenType fonts.
type FontHeader struct {
	FontType   uint32
	TableCount uint16
}

// TableRecord is an entry of the table directory.
type TableRecord struct {
	Tag      ot.Tag
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// errFontFormat produces user level errors for font parsing.
func errFontFormat(table ot.Tag, section, issue string, offset uint32) error {
	return ot.FontError{
		Table:    table,
		Section:  section,
		Issue:    issue,
		Severity: ot.SeverityCritical,
		Offset:   offset,
		Err:      ot.ErrFontFormat,
	}
}

// Parse parses the table directory of an SFNT font and creates an ot.Font
// from it. font is copied once; the tables of the font are views onto this
// copy.
//
// Table checksums are verified, but mismatches are only traced, as many
// fonts in the wild carry wrong checksums.
func Parse(font []byte) (*ot.Font, error) {
	h, records, err := ParseDirectory(font)
	if err != nil {
		return nil, err
	}
	tracer().Debugf("header = %v, tag = %x|%s", h, h.FontType, ot.Tag(h.FontType).String())
	font = slices.Clone(font)
	entries := make([]ot.TableEntry, 0, len(records))
	for _, rec := range records {
		data := font[rec.Offset : rec.Offset+rec.Length : rec.Offset+rec.Length]
		if rec.Tag != ot.T("head") {
			if sum := Checksum(data); sum != rec.Checksum {
				tracer().Infof("table %s: checksum %08x, directory states %08x", rec.Tag, sum, rec.Checksum)
			}
		}
		entries = append(entries, ot.TableEntry{Tag: rec.Tag, Data: data})
	}
	return ot.NewFont(entries), nil
}

// ParseDirectory reads the offset table and the table records of an SFNT
// font, checking that every table lies within font.
func ParseDirectory(font []byte) (FontHeader, []TableRecord, error) {
	// https://www.microsoft.com/typography/otspec/otff.htm: Offset Table is 12 bytes.
	r := bytes.NewReader(font)
	h := FontHeader{}
	if err := binary.Read(r, binary.BigEndian, &h); err != nil {
		return h, nil, errFontFormat(0, "header", err.Error(), 0)
	}
	switch h.FontType {
	case TypeTrueType, TypeOpenTypeCFF, TypeAppleTrue:
	case typeTTCollection:
		return h, nil, errFontFormat(0, "header", "font collections are not supported", 0)
	default:
		return h, nil, errFontFormat(0, "header", fmt.Sprintf("font type not supported: %x", h.FontType), 0)
	}
	// "The Offset Table is followed immediately by the Table Record entries …
	// sorted in ascending order by tag", 16 bytes each.
	size := 12 + 16*int(h.TableCount)
	if size > len(font) {
		return h, nil, errFontFormat(0, "tableRecords", "table record entries exceed font data", 12)
	}
	records := make([]TableRecord, 0, h.TableCount)
	for b, prevTag := font[12:size], ot.Tag(0); len(b) > 0; b = b[16:] {
		rec := TableRecord{
			Tag:      ot.MakeTag(b[:4]),
			Checksum: binary.BigEndian.Uint32(b[4:]),
			Offset:   binary.BigEndian.Uint32(b[8:]),
			Length:   binary.BigEndian.Uint32(b[12:]),
		}
		if rec.Tag < prevTag {
			tracer().Infof("table directory not sorted: %s follows %s", rec.Tag, prevTag)
		}
		prevTag = rec.Tag
		if rec.Offset&3 != 0 { // "all tables must begin on four byte boundries".
			return h, nil, errFontFormat(rec.Tag, "offset", "invalid table offset", rec.Offset)
		}
		end := uint64(rec.Offset) + uint64(rec.Length)
		if end > uint64(len(font)) {
			return h, nil, errFontFormat(rec.Tag, "bounds",
				fmt.Sprintf("bounds [%d:%d] exceed font size %d", rec.Offset, end, len(font)), rec.Offset)
		}
		records = append(records, rec)
	}
	return h, records, nil
}

// Checksum computes the checksum of a table: the sum of its big-endian
// uint32 words, with the last word padded with zeros.
func Checksum(b []byte) uint32 {
	var sum uint32
	for len(b) >= 4 {
		sum += binary.BigEndian.Uint32(b)
		b = b[4:]
	}
	if len(b) > 0 {
		var last [4]byte
		copy(last[:], b)
		sum += binary.BigEndian.Uint32(last[:])
	}
	return sum
}

func padding(n int) int {
	return (4 - n&3) & 3
}

// Assemble writes the tables of otf to an SFNT binary. Tables are stored in
// ascending tag order, each starting on a four byte boundary.
//
// checkSumAdjustment in table 'head' is set to the value required for the
// complete file; this changes the head table of otf.
func Assemble(otf *ot.Font) ([]byte, error) {
	entries := otf.Entries()
	if len(entries) == 0 {
		return nil, errFontFormat(0, "tables", "font has no tables", 0)
	}
	if len(entries) > math.MaxUint16 {
		return nil, errFontFormat(0, "tables", "too many tables", 0)
	}
	slices.SortFunc(entries, func(a, b ot.TableEntry) int {
		switch {
		case a.Tag < b.Tag:
			return -1
		case a.Tag > b.Tag:
			return 1
		}
		return 0
	})
	head, err := otf.Head()
	if err != nil {
		return nil, err
	}
	if head != nil {
		head.SetCheckSumAdjustment(0)
	}
	fontType := TypeTrueType
	if otf.Has(ot.T("CFF ")) || otf.Has(ot.T("CFF2")) {
		fontType = TypeOpenTypeCFF
	}
	numTables := uint16(len(entries))
	entrySelector := uint16(bits.Len16(numTables) - 1)
	searchRange := uint16(1) << (entrySelector + 4)
	size := 12 + 16*len(entries)
	for _, e := range entries {
		size += len(e.Data) + padding(len(e.Data))
	}
	if size > math.MaxUint32 {
		return nil, errFontFormat(0, "tables", "font exceeds 4 GB", 0)
	}
	out := make([]byte, 12+16*len(entries), size)
	binary.BigEndian.PutUint32(out[0:], fontType)
	binary.BigEndian.PutUint16(out[4:], numTables)
	binary.BigEndian.PutUint16(out[6:], searchRange)
	binary.BigEndian.PutUint16(out[8:], entrySelector)
	binary.BigEndian.PutUint16(out[10:], numTables<<4-searchRange)
	headOffset := -1
	for i, e := range entries {
		offset := len(out)
		if e.Tag == ot.T("head") {
			headOffset = offset
		}
		out = append(out, e.Data...)
		out = append(out, make([]byte, padding(len(e.Data)))...)
		rec := out[12+16*i:]
		binary.BigEndian.PutUint32(rec[0:], uint32(e.Tag))
		binary.BigEndian.PutUint32(rec[4:], Checksum(e.Data))
		binary.BigEndian.PutUint32(rec[8:], uint32(offset))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(e.Data)))
	}
	if headOffset >= 0 && head != nil {
		adjustment := ChecksumMagic - Checksum(out)
		head.SetCheckSumAdjustment(adjustment)
		binary.BigEndian.PutUint32(out[headOffset+8:], adjustment)
	}
	tracer().Debugf("assembled font with %d tables, %d bytes", numTables, len(out))
	return out, nil
}
