package ot

import "time"

// HeadMagicNumber is the value of field magicNumber of table 'head'.
const HeadMagicNumber = 0x5F0F3CF5

var headLayout = NewLayout("head", []FieldDef{
	{"majorVersion", Uint16},
	{"minorVersion", Uint16},
	{"fontRevision", Fixed},
	{"checkSumAdjustment", Uint32},
	{"magicNumber", Uint32},
	{"flags", Uint16},
	{"unitsPerEm", Uint16},
	{"created", LongDateTime},
	{"modified", LongDateTime},
	{"xMin", Int16},
	{"yMin", Int16},
	{"xMax", Int16},
	{"yMax", Int16},
	{"macStyle", Uint16},
	{"lowestRecPPEM", Uint16},
	{"fontDirectionHint", Int16},
	{"indexToLocFormat", Int16},
	{"glyphDataFormat", Int16},
})

// HeadTable gives global information about the font.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/head
//
// Fields without a dedicated accessor may be read and written by name, e.g.
//
//	head.Int("xMin")
//	head.SetUint("flags", 0x000b)
type HeadTable struct {
	tableBase
	Record
}

func newHeadTable(tag Tag, b []byte) (Table, error) {
	rec, err := NewRecord(headLayout, b)
	if err != nil {
		return nil, err
	}
	t := &HeadTable{tableBase: tableBase{data: b, name: tag}, Record: rec}
	t.self = t
	return t, nil
}

// UnitsPerEm returns the size of the em square; values 16 … 16384 are valid.
func (t *HeadTable) UnitsPerEm() uint16 {
	return uint16(t.Uint("unitsPerEm"))
}

// IndexToLocFormat is 0 for short loca offsets, 1 for long ones.
func (t *HeadTable) IndexToLocFormat() int16 {
	return int16(t.Int("indexToLocFormat"))
}

// SetIndexToLocFormat sets the format of the loca table.
func (t *HeadTable) SetIndexToLocFormat(format int16) {
	t.SetInt("indexToLocFormat", int32(format))
}

// CheckSumAdjustment returns the file-level checksum adjustment.
func (t *HeadTable) CheckSumAdjustment() uint32 {
	return t.Uint("checkSumAdjustment")
}

// SetCheckSumAdjustment sets the file-level checksum adjustment.
func (t *HeadTable) SetCheckSumAdjustment(v uint32) {
	t.SetUint("checkSumAdjustment", v)
}

// MagicNumber should always be HeadMagicNumber.
func (t *HeadTable) MagicNumber() uint32 {
	return t.Uint("magicNumber")
}

// SetMagicNumber sets the magic number field.
func (t *HeadTable) SetMagicNumber(v uint32) {
	t.SetUint("magicNumber", v)
}

// Created returns the creation date of the font.
func (t *HeadTable) Created() time.Time {
	return t.Date("created")
}

// Modified returns the modification date of the font.
func (t *HeadTable) Modified() time.Time {
	return t.Date("modified")
}

// SetModified sets the modification date of the font.
func (t *HeadTable) SetModified(m time.Time) {
	t.SetDate("modified", m)
}
