package ot

// maxp version 0.5 is used by fonts with CFF outlines and contains the glyph
// count only; version 1.0 adds the limits for TrueType outlines.
var (
	maxpLayout05 = NewLayout("maxp", []FieldDef{
		{"version", Uint32},
		{"numGlyphs", Uint16},
	})
	maxpLayout10 = NewLayout("maxp", []FieldDef{
		{"version", Uint32},
		{"numGlyphs", Uint16},
		{"maxPoints", Uint16},
		{"maxContours", Uint16},
		{"maxCompositePoints", Uint16},
		{"maxCompositeContours", Uint16},
		{"maxZones", Uint16},
		{"maxTwilightPoints", Uint16},
		{"maxStorage", Uint16},
		{"maxFunctionDefs", Uint16},
		{"maxInstructionDefs", Uint16},
		{"maxStackElements", Uint16},
		{"maxSizeOfInstructions", Uint16},
		{"maxComponentElements", Uint16},
		{"maxComponentDepth", Uint16},
	})
)

// MaxPTable establishes the memory requirements for this font.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/maxp
type MaxPTable struct {
	tableBase
	Record
}

func newMaxPTable(tag Tag, b []byte) (Table, error) {
	layout := maxpLayout05
	if len(b) >= 4 && u32(b) == 0x00010000 {
		layout = maxpLayout10
	}
	rec, err := NewRecord(layout, b)
	if err != nil {
		return nil, err
	}
	t := &MaxPTable{tableBase: tableBase{data: b, name: tag}, Record: rec}
	t.self = t
	return t, nil
}

// NumGlyphs returns the number of glyphs in the font.
func (t *MaxPTable) NumGlyphs() uint16 {
	return uint16(t.Uint("numGlyphs"))
}

// SetNumGlyphs sets the number of glyphs in the font.
func (t *MaxPTable) SetNumGlyphs(n uint16) {
	t.SetUint("numGlyphs", uint32(n))
}
