package ot

var (
	nameHeaderLayout = NewLayout("name", []FieldDef{
		{"version", Uint16},
		{"count", Uint16},
		{"storageOffset", Uint16},
	})
	nameRecordLayout = NewLayout("name.record", []FieldDef{
		{"platformID", Uint16},
		{"encodingID", Uint16},
		{"languageID", Uint16},
		{"nameID", Uint16},
		{"length", Uint16},
		{"stringOffset", Uint16},
	})
)

// NameRecord is an entry of table 'name'. Its string is encoded as
// determined by platform and encoding.
type NameRecord struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Value      []byte // raw string bytes, a view onto the table
}

// NameTable allows multilingual strings to be associated with the font.
// Decoding of the strings is left to clients (see package otquery).
// See https://docs.microsoft.com/en-us/typography/opentype/spec/name
type NameTable struct {
	tableBase
	Record
}

func newNameTable(tag Tag, b []byte) (Table, error) {
	rec, err := NewRecord(nameHeaderLayout, b)
	if err != nil {
		return nil, err
	}
	t := &NameTable{tableBase: tableBase{data: b, name: tag}, Record: rec}
	t.self = t
	return t, nil
}

// Records returns the name records of the table. Records pointing outside
// the table are skipped.
func (t *NameTable) Records() []NameRecord {
	count := int(t.Uint("count"))
	storage := int(t.Uint("storageOffset"))
	rsize := nameRecordLayout.Size()
	records := make([]NameRecord, 0, count)
	for i := range count {
		r, err := NewRecordAt(nameRecordLayout, t.data, nameHeaderLayout.Size()+i*rsize, rsize)
		if err != nil {
			tracer().Debugf("name record section out of bounds: count=%d", count)
			break
		}
		value, err := t.data.view(storage+int(r.Uint("stringOffset")), int(r.Uint("length")))
		if err != nil {
			tracer().Debugf("name record %d: string out of bounds", i)
			continue
		}
		records = append(records, NameRecord{
			PlatformID: uint16(r.Uint("platformID")),
			EncodingID: uint16(r.Uint("encodingID")),
			LanguageID: uint16(r.Uint("languageID")),
			NameID:     uint16(r.Uint("nameID")),
			Value:      value,
		})
	}
	return records
}
