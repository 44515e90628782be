package ot

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// --- Tag -------------------------------------------------------------------

// Tag is defined by the OpenType spec as:
// Array of four uint8s (length = 32 bits) used to identify a table, design-variation axis,
// script, language system, feature, or baseline
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
// If b is shorter or longer, it will be silently extended or cut as appropriate
//
//	MakeTag([]byte("cmap"))
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// --- Table -----------------------------------------------------------------

// Table represents one of the tables of an SFNT font.
//
// Tables minification has to rebuild are interpreted by concrete types:
// 'head', 'maxp', 'hhea', 'vhea', 'hmtx', 'vmtx', 'loca', 'glyf', 'cmap',
// 'post' and 'name'. Every other table is represented by a RawTable.
// Clients may register their own table types with RegisterTableType.
type Table interface {
	Tag() Tag        // the tag this table has been created for
	Binary() []byte  // the bytes of this table
	Self() TableSelf // reference to itself
}

// tableBase is a common parent for all kinds of tables.
type tableBase struct {
	data binarySegm // a table is a slice of font data
	name Tag        // 4-byte name as an integer
	self any
}

// Tag returns the tag of this table.
func (tb *tableBase) Tag() Tag {
	return tb.name
}

// Binary returns the bytes of this table. The bytes are shared with the font
// the table belongs to.
func (tb *tableBase) Binary() []byte {
	return tb.data
}

func (tb *tableBase) Self() TableSelf {
	return TableSelf{tableBase: tb}
}

// RawTable is a table with no interpretation of its bytes.
type RawTable struct {
	tableBase
}

// NewRawTable creates an uninterpreted table over b.
func NewRawTable(tag Tag, b []byte) *RawTable {
	t := &RawTable{tableBase{data: b, name: tag}}
	t.self = t
	return t
}

// TableSelf is a reference to a table. Its primary use is for converting
// a generic table to a concrete table flavour, and for reproducing the
// name tag of a table.
type TableSelf struct {
	tableBase *tableBase
}

// NameTag returns the 4-letter name of a table.
func (tself TableSelf) NameTag() Tag {
	if tself.tableBase == nil {
		return 0
	}
	return tself.tableBase.name
}

func safeSelf(tself TableSelf) any {
	if tself.tableBase == nil || tself.tableBase.self == nil {
		return TableSelf{}
	}
	return tself.tableBase.self
}

func as[T any](tself TableSelf) T {
	t, _ := safeSelf(tself).(T)
	return t
}

// AsHead returns this table as a head table, or nil.
func (tself TableSelf) AsHead() *HeadTable { return as[*HeadTable](tself) }

// AsMaxP returns this table as a maxp table, or nil.
func (tself TableSelf) AsMaxP() *MaxPTable { return as[*MaxPTable](tself) }

// AsHHea returns this table as a hhea table, or nil.
func (tself TableSelf) AsHHea() *HHeaTable { return as[*HHeaTable](tself) }

// AsVHea returns this table as a vhea table, or nil.
func (tself TableSelf) AsVHea() *VHeaTable { return as[*VHeaTable](tself) }

// AsHMtx returns this table as a hmtx table, or nil.
func (tself TableSelf) AsHMtx() *HMtxTable { return as[*HMtxTable](tself) }

// AsVMtx returns this table as a vmtx table, or nil.
func (tself TableSelf) AsVMtx() *VMtxTable { return as[*VMtxTable](tself) }

// AsLoca returns this table as a loca table, or nil.
func (tself TableSelf) AsLoca() *LocaTable { return as[*LocaTable](tself) }

// AsGlyf returns this table as a glyf table, or nil.
func (tself TableSelf) AsGlyf() *GlyfTable { return as[*GlyfTable](tself) }

// AsCMap returns this table as a cmap table, or nil.
func (tself TableSelf) AsCMap() *CMapTable { return as[*CMapTable](tself) }

// AsPost returns this table as a post table, or nil.
func (tself TableSelf) AsPost() *PostTable { return as[*PostTable](tself) }

// AsName returns this table as a name table, or nil.
func (tself TableSelf) AsName() *NameTable { return as[*NameTable](tself) }

// AsRaw returns this table as an uninterpreted table, or nil.
func (tself TableSelf) AsRaw() *RawTable { return as[*RawTable](tself) }
