package ot

import (
	"fmt"
	"math"
	"time"
)

// FieldType is the binary type of a record field.
type FieldType uint8

// Field types used by SFNT tables. All values are stored big-endian.
const (
	Uint8        FieldType = iota + 1 // uint8
	Int8                              // int8
	Uint16                            // uint16
	Int16                             // int16, also FWORD
	Uint32                            // uint32, also Offset32 and version numbers
	Int32                             // int32
	Fixed                             // 32-bit signed fixed-point number (16.16)
	LongDateTime                      // seconds since 1904-01-01T00:00:00Z, int64
)

// Size returns the number of bytes a field of type ft occupies.
func (ft FieldType) Size() int {
	switch ft {
	case Uint8, Int8:
		return 1
	case Uint16, Int16:
		return 2
	case Uint32, Int32, Fixed:
		return 4
	case LongDateTime:
		return 8
	}
	return 0
}

func (ft FieldType) String() string {
	switch ft {
	case Uint8:
		return "uint8"
	case Int8:
		return "int8"
	case Uint16:
		return "uint16"
	case Int16:
		return "int16"
	case Uint32:
		return "uint32"
	case Int32:
		return "int32"
	case Fixed:
		return "Fixed"
	case LongDateTime:
		return "LONGDATETIME"
	}
	return fmt.Sprintf("FieldType(%d)", uint8(ft))
}

// FieldDef declares a field of a record layout.
type FieldDef struct {
	Name string
	Type FieldType
}

// Field is a field of a record layout, positioned at a fixed byte offset.
type Field struct {
	Name   string
	Type   FieldType
	Offset int
}

// Layout is the binary layout of a record type: a named, ordered list of
// fields. Fields are positioned one after the other, in declaration order,
// thus they never overlap.
//
// Layouts are created once, usually as package level variables, and are
// immutable afterwards.
type Layout struct {
	name   string
	fields []Field
	index  map[string]int
	size   int
}

// NewLayout creates a layout from a list of field declarations. Reserved
// areas have to be declared as fields as well.
//
// NewLayout panics for duplicate field names or unknown field types, as these
// are programming errors.
func NewLayout(name string, defs []FieldDef) *Layout {
	l := &Layout{
		name:   name,
		fields: make([]Field, 0, len(defs)),
		index:  make(map[string]int, len(defs)),
	}
	for _, d := range defs {
		if _, dup := l.index[d.Name]; dup {
			panic(fmt.Sprintf("layout %s: duplicate field %q", name, d.Name))
		}
		if d.Type.Size() == 0 {
			panic(fmt.Sprintf("layout %s: field %q has illegal type %d", name, d.Name, d.Type))
		}
		l.index[d.Name] = len(l.fields)
		l.fields = append(l.fields, Field{Name: d.Name, Type: d.Type, Offset: l.size})
		l.size += d.Type.Size()
	}
	return l
}

// Name returns the name of the layout, e.g. "head".
func (l *Layout) Name() string {
	return l.name
}

// Size returns the number of bytes a record of this layout occupies.
func (l *Layout) Size() int {
	return l.size
}

// Fields returns the fields of the layout in declaration order.
func (l *Layout) Fields() []Field {
	f := make([]Field, len(l.fields))
	copy(f, l.fields)
	return f
}

// Field returns the field for a name.
func (l *Layout) Field(name string) (Field, bool) {
	if i, ok := l.index[name]; ok {
		return l.fields[i], true
	}
	return Field{}, false
}

func (l *Layout) field(name string, types ...FieldType) Field {
	i, ok := l.index[name]
	if !ok {
		panic(fmt.Sprintf("layout %s has no field %q", l.name, name))
	}
	f := l.fields[i]
	for _, t := range types {
		if f.Type == t {
			return f
		}
	}
	panic(fmt.Sprintf("layout %s: field %q is of type %s", l.name, name, f.Type))
}

// --- Records ---------------------------------------------------------------

// Record is a view onto bytes, interpreting them according to a layout.
// A record does not hold a copy of its bytes: writes go directly to the
// underlying buffer and are visible to every other view of the same bytes.
//
// The zero value is not usable; records are created with NewRecord or
// NewRecordAt.
type Record struct {
	layout *Layout
	buf    binarySegm
}

// NewRecord creates a record with a given layout over buf. buf may be longer
// than the layout requires; if it is shorter, an error wrapping
// ErrTruncatedBuffer is returned.
func NewRecord(layout *Layout, buf []byte) (Record, error) {
	return NewRecordAt(layout, buf, 0, len(buf))
}

// NewRecordAt creates a record with a given layout over length bytes of buf,
// starting at offset. If the range is out of bounds for buf or shorter than
// the layout requires, an error wrapping ErrTruncatedBuffer is returned.
func NewRecordAt(layout *Layout, buf []byte, offset, length int) (Record, error) {
	if offset < 0 || length < 0 || offset > len(buf) || length > len(buf)-offset {
		return Record{}, FontError{
			Section:  layout.name,
			Issue:    fmt.Sprintf("range [%d:+%d] out of bounds for %d bytes", offset, length, len(buf)),
			Severity: SeverityCritical,
			Err:      ErrTruncatedBuffer,
		}
	}
	if length < layout.size {
		return Record{}, errTruncated(0, layout.name, layout.size, length)
	}
	return Record{
		layout: layout,
		buf:    binarySegm(buf[offset : offset+length : offset+length]),
	}, nil
}

// Layout returns the layout of the record.
func (r Record) Layout() *Layout {
	return r.layout
}

// Bytes returns the bytes the record has been created over.
func (r Record) Bytes() []byte {
	return r.buf
}

// Uint returns the value of an unsigned integer field.
func (r Record) Uint(name string) uint32 {
	f := r.layout.field(name, Uint8, Uint16, Uint32)
	b := r.buf[f.Offset:]
	switch f.Type {
	case Uint8:
		return uint32(b[0])
	case Uint16:
		return uint32(u16(b))
	}
	return u32(b)
}

// SetUint stores v in an unsigned integer field, truncating it to the
// field's width.
func (r Record) SetUint(name string, v uint32) {
	f := r.layout.field(name, Uint8, Uint16, Uint32)
	b := r.buf[f.Offset:]
	switch f.Type {
	case Uint8:
		b[0] = byte(v)
	case Uint16:
		putU16(b, uint16(v))
	default:
		putU32(b, v)
	}
}

// Int returns the value of a signed integer field.
func (r Record) Int(name string) int32 {
	f := r.layout.field(name, Int8, Int16, Int32)
	b := r.buf[f.Offset:]
	switch f.Type {
	case Int8:
		return int32(int8(b[0]))
	case Int16:
		return int32(int16(u16(b)))
	}
	return int32(u32(b))
}

// SetInt stores v in a signed integer field, truncating it to the field's
// width.
func (r Record) SetInt(name string, v int32) {
	f := r.layout.field(name, Int8, Int16, Int32)
	b := r.buf[f.Offset:]
	switch f.Type {
	case Int8:
		b[0] = byte(int8(v))
	case Int16:
		putU16(b, uint16(int16(v)))
	default:
		putU32(b, uint32(v))
	}
}

// Fixed returns the value of a 16.16 fixed-point field.
func (r Record) Fixed(name string) float64 {
	f := r.layout.field(name, Fixed)
	return float64(int32(u32(r.buf[f.Offset:]))) / 65536
}

// SetFixed stores v in a 16.16 fixed-point field, rounding to the nearest
// representable value.
func (r Record) SetFixed(name string, v float64) {
	f := r.layout.field(name, Fixed)
	putU32(r.buf[f.Offset:], uint32(int32(math.Round(v*65536))))
}

// secondsFrom1904To1970 is the offset between the SFNT epoch and the Unix epoch.
const secondsFrom1904To1970 = 2082844800

// Date returns the value of a LONGDATETIME field, in UTC.
func (r Record) Date(name string) time.Time {
	f := r.layout.field(name, LongDateTime)
	secs := int64(u64(r.buf[f.Offset:]))
	return time.Unix(secs-secondsFrom1904To1970, 0).UTC()
}

// SetDate stores t in a LONGDATETIME field, with a resolution of seconds.
func (r Record) SetDate(name string, t time.Time) {
	f := r.layout.field(name, LongDateTime)
	putU64(r.buf[f.Offset:], uint64(t.Unix()+secondsFrom1904To1970))
}

// Value returns the value of a field as uint32, int32, float64 (Fixed)
// or time.Time (LONGDATETIME).
func (r Record) Value(f Field) any {
	switch f.Type {
	case Uint8, Uint16, Uint32:
		return r.Uint(f.Name)
	case Int8, Int16, Int32:
		return r.Int(f.Name)
	case Fixed:
		return r.Fixed(f.Name)
	}
	return r.Date(f.Name)
}
