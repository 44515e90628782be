package ot

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLayout = NewLayout("test", []FieldDef{
	{"version", Uint16},
	{"flags", Uint8},
	{"delta", Int8},
	{"revision", Fixed},
	{"ascender", Int16},
	{"length", Uint32},
	{"offset", Int32},
	{"created", LongDateTime},
})

func TestLayout(t *testing.T) {
	assert.Equal(t, 2+1+1+4+2+4+4+8, testLayout.Size())
	assert.Equal(t, "test", testLayout.Name())
	f, ok := testLayout.Field("ascender")
	require.True(t, ok)
	assert.Equal(t, 8, f.Offset)
	assert.Equal(t, Int16, f.Type)
	_, ok = testLayout.Field("descender")
	assert.False(t, ok)
	assert.Len(t, testLayout.Fields(), 8)
	assert.Panics(t, func() {
		NewLayout("dup", []FieldDef{{"a", Uint16}, {"a", Uint16}})
	})
	assert.Panics(t, func() {
		NewLayout("bad", []FieldDef{{"a", FieldType(0)}})
	})
}

func TestRecordAccess(t *testing.T) {
	buf := make([]byte, testLayout.Size())
	rec, err := NewRecord(testLayout, buf)
	require.NoError(t, err)
	rec.SetUint("version", 0x0102)
	rec.SetUint("flags", 0x1ff) // truncated
	rec.SetInt("delta", -3)
	rec.SetFixed("revision", 1.5)
	rec.SetInt("ascender", -200)
	rec.SetUint("length", 0xdeadbeef)
	rec.SetInt("offset", -70000)
	when := time.Date(2021, 3, 4, 5, 6, 7, 0, time.UTC)
	rec.SetDate("created", when)

	assert.Equal(t, []byte{0x01, 0x02, 0xff, 0xfd, 0x00, 0x01, 0x80, 0x00}, buf[:8])
	assert.Equal(t, uint32(0x0102), rec.Uint("version"))
	assert.Equal(t, uint32(0xff), rec.Uint("flags"))
	assert.Equal(t, int32(-3), rec.Int("delta"))
	assert.Equal(t, 1.5, rec.Fixed("revision"))
	assert.Equal(t, int32(-200), rec.Int("ascender"))
	assert.Equal(t, uint32(0xdeadbeef), rec.Uint("length"))
	assert.Equal(t, int32(-70000), rec.Int("offset"))
	assert.True(t, when.Equal(rec.Date("created")))
	f, _ := testLayout.Field("ascender")
	assert.Equal(t, int32(-200), rec.Value(f))

	// records are views: a second record over the same bytes sees the writes
	other, err := NewRecord(testLayout, buf)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x0102), other.Uint("version"))

	assert.Panics(t, func() { rec.Uint("ascender") }, "wrong field type")
	assert.Panics(t, func() { rec.Uint("nonexistent") })
}

func TestRecordBounds(t *testing.T) {
	_, err := NewRecord(testLayout, make([]byte, testLayout.Size()-1))
	assert.True(t, errors.Is(err, ErrTruncatedBuffer))
	_, err = NewRecordAt(testLayout, make([]byte, 40), 20, 30)
	assert.True(t, errors.Is(err, ErrTruncatedBuffer))
	_, err = NewRecordAt(testLayout, make([]byte, 40), -1, 26)
	assert.True(t, errors.Is(err, ErrTruncatedBuffer))
	rec, err := NewRecordAt(testLayout, make([]byte, 40), 10, 26)
	require.NoError(t, err)
	assert.Len(t, rec.Bytes(), 26)
	assert.Equal(t, testLayout, rec.Layout())
}

func TestFixedRounding(t *testing.T) {
	rec, err := NewRecord(testLayout, make([]byte, testLayout.Size()))
	require.NoError(t, err)
	rec.SetFixed("revision", -0.25)
	assert.Equal(t, -0.25, rec.Fixed("revision"))
	rec.SetFixed("revision", 1.0/3)
	assert.InDelta(t, 1.0/3, rec.Fixed("revision"), 1.0/65536)
}
