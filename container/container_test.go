package container

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/npillmayer/fontmin/internal/fonttest"
	"github.com/npillmayer/fontmin/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/sfnt"
)

func TestParse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	f := fonttest.Simple()
	data := f.Binary()
	otf, err := Parse(data)
	require.NoError(t, err)
	tables := f.Tables()
	require.Len(t, otf.TableTags(), len(tables))
	for i, e := range otf.Entries() {
		assert.Equal(t, ot.T(tables[i].Tag), e.Tag)
		got := e.Data
		if e.Tag == ot.T("head") {
			// the fixture leaves checkSumAdjustment zero, Binary patches it
			got = bytes.Clone(e.Data)
			binary.BigEndian.PutUint32(got[8:], 0)
		}
		assert.Equal(t, tables[i].Data, got, "table %s", e.Tag)
	}
	head, err := otf.Head()
	require.NoError(t, err)
	orig := bytes.Clone(data)
	head.SetCheckSumAdjustment(0)
	assert.Equal(t, orig, data, "changing the font must not change the input")
}

func TestAssembleRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	data := fonttest.Composite().Binary()
	otf, err := Parse(data)
	require.NoError(t, err)
	out, err := Assemble(otf)
	require.NoError(t, err)
	assert.Equal(t, data, out)
	assert.Equal(t, ChecksumMagic, Checksum(out))

	again, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, otf.TableTags(), again.TableTags())
	for i, e := range otf.Entries() {
		assert.True(t, bytes.Equal(e.Data, again.Entries()[i].Data), "table %s", e.Tag)
	}
}

func TestAssembleDirectory(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	otf := ot.NewFont([]ot.TableEntry{
		{Tag: ot.T("zzzz"), Data: []byte{1, 2, 3}},
		{Tag: ot.T("aaaa"), Data: []byte{1, 2, 3, 4, 5}},
		{Tag: ot.T("mmmm"), Data: nil},
	})
	out, err := Assemble(otf)
	require.NoError(t, err)
	h, records, err := ParseDirectory(out)
	require.NoError(t, err)
	assert.Equal(t, FontHeader{FontType: TypeTrueType, TableCount: 3}, h)
	assert.Equal(t, []byte{0, 32, 0, 1, 0, 16}, out[6:12], "searchRange, entrySelector, rangeShift")
	require.Len(t, records, 3)
	assert.Equal(t, []ot.Tag{ot.T("aaaa"), ot.T("mmmm"), ot.T("zzzz")},
		[]ot.Tag{records[0].Tag, records[1].Tag, records[2].Tag})
	for _, rec := range records {
		assert.Zero(t, rec.Offset%4, "table %s must be 4-byte aligned", rec.Tag)
	}
	assert.Equal(t, uint32(5), records[0].Length)
	assert.Equal(t, uint32(0x01020304+0x05000000), records[0].Checksum)
	assert.Equal(t, len(out), int(records[2].Offset)+4, "last table padded")

	_, err = Assemble(ot.NewFont(nil))
	assert.True(t, errors.Is(err, ot.ErrFontFormat))
}

func TestChecksum(t *testing.T) {
	assert.Equal(t, uint32(0), Checksum(nil))
	assert.Equal(t, uint32(0x01000000), Checksum([]byte{1}))
	assert.Equal(t, uint32(0x00000002), Checksum([]byte{0xff, 0xff, 0xff, 0xff, 0, 0, 0, 3}), "sum wraps around")
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	data := fonttest.Simple().Binary()
	tests := []struct {
		name  string
		patch func(b []byte) []byte
	}{
		{"short header", func(b []byte) []byte { return b[:8] }},
		{"collection", func(b []byte) []byte { copy(b, "ttcf"); return b }},
		{"unknown type", func(b []byte) []byte { copy(b, "wOFF"); return b }},
		{"directory truncated", func(b []byte) []byte { return b[:20] }},
		{"table out of bounds", func(b []byte) []byte {
			binary.BigEndian.PutUint32(b[12+12:], uint32(len(b)))
			return b
		}},
		{"misaligned table", func(b []byte) []byte {
			binary.BigEndian.PutUint32(b[12+8:], binary.BigEndian.Uint32(b[12+8:])+1)
			return b
		}},
	}
	for _, tt := range tests {
		b := tt.patch(bytes.Clone(data))
		_, err := Parse(b)
		assert.True(t, errors.Is(err, ot.ErrFontFormat), "%s: have %v", tt.name, err)
	}
	b := bytes.Clone(data)
	copy(b, "OTTO")
	_, err := Parse(b)
	assert.NoError(t, err, "CFF flavoured fonts are accepted")
}

func TestFonttestParsesWithXImage(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	for _, f := range []*fonttest.Font{fonttest.Simple(), fonttest.Composite(), {
		Glyphs:     fonttest.Simple().Glyphs,
		CMapFormat: 12,
		ShortLoca:  true,
		Vertical:   true,
	}} {
		sf, err := sfnt.Parse(f.Binary())
		require.NoError(t, err)
		var buf sfnt.Buffer
		gi, err := sf.GlyphIndex(&buf, 'A')
		require.NoError(t, err)
		assert.Equal(t, sfnt.GlyphIndex(1), gi)
		name, err := sf.Name(&buf, sfnt.NameIDFamily)
		require.NoError(t, err)
		assert.Equal(t, "Fonttest", name)
	}
}
