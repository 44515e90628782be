package ot

import (
	"testing"

	"github.com/npillmayer/fontmin/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHorizontalMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	f := fonttest.Simple()
	f.LongHMetrics = 2
	otf := testFont(t, f)
	hhea, err := otf.HHea()
	require.NoError(t, err)
	assert.Equal(t, uint16(2), hhea.NumberOfHMetrics())
	assert.Equal(t, uint16(620), hhea.AdvanceWidthMax())
	m, err := otf.HMetric(1)
	require.NoError(t, err)
	assert.Equal(t, LongMetric{Advance: 600, Bearing: 20}, m)
	m, err = otf.HMetric(2)
	require.NoError(t, err)
	assert.Equal(t, LongMetric{Advance: 600, Bearing: 60}, m, "advance of last long metric")
	hmtx, _ := otf.HMtx()
	assert.Equal(t, 4, hmtx.Len(2))
	_, err = otf.HMetric(4)
	assert.Error(t, err)
	_, ok, err := otf.VMetric(1)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestVerticalMetrics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	f := fonttest.Simple()
	f.Vertical = true
	f.Glyphs[1].VAdvance, f.Glyphs[1].TSB = 1000, 100
	otf := testFont(t, f)
	m, ok, err := otf.VMetric(1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, LongMetric{Advance: 1000, Bearing: 100}, m)
	g, err := otf.Glyph(1)
	require.NoError(t, err)
	assert.True(t, g.HasVerticalMetrics)
	assert.Equal(t, uint16(1000), g.AdvanceHeight)
}

func TestNewMetricsTables(t *testing.T) {
	metrics := []LongMetric{{500, 0}, {600, -20}}
	hmtx := NewHMtxTable(metrics)
	assert.Equal(t, []byte{0x01, 0xf4, 0, 0, 0x02, 0x58, 0xff, 0xec}, hmtx.Binary())
	m, err := hmtx.Metric(1, 2)
	require.NoError(t, err)
	assert.Equal(t, metrics[1], m)
	vmtx := NewVMtxTable(metrics)
	assert.Equal(t, T("vmtx"), vmtx.Tag())
	assert.Equal(t, 2, vmtx.Len(2))
	_, err = vmtx.Metric(0, 0)
	assert.Error(t, err)
}

func TestLocaAndGlyf(t *testing.T) {
	loca := NewLocaTable([]uint32{0, 4, 4, 10})
	assert.Equal(t, 4, loca.Len(true))
	assert.Equal(t, []uint32{0, 4, 4, 10}, loca.Offsets(true))
	glyf := NewGlyfTable([][]byte{{1, 2, 3, 4}, nil, {5, 6, 7, 8, 9, 10}})
	b, err := glyf.GlyphData(loca, true, 2)
	require.NoError(t, err)
	assert.Equal(t, []byte{5, 6, 7, 8, 9, 10}, b)
	b, err = glyf.GlyphData(loca, true, 1)
	require.NoError(t, err)
	assert.Empty(t, b)
	_, err = glyf.GlyphData(loca, true, 3)
	assert.Error(t, err)

	short, _ := newLocaTable(T("loca"), []byte{0, 0, 0, 2, 0, 5})
	assert.Equal(t, []uint32{0, 4, 10}, short.Self().AsLoca().Offsets(false))

	f := fonttest.Simple()
	f.ShortLoca = true
	otf := testFont(t, f)
	g, err := otf.Glyph(1)
	require.NoError(t, err)
	assert.Len(t, g.Commands, 4)
}

func TestLocaOffsets(t *testing.T) {
	offsets, err := LocaOffsets([][]byte{{1, 2}, nil, {3, 4, 5}})
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 2, 2, 5}, offsets)
	offsets, err = LocaOffsets(nil)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0}, offsets)
}
