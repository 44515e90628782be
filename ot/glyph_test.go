package ot

import (
	"errors"
	"testing"

	"github.com/npillmayer/fontmin/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlyphCodePointRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	g, err := NewGlyph(GlyphOptions{Name: NotdefGlyphName, Unicodes: []rune{'A'}})
	require.NoError(t, err)
	assert.False(t, g.HasUnicode(), ".notdef must not have code-points")

	g, err = NewGlyph(GlyphOptions{Index: 1, Name: NullGlyphName, Unicodes: []rune{5, 0}})
	require.NoError(t, err)
	assert.Equal(t, []rune{0, 5}, g.Unicodes)
	assert.Equal(t, rune(0), g.Unicode)
	assert.True(t, g.HasUnicode())

	g, err = NewGlyph(GlyphOptions{Index: 1, Name: NullGlyphName})
	require.NoError(t, err)
	assert.Equal(t, []rune{0}, g.Unicodes)

	_, err = NewGlyph(GlyphOptions{Index: 2, Name: "A", Unicodes: []rune{'A', 0}})
	assert.True(t, errors.Is(err, ErrInvalidGlyphDefinition), "have %v", err)

	in := []rune{'B', 'b'}
	g, err = NewGlyph(GlyphOptions{Index: 2, Name: "B", Unicodes: in})
	require.NoError(t, err)
	in[0] = 'X'
	assert.Equal(t, 'B', g.Unicode, "glyph must not share the code-point slice")
	assert.Contains(t, g.String(), "U+0042")
}

func TestSimpleGlyphOutline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	otf := testFont(t, fonttest.Simple())
	g, err := otf.Glyph(2)
	require.NoError(t, err)
	assert.Equal(t, "B", g.Name)
	assert.Equal(t, []rune{'B'}, g.Unicodes)
	assert.Equal(t, uint16(620), g.AdvanceWidth)
	assert.Equal(t, int16(60), g.LeftSideBearing)
	assert.False(t, g.IsComposite)
	assert.Equal(t, []PathCommand{
		{Kind: MoveTo, X: 60, Y: 0},
		{Kind: LineTo, X: 60, Y: 700},
		{Kind: LineTo, X: 400, Y: 700},
		{Kind: QuadTo, X1: 560, Y1: 520, X: 400, Y: 360},
		{Kind: QuadTo, X1: 560, Y1: 180, X: 400, Y: 0},
		{Kind: Close},
	}, g.Commands)

	space, err := otf.Glyph(3)
	require.NoError(t, err)
	assert.Empty(t, space.Data())
	assert.Empty(t, space.Commands)
}

func TestContourWithoutOnCurvePoints(t *testing.T) {
	pts := []outlinePoint{{0, 0, false}, {10, 0, false}, {10, 10, false}, {0, 10, false}}
	cmds := appendContour(nil, pts)
	require.Len(t, cmds, 6)
	assert.Equal(t, PathCommand{Kind: MoveTo, X: 0, Y: 5}, cmds[0])
	assert.Equal(t, PathCommand{Kind: QuadTo, X1: 0, Y1: 0, X: 5, Y: 0}, cmds[1])
	assert.Equal(t, PathCommand{Kind: QuadTo, X1: 0, Y1: 10, X: 0, Y: 5}, cmds[4])
	assert.Equal(t, Close, cmds[5].Kind)
}

func TestRepeatedPointFlags(t *testing.T) {
	data := []byte{
		0, 1, // one contour
		0, 0, 0, 0, 0, 0, 0, 0, // bounding box
		0, 3, // end point of contour
		0, 0, // no instructions
		0x39, 3, // on-curve, x and y unchanged, repeated 3 times
	}
	g, err := NewGlyph(GlyphOptions{Index: 9, Name: "dot", Data: data})
	require.NoError(t, err)
	assert.Len(t, g.Commands, 5)

	_, err = NewGlyph(GlyphOptions{Index: 9, Name: "dot", Data: data[:len(data)-1]})
	assert.True(t, errors.Is(err, ErrMalformedGlyph))
	_, err = NewGlyph(GlyphOptions{Index: 9, Name: "dot", Data: data[:8]})
	assert.True(t, errors.Is(err, ErrMalformedGlyph))
	_, err = NewGlyph(GlyphOptions{Index: 9, Name: "dot", Data: data[:11]})
	assert.True(t, errors.Is(err, ErrMalformedGlyph))
}

func TestCompositeGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	otf := testFont(t, fonttest.Composite())
	g, err := otf.Glyph(5)
	require.NoError(t, err)
	require.True(t, g.IsComposite)
	require.Len(t, g.Components, 2)
	assert.Equal(t, GlyphIndex(2), g.Components[0].GlyphIndex)
	assert.Equal(t, GlyphIndex(3), g.Components[1].GlyphIndex)
	assert.Equal(t, int16(150), g.Components[1].DX)
	assert.Equal(t, 1.0, g.Components[1].XScale)
	assert.Empty(t, g.Commands)

	err = g.RemapComponents(map[GlyphIndex]GlyphIndex{2: 1})
	assert.True(t, errors.Is(err, ErrMalformedGlyph))
	assert.Equal(t, GlyphIndex(2), g.Components[0].GlyphIndex, "failed remap must not change glyph")

	require.NoError(t, g.RemapComponents(map[GlyphIndex]GlyphIndex{2: 1, 3: 2}))
	assert.Equal(t, GlyphIndex(1), g.Components[0].GlyphIndex)
	assert.Equal(t, GlyphIndex(2), g.Components[1].GlyphIndex)
	assert.Equal(t, uint16(1), u16(g.Data()[12:]))
	assert.Equal(t, uint16(2), u16(g.Data()[20:]))
	again, err := NewGlyph(GlyphOptions{Index: 5, Name: "x", Data: g.Data()})
	require.NoError(t, err)
	assert.Equal(t, GlyphIndex(2), again.Components[1].GlyphIndex)

	orig, err := otf.GlyphData(5)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), u16(orig[12:]), "remapping must not change the font")
}

func TestScaledComponent(t *testing.T) {
	f := fonttest.Composite()
	f.Glyphs[5].Components[1].Scale = 0.5
	otf := testFont(t, f)
	g, err := otf.Glyph(5)
	require.NoError(t, err)
	assert.Equal(t, WeHaveAScale, g.Components[1].Flags&WeHaveAScale)
	assert.Equal(t, 0.5, g.Components[1].XScale)
	assert.Equal(t, 0.5, g.Components[1].YScale)
	assert.Equal(t, MoreComponents, g.Components[0].Flags&MoreComponents)
	assert.Zero(t, g.Components[1].Flags&MoreComponents)
}

func TestPathCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	otf := testFont(t, fonttest.Simple())
	g, err := otf.Glyph(1)
	require.NoError(t, err)
	cmds := g.PathCommands(10, 100, 10, PathOptions{}, otf)
	require.Len(t, cmds, 4)
	assert.Equal(t, MoveTo, cmds[0].Kind)
	assert.InDelta(t, 10.2, cmds[0].X, 1e-9)
	assert.InDelta(t, 100, cmds[0].Y, 1e-9)
	assert.InDelta(t, 13, cmds[1].X, 1e-9)
	assert.InDelta(t, 93, cmds[1].Y, 1e-9, "Y axis points down")
	assert.Equal(t, "Z", cmds[3].String())

	cmds = g.PathCommands(0, 0, 10, PathOptions{XScale: 1, YScale: 2}, nil)
	assert.InDelta(t, 300, cmds[1].X, 1e-9)
	assert.InDelta(t, -1400, cmds[1].Y, 1e-9)
	assert.Equal(t, "L 300 -1400", cmds[1].String())
}

func TestTextLayout(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	otf := testFont(t, fonttest.Simple())
	w, err := otf.AdvanceWidth("AB", 10, LayoutOptions{})
	require.NoError(t, err)
	assert.InDelta(t, 12.2, w, 1e-9)
	w, err = otf.AdvanceWidth("AB", 10, LayoutOptions{LetterSpacing: 0.1, Tracking: 500})
	require.NoError(t, err)
	assert.InDelta(t, 14.2, w, 1e-9)
	w, err = otf.AdvanceWidth("AB", 10, LayoutOptions{Tracking: 100})
	require.NoError(t, err)
	assert.InDelta(t, 14.2, w, 1e-9)

	var xs []float64
	_, err = otf.ForEachGlyph("A?", 5, 0, 10, LayoutOptions{}, func(g *Glyph, x, y float64) {
		xs = append(xs, x)
	})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{5, 11}, xs, 1e-9)

	cmds, err := otf.TextPath("A ", 0, 0, 10, LayoutOptions{})
	require.NoError(t, err)
	assert.Len(t, cmds, 4, "space has no outline")
}

func TestFontGlyphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	otf := testFont(t, fonttest.Composite())
	glyphs, err := otf.Glyphs()
	require.NoError(t, err)
	require.Len(t, glyphs, 6)
	for i, g := range glyphs {
		assert.Equal(t, GlyphIndex(i), g.Index)
	}
	assert.Equal(t, NotdefGlyphName, glyphs[0].Name)
	assert.Equal(t, 'A', glyphs[1].Unicode)
	assert.False(t, glyphs[4].HasUnicode(), "filler is not mapped")
	assert.True(t, glyphs[5].IsComposite)
	assert.Equal(t, []rune{0xC4}, glyphs[5].Unicodes)
}
