package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/fontmin"
	"github.com/npillmayer/fontmin/internal/fonttest"
	"github.com/npillmayer/fontmin/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/sfnt"
)

func testIntp(t *testing.T) *Intp {
	t.Helper()
	f, err := fontmin.ParseOpenTypeFont(fonttest.Composite().Binary())
	require.NoError(t, err)
	return &Intp{font: f, otf: f.OT.Clone()}
}

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	op, err := parseCommand("path A 24")
	require.NoError(t, err)
	assert.Equal(t, Op{code: PATH, arg: "A", format: "24"}, *op)
	op, err = parseCommand("MINIFY  Hello World ")
	require.NoError(t, err)
	assert.Equal(t, Op{code: MINIFY, arg: "Hello World"}, *op)
	op, err = parseCommand("info extra")
	require.NoError(t, err)
	assert.Equal(t, Op{code: INFO}, *op)
	op, err = parseCommand("frobnicate")
	require.NoError(t, err)
	assert.Equal(t, HELP, op.code)
	_, err = parseCommand("   ")
	assert.Error(t, err)
}

func TestParseRune(t *testing.T) {
	for in, want := range map[string]rune{"A": 'A', "Ä": 'Ä', "U+00C4": 'Ä', "u+41": 'A'} {
		r, err := parseRune(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, r, in)
	}
	for _, in := range []string{"", "AB", "U+XYZ", "U+110000"} {
		_, err := parseRune(in)
		assert.Error(t, err, in)
	}
}

func TestTableTag(t *testing.T) {
	assert.Equal(t, ot.T("cvt "), tableTag("cvt"))
	assert.Equal(t, ot.T("head"), tableTag("head"))
}

func TestInspectCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	intp := testIntp(t)
	for _, line := range []string{"info", "tables", "table head", "table cmap", "glyph Ä", "path A 12", "help", "help minify"} {
		op, err := parseCommand(line)
		require.NoError(t, err)
		err, quit := intp.execute(op)
		assert.NoError(t, err, line)
		assert.False(t, quit, line)
	}
	require.NotNil(t, intp.table)
	assert.Equal(t, ot.T("cmap"), intp.table.Tag())

	err, _ := intp.execute(&Op{code: TABLE, arg: "GSUB"})
	assert.Error(t, err)
	err, quit := intp.execute(&Op{code: QUIT})
	assert.NoError(t, err)
	assert.True(t, quit)
	err, _ = (&Intp{}).execute(&Op{code: INFO})
	assert.ErrorIs(t, err, ErrNoFont)
}

func TestCompositePath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	intp := testIntp(t)
	g, err := intp.glyphFor("Ä")
	require.NoError(t, err)
	require.True(t, g.IsComposite)
	cmds, err := glyphPath(intp.otf, g, 0, 0, 1000, 0)
	require.NoError(t, err)
	require.Len(t, cmds, 14, "triangle and two boxes")
	assert.Equal(t, "M 20 0", cmds[0].String())
	assert.Equal(t, "M 190 -800", cmds[4].String(), "dieresis is shifted by 150")
}

func TestMinifyAndSave(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	intp := testIntp(t)
	err, _ := intp.execute(&Op{code: MINIFY, arg: "Ä?"})
	require.NoError(t, err)
	require.NotNil(t, intp.stats)
	assert.Equal(t, 4, intp.stats.Glyphs)
	assert.Equal(t, []rune{'?'}, intp.stats.Missing)

	path := filepath.Join(t.TempDir(), "min.ttf")
	err, _ = intp.execute(&Op{code: SAVE, arg: path})
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	sf, err := sfnt.Parse(data)
	require.NoError(t, err)
	assert.Equal(t, 4, sf.NumGlyphs())

	err, _ = intp.execute(&Op{code: RESET})
	require.NoError(t, err)
	assert.Nil(t, intp.stats)
	n, _ := intp.otf.NumGlyphs()
	assert.Equal(t, 6, n)

	err, _ = intp.execute(&Op{code: MINIFY})
	assert.Error(t, err)
	err, _ = intp.execute(&Op{code: SAVE})
	assert.Error(t, err)
}
