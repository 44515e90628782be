package fontload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/fontmin/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFont(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fonttest.ttf")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestLoadFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	data := fonttest.Simple().Binary()
	path := writeFont(t, data)
	f, err := LoadOpenTypeFont(path)
	require.NoError(t, err)
	assert.Equal(t, "Fonttest Regular", f.Fontname)
	assert.Equal(t, path, f.Filepath)
	assert.Equal(t, data, f.Binary)
	assert.Equal(t, 4, f.SFNT.NumGlyphs())

	_, err = LoadOpenTypeFont(filepath.Join(t.TempDir(), "missing.ttf"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = LoadOpenTypeFont(writeFont(t, []byte("not a font at all")))
	assert.Error(t, err)
}

func TestResolveByPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	f := fonttest.Latin()
	f.FamilyName = "Located"
	path := writeFont(t, f.Binary())
	p, err := Locate(path)
	require.NoError(t, err)
	assert.Equal(t, path, p)
	sf, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "Located Regular", sf.Fontname)
}

func TestLocateUnknownFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	_, err := Locate("no-such-font-4f1c9d.ttf")
	assert.Error(t, err)
	_, err = Resolve("no-such-font-4f1c9d.ttf")
	assert.Error(t, err)
}
