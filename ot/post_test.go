package ot

import (
	"testing"

	"github.com/npillmayer/fontmin/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestMacGlyphNames(t *testing.T) {
	if len(macGlyphNames) != 258 {
		t.Fatalf("expected 258 standard Macintosh glyph names, have %d", len(macGlyphNames))
	}
	for i, name := range map[int]string{0: ".notdef", 1: ".null", 3: "space", 15: "comma", 36: "A", 68: "a", 93: "z", 257: "dcroat"} {
		if macGlyphNames[i] != name {
			t.Errorf("expected standard glyph name %d to be %q, is %q", i, name, macGlyphNames[i])
		}
	}
}

func postHeader(version uint32) []byte {
	b := make([]byte, postLayout.Size())
	putU32(b, version)
	return b
}

func TestPostVersions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	tbl, err := newPostTable(T("post"), postHeader(PostVersion1))
	if err != nil {
		t.Fatal(err)
	}
	post := tbl.Self().AsPost()
	if name, ok := post.GlyphName(36); !ok || name != "A" {
		t.Errorf("expected post 1.0 glyph 36 to be 'A', is %q", name)
	}

	b := postHeader(PostVersion25)
	b = appendU16(b, 3)
	b = append(b, 0, 35, 66)
	tbl, _ = newPostTable(T("post"), b)
	post = tbl.Self().AsPost()
	for g, want := range []string{".notdef", "A", "a"} {
		if name, ok := post.GlyphName(GlyphIndex(g)); !ok || name != want {
			t.Errorf("expected post 2.5 glyph %d to be %q, is %q", g, want, name)
		}
	}
	if _, ok := post.GlyphName(3); ok {
		t.Errorf("expected glyph 3 beyond post 2.5 table to have no name")
	}

	post = NewPostTableFormat3(12)
	if post.Version() != PostVersion3 || post.Uint("maxMemType1") != 12 {
		t.Errorf("expected post 3.0 table, have version %x", post.Version())
	}
	if _, ok := post.GlyphName(0); ok {
		t.Errorf("expected post 3.0 to have no glyph names")
	}
}

func TestPostVersion2(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	b := postHeader(PostVersion2)
	b = appendU16(b, 4)
	for _, ni := range []uint16{0, 258, 68, 259} {
		b = appendU16(b, ni)
	}
	b = append(b, 4, 'A', 'r', 'i', 'n')
	tbl, _ := newPostTable(T("post"), b)
	post := tbl.Self().AsPost()
	for g, want := range map[GlyphIndex]string{0: ".notdef", 1: "Arin", 2: "a"} {
		if name, ok := post.GlyphName(g); !ok || name != want {
			t.Errorf("expected post 2.0 glyph %d to be %q, is %q", g, want, name)
		}
	}
	if _, ok := post.GlyphName(3); ok {
		t.Errorf("expected glyph 3 with dangling name index to have no name")
	}

	truncated := append(postHeader(PostVersion2), 0, 9, 0)
	tbl, _ = newPostTable(T("post"), truncated)
	if _, ok := tbl.Self().AsPost().GlyphName(0); ok {
		t.Errorf("expected truncated post table to yield no names")
	}
}

func TestFontGlyphName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	f := fonttest.Simple()
	otf := testFont(t, f)
	if name, _ := otf.GlyphName(3); name != "space" {
		t.Errorf("expected glyph 3 to be named 'space', is %q", name)
	}
	f.PostNames = false
	otf = testFont(t, f)
	if name, ok := otf.GlyphName(0); !ok || name != NotdefGlyphName {
		t.Errorf("expected glyph 0 to default to .notdef, is %q", name)
	}
	if _, ok := otf.GlyphName(1); ok {
		t.Errorf("expected glyph 1 to have no name without post names")
	}
	f = fonttest.Simple()
	f.PostNames = true
	f.Glyphs[1].Name = NotdefGlyphName
	otf = testFont(t, f)
	if name, ok := otf.GlyphName(1); ok {
		t.Errorf("expected '.notdef' on glyph 1 to count as unnamed, is %q", name)
	}
	g, err := otf.Glyph(1)
	if err != nil {
		t.Fatal(err)
	}
	if g.Unicode != 'A' {
		t.Errorf("expected unnamed glyph 1 to keep code-point 'A', has %v", g.Unicodes)
	}
}
