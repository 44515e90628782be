package ot

import (
	"bytes"
	"errors"
	"slices"
	"testing"

	"github.com/npillmayer/fontmin/internal/fonttest"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestTags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	tag := Tag(0x636d6170)
	if tag.String() != "cmap" {
		t.Errorf("expected tag 0x636d6170 to be 'cmap', is %s", tag.String())
	}
	tag = MakeTag([]byte("cmap"))
	if tag.String() != "cmap" {
		t.Errorf("expected tag MakeTag(cmap) to be 'cmap', is %s", tag.String())
	}
	tag = T("cmap")
	if tag.String() != "cmap" {
		t.Errorf("expected tag T(cmap) to be 'cmap', is %s", tag.String())
	}
}

func TestTableName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	tb := tableBase{}
	tb.name = 0x636d6170
	s := tb.Self().NameTag().String()
	if s != "cmap" {
		t.Errorf("expected table name to be cmap, is %v", s)
	}
}

func TestRegistry(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	tags := RegisteredTableTypes()
	for _, want := range []string{"cmap", "glyf", "head", "hhea", "hmtx", "loca", "maxp", "name", "post", "vhea", "vmtx"} {
		found := false
		for _, tag := range tags {
			found = found || tag == T(want)
		}
		if !found {
			t.Errorf("expected table type %s to be registered", want)
		}
	}
	for i := 1; i < len(tags); i++ {
		if tags[i-1] >= tags[i] {
			t.Fatalf("expected registered tags to be sorted, are %v", tags)
		}
	}
	if !slices.Contains(tags, T("zzzz")) {
		RegisterTableType(T("zzzz"), func(tag Tag, b []byte) (Table, error) {
			return NewRawTable(tag, append([]byte("Z"), b...)), nil
		})
	}
	tbl, err := materialize(T("zzzz"), []byte{1, 2})
	if err != nil || !bytes.Equal(tbl.Binary(), []byte{'Z', 1, 2}) {
		t.Errorf("expected registered factory to be used, have %v / %v", tbl, err)
	}
	defer func() {
		if recover() == nil {
			t.Errorf("expected duplicate registration to panic")
		}
	}()
	RegisterTableType(T("zzzz"), func(tag Tag, b []byte) (Table, error) { return nil, nil })
}

// testFont creates a font from the tables of a generated test font.
func testFont(t *testing.T, f *fonttest.Font) *Font {
	t.Helper()
	var entries []TableEntry
	for _, tbl := range f.Tables() {
		entries = append(entries, TableEntry{Tag: T(tbl.Tag), Data: tbl.Data})
	}
	return NewFont(entries)
}

func TestFontTables(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	otf := testFont(t, fonttest.Simple())
	if n, err := otf.NumGlyphs(); err != nil || n != 4 {
		t.Errorf("expected font to have 4 glyphs, has %d (%v)", n, err)
	}
	if otf.UnitsPerEm() != 1000 {
		t.Errorf("expected units per em to be 1000, is %d", otf.UnitsPerEm())
	}
	if otf.Ascender() != 800 || otf.Descender() != -200 {
		t.Errorf("expected ascender/descender 800/-200, are %d/%d", otf.Ascender(), otf.Descender())
	}
	if y := otf.Created().Year(); y != 2020 {
		t.Errorf("expected font to be created in 2020, is %d", y)
	}
	tbl, err := otf.Table(T("loca"))
	if err != nil || tbl == nil {
		t.Fatalf("expected table loca, have %v", err)
	}
	if tbl.Self().AsLoca() == nil {
		t.Errorf("expected loca table to be of type LocaTable, is %T", tbl)
	}
	if tbl.Self().AsHead() != nil {
		t.Errorf("expected loca table not to be a head table")
	}
	tbl, err = otf.Table(T("GSUB"))
	if err != nil || tbl != nil {
		t.Errorf("expected absent table to be nil without error, have %v / %v", tbl, err)
	}
	if otf.Has(T("GSUB")) || !otf.Has(T("glyf")) {
		t.Errorf("Has reports wrong table presence")
	}
}

func TestFontSetDeleteClone(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	otf := testFont(t, fonttest.Simple())
	clone := otf.Clone()
	tags := otf.TableTags()
	otf.Set(T("post"), NewPostTableFormat3(4))
	if post, _ := otf.Post(); post == nil || post.Version() != PostVersion3 {
		t.Fatalf("expected post table to be replaced")
	}
	if len(otf.TableTags()) != len(tags) {
		t.Errorf("replacing a table must not change the directory size")
	}
	otf.Set(T("XTRA"), NewRawTable(T("XTRA"), []byte{1}))
	if last := otf.TableTags()[len(tags)]; last != T("XTRA") {
		t.Errorf("expected new table to be appended, last is %s", last)
	}
	otf.Delete(T("name"))
	otf.Set(T("hmtx"), nil)
	if otf.Has(T("name")) || otf.Has(T("hmtx")) {
		t.Errorf("expected name and hmtx to be deleted")
	}
	if post, _ := clone.Post(); post == nil || post.Version() != PostVersion2 {
		t.Errorf("expected clone to be unaffected by changes to the original")
	}
	if !clone.Has(T("name")) {
		t.Errorf("expected clone to still contain name")
	}
	head, _ := otf.Head()
	head.SetCheckSumAdjustment(0x12345678)
	chead, _ := clone.Head()
	if chead.CheckSumAdjustment() == 0x12345678 {
		t.Errorf("clone shares bytes with the original")
	}
}

func TestBrokenTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.fontmin")
	defer teardown()
	//
	otf := NewFont([]TableEntry{
		{Tag: T("head"), Data: make([]byte, 20)},
		{Tag: T("head"), Data: make([]byte, 54)},
	})
	if len(otf.TableTags()) != 1 {
		t.Errorf("expected duplicate directory entries to be dropped")
	}
	_, err := otf.Head()
	if !errors.Is(err, ErrTruncatedBuffer) {
		t.Errorf("expected truncated head table to be rejected, have %v", err)
	}
	if otf.UnitsPerEm() != 1000 {
		t.Errorf("expected default units per em for broken head")
	}
	if _, err := otf.NumGlyphs(); !errors.Is(err, ErrMissingTable) {
		t.Errorf("expected missing maxp to be reported, have %v", err)
	}
}
