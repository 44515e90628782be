package minify

import (
	"fmt"
	"slices"

	"github.com/npillmayer/fontmin/ot"
)

// Options influence minification. The zero value is the default.
type Options struct {
	// Prune removes all tables except those needed for rendering TrueType
	// outlines (see KeptTables). Tables such as GSUB, GPOS or kern refer to
	// glyphs by index and are not rebuilt; they will be inconsistent with the
	// minified font unless pruned.
	Prune bool
}

// KeptTables are the tables left in a font by Options.Prune.
var KeptTables = []ot.Tag{
	ot.T("cmap"), ot.T("head"), ot.T("hhea"), ot.T("hmtx"), ot.T("maxp"),
	ot.T("name"), ot.T("OS/2"), ot.T("post"), ot.T("glyf"), ot.T("loca"),
	ot.T("vhea"), ot.T("vmtx"), ot.T("cvt "), ot.T("fpgm"), ot.T("prep"),
	ot.T("gasp"),
}

// Stats reports the outcome of a minification.
type Stats struct {
	SourceGlyphs int             // number of glyphs of the source font
	Glyphs       int             // number of glyphs retained
	Codepoints   int             // number of code-points asked for
	Missing      []rune          // code-points without a glyph, mapped to '.notdef'
	GlyphOrder   []ot.GlyphIndex // source index of each retained glyph
	TableSizes   map[ot.Tag]int  // sizes of the tables of the minified font
	Dropped      []ot.Tag        // tables removed by Options.Prune or as unusable
}

func (s *Stats) String() string {
	return fmt.Sprintf("%d of %d glyphs for %d code-points (%d missing)",
		s.Glyphs, s.SourceGlyphs, s.Codepoints, len(s.Missing))
}

// Text minifies otf to the glyphs needed for text, with default options.
func Text(otf *ot.Font, text string) (*Stats, error) {
	return Font(otf, NewCharset(text), Options{})
}

// Font minifies otf in place, keeping the glyphs needed for the code-points
// of cs. Either all tables are updated or, if an error is returned, otf is
// left untouched.
//
// The font has to contain TrueType outlines, i.e. tables 'head', 'maxp',
// 'hhea', 'hmtx', 'loca' and 'glyf'; otherwise an error wrapping
// ot.ErrMissingTable is returned.
func Font(otf *ot.Font, cs *Charset, opts Options) (*Stats, error) {
	if cs == nil {
		cs = &Charset{}
	}
	src, err := openSource(otf)
	if err != nil {
		return nil, err
	}
	sel := newSelector(otf, src)
	stats := &Stats{SourceGlyphs: src.numGlyphs, Codepoints: cs.Len()}
	// glyph selection and composite closure
	if err := sel.add(0, nil); err != nil {
		return nil, err
	}
	for _, r := range cs.Runes() {
		g := src.cmap[r]
		if g == 0 {
			stats.Missing = append(stats.Missing, r)
			continue
		}
		sel.unicodes[g] = append(sel.unicodes[g], r)
		if err := sel.add(g, nil); err != nil {
			return nil, err
		}
	}
	glyphs, err := sel.renumber()
	if err != nil {
		return nil, err
	}
	tables, err := buildTables(glyphs, src.vmtx)
	if err != nil {
		return nil, err
	}
	// from here on the font is changed; nothing below may fail
	tables.apply(otf, src)
	if src.orphanVmtx {
		otf.Delete(ot.T("vmtx"))
		stats.Dropped = append(stats.Dropped, ot.T("vmtx"))
	}
	if opts.Prune {
		stats.Dropped = append(stats.Dropped, prune(otf)...)
	}
	stats.Glyphs = len(glyphs)
	stats.GlyphOrder = sel.order
	stats.TableSizes = make(map[ot.Tag]int)
	for _, e := range otf.Entries() {
		stats.TableSizes[e.Tag] = len(e.Data)
	}
	tracer().Infof("minified font: %s", stats)
	tracer().Debugf("glyph order %v", sel.order)
	return stats, nil
}

// source collects the tables of the font to minify. The tables are views
// onto the font's bytes.
type source struct {
	numGlyphs  int
	head       *ot.HeadTable
	maxp       *ot.MaxPTable
	hhea       *ot.HHeaTable
	vhea       *ot.VHeaTable
	vmtx       bool
	orphanVmtx bool // vmtx without vhea
	cmap       map[rune]ot.GlyphIndex
	glyphs     map[ot.GlyphIndex]*ot.Glyph // decoded source glyphs
}

func openSource(otf *ot.Font) (*source, error) {
	src := &source{glyphs: make(map[ot.GlyphIndex]*ot.Glyph)}
	var err error
	if src.head, err = otf.Head(); err != nil {
		return nil, err
	}
	if src.maxp, err = otf.MaxP(); err != nil {
		return nil, err
	}
	if src.hhea, err = otf.HHea(); err != nil {
		return nil, err
	}
	if src.vhea, err = otf.VHea(); err != nil {
		return nil, err
	}
	switch {
	case src.head == nil:
		return nil, ot.MissingTableError(ot.T("head"), "minify")
	case src.maxp == nil:
		return nil, ot.MissingTableError(ot.T("maxp"), "minify")
	case src.hhea == nil:
		return nil, ot.MissingTableError(ot.T("hhea"), "minify")
	}
	for _, tag := range []ot.Tag{ot.T("hmtx"), ot.T("loca"), ot.T("glyf")} {
		if !otf.Has(tag) {
			return nil, ot.MissingTableError(tag, "minify")
		}
	}
	if otf.Has(ot.T("vmtx")) && src.vhea == nil {
		tracer().Infof("font has vmtx but no vhea, dropping vertical metrics")
		src.orphanVmtx = true
	}
	src.vmtx = otf.Has(ot.T("vmtx")) && src.vhea != nil
	src.numGlyphs = int(src.maxp.NumGlyphs())
	src.cmap = map[rune]ot.GlyphIndex{}
	cmap, err := otf.CMap()
	if err != nil {
		return nil, err
	}
	if cmap != nil {
		if src.cmap, err = cmap.GlyphIndexMap(); err != nil {
			return nil, err
		}
	} else {
		tracer().Infof("font has no cmap, all code-points map to .notdef")
	}
	return src, nil
}

// selector collects glyphs in first-seen order: a glyph is followed by the
// components it references, depth first.
type selector struct {
	src      *source
	otf      *ot.Font
	order    []ot.GlyphIndex                 // source index of each selected glyph
	newIndex map[ot.GlyphIndex]ot.GlyphIndex // source index → new index
	unicodes map[ot.GlyphIndex][]rune        // source index → subset code-points
}

func newSelector(otf *ot.Font, src *source) *selector {
	return &selector{
		src:      src,
		otf:      otf,
		newIndex: make(map[ot.GlyphIndex]ot.GlyphIndex),
		unicodes: make(map[ot.GlyphIndex][]rune),
	}
}

func malformed(g ot.GlyphIndex, issue string) error {
	return ot.FontError{
		Table:    ot.T("glyf"),
		Section:  fmt.Sprintf("glyph %d", g),
		Issue:    issue,
		Severity: ot.SeverityCritical,
		Err:      ot.ErrMalformedGlyph,
	}
}

// add selects glyph g and its components. path holds the composite glyphs
// leading to g; meeting one of them again is a cycle.
func (sel *selector) add(g ot.GlyphIndex, path []ot.GlyphIndex) error {
	if int(g) >= sel.src.numGlyphs {
		if len(path) > 0 {
			return malformed(path[len(path)-1], fmt.Sprintf("component %d out of range, font has %d glyphs", g, sel.src.numGlyphs))
		}
		return malformed(g, fmt.Sprintf("glyph out of range, font has %d glyphs", sel.src.numGlyphs))
	}
	if slices.Contains(path, g) {
		return malformed(g, fmt.Sprintf("composite glyphs form a cycle: %v", append(path, g)))
	}
	if _, seen := sel.newIndex[g]; seen {
		return nil
	}
	sel.newIndex[g] = ot.GlyphIndex(len(sel.order))
	sel.order = append(sel.order, g)
	glyph, err := sel.otf.LoadGlyph(g, ot.GlyphOptions{Index: g})
	if err != nil {
		return err
	}
	sel.src.glyphs[g] = glyph
	for _, c := range glyph.Components {
		if err := sel.add(c.GlyphIndex, append(path, g)); err != nil {
			return err
		}
	}
	return nil
}

// renumber creates the glyphs of the minified font, in new index order, with
// component references rewritten to new indices.
func (sel *selector) renumber() ([]*ot.Glyph, error) {
	glyphs := make([]*ot.Glyph, len(sel.order))
	for i, g := range sel.order {
		sg := sel.src.glyphs[g]
		unicodes := sel.unicodes[g]
		name, ok := sel.otf.GlyphName(g)
		if !ok && slices.Contains(unicodes, 0) {
			name = ot.NullGlyphName
		}
		glyph, err := ot.NewGlyph(ot.GlyphOptions{
			Index:              ot.GlyphIndex(i),
			Name:               name,
			Unicodes:           unicodes,
			AdvanceWidth:       sg.AdvanceWidth,
			LeftSideBearing:    sg.LeftSideBearing,
			AdvanceHeight:      sg.AdvanceHeight,
			TopSideBearing:     sg.TopSideBearing,
			HasVerticalMetrics: sg.HasVerticalMetrics,
			Data:               sg.Data(),
		})
		if err != nil {
			return nil, err
		}
		if glyph.IsComposite {
			if err := glyph.RemapComponents(sel.newIndex); err != nil {
				return nil, err
			}
		}
		glyphs[i] = glyph
	}
	return glyphs, nil
}

// tables holds the rebuilt tables of a minified font.
type tables struct {
	numGlyphs uint16
	loca      *ot.LocaTable
	glyf      *ot.GlyfTable
	cmap      *ot.CMapTable
	hmtx      *ot.HMtxTable
	vmtx      *ot.VMtxTable
	post      *ot.PostTable
}

func buildTables(glyphs []*ot.Glyph, vertical bool) (*tables, error) {
	t := &tables{numGlyphs: uint16(len(glyphs))}
	outlines := make([][]byte, len(glyphs))
	hmetrics := make([]ot.LongMetric, len(glyphs))
	vmetrics := make([]ot.LongMetric, len(glyphs))
	mapping := make(map[rune]ot.GlyphIndex)
	for i, g := range glyphs {
		outlines[i] = g.Data()
		hmetrics[i] = ot.LongMetric{Advance: g.AdvanceWidth, Bearing: g.LeftSideBearing}
		vmetrics[i] = ot.LongMetric{Advance: g.AdvanceHeight, Bearing: g.TopSideBearing}
		for _, r := range g.Unicodes {
			mapping[r] = ot.GlyphIndex(i)
		}
	}
	offsets, err := ot.LocaOffsets(outlines)
	if err != nil {
		return nil, err
	}
	t.loca = ot.NewLocaTable(offsets)
	t.glyf = ot.NewGlyfTable(outlines)
	if t.cmap, err = ot.NewCMapTable(mapping); err != nil {
		return nil, err
	}
	t.hmtx = ot.NewHMtxTable(hmetrics)
	if vertical {
		t.vmtx = ot.NewVMtxTable(vmetrics)
	}
	t.post = ot.NewPostTableFormat3(t.numGlyphs)
	return t, nil
}

func (t *tables) apply(otf *ot.Font, src *source) {
	src.head.SetCheckSumAdjustment(0)
	src.head.SetMagicNumber(ot.HeadMagicNumber)
	src.head.SetIndexToLocFormat(1)
	src.maxp.SetNumGlyphs(t.numGlyphs)
	src.hhea.SetNumberOfHMetrics(t.numGlyphs)
	if src.vhea != nil {
		src.vhea.SetNumOfLongVerMetrics(t.numGlyphs)
	}
	otf.Set(ot.T("loca"), t.loca)
	otf.Set(ot.T("glyf"), t.glyf)
	otf.Set(ot.T("cmap"), t.cmap)
	otf.Set(ot.T("hmtx"), t.hmtx)
	if t.vmtx != nil {
		otf.Set(ot.T("vmtx"), t.vmtx)
	}
	otf.Set(ot.T("post"), t.post)
}

func prune(otf *ot.Font) []ot.Tag {
	var dropped []ot.Tag
	for _, tag := range otf.TableTags() {
		if !slices.Contains(KeptTables, tag) {
			otf.Delete(tag)
			dropped = append(dropped, tag)
		}
	}
	if len(dropped) > 0 {
		tracer().Debugf("pruned tables %v", dropped)
	}
	return dropped
}
