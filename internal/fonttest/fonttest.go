/*
Package fonttest builds small TrueType fonts in memory, for tests.

A font is described by its glyphs; Tables returns the binary tables and
Binary a complete SFNT file. The generated fonts are deliberately simple:
one cmap segment per code-point, no hinting and no OS/2 table. They are
good enough for golang.org/x/image/font/sfnt to parse them.

This package must not depend on the font packages of this module, as their
tests use it.
*/
package fonttest

import (
	"encoding/binary"
	"math"
	"math/bits"
	"slices"
	"sort"

	"golang.org/x/text/encoding/unicode"
)

// Point is a point of a glyph contour, in font units.
type Point struct {
	X, Y    int16
	OnCurve bool
}

// Component references another glyph from a composite glyph. A Scale of 0
// means no scaling.
type Component struct {
	Glyph  uint16
	DX, DY int16
	Scale  float64
}

// Glyph describes a glyph. Glyphs with neither contours nor components
// have no outline, e.g. a space.
type Glyph struct {
	Name       string
	Unicodes   []rune
	Advance    uint16
	LSB        int16
	VAdvance   uint16
	TSB        int16
	Contours   [][]Point
	Components []Component
}

// Table is a binary font table.
type Table struct {
	Tag  string
	Data []byte
}

// Font describes a TrueType font to build.
type Font struct {
	UnitsPerEm   uint16 // defaults to 1000
	Glyphs       []Glyph
	Vertical     bool   // add vhea and vmtx
	PostNames    bool   // post format 2.0 with glyph names, otherwise 3.0
	ShortLoca    bool   // loca with 16-bit offsets
	CMapFormat   int    // 4 or 12, defaults to 4
	LongHMetrics int    // number of long horizontal metrics; 0 means all
	FamilyName   string // defaults to "Fonttest"
	Extra        []Table
}

// Simple returns a font with glyphs .notdef, A (U+0041), B (U+0042) and
// space (U+0020), in this order.
func Simple() *Font {
	return &Font{
		Glyphs: []Glyph{
			{Name: ".notdef", Advance: 500, Contours: [][]Point{Box(50, 0, 450, 700)}, LSB: 50},
			{Name: "A", Unicodes: []rune{'A'}, Advance: 600, LSB: 20, Contours: [][]Point{
				{{20, 0, true}, {300, 700, true}, {580, 0, true}},
			}},
			{Name: "B", Unicodes: []rune{'B'}, Advance: 620, LSB: 60, Contours: [][]Point{
				{{60, 0, true}, {60, 700, true}, {400, 700, true}, {560, 520, false}, {400, 360, true}, {560, 180, false}, {400, 0, true}},
			}},
			{Name: "space", Unicodes: []rune{' '}, Advance: 250},
		},
		PostNames: true,
	}
}

// Latin returns a font with glyphs .notdef, .null, A (U+0041) and
// B (U+0042), in this order.
func Latin() *Font {
	return &Font{
		Glyphs: []Glyph{
			{Name: ".notdef", Advance: 500, LSB: 50, Contours: [][]Point{Box(50, 0, 450, 700)}},
			{Name: ".null"},
			{Name: "A", Unicodes: []rune{'A'}, Advance: 600, LSB: 20, Contours: [][]Point{
				{{20, 0, true}, {300, 700, true}, {580, 0, true}},
			}},
			{Name: "B", Unicodes: []rune{'B'}, Advance: 620, LSB: 60, Contours: [][]Point{
				Box(60, 0, 500, 700),
			}},
		},
		PostNames: true,
	}
}

// Composite returns a font with a composite glyph: glyph 5 ('Ä', U+00C4)
// is built from glyph 2 (base) and glyph 3 (dieresis). Glyph 4 is a
// filler which no code-point maps to.
//
//	0 .notdef  1 A (U+0041)  2 base  3 dieresis  4 filler  5 Adieresis (U+00C4)
func Composite() *Font {
	return &Font{
		Glyphs: []Glyph{
			{Name: ".notdef", Advance: 500, LSB: 50, Contours: [][]Point{Box(50, 0, 450, 700)}},
			{Name: "A", Unicodes: []rune{'A'}, Advance: 600, LSB: 20, Contours: [][]Point{
				{{20, 0, true}, {300, 700, true}, {580, 0, true}},
			}},
			{Name: "base", Advance: 600, LSB: 20, Contours: [][]Point{
				{{20, 0, true}, {300, 700, true}, {580, 0, true}},
			}},
			{Name: "dieresis", Advance: 300, LSB: 40, Contours: [][]Point{
				Box(40, 800, 100, 860), Box(200, 800, 260, 860),
			}},
			{Name: "filler", Advance: 300, LSB: 0, Contours: [][]Point{Box(0, 0, 300, 300)}},
			{Name: "Adieresis", Unicodes: []rune{0xC4}, Advance: 600, LSB: 20, Components: []Component{
				{Glyph: 2}, {Glyph: 3, DX: 150, DY: 0},
			}},
		},
		PostNames: true,
	}
}

// Box returns a closed rectangular contour.
func Box(x0, y0, x1, y1 int16) []Point {
	return []Point{{x0, y0, true}, {x0, y1, true}, {x1, y1, true}, {x1, y0, true}}
}

// Tables returns the binary tables of the font, ordered by tag.
func (f *Font) Tables() []Table {
	outlines := make([][]byte, len(f.Glyphs))
	for i, g := range f.Glyphs {
		outlines[i] = g.outline()
		if f.ShortLoca && len(outlines[i])%2 != 0 {
			outlines[i] = append(outlines[i], 0)
		}
	}
	glyf, loca := f.glyfAndLoca(outlines)
	tables := []Table{
		{"cmap", f.cmap()},
		{"glyf", glyf},
		{"head", f.head()},
		{"hhea", f.hhea()},
		{"hmtx", f.hmtx()},
		{"loca", loca},
		{"maxp", f.maxp()},
		{"name", f.name()},
		{"post", f.post()},
	}
	if f.Vertical {
		tables = append(tables, Table{"vhea", f.vhea()}, Table{"vmtx", f.vmtx()})
	}
	tables = append(tables, f.Extra...)
	sort.SliceStable(tables, func(i, j int) bool { return tables[i].Tag < tables[j].Tag })
	return tables
}

// Binary returns the font as an SFNT file.
func (f *Font) Binary() []byte {
	tables := f.Tables()
	n := len(tables)
	entrySelector := bits.Len(uint(n)) - 1
	searchRange := 16 << entrySelector
	b := make([]byte, 12+16*n)
	be.PutUint32(b, 0x00010000)
	be.PutUint16(b[4:], uint16(n))
	be.PutUint16(b[6:], uint16(searchRange))
	be.PutUint16(b[8:], uint16(entrySelector))
	be.PutUint16(b[10:], uint16(16*n-searchRange))
	headAt := -1
	for i, t := range tables {
		rec := b[12+16*i:]
		copy(rec, t.Tag)
		be.PutUint32(rec[4:], checksum(t.Data))
		be.PutUint32(rec[8:], uint32(len(b)))
		be.PutUint32(rec[12:], uint32(len(t.Data)))
		if t.Tag == "head" {
			headAt = len(b)
		}
		b = append(b, t.Data...)
		for len(b)%4 != 0 {
			b = append(b, 0)
		}
	}
	if headAt >= 0 {
		be.PutUint32(b[headAt+8:], 0xB1B0AFBA-checksum(b))
	}
	return b
}

var be = binary.BigEndian

func checksum(b []byte) uint32 {
	var sum uint32
	for i := 0; i < len(b); i += 4 {
		var w [4]byte
		copy(w[:], b[i:])
		sum += be.Uint32(w[:])
	}
	return sum
}

func u16(b []byte, v uint16) []byte { return be.AppendUint16(b, v) }
func i16(b []byte, v int16) []byte  { return be.AppendUint16(b, uint16(v)) }
func u32(b []byte, v uint32) []byte { return be.AppendUint32(b, v) }

func (f *Font) upem() uint16 {
	if f.UnitsPerEm == 0 {
		return 1000
	}
	return f.UnitsPerEm
}

func (f *Font) numLongHMetrics() int {
	if f.LongHMetrics <= 0 || f.LongHMetrics > len(f.Glyphs) {
		return len(f.Glyphs)
	}
	return f.LongHMetrics
}

func (f *Font) bbox() (xMin, yMin, xMax, yMax int16) {
	first := true
	for _, g := range f.Glyphs {
		for _, c := range g.Contours {
			for _, p := range c {
				if first {
					xMin, yMin, xMax, yMax = p.X, p.Y, p.X, p.Y
					first = false
				}
				xMin, yMin = min(xMin, p.X), min(yMin, p.Y)
				xMax, yMax = max(xMax, p.X), max(yMax, p.Y)
			}
		}
	}
	return
}

// 2020-01-01 00:00:00 UTC, in seconds since 1904-01-01.
const fontDate = 3660681600

func (f *Font) head() []byte {
	b := make([]byte, 0, 54)
	b = u16(b, 1)
	b = u16(b, 0)
	b = u32(b, 0x00010000) // fontRevision
	b = u32(b, 0)          // checkSumAdjustment
	b = u32(b, 0x5F0F3CF5)
	b = u16(b, 0x000b)
	b = u16(b, f.upem())
	b = be.AppendUint64(b, fontDate)
	b = be.AppendUint64(b, fontDate)
	xMin, yMin, xMax, yMax := f.bbox()
	b = i16(b, xMin)
	b = i16(b, yMin)
	b = i16(b, xMax)
	b = i16(b, yMax)
	b = u16(b, 0) // macStyle
	b = u16(b, 8) // lowestRecPPEM
	b = i16(b, 2) // fontDirectionHint
	if f.ShortLoca {
		b = i16(b, 0)
	} else {
		b = i16(b, 1)
	}
	return i16(b, 0)
}

func (f *Font) maxp() []byte {
	var maxPoints, maxContours, maxComponents int
	for _, g := range f.Glyphs {
		points := 0
		for _, c := range g.Contours {
			points += len(c)
		}
		maxPoints = max(maxPoints, points)
		maxContours = max(maxContours, len(g.Contours))
		maxComponents = max(maxComponents, len(g.Components))
	}
	b := make([]byte, 0, 32)
	b = u32(b, 0x00010000)
	b = u16(b, uint16(len(f.Glyphs)))
	b = u16(b, uint16(maxPoints))
	b = u16(b, uint16(maxContours))
	b = u16(b, 0) // maxCompositePoints
	b = u16(b, 0) // maxCompositeContours
	b = u16(b, 2) // maxZones
	b = u16(b, 0) // maxTwilightPoints
	b = u16(b, 0) // maxStorage
	b = u16(b, 0) // maxFunctionDefs
	b = u16(b, 0) // maxInstructionDefs
	b = u16(b, 0) // maxStackElements
	b = u16(b, 0) // maxSizeOfInstructions
	b = u16(b, uint16(maxComponents))
	if maxComponents > 0 {
		return u16(b, 1)
	}
	return u16(b, 0)
}

func (f *Font) hhea() []byte {
	var maxAdvance uint16
	for _, g := range f.Glyphs {
		maxAdvance = max(maxAdvance, g.Advance)
	}
	b := make([]byte, 0, 36)
	b = u32(b, 0x00010000)
	b = i16(b, 800)  // ascender
	b = i16(b, -200) // descender
	b = i16(b, 0)    // lineGap
	b = u16(b, maxAdvance)
	b = append(b, make([]byte, 6)...) // minLSB, minRSB, xMaxExtent
	b = i16(b, 1)                     // caretSlopeRise
	b = append(b, make([]byte, 14)...)
	return u16(b, uint16(f.numLongHMetrics()))
}

func (f *Font) hmtx() []byte {
	numLong := f.numLongHMetrics()
	b := make([]byte, 0, 4*len(f.Glyphs))
	for i, g := range f.Glyphs {
		if i < numLong {
			b = u16(b, g.Advance)
		}
		b = i16(b, g.LSB)
	}
	return b
}

func (f *Font) vhea() []byte {
	var maxAdvance uint16
	for _, g := range f.Glyphs {
		maxAdvance = max(maxAdvance, g.VAdvance)
	}
	b := make([]byte, 0, 36)
	b = u32(b, 0x00011000)
	b = i16(b, 500)  // vertTypoAscender
	b = i16(b, -500) // vertTypoDescender
	b = i16(b, 0)    // vertTypoLineGap
	b = u16(b, maxAdvance)
	b = append(b, make([]byte, 6)...)
	b = i16(b, 0) // caretSlopeRise
	b = i16(b, 1) // caretSlopeRun
	b = append(b, make([]byte, 12)...)
	return u16(b, uint16(len(f.Glyphs)))
}

func (f *Font) vmtx() []byte {
	b := make([]byte, 0, 4*len(f.Glyphs))
	for _, g := range f.Glyphs {
		b = u16(b, g.VAdvance)
		b = i16(b, g.TSB)
	}
	return b
}

func (f *Font) glyfAndLoca(outlines [][]byte) (glyf, loca []byte) {
	offset := 0
	for _, o := range outlines {
		loca = f.appendLoca(loca, offset)
		glyf = append(glyf, o...)
		offset += len(o)
	}
	return glyf, f.appendLoca(loca, offset)
}

func (f *Font) appendLoca(loca []byte, offset int) []byte {
	if f.ShortLoca {
		return u16(loca, uint16(offset/2))
	}
	return u32(loca, uint32(offset))
}

// Flags of composite glyph components and simple glyph points.
const (
	argsAreWords    = 0x0001
	argsAreXYValues = 0x0002
	weHaveAScale    = 0x0008
	moreComponents  = 0x0020

	onCurve    = 0x01
	xShort     = 0x02
	yShort     = 0x04
	xSameOrPos = 0x10
	ySameOrPos = 0x20
)

func (g Glyph) outline() []byte {
	switch {
	case len(g.Components) > 0:
		b := i16(nil, -1)
		b = append(b, make([]byte, 8)...) // bounding box
		for i, c := range g.Components {
			flags := uint16(argsAreWords | argsAreXYValues)
			if i < len(g.Components)-1 {
				flags |= moreComponents
			}
			if c.Scale != 0 && c.Scale != 1 {
				flags |= weHaveAScale
			}
			b = u16(b, flags)
			b = u16(b, c.Glyph)
			b = i16(b, c.DX)
			b = i16(b, c.DY)
			if flags&weHaveAScale != 0 {
				b = i16(b, int16(math.Round(c.Scale*16384)))
			}
		}
		return b
	case len(g.Contours) > 0:
		b := i16(nil, int16(len(g.Contours)))
		var xMin, yMin, xMax, yMax int16
		var all []Point
		for _, c := range g.Contours {
			all = append(all, c...)
		}
		xMin, yMin, xMax, yMax = all[0].X, all[0].Y, all[0].X, all[0].Y
		for _, p := range all {
			xMin, yMin = min(xMin, p.X), min(yMin, p.Y)
			xMax, yMax = max(xMax, p.X), max(yMax, p.Y)
		}
		b = i16(b, xMin)
		b = i16(b, yMin)
		b = i16(b, xMax)
		b = i16(b, yMax)
		end := -1
		for _, c := range g.Contours {
			end += len(c)
			b = u16(b, uint16(end))
		}
		b = u16(b, 0) // instructionLength
		var flags, xs, ys []byte
		var x, y int16
		for _, p := range all {
			var fl byte
			if p.OnCurve {
				fl |= onCurve
			}
			fl, xs = appendCoord(fl, xs, p.X-x, xShort, xSameOrPos)
			fl, ys = appendCoord(fl, ys, p.Y-y, yShort, ySameOrPos)
			x, y = p.X, p.Y
			flags = append(flags, fl)
		}
		b = append(b, flags...)
		b = append(b, xs...)
		return append(b, ys...)
	}
	return nil
}

func appendCoord(flags byte, b []byte, d int16, short, sameOrPos byte) (byte, []byte) {
	switch {
	case d == 0:
		return flags | sameOrPos, b
	case d > 0 && d < 256:
		return flags | short | sameOrPos, append(b, byte(d))
	case d < 0 && d > -256:
		return flags | short, append(b, byte(-d))
	}
	return flags, i16(b, d)
}

type cmapEntry struct {
	r rune
	g uint16
}

func (f *Font) cmapEntries() []cmapEntry {
	var entries []cmapEntry
	for i, g := range f.Glyphs {
		for _, r := range g.Unicodes {
			entries = append(entries, cmapEntry{r, uint16(i)})
		}
	}
	slices.SortFunc(entries, func(a, b cmapEntry) int { return int(a.r - b.r) })
	return entries
}

func (f *Font) cmap() []byte {
	var sub []byte
	b := u16(nil, 0)
	b = u16(b, 1)
	if f.CMapFormat == 12 {
		b = u16(b, 3)
		b = u16(b, 10)
		sub = f.cmap12()
	} else {
		b = u16(b, 3)
		b = u16(b, 1)
		sub = f.cmap4()
	}
	b = u32(b, 12)
	return append(b, sub...)
}

func (f *Font) cmap4() []byte {
	var entries []cmapEntry
	for _, e := range f.cmapEntries() {
		if e.r < 0xFFFF {
			entries = append(entries, e)
		}
	}
	segCount := len(entries) + 1
	entrySelector := bits.Len(uint(segCount)) - 1
	searchRange := 2 << entrySelector
	b := u16(nil, 4)
	b = u16(b, uint16(16+8*segCount))
	b = u16(b, 0) // language
	b = u16(b, uint16(2*segCount))
	b = u16(b, uint16(searchRange))
	b = u16(b, uint16(entrySelector))
	b = u16(b, uint16(2*segCount-searchRange))
	for _, e := range entries {
		b = u16(b, uint16(e.r))
	}
	b = u16(b, 0xFFFF)
	b = u16(b, 0) // reservedPad
	for _, e := range entries {
		b = u16(b, uint16(e.r))
	}
	b = u16(b, 0xFFFF)
	for _, e := range entries {
		b = u16(b, e.g-uint16(e.r))
	}
	b = u16(b, 1)
	return append(b, make([]byte, 2*segCount)...) // idRangeOffsets
}

func (f *Font) cmap12() []byte {
	entries := f.cmapEntries()
	b := u16(nil, 12)
	b = u16(b, 0)
	b = u32(b, uint32(16+12*len(entries)))
	b = u32(b, 0) // language
	b = u32(b, uint32(len(entries)))
	for _, e := range entries {
		b = u32(b, uint32(e.r))
		b = u32(b, uint32(e.r))
		b = u32(b, uint32(e.g))
	}
	return b
}

func (f *Font) post() []byte {
	b := make([]byte, 0, 32)
	if f.PostNames {
		b = u32(b, 0x00020000)
	} else {
		b = u32(b, 0x00030000)
	}
	b = u32(b, 0)    // italicAngle
	b = i16(b, -100) // underlinePosition
	b = i16(b, 50)   // underlineThickness
	b = append(b, make([]byte, 20)...)
	if !f.PostNames {
		return b
	}
	b = u16(b, uint16(len(f.Glyphs)))
	for i := range f.Glyphs {
		b = u16(b, uint16(258+i))
	}
	for _, g := range f.Glyphs {
		b = append(b, byte(len(g.Name)))
		b = append(b, g.Name...)
	}
	return b
}

func (f *Font) name() []byte {
	family := f.FamilyName
	if family == "" {
		family = "Fonttest"
	}
	enc := unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM).NewEncoder()
	names := []struct {
		id    uint16
		value string
	}{
		{1, family},
		{2, "Regular"},
		{4, family + " Regular"},
	}
	var storage []byte
	b := u16(nil, 0)
	b = u16(b, uint16(len(names)))
	b = u16(b, uint16(6+12*len(names)))
	for _, n := range names {
		s, err := enc.Bytes([]byte(n.value))
		if err != nil {
			panic(err)
		}
		b = u16(b, 3)
		b = u16(b, 1)
		b = u16(b, 0x0409)
		b = u16(b, n.id)
		b = u16(b, uint16(len(s)))
		b = u16(b, uint16(len(storage)))
		storage = append(storage, s...)
	}
	return append(b, storage...)
}
