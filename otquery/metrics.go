package otquery

import (
	"github.com/npillmayer/fontmin/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// --- Font Information -------------------------------------------------

// FontType returns "TrueType" for fonts with 'glyf' outlines, "OpenType CFF"
// for fonts with CFF outlines and "unknown" otherwise.
func FontType(otf *ot.Font) string {
	switch {
	case otf == nil:
		return "unknown"
	case otf.Has(ot.T("glyf")):
		return "TrueType"
	case otf.Has(ot.T("CFF ")), otf.Has(ot.T("CFF2")):
		return "OpenType CFF"
	}
	return "unknown"
}

// OS/2 offsets of sTypoAscender and sTypoDescender.
const (
	os2TypoAscender  = 68
	os2TypoDescender = 70
)

// FontMetrics retrieves selected metrics of a font.
func FontMetrics(otf *ot.Font) FontMetricsInfo {
	metrics := FontMetricsInfo{}
	if hhea, err := otf.HHea(); err == nil && hhea != nil {
		metrics.Ascent = sfnt.Units(hhea.Ascender())
		metrics.Descent = sfnt.Units(hhea.Descender())
		metrics.LineGap = sfnt.Units(hhea.LineGap())
		metrics.MaxAdvance = sfnt.Units(hhea.AdvanceWidthMax())
	}
	if metrics.Ascent == 0 && metrics.Descent == 0 {
		if table, err := otf.Table(ot.T("OS/2")); err == nil && table != nil {
			if b := table.Binary(); len(b) >= os2TypoDescender+2 {
				tracer().Debugf("OS/2")
				a := sfnt.Units(i16(b[os2TypoAscender:]))
				if a > metrics.Ascent {
					tracer().Debugf("override of ascent: %d -> %d", metrics.Ascent, a)
					metrics.Ascent = a
				}
				d := sfnt.Units(i16(b[os2TypoDescender:]))
				if d < metrics.Descent {
					tracer().Debugf("override of descent: %d -> %d", metrics.Descent, d)
					metrics.Descent = d
				}
			}
		}
	}
	metrics.UnitsPerEm = sfnt.Units(otf.UnitsPerEm())
	return metrics
}

// --- Glyph Routines --------------------------------------------------------

// GlyphIndex returns the glyph index for a give code-point.
// If the code-point cannot be found, 0 is returned.
//
// From the OpenType specification: character codes that do not correspond to any glyph in
// the font should be mapped to glyph index 0. The glyph at this location must be a special
// glyph representing a missing character, commonly known as '.notdef'.
func GlyphIndex(otf *ot.Font, codepoint rune) ot.GlyphIndex {
	return otf.CharToGlyphIndex(codepoint)
}

// CodePointForGlyph returns the code-point for a given glyph index.
//
// This is an inefficient operation: All code-points contained in the font's CMap
// are checked sequentially if they produce the given glyph.
// If the glyph index does not correspond to a code-point, 0 is returned.
// If more than one code-point maps to the glyph, the lowest one is returned.
func CodePointForGlyph(otf *ot.Font, gid ot.GlyphIndex) rune {
	if gid == 0 {
		return 0
	}
	if runes := otf.CodePointsForGlyph(gid); len(runes) > 0 {
		return runes[0]
	}
	return 0
}

// GlyphMetrics retrieves metrics for a given glyph.
func GlyphMetrics(otf *ot.Font, gid ot.GlyphIndex) GlyphMetricsInfo {
	metrics := GlyphMetricsInfo{}
	//
	// table HMtx: advance width and left side bearing
	if m, err := otf.HMetric(gid); err == nil {
		metrics.Advance = sfnt.Units(m.Advance)
		metrics.LSB = sfnt.Units(m.Bearing)
	}
	//
	// table glyf: bounding box
	if b, err := otf.GlyphData(gid); err == nil && len(b) >= 10 {
		metrics.BBox = BoundingBox{
			MinX: sfnt.Units(i16(b[2:])),
			MinY: sfnt.Units(i16(b[4:])),
			MaxX: sfnt.Units(i16(b[6:])),
			MaxY: sfnt.Units(i16(b[8:])),
		}
	}
	// RSB calculation: rsb = aw - (lsb + xMax - xMin)
	// From the OpenType spec:
	// If a glyph has no contours, xMax/xMin are not defined. The left side bearing indicated
	// in the 'hmtx' table for such glyphs should be zero.
	if !metrics.BBox.IsEmpty() { // leave RSB for empty bboxes
		metrics.RSB = metrics.Advance - (metrics.LSB + metrics.BBox.Dx())
	}
	return metrics
}

// ScaledMetrics returns the metrics of a glyph at ppem pixels per em,
// rounded the way golang.org/x/image/font/sfnt does.
func ScaledMetrics(otf *ot.Font, gid ot.GlyphIndex, ppem fixed.Int26_6) ScaledGlyphMetrics {
	m := GlyphMetrics(otf, gid)
	upem := int32(otf.UnitsPerEm())
	s := func(u sfnt.Units) fixed.Int26_6 {
		return scale(int32(u)*int32(ppem), upem)
	}
	return ScaledGlyphMetrics{
		Advance: s(m.Advance),
		LSB:     s(m.LSB),
		RSB:     s(m.RSB),
		Bounds: fixed.Rectangle26_6{
			Min: fixed.Point26_6{X: s(m.BBox.MinX), Y: -s(m.BBox.MaxY)},
			Max: fixed.Point26_6{X: s(m.BBox.MaxX), Y: -s(m.BBox.MinY)},
		},
	}
}

func scale(x, y int32) fixed.Int26_6 {
	if y == 0 {
		return 0
	}
	if x >= 0 {
		x += y / 2
	} else {
		x -= y / 2
	}
	return fixed.Int26_6(x / y)
}
