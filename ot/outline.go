package ot

import "fmt"

// Flags of composite glyph components.
// See https://docs.microsoft.com/en-us/typography/opentype/spec/glyf#composite-glyph-description
const (
	ArgsAreWords        uint16 = 0x0001 // ARG_1_AND_2_ARE_WORDS
	ArgsAreXYValues     uint16 = 0x0002 // ARGS_ARE_XY_VALUES
	RoundXYToGrid       uint16 = 0x0004 // ROUND_XY_TO_GRID
	WeHaveAScale        uint16 = 0x0008 // WE_HAVE_A_SCALE
	MoreComponents      uint16 = 0x0020 // MORE_COMPONENTS
	WeHaveAnXAndYScale  uint16 = 0x0040 // WE_HAVE_AN_X_AND_Y_SCALE
	WeHaveATwoByTwo     uint16 = 0x0080 // WE_HAVE_A_TWO_BY_TWO
	WeHaveInstructions  uint16 = 0x0100 // WE_HAVE_INSTRUCTIONS
	UseMyMetrics        uint16 = 0x0200 // USE_MY_METRICS
	OverlapCompound     uint16 = 0x0400 // OVERLAP_COMPOUND
	ScaledComponentOffs uint16 = 0x0800 // SCALED_COMPONENT_OFFSET
)

// Component is a reference from a composite glyph to another glyph, placed
// either by an offset (DX, DY) or by matching a point of the composite
// (MatchedPoints[0]) with a point of the component (MatchedPoints[1]).
// The 2×2 transformation defaults to the identity.
type Component struct {
	GlyphIndex     GlyphIndex
	Flags          uint16
	DX, DY         int16
	XScale, YScale float64 // F2DOT14
	Scale01        float64 // F2DOT14
	Scale10        float64 // F2DOT14
	MatchedPoints  []uint16
	at             int // byte position of the glyph index within the outline data
}

// componentLength returns the byte length of a component record with the
// given flags, and if more components follow.
func componentLength(flags uint16) (length int, more bool) {
	length = 4 + 2
	if flags&ArgsAreWords != 0 {
		length += 2
	}
	if flags&WeHaveAScale != 0 {
		length += 2
	} else if flags&WeHaveAnXAndYScale != 0 {
		length += 4
	} else if flags&WeHaveATwoByTwo != 0 {
		length += 8
	}
	more = flags&MoreComponents != 0
	return
}

func f2dot14(b []byte) float64 {
	return float64(int16(u16(b))) / 16384
}

// decodeOutline interprets the glyph's outline bytes: composite glyphs get
// their components, simple glyphs get path commands.
func (g *Glyph) decodeOutline() error {
	g.IsComposite, g.Components, g.Commands = false, nil, nil
	if len(g.data) == 0 {
		return nil
	}
	if len(g.data) < 10 {
		return errMalformedGlyph(g.Index, fmt.Sprintf("outline header needs 10 bytes, has %d", len(g.data)))
	}
	numberOfContours := int16(u16(g.data))
	if numberOfContours < 0 {
		g.IsComposite = true
		return g.decodeComponents()
	}
	return g.decodeContours(int(numberOfContours))
}

func (g *Glyph) decodeComponents() error {
	b := binarySegm(g.data)
	for pos := 10; ; {
		flags, err := b.u16(pos)
		if err != nil {
			return errMalformedGlyph(g.Index, "component flags exceed outline data")
		}
		length, more := componentLength(flags)
		rec, err := b.view(pos, length)
		if err != nil {
			return errMalformedGlyph(g.Index, fmt.Sprintf("component at %d exceeds outline data", pos))
		}
		c := Component{
			GlyphIndex: GlyphIndex(u16(rec[2:])),
			Flags:      flags,
			XScale:     1,
			YScale:     1,
			at:         pos + 2,
		}
		var arg1, arg2 int32
		argsLen := 2
		if flags&ArgsAreWords != 0 {
			argsLen = 4
			if flags&ArgsAreXYValues != 0 {
				arg1, arg2 = int32(int16(u16(rec[4:]))), int32(int16(u16(rec[6:])))
			} else {
				arg1, arg2 = int32(u16(rec[4:])), int32(u16(rec[6:]))
			}
		} else if flags&ArgsAreXYValues != 0 {
			arg1, arg2 = int32(int8(rec[4])), int32(int8(rec[5]))
		} else {
			arg1, arg2 = int32(rec[4]), int32(rec[5])
		}
		if flags&ArgsAreXYValues != 0 {
			c.DX, c.DY = int16(arg1), int16(arg2)
		} else {
			c.MatchedPoints = []uint16{uint16(arg1), uint16(arg2)}
		}
		s := rec[4+argsLen:]
		switch {
		case flags&WeHaveAScale != 0:
			c.XScale = f2dot14(s)
			c.YScale = c.XScale
		case flags&WeHaveAnXAndYScale != 0:
			c.XScale, c.YScale = f2dot14(s), f2dot14(s[2:])
		case flags&WeHaveATwoByTwo != 0:
			c.XScale, c.Scale01 = f2dot14(s), f2dot14(s[2:])
			c.Scale10, c.YScale = f2dot14(s[4:]), f2dot14(s[6:])
		}
		g.Components = append(g.Components, c)
		pos += length
		if !more {
			break
		}
	}
	return nil
}

type outlinePoint struct {
	x, y    float64
	onCurve bool
}

// Flags of simple glyph points.
const (
	onCurvePoint      = 0x01
	xShortVector      = 0x02
	yShortVector      = 0x04
	repeatFlag        = 0x08
	xIsSameOrPositive = 0x10
	yIsSameOrPositive = 0x20
)

func (g *Glyph) decodeContours(numberOfContours int) error {
	if numberOfContours == 0 {
		return nil
	}
	b := binarySegm(g.data)
	pos := 10
	endPts := make([]int, numberOfContours)
	for i := range endPts {
		e, err := b.u16(pos)
		if err != nil {
			return errMalformedGlyph(g.Index, "contour end points exceed outline data")
		}
		endPts[i] = int(e)
		if i > 0 && endPts[i] <= endPts[i-1] {
			return errMalformedGlyph(g.Index, "contour end points not increasing")
		}
		pos += 2
	}
	insLen, err := b.u16(pos)
	if err != nil {
		return errMalformedGlyph(g.Index, "instruction length exceeds outline data")
	}
	pos += 2 + int(insLen)
	numPoints := endPts[len(endPts)-1] + 1
	flags := make([]byte, 0, numPoints)
	for len(flags) < numPoints {
		if pos >= len(b) {
			return errMalformedGlyph(g.Index, "point flags exceed outline data")
		}
		f := b[pos]
		pos++
		flags = append(flags, f)
		if f&repeatFlag != 0 {
			if pos >= len(b) {
				return errMalformedGlyph(g.Index, "repeat count exceeds outline data")
			}
			for r := int(b[pos]); r > 0 && len(flags) < numPoints; r-- {
				flags = append(flags, f)
			}
			pos++
		}
	}
	points := make([]outlinePoint, numPoints)
	var x, y int16
	for i, f := range flags {
		switch {
		case f&xShortVector != 0:
			if pos >= len(b) {
				return errMalformedGlyph(g.Index, "x coordinates exceed outline data")
			}
			if f&xIsSameOrPositive != 0 {
				x += int16(b[pos])
			} else {
				x -= int16(b[pos])
			}
			pos++
		case f&xIsSameOrPositive == 0:
			dx, err := b.u16(pos)
			if err != nil {
				return errMalformedGlyph(g.Index, "x coordinates exceed outline data")
			}
			x += int16(dx)
			pos += 2
		}
		points[i].x, points[i].onCurve = float64(x), f&onCurvePoint != 0
	}
	for i, f := range flags {
		switch {
		case f&yShortVector != 0:
			if pos >= len(b) {
				return errMalformedGlyph(g.Index, "y coordinates exceed outline data")
			}
			if f&yIsSameOrPositive != 0 {
				y += int16(b[pos])
			} else {
				y -= int16(b[pos])
			}
			pos++
		case f&yIsSameOrPositive == 0:
			dy, err := b.u16(pos)
			if err != nil {
				return errMalformedGlyph(g.Index, "y coordinates exceed outline data")
			}
			y += int16(dy)
			pos += 2
		}
		points[i].y = float64(y)
	}
	start := 0
	for _, end := range endPts {
		g.Commands = appendContour(g.Commands, points[start:end+1])
		start = end + 1
	}
	return nil
}

// appendContour appends path commands for a closed contour of quadratic
// B-splines. Two consecutive off-curve points imply an on-curve point at
// their midpoint.
func appendContour(cmds []PathCommand, pts []outlinePoint) []PathCommand {
	n := len(pts)
	if n == 0 {
		return cmds
	}
	mid := func(a, b outlinePoint) outlinePoint {
		return outlinePoint{x: (a.x + b.x) / 2, y: (a.y + b.y) / 2, onCurve: true}
	}
	first := -1
	for i, p := range pts {
		if p.onCurve {
			first = i
			break
		}
	}
	var start outlinePoint
	var rest []outlinePoint
	if first < 0 { // no point on the curve at all
		start = mid(pts[n-1], pts[0])
		rest = pts
	} else {
		start = pts[first]
		rest = append(append(rest, pts[first+1:]...), pts[:first]...)
	}
	cmds = append(cmds, PathCommand{Kind: MoveTo, X: start.x, Y: start.y})
	var ctrl *outlinePoint
	for i := range rest {
		p := rest[i]
		if p.onCurve {
			if ctrl != nil {
				cmds = append(cmds, PathCommand{Kind: QuadTo, X1: ctrl.x, Y1: ctrl.y, X: p.x, Y: p.y})
				ctrl = nil
			} else {
				cmds = append(cmds, PathCommand{Kind: LineTo, X: p.x, Y: p.y})
			}
			continue
		}
		if ctrl != nil {
			m := mid(*ctrl, p)
			cmds = append(cmds, PathCommand{Kind: QuadTo, X1: ctrl.x, Y1: ctrl.y, X: m.x, Y: m.y})
		}
		ctrl = &rest[i]
	}
	if ctrl != nil {
		cmds = append(cmds, PathCommand{Kind: QuadTo, X1: ctrl.x, Y1: ctrl.y, X: start.x, Y: start.y})
	}
	return append(cmds, PathCommand{Kind: Close})
}

// RemapComponents rewrites the glyph indices of a composite glyph's components,
// both in Components and in the outline bytes. remap must contain an entry
// for every component; a missing entry results in an error wrapping
// ErrMalformedGlyph and leaves the glyph unchanged.
func (g *Glyph) RemapComponents(remap map[GlyphIndex]GlyphIndex) error {
	for _, c := range g.Components {
		if _, ok := remap[c.GlyphIndex]; !ok {
			return errMalformedGlyph(g.Index, fmt.Sprintf("component %d has no new index", c.GlyphIndex))
		}
	}
	for i := range g.Components {
		c := &g.Components[i]
		c.GlyphIndex = remap[c.GlyphIndex]
		putU16(g.data[c.at:], uint16(c.GlyphIndex))
	}
	return nil
}
