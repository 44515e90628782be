package ot

import (
	"fmt"
	"slices"
)

// Reserved glyph names.
const (
	NotdefGlyphName = ".notdef" // glyph 0, the missing glyph; never has a code-point
	NullGlyphName   = ".null"   // the only glyph allowed to map from code-point 0
)

// Glyph is a glyph of a TrueType font, together with its metrics.
//
// Glyphs are not views: they hold a private copy of their outline bytes, which
// may be changed (see RemapComponents) without affecting the font the glyph
// has been loaded from.
type Glyph struct {
	Index              GlyphIndex // position in the glyph order
	Name               string     // PostScript name, or empty
	Unicode            rune       // primary code-point; valid if HasUnicode()
	Unicodes           []rune     // all code-points mapping to this glyph, primary first
	AdvanceWidth       uint16
	LeftSideBearing    int16
	AdvanceHeight      uint16
	TopSideBearing     int16
	HasVerticalMetrics bool
	IsComposite        bool
	Components         []Component   // components of a composite glyph
	Commands           []PathCommand // outline of a simple glyph, in font units, Y up
	data               []byte
}

// GlyphOptions hold the properties of a glyph to create.
type GlyphOptions struct {
	Index              GlyphIndex
	Name               string
	Unicodes           []rune // the first code-point is the primary one
	AdvanceWidth       uint16
	LeftSideBearing    int16
	AdvanceHeight      uint16
	TopSideBearing     int16
	HasVerticalMetrics bool
	Data               []byte // outline data in 'glyf' format; will be copied
}

// NewGlyph creates a glyph, decoding its outline data.
//
// A glyph named '.notdef' never has a code-point; code-points given for it are
// dropped. A glyph named '.null' always maps from code-point 0. Code-point 0
// given for any other glyph results in an error wrapping
// ErrInvalidGlyphDefinition.
// Outline data which cannot be decoded results in an error wrapping
// ErrMalformedGlyph.
func NewGlyph(opts GlyphOptions) (*Glyph, error) {
	unicodes := slices.Clone(opts.Unicodes)
	switch opts.Name {
	case NotdefGlyphName:
		unicodes = nil
	case NullGlyphName:
		rest := slices.DeleteFunc(unicodes, func(r rune) bool { return r == 0 })
		unicodes = append([]rune{0}, rest...)
	default:
		if slices.Contains(unicodes, 0) {
			return nil, FontError{
				Table:    T("glyf"),
				Section:  fmt.Sprintf("glyph %d", opts.Index),
				Issue:    fmt.Sprintf("code-point 0 is reserved for %q, glyph is named %q", NullGlyphName, opts.Name),
				Severity: SeverityCritical,
				Err:      ErrInvalidGlyphDefinition,
			}
		}
	}
	g := &Glyph{
		Index:              opts.Index,
		Name:               opts.Name,
		Unicodes:           unicodes,
		AdvanceWidth:       opts.AdvanceWidth,
		LeftSideBearing:    opts.LeftSideBearing,
		AdvanceHeight:      opts.AdvanceHeight,
		TopSideBearing:     opts.TopSideBearing,
		HasVerticalMetrics: opts.HasVerticalMetrics,
		data:               slices.Clone(opts.Data),
	}
	if len(unicodes) > 0 {
		g.Unicode = unicodes[0]
	}
	if err := g.decodeOutline(); err != nil {
		return nil, err
	}
	return g, nil
}

// HasUnicode reports whether any code-point maps to this glyph.
func (g *Glyph) HasUnicode() bool {
	return len(g.Unicodes) > 0
}

// Data returns the outline bytes of the glyph in 'glyf' format.
func (g *Glyph) Data() []byte {
	return g.data
}

func (g *Glyph) String() string {
	kind := "simple"
	if g.IsComposite {
		kind = fmt.Sprintf("composite of %d", len(g.Components))
	}
	if g.HasUnicode() {
		return fmt.Sprintf("glyph %d %q U+%04X (%s, %d bytes)", g.Index, g.Name, g.Unicode, kind, len(g.data))
	}
	return fmt.Sprintf("glyph %d %q (%s, %d bytes)", g.Index, g.Name, kind, len(g.data))
}

// --- Path commands ---------------------------------------------------------

// PathKind is the type of a path command.
type PathKind byte

// Path command kinds, following the SVG path syntax.
const (
	MoveTo  PathKind = 'M'
	LineTo  PathKind = 'L'
	QuadTo  PathKind = 'Q'
	CubicTo PathKind = 'C'
	Close   PathKind = 'Z'
)

// PathCommand is a drawing command of a glyph outline. Control points
// (X1, Y1) and (X2, Y2) are used by quadratic and cubic curves only; Close
// has no points at all.
type PathCommand struct {
	Kind   PathKind
	X1, Y1 float64
	X2, Y2 float64
	X, Y   float64
}

func (c PathCommand) String() string {
	switch c.Kind {
	case MoveTo, LineTo:
		return fmt.Sprintf("%c %g %g", c.Kind, c.X, c.Y)
	case QuadTo:
		return fmt.Sprintf("Q %g %g %g %g", c.X1, c.Y1, c.X, c.Y)
	case CubicTo:
		return fmt.Sprintf("C %g %g %g %g %g %g", c.X1, c.Y1, c.X2, c.Y2, c.X, c.Y)
	}
	return "Z"
}

// PathOptions influence the projection of glyph outlines.
// Zero values select the default scale fontSize/unitsPerEm.
type PathOptions struct {
	XScale float64
	YScale float64
}

// PathCommands projects the outline of the glyph to a coordinate system with
// the glyph's origin at (x, y) and the Y axis pointing down. Outline
// coordinates are scaled by fontSize/unitsPerEm, where unitsPerEm is taken
// from font, or 1000 if font is nil. opts may override the scale for either
// axis.
//
// Composite glyphs have no path commands of their own.
func (g *Glyph) PathCommands(x, y, fontSize float64, opts PathOptions, font *Font) []PathCommand {
	upem := 1000.0
	if font != nil {
		upem = float64(font.UnitsPerEm())
	}
	scale := fontSize / upem
	xs, ys := scale, scale
	if opts.XScale != 0 {
		xs = opts.XScale
	}
	if opts.YScale != 0 {
		ys = opts.YScale
	}
	commands := make([]PathCommand, len(g.Commands))
	for i, cmd := range g.Commands {
		out := PathCommand{Kind: cmd.Kind}
		switch cmd.Kind {
		case CubicTo:
			out.X2, out.Y2 = x+cmd.X2*xs, y-cmd.Y2*ys
			fallthrough
		case QuadTo:
			out.X1, out.Y1 = x+cmd.X1*xs, y-cmd.Y1*ys
			fallthrough
		case MoveTo, LineTo:
			out.X, out.Y = x+cmd.X*xs, y-cmd.Y*ys
		}
		commands[i] = out
	}
	return commands
}
