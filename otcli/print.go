package main

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/fontmin/ot"
	"github.com/npillmayer/fontmin/otquery"
	"github.com/pterm/pterm"
	"golang.org/x/image/font/sfnt"
)

func infoOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	data := [][]string{
		{"Property", "Value"},
		{"File", intp.font.Filepath},
		{"Type", otquery.FontType(intp.otf)},
	}
	names := otquery.FontNames(intp.otf)
	ids := make([]sfnt.NameID, 0, len(names))
	for id := range names {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		data = append(data, []string{fmt.Sprintf("name %d", id), names[id]})
	}
	if h, ok := otquery.HeadInfo(intp.otf); ok {
		data = append(data,
			[]string{"Revision", fmt.Sprintf("%.3f", h.FontRevision)},
			[]string{"Created", h.Created.Format("2006-01-02")},
			[]string{"Modified", h.Modified.Format("2006-01-02")},
		)
	}
	if m, ok := otquery.MaxPInfo(intp.otf); ok {
		data = append(data, []string{"Glyphs", strconv.Itoa(int(m.NumGlyphs))})
	}
	m := otquery.FontMetrics(intp.otf)
	data = append(data,
		[]string{"Units per em", fmt.Sprintf("%d", m.UnitsPerEm)},
		[]string{"Ascent / descent", fmt.Sprintf("%d / %d", m.Ascent, m.Descent)},
		[]string{"Line gap", fmt.Sprintf("%d", m.LineGap)},
		[]string{"Max advance", fmt.Sprintf("%d", m.MaxAdvance)},
	)
	if intp.stats != nil {
		data = append(data, []string{"Minified", intp.stats.String()})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func glyphOp(intp *Intp, op *Op) (error, bool) {
	g, err := intp.glyphFor(op.arg)
	if err != nil {
		return err, false
	}
	pterm.Println(g.String())
	unicodes := make([]string, len(g.Unicodes))
	for i, r := range g.Unicodes {
		unicodes[i] = fmt.Sprintf("U+%04X", r)
	}
	m := otquery.GlyphMetrics(intp.otf, g.Index)
	data := [][]string{
		{"Property", "Value"},
		{"Index", strconv.Itoa(int(g.Index))},
		{"Name", g.Name},
		{"Code-points", strings.Join(unicodes, " ")},
		{"Advance width", strconv.Itoa(int(g.AdvanceWidth))},
		{"Side bearings", fmt.Sprintf("%d / %d", m.LSB, m.RSB)},
		{"Bounding box", fmt.Sprintf("(%d,%d) - (%d,%d)", m.BBox.MinX, m.BBox.MinY, m.BBox.MaxX, m.BBox.MaxY)},
	}
	if g.HasVerticalMetrics {
		data = append(data, []string{"Advance height", fmt.Sprintf("%d (tsb %d)", g.AdvanceHeight, g.TopSideBearing)})
	}
	for i, c := range g.Components {
		data = append(data, []string{
			fmt.Sprintf("Component %d", i),
			fmt.Sprintf("glyph %d at (%d,%d) flags %#04x", c.GlyphIndex, c.DX, c.DY, c.Flags),
		})
	}
	if !g.IsComposite {
		data = append(data, []string{"Path commands", strconv.Itoa(len(g.Commands))})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func pathOp(intp *Intp, op *Op) (error, bool) {
	g, err := intp.glyphFor(op.arg)
	if err != nil {
		return err, false
	}
	size := float64(intp.otf.UnitsPerEm())
	if op.format != "" {
		if size, err = strconv.ParseFloat(op.format, 64); err != nil || size <= 0 {
			return fmt.Errorf("invalid size: %s", op.format), false
		}
	}
	cmds, err := glyphPath(intp.otf, g, 0, 0, size, 0)
	if err != nil {
		return err, false
	}
	pterm.Printf("%s at size %g: %d commands\n", g.String(), size, len(cmds))
	parts := make([]string, len(cmds))
	for i, c := range cmds {
		parts[i] = c.String()
	}
	pterm.Println(strings.Join(parts, " "))
	return nil, false
}

// maxComponentDepth limits nesting of composite glyphs.
const maxComponentDepth = 8

// glyphPath returns the path of a glyph, resolving the components of
// composite glyphs. Component offsets are applied, scales are applied to the
// axes only.
func glyphPath(otf *ot.Font, g *ot.Glyph, x, y, size float64, depth int) ([]ot.PathCommand, error) {
	if !g.IsComposite {
		return g.PathCommands(x, y, size, ot.PathOptions{}, otf), nil
	}
	if depth >= maxComponentDepth {
		return nil, fmt.Errorf("glyph %d: components nested too deeply", g.Index)
	}
	scale := size / float64(otf.UnitsPerEm())
	var cmds []ot.PathCommand
	for _, c := range g.Components {
		cg, err := otf.LoadGlyph(c.GlyphIndex, ot.GlyphOptions{})
		if err != nil {
			return nil, err
		}
		cx, cy := x+float64(c.DX)*scale, y-float64(c.DY)*scale
		if cg.IsComposite {
			sub, err := glyphPath(otf, cg, cx, cy, size, depth+1)
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, sub...)
			continue
		}
		opts := ot.PathOptions{}
		if c.XScale != 0 && c.YScale != 0 {
			opts.XScale, opts.YScale = scale*c.XScale, scale*c.YScale
		}
		cmds = append(cmds, cg.PathCommands(cx, cy, size, opts, otf)...)
	}
	return cmds, nil
}

// glyphFor loads the glyph for a character given as itself ("A") or as
// code-point ("U+0041").
func (intp *Intp) glyphFor(arg string) (*ot.Glyph, error) {
	if err := intp.checkFont(); err != nil {
		return nil, err
	}
	r, err := parseRune(arg)
	if err != nil {
		return nil, err
	}
	gid := intp.otf.CharToGlyphIndex(r)
	if gid == 0 {
		pterm.Warning.Printf("%#U is not contained in font\n", r)
	}
	return intp.otf.Glyph(gid)
}

func parseRune(arg string) (rune, error) {
	if arg == "" {
		return 0, errors.New("character missing")
	}
	if len(arg) > 2 && (arg[:2] == "U+" || arg[:2] == "u+") {
		n, err := strconv.ParseUint(arg[2:], 16, 32)
		if err != nil || n > utf8.MaxRune {
			return 0, fmt.Errorf("invalid code-point: %s", arg)
		}
		return rune(n), nil
	}
	r, size := utf8.DecodeRuneInString(arg)
	if r == utf8.RuneError || size != len(arg) {
		return 0, fmt.Errorf("not a single character: %q", arg)
	}
	return r, nil
}
