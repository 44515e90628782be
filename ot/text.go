package ot

// LoadGlyph loads glyph g from the font's tables 'glyf', 'loca', 'hmtx' and
// (if present) 'vmtx'. Name and code-points are taken from opts, which lets
// clients decide on them; opts.Index defaults to g.
func (otf *Font) LoadGlyph(g GlyphIndex, opts GlyphOptions) (*Glyph, error) {
	data, err := otf.GlyphData(g)
	if err != nil {
		return nil, err
	}
	hm, err := otf.HMetric(g)
	if err != nil {
		return nil, err
	}
	vm, hasV, err := otf.VMetric(g)
	if err != nil {
		return nil, err
	}
	if opts.Index == 0 {
		opts.Index = g
	}
	opts.AdvanceWidth, opts.LeftSideBearing = hm.Advance, hm.Bearing
	opts.AdvanceHeight, opts.TopSideBearing, opts.HasVerticalMetrics = vm.Advance, vm.Bearing, hasV
	opts.Data = data
	return NewGlyph(opts)
}

// Glyph loads glyph g, named as in table 'post', with all code-points the
// cmap maps to it.
func (otf *Font) Glyph(g GlyphIndex) (*Glyph, error) {
	name, _ := otf.GlyphName(g)
	return otf.LoadGlyph(g, GlyphOptions{
		Name:     name,
		Unicodes: otf.CodePointsForGlyph(g),
	})
}

// Glyphs loads all glyphs of the font, in glyph order.
func (otf *Font) Glyphs() ([]*Glyph, error) {
	n, err := otf.NumGlyphs()
	if err != nil {
		return nil, err
	}
	glyphs := make([]*Glyph, n)
	for i := range n {
		if glyphs[i], err = otf.Glyph(GlyphIndex(i)); err != nil {
			return nil, err
		}
	}
	return glyphs, nil
}

// TextToGlyphs loads the glyphs for the code-points of text. Code-points not
// contained in the font result in glyph 0.
func (otf *Font) TextToGlyphs(text string) ([]*Glyph, error) {
	indexes := otf.TextToGlyphIndexes(text)
	glyphs := make([]*Glyph, len(indexes))
	loaded := make(map[GlyphIndex]*Glyph)
	for i, gid := range indexes {
		if g, ok := loaded[gid]; ok {
			glyphs[i] = g
			continue
		}
		g, err := otf.Glyph(gid)
		if err != nil {
			return nil, err
		}
		loaded[gid] = g
		glyphs[i] = g
	}
	return glyphs, nil
}

// LayoutOptions influence the horizontal placement of glyphs. LetterSpacing
// is given in em, Tracking in thousandths of an em; LetterSpacing takes
// precedence.
type LayoutOptions struct {
	LetterSpacing float64
	Tracking      float64
	Path          PathOptions
}

// ForEachGlyph places the glyphs for text on a line, starting at (x, y), and
// calls fn for each glyph with its position. It returns the x position after
// the last glyph.
func (otf *Font) ForEachGlyph(text string, x, y, fontSize float64, opts LayoutOptions,
	fn func(g *Glyph, x, y float64)) (float64, error) {
	//
	glyphs, err := otf.TextToGlyphs(text)
	if err != nil {
		return x, err
	}
	scale := fontSize / float64(otf.UnitsPerEm())
	for _, g := range glyphs {
		if fn != nil {
			fn(g, x, y)
		}
		x += float64(g.AdvanceWidth) * scale
		if opts.LetterSpacing != 0 {
			x += opts.LetterSpacing * fontSize
		} else if opts.Tracking != 0 {
			x += opts.Tracking / 1000 * fontSize
		}
	}
	return x, nil
}

// AdvanceWidth returns the width of text set at fontSize.
func (otf *Font) AdvanceWidth(text string, fontSize float64, opts LayoutOptions) (float64, error) {
	return otf.ForEachGlyph(text, 0, 0, fontSize, opts, nil)
}

// TextPath returns the path commands for text set at fontSize, with the
// baseline starting at (x, y).
func (otf *Font) TextPath(text string, x, y, fontSize float64, opts LayoutOptions) ([]PathCommand, error) {
	var cmds []PathCommand
	_, err := otf.ForEachGlyph(text, x, y, fontSize, opts, func(g *Glyph, gx, gy float64) {
		cmds = append(cmds, g.PathCommands(gx, gy, fontSize, opts.Path, otf)...)
	})
	return cmds, err
}
