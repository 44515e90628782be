package fontmin

import (
	"fmt"

	"github.com/npillmayer/fontmin/container"
	"github.com/npillmayer/fontmin/minify"
)

// Subset creates a new font containing only the glyphs needed to display
// text. f is left unchanged.
//
// The result is re-parsed with golang.org/x/image/font/sfnt, which rejects
// fonts with inconsistent tables.
func (f *ScalableFont) Subset(text string, opts minify.Options) (*ScalableFont, *minify.Stats, error) {
	otf := f.OT.Clone()
	stats, err := minify.Font(otf, minify.NewCharset(text), opts)
	if err != nil {
		return nil, nil, err
	}
	data, err := container.Assemble(otf)
	if err != nil {
		return nil, nil, err
	}
	sub, err := ParseOpenTypeFont(data)
	if err != nil {
		return nil, nil, fmt.Errorf("minified font does not parse: %w", err)
	}
	tracer().Infof("subset of %s: %d of %d glyphs, %d → %d bytes", f.Fontname,
		stats.Glyphs, stats.SourceGlyphs, len(f.Binary), len(data))
	return sub, stats, nil
}

// Minify reduces the binary font data to the glyphs needed to display
// text, dropping all tables which do not contribute to outlines or metrics.
func Minify(data []byte, text string) ([]byte, error) {
	f, err := ParseOpenTypeFont(data)
	if err != nil {
		return nil, err
	}
	sub, _, err := f.Subset(text, minify.Options{Prune: true})
	if err != nil {
		return nil, err
	}
	return sub.Binary, nil
}
