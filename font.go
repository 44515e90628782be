/*
Package fontmin reduces TrueType fonts to the glyphs needed for a given text.

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" is a family of fonts. An example is "Helvetica".
This corresponds to a TrueType "collection" (*.ttc).

▪︎ A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

Package fontmin works on scalable fonts. A typical use is to embed a font
into a document or web page, where only the characters actually used
should be carried along:

	f, err := fontmin.LoadOpenTypeFont("DejaVuSans.ttf")
	...
	sub, stats, err := f.Subset("Hello World", minify.Options{})
	...
	os.WriteFile("hello.ttf", sub.Binary, 0o644)

The building blocks live in sub-packages: package ot models font tables,
package container reads and writes the SFNT file format, package minify
selects and renumbers glyphs, and package otquery answers questions about
fonts.

# Status

Does not contain methods for font collections (*.ttc), e.g.,
/System/Library/Fonts/Helvetica.ttc on Mac OS. Fonts with CFF outlines
can be inspected, but not minified.

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontmin

import (
	"github.com/npillmayer/fontmin/container"
	"github.com/npillmayer/fontmin/internal/fontload"
	"github.com/npillmayer/fontmin/ot"
	"github.com/npillmayer/fontmin/otquery"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'font.fontmin'
func tracer() tracing.Trace {
	return tracing.Select("font.fontmin")
}

// ScalableFont is an internal representation of an outline-font of type
// TTF of OTF.
//
// SFNT and OT are two views of Binary: SFNT is used for rendering-related
// queries, OT for table level access. OT holds its own copy of the bytes,
// so changing tables of OT does not change Binary.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path, if loaded from a file
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container, not safe for concurrent use
	OT       *ot.Font   // table view
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file. fontfile
// may also be the name of a system font.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	sf, err := fontload.Resolve(fontfile)
	if err != nil {
		return nil, err
	}
	return fromLoaded(sf)
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
func ParseOpenTypeFont(fbytes []byte) (*ScalableFont, error) {
	sf, err := fontload.ParseOpenTypeFont(fbytes)
	if err != nil {
		return nil, err
	}
	return fromLoaded(sf)
}

func fromLoaded(sf *fontload.ScalableFont) (*ScalableFont, error) {
	otf, err := container.Parse(sf.Binary)
	if err != nil {
		return nil, err
	}
	f := &ScalableFont{
		Fontname: sf.Fontname,
		Filepath: sf.Filepath,
		Binary:   sf.Binary,
		SFNT:     sf.SFNT,
		OT:       otf,
	}
	tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	return f, nil
}

// FamilyName extracts family and subfamily names from a font's `name` table.
//
// Returned values are empty if no matching records exist or if records cannot be
// decoded.
func FamilyName(f *ot.Font) (family, subfamily string) {
	names := otquery.FontNames(f)
	return names[sfnt.NameIDFamily], names[sfnt.NameIDSubfamily]
}
