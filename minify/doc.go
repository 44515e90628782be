/*
Package minify reduces a TrueType font to the glyphs needed for a given text.

Minification keeps glyph 0 ('.notdef'), the glyphs the font's cmap assigns to
the characters of a Charset, and every glyph these reference as components.
Retained glyphs are renumbered in this order, and the tables depending on the
glyph order are rebuilt: loca, glyf, cmap, hmtx, vmtx and post, together
with the glyph counts in head, maxp, hhea and vhea.

	otf, err := container.Parse(data)
	...
	stats, err := minify.Text(otf, "Hello World")
	...
	out, err := container.Assemble(otf)

Characters the font has no glyph for are mapped to '.notdef' and reported
in Stats.Missing; they are not an error. Errors in the source font (broken
outlines, cycles between composite glyphs, invalid glyph names) abort
minification before any table of the font has been changed.

Checksums and the table directory are the business of package container.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package minify

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.fontmin'
func tracer() tracing.Trace {
	return tracing.Select("font.fontmin")
}
