/*
Package ot models the tables of an SFNT font (TrueType/OpenType outlines) as
typed views over the font's binary data.

A font is held as an ordered directory of (tag, bytes) pairs, see type Font.
Tables are materialized lazily: the first request for a tag looks up a
factory in a process-wide registry (see RegisterTableType) and constructs a
table over the bytes for that tag. Tags without a registered factory are
handed out as RawTable, i.e. uninterpreted bytes.

Most tables are built on Record, a view which maps named, typed fields
(integers of various widths, 16.16 fixed-point numbers, LONGDATETIME) onto
fixed byte offsets of a shared buffer. Reading a field decodes big-endian
bytes, writing a field encodes them in place. Records never copy their data,
so two records over overlapping bytes observe each other's writes:

	head, _ := otf.Head()
	head.SetUint("checkSumAdjustment", 0)
	fmt.Println(head.UnitsPerEm())

Tables may be replaced as a whole with Font.Set. This is how package minify
rebuilds a font for a subset of glyphs.

Besides the tables, package ot contains a glyph model (type Glyph) with
composite components and outline path commands, and the codec for cmap
subtables of format 12.

# Status

Only TrueType outlines are interpreted. CFF/CFF2 tables, font collections
and variable fonts pass through as raw tables.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>

Some of the cmap code follows golang.org/x/image/font/sfnt/cmap.go.

	Copyright 2017 The Go Authors. All rights reserved.
	Use of this source code is governed by a BSD-style
	license that can be found in the LICENSE file.
*/
package ot

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'font.fontmin'
func tracer() tracing.Trace {
	return tracing.Select("font.fontmin")
}

func assertEqualInt(name string, a, b int) {
	if a != b {
		panic(fmt.Sprintf("assertion [%s] failed: %d != %d", name, a, b))
	}
}
