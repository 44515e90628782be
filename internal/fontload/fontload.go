/*
Package fontload reads font files from disk and locates system fonts by name.

Fonts are parsed with golang.org/x/image/font/sfnt on load, so that files
which are not fonts at all are rejected early.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package fontload

import (
	"errors"
	"fmt"
	"os"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'font.fontmin'
func tracer() tracing.Trace {
	return tracing.Select("font.fontmin")
}

// ScalableFont is a parsed scalable font with original bytes and SFNT view.
type ScalableFont struct {
	Fontname string
	Filepath string
	Binary   []byte
	SFNT     *sfnt.Font
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, fmt.Errorf("font file %s: %w", fontfile, err)
	}
	f.Filepath = fontfile
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
// A font without a full name is not an error; Fontname stays empty.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err != nil {
		tracer().Debugf("font has no full name: %v", err)
	}
	return f, nil
}

// Locate returns the path of a font. name is either the path of a font
// file or the name of a system font (e.g. "Arial" or "DejaVuSans.ttf").
func Locate(name string) (string, error) {
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		return name, nil
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", err
	}
	path, err := findfont.Find(name)
	if err != nil {
		return "", fmt.Errorf("cannot locate font %q: %w", name, err)
	}
	tracer().Debugf("%s is a system font at %s", name, path)
	return path, nil
}

// Resolve locates a font by path or name and loads it.
func Resolve(name string) (*ScalableFont, error) {
	path, err := Locate(name)
	if err != nil {
		return nil, err
	}
	return LoadOpenTypeFont(path)
}
