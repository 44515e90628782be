package otquery

import (
	"fmt"
	"iter"

	"github.com/npillmayer/fontmin/ot"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// nameKey identifies a NameRecord entry in OpenType table 'name'.
// The key follows the OpenType NameRecord fields directly.
type nameKey struct {
	Platform PlatformID
	Encoding EncodingID
	Language uint16
	Name     sfnt.NameID // see https://pkg.go.dev/golang.org/x/image/font/sfnt#NameID
}

type PlatformID uint16

const (
	PlatformIDUnicode   PlatformID = 0
	PlatformIDMacintosh PlatformID = 1
	PlatformIDWindows   PlatformID = 3
)

type EncodingID uint16

const (
	EncodingIDMacRoman      EncodingID = 0 // platform Macintosh
	EncodingIDWindowsSymbol EncodingID = 0 // platform Windows
	EncodingIDWindowsBMP    EncodingID = 1
	EncodingIDUnicodeBMP    EncodingID = 3
	EncodingIDUnicodeFull   EncodingID = 4
	EncodingIDWindowsFull   EncodingID = 10
)

const (
	languageMacEnglish     = 0
	languageWindowsEnglish = 0x0409
)

// NamesRange yields decoded `(nameID, value)` pairs from a font's OpenType
// `name` table, in record order. A name ID may be yielded more than once,
// once per platform and language.
//
// Only supported encodings are yielded (Unicode, Windows Unicode and
// Macintosh Roman), and malformed or out-of-bounds records are skipped.
func NamesRange(otf *ot.Font) iter.Seq2[sfnt.NameID, string] {
	return func(yield func(sfnt.NameID, string) bool) {
		for key, value := range namesRange(otf) {
			if !yield(key.Name, value) {
				return
			}
		}
	}
}

// FontNames returns one value per name ID. Windows English entries are
// preferred over Unicode platform entries, which are preferred over
// Macintosh English entries.
func FontNames(otf *ot.Font) map[sfnt.NameID]string {
	names := make(map[sfnt.NameID]string)
	ranks := make(map[sfnt.NameID]int)
	for key, value := range namesRange(otf) {
		rank := nameRank(key)
		if rank == 0 {
			continue
		}
		if rank > ranks[key.Name] {
			names[key.Name] = value
			ranks[key.Name] = rank
		}
	}
	return names
}

// FontName returns the value for a single name ID, or "".
func FontName(otf *ot.Font, id sfnt.NameID) string {
	return FontNames(otf)[id]
}

func nameRank(key nameKey) int {
	switch key.Platform {
	case PlatformIDWindows:
		if key.Language == languageWindowsEnglish {
			return 3
		}
	case PlatformIDUnicode:
		return 2
	case PlatformIDMacintosh:
		if key.Language == languageMacEnglish {
			return 1
		}
	}
	return 0
}

func namesRange(otf *ot.Font) iter.Seq2[nameKey, string] {
	table := nameTable(otf)
	return func(yield func(nameKey, string) bool) {
		if table == nil {
			return
		}
		for _, rec := range table.Records() {
			key := nameKey{
				Platform: PlatformID(rec.PlatformID),
				Encoding: EncodingID(rec.EncodingID),
				Language: rec.LanguageID,
				Name:     sfnt.NameID(rec.NameID),
			}
			enc := nameEncoding(key)
			if enc == nil {
				continue
			}
			value, err := decodeName(enc, rec.Value)
			if err != nil || value == "" {
				tracer().Debugf("skipping name record %d/%d/%d: %v", key.Platform, key.Encoding, key.Name, err)
				continue
			}
			if !yield(key, value) {
				return
			}
		}
	}
}

func nameTable(otf *ot.Font) *ot.NameTable {
	if otf == nil {
		return nil
	}
	table, err := otf.Name()
	if err != nil {
		tracer().Debugf("name table unusable: %v", err)
		return nil
	}
	if table == nil {
		tracer().Debugf("no name table found in font")
	}
	return table
}

// nameEncoding returns the decoder for a record, or nil if the platform and
// encoding are not supported.
func nameEncoding(key nameKey) encoding.Encoding {
	switch key.Platform {
	case PlatformIDUnicode:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case PlatformIDWindows:
		switch key.Encoding {
		case EncodingIDWindowsSymbol, EncodingIDWindowsBMP, EncodingIDWindowsFull:
			return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
		}
	case PlatformIDMacintosh:
		if key.Encoding == EncodingIDMacRoman {
			return charmap.Macintosh
		}
	}
	return nil
}

func decodeName(enc encoding.Encoding, str []byte) (string, error) {
	s, err := enc.NewDecoder().Bytes(str)
	if err != nil {
		return "", fmt.Errorf("decoding name string: %w", err)
	}
	return string(s), nil
}
