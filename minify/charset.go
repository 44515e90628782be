package minify

import (
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Charset is an ordered set of code-points. The order of insertion is kept,
// as it determines the order of glyphs in a minified font.
//
// The zero value is an empty charset ready to use.
type Charset struct {
	runes []rune
	index map[rune]struct{}
}

// NewCharset creates a charset from the code-points of text, followed by
// the code-points of its Unicode normalization form NFC not already
// contained. Texts in decomposed form thus also select precomposed glyphs.
func NewCharset(text string) *Charset {
	cs := &Charset{}
	for _, r := range text {
		cs.Add(r)
	}
	if !norm.NFC.IsNormalString(text) {
		for _, r := range norm.NFC.String(text) {
			cs.Add(r)
		}
	}
	return cs
}

// Add adds code-points to the charset. Code-points already contained are
// ignored.
func (cs *Charset) Add(runes ...rune) {
	if cs.index == nil {
		cs.index = make(map[rune]struct{})
	}
	for _, r := range runes {
		if _, ok := cs.index[r]; ok {
			continue
		}
		cs.index[r] = struct{}{}
		cs.runes = append(cs.runes, r)
	}
}

// Contains reports whether r is part of the charset.
func (cs *Charset) Contains(r rune) bool {
	_, ok := cs.index[r]
	return ok
}

// Len returns the number of code-points in the charset.
func (cs *Charset) Len() int {
	return len(cs.runes)
}

// Runes returns the code-points of the charset in insertion order.
func (cs *Charset) Runes() []rune {
	return slices.Clone(cs.runes)
}

func (cs *Charset) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for _, r := range cs.runes {
		b.WriteRune(r)
	}
	b.WriteByte(']')
	return b.String()
}
