package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

var helpTopics = map[string]string{
	"info":   "info\n\tShow names, type and global metrics of the font.",
	"tables": "tables\n\tList the tables of the font with sizes and checksums.",
	"table":  "table <tag>\n\tSelect a table and show its header fields, e.g. 'table head'.\n\tTags shorter than four characters are padded with blanks.",
	"glyph":  "glyph <char>\n\tShow the glyph for a character, e.g. 'glyph A' or 'glyph U+00C4'.",
	"path":   "path <char> [size]\n\tShow the outline of a glyph as path commands, set at size (default: units per em).",
	"minify": "minify <text>\n\tReduce the font to the glyphs needed for text. Minifying\n\tagain starts from the glyphs left over.",
	"reset":  "reset\n\tUndo all minifications.",
	"save":   "save <file>\n\tWrite the current font to a file.",
	"quit":   "quit\n\tLeave the CLI; <ctrl>D does the same.",
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	t := strings.ToLower(topic)
	if text, ok := helpTopics[t]; ok {
		pterm.Info.Println(t)
		pterm.Println(text)
		return
	}
	pterm.Info.Println("Commands")
	for _, name := range opNames {
		if text, ok := helpTopics[name]; ok {
			usage, _, _ := strings.Cut(text, "\n")
			pterm.Println("\t" + usage)
		}
	}
	pterm.Println("\thelp <command>")
}
