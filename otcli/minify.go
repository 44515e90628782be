package main

import (
	"errors"
	"os"

	"github.com/npillmayer/fontmin/container"
	"github.com/npillmayer/fontmin/minify"
	"github.com/pterm/pterm"
)

func minifyOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	if op.noArg() {
		return errors.New("text to minify for is missing"), false
	}
	otf := intp.otf.Clone()
	stats, err := minify.Font(otf, minify.NewCharset(op.arg), minify.Options{})
	if err != nil {
		return err, false
	}
	intp.otf, intp.stats, intp.table = otf, stats, nil
	pterm.Success.Println(stats.String())
	if len(stats.Missing) > 0 {
		pterm.Warning.Printf("missing code-points: %q\n", string(stats.Missing))
	}
	return nil, false
}

func resetOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	intp.otf, intp.stats, intp.table = intp.font.OT.Clone(), nil, nil
	pterm.Info.Println("font reset to its original glyphs")
	return nil, false
}

func saveOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	if op.noArg() {
		return errors.New("file name missing"), false
	}
	data, err := container.Assemble(intp.otf)
	if err != nil {
		return err, false
	}
	if err := os.WriteFile(op.arg, data, 0o644); err != nil {
		return err, false
	}
	pterm.Success.Printf("wrote %d bytes to %s\n", len(data), op.arg)
	return nil, false
}
