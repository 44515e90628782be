package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/npillmayer/fontmin/container"
	"github.com/npillmayer/fontmin/ot"
	"github.com/pterm/pterm"
)

func tablesOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	data := [][]string{
		{"Tag", "Size", "Checksum"},
	}
	total := 0
	for _, e := range intp.otf.Entries() {
		total += len(e.Data)
		data = append(data, []string{
			e.Tag.String(),
			fmt.Sprintf("%d", len(e.Data)),
			fmt.Sprintf("%#08x", container.Checksum(e.Data)),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	pterm.Printf("%d tables, %d bytes\n", len(data)-1, total)
	return nil, false
}

// recordTable is implemented by all tables with a fixed header.
type recordTable interface {
	Layout() *ot.Layout
	Value(ot.Field) any
}

func tableOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	if op.noArg() {
		return errors.New("table tag missing"), false
	}
	tag := tableTag(op.arg)
	table, err := intp.otf.Table(tag)
	if err != nil {
		return err, false
	} else if table == nil {
		return fmt.Errorf("table %s not found in font", tag), false
	}
	intp.table = table
	tracer().Infof("setting table: %v", tag)
	pterm.Printf("table %s, %d bytes\n", tag, len(table.Binary()))
	if rec, ok := table.(recordTable); ok {
		printFields(rec)
	} else {
		printHex(table.Binary(), 128)
	}
	return nil, false
}

// tableTag pads short tags like "cvt" or "CFF" with blanks.
func tableTag(s string) ot.Tag {
	if len(s) < 4 {
		s += strings.Repeat(" ", 4-len(s))
	}
	return ot.T(s)
}

func printFields(rec recordTable) {
	data := [][]string{
		{"Field", "Type", "Offset", "Value"},
	}
	for _, f := range rec.Layout().Fields() {
		data = append(data, []string{
			f.Name,
			f.Type.String(),
			fmt.Sprintf("%d", f.Offset),
			formatValue(f, rec.Value(f)),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func formatValue(f ot.Field, v any) string {
	switch x := v.(type) {
	case time.Time:
		return x.Format(time.RFC3339)
	case uint32:
		if f.Type == ot.Uint32 {
			return fmt.Sprintf("%d (%#08x)", x, x)
		}
	case float64:
		return fmt.Sprintf("%.4f", x)
	}
	return fmt.Sprintf("%v", v)
}

func printHex(b []byte, limit int) {
	if len(b) > limit {
		pterm.Print(hex.Dump(b[:limit]))
		pterm.Printf("... %d more bytes\n", len(b)-limit)
		return
	}
	pterm.Print(hex.Dump(b))
}
