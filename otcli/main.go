/*
Command otcli is an interactive inspector for TrueType fonts. It shows
tables, glyphs and outlines, and minifies a font to the glyphs of a text.

	otcli -font DejaVuSans.ttf -trace Info

Type "help" at the prompt for a list of commands.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/fontmin"
	"github.com/npillmayer/fontmin/minify"
	"github.com/npillmayer/fontmin/ot"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'font.fontmin'
func tracer() tracing.Trace {
	return tracing.Select("font.fontmin")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":    "go",
		"trace.font.fontmin": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load, file path or system font name")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)   // will set the correct level later
	pterm.Info.Println("Welcome to FontMin CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("fontmin > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	//
	// load font to use
	if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font  *fontmin.ScalableFont // font as loaded
	otf   *ot.Font              // working copy, possibly minified
	stats *minify.Stats         // result of the last minification
	repl  *readline.Instance
	table ot.Table // current table
}

func (intp *Intp) String() string {
	if intp == nil || intp.otf == nil {
		return "()"
	}
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("( font=%s", intp.font.Fontname))
	if intp.stats != nil {
		sb.WriteString(fmt.Sprintf(" minified=%d/%d", intp.stats.Glyphs, intp.stats.SourceGlyphs))
	}
	if intp.table != nil {
		sb.WriteString(fmt.Sprintf(" table=%s", intp.table.Self().NameTag()))
	}
	sb.WriteString(" )")
	return sb.String()
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := parseCommand(line)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf(err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// Op is a parsed command: an op-code with up to two arguments.
type Op struct {
	code   int
	arg    string
	format string
}

const NOOP = -1
const (
	// op-codes QUIT and INFO will not have arguments
	QUIT int = iota
	INFO
	TABLES
	RESET
	// op-codes below may have arguments
	HELP
	TABLE
	GLYPH
	PATH
	MINIFY
	SAVE
)

var opMap = map[string]int{
	"quit":   QUIT,
	"info":   INFO,
	"tables": TABLES,
	"reset":  RESET,
	"help":   HELP,
	"table":  TABLE,
	"glyph":  GLYPH,
	"path":   PATH,
	"minify": MINIFY,
	"save":   SAVE,
}

var opNames = []string{
	"quit",
	"info",
	"tables",
	"reset",
	"help",
	"table",
	"glyph",
	"path",
	"minify",
	"save",
}

// parseCommand splits a line into an op-code and its arguments, e.g.
// "path A 24" or "minify Hello World". Unknown commands map to help.
// The argument of minify is the rest of the line, including blanks.
func parseCommand(line string) (*Op, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, errors.New("empty command")
	}
	word, rest, _ := strings.Cut(line, " ")
	code, ok := opMap[strings.ToLower(word)]
	if !ok {
		tracer().Infof("unknown command %q", word)
		return &Op{code: HELP}, nil
	}
	op := &Op{code: code}
	if code < HELP {
		return op, nil
	}
	rest = strings.TrimLeft(rest, " ")
	if code == MINIFY {
		op.arg = rest
	} else {
		args := strings.Fields(rest)
		op.arg = getOptArg(args, 0)
		op.format = getOptArg(args, 1)
	}
	if op.arg == "" {
		tracer().Debugf("%s", opNames[op.code])
	} else {
		tracer().Debugf("%s: '%s'", opNames[op.code], op.arg)
	}
	return op, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:   quitOp,
	INFO:   infoOp,
	TABLES: tablesOp,
	RESET:  resetOp,
	HELP:   helpOp,
	TABLE:  tableOp,
	GLYPH:  glyphOp,
	PATH:   pathOp,
	MINIFY: minifyOp,
	SAVE:   saveOp,
}

func (intp *Intp) execute(op *Op) (err error, stop bool) {
	tracer().Debugf("op = %v", *op)
	f, ok := commandFn[op.code]
	if !ok {
		pterm.Error.Printf("unknown command code: %d\n", op.code)
		return nil, false
	}
	if err, stop = f(intp, op); err != nil {
		pterm.Error.Println(err)
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	pterm.Println("Goodbye!")
	return nil, true
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFont(fontname string) error {
	if fontname == "" {
		return errors.New("no font given, use flag -font")
	}
	f, err := fontmin.LoadOpenTypeFont(fontname)
	if err != nil {
		tracer().Errorf("cannot load font %s: %s", fontname, err)
		return err
	}
	tracer().Infof("loaded SFNT font = %s", f.Fontname)
	intp.font = f
	intp.otf = f.OT.Clone()
	intp.stats, intp.table = nil, nil
	pterm.Printf("font tables: %v\n", intp.otf.TableTags())
	return nil
}

// ----------------------------------------------------------------------

var ErrNoFont = errors.New("no font loaded")

func (intp *Intp) checkFont() error {
	if intp.otf == nil {
		return ErrNoFont
	}
	return nil
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg == ""
}
