package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// codeFlags holds code block rendering flags.
type codeFlags struct {
	style       string
	noHighlight bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common        commonFlags
	output        string
	workers       int
	formats       []string
	title         string
	nameFromTitle bool
	cjkFont       string
	page          pageFlags
	code          codeFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addCodeFlags adds code block flags to a FlagSet.
func addCodeFlags(fs *flag.FlagSet, f *codeFlags) {
	fs.StringVar(&f.style, "code-style", "", "code highlighting style")
	fs.BoolVar(&f.noHighlight, "no-highlight", false, "disable code highlighting")
}

// buildConvertFlagSet registers every convert flag on a new FlagSet bound to f.
// Shared by parsing and completion so both see the same flags.
func buildConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringSliceVarP(&f.formats, "format", "f", nil, "output formats: docx, pdf (default both)")
	fs.StringVarP(&f.title, "title", "t", "", "document title (default: front matter title)")
	fs.BoolVar(&f.nameFromTitle, "name-from-title", false, "name output files after the title")
	fs.StringVar(&f.cjkFont, "cjk-font", "", "TrueType font for Japanese text in PDF")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addCodeFlags(fs, &f.code)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := buildConvertFlagSet(f)
	fs.SetOutput(usage)
	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
