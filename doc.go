// Package mdexport converts lightweight Markdown drafts into Word (.docx)
// and PDF documents without external programs.
//
// # Quick Start
//
// The convenience functions use default options and never fail because of
// the shape of the input:
//
//	name, data := mdexport.ExportPDF("発明の名称", "# 背景\n\n本発明は…")
//	os.WriteFile(name, data, 0o644)
//
// # Exporter
//
// Create an Exporter to customise page settings, fonts and highlighting:
//
//	exp, err := mdexport.NewExporter(
//	    mdexport.WithPageSettings(&mdexport.PageSettings{Size: "letter", Orientation: "portrait", Margin: 1}),
//	    mdexport.WithCJKFont("/usr/share/fonts/ipaexg.ttf"),
//	    mdexport.WithWarnings(os.Stderr),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	docs, err := exp.ExportAll(ctx, mdexport.Input{Title: "draft", Markdown: src})
//
// An Exporter holds no per-document state and is safe for concurrent use.
//
// # Supported Markdown
//
// Each line is classified on its own: ATX headings (levels 1-6), bullet
// items ("- ", "* ", "+ "), numbered items ("1. " or "1) "), block quotes,
// fenced code blocks and paragraphs. Inside a line, **bold**, *italic* and
// `code` are recognised; unmatched delimiters stay literal. Nested lists,
// tables, links and images are written as plain text.
//
// # Fonts
//
// PDF output embeds a TrueType font able to draw Japanese text. The font is
// taken from WithCJKFont, otherwise searched for in the system font
// directories, otherwise the bundled Go fonts are used and a warning is
// reported once. DOCX output only names fonts; the reader's word processor
// supplies them.
package mdexport
