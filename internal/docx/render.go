// Package docx renders parsed Markdown blocks into a WordprocessingML
// (.docx) document. The host application reflows the text, so the renderer
// only maps blocks onto paragraph styles and inline runs onto character
// formatting.
package docx

import (
	"strings"

	"github.com/alnah/go-mdexport/internal/highlight"
	"github.com/alnah/go-mdexport/internal/markdown"
)

// Options configures a Renderer. Zero values select defaults.
type Options struct {
	FallbackTitle string // heading used when the title is blank
	Page          Page
	Fonts         Fonts
	Highlight     bool   // colour fenced code with a known language
	CodeStyle     string // chroma style name
}

// Renderer produces .docx documents. It holds no per-document state and is
// safe for concurrent use.
type Renderer struct {
	opts Options
}

// New returns a Renderer with the given options.
func New(opts Options) *Renderer {
	if opts.Page == (Page{}) {
		opts.Page = A4Portrait
	}
	return &Renderer{opts: opts}
}

// Render builds the document: a level-1 heading with the title, then one or
// more paragraphs per block. blocks is not modified.
func (r *Renderer) Render(title string, blocks []markdown.Block) ([]byte, error) {
	heading := strings.TrimSpace(title)
	if heading == "" {
		heading = r.opts.FallbackTitle
	}

	b := NewBuilder(heading, r.opts.Page, r.opts.Fonts)
	b.Add(Paragraph{Style: headingStyleID(1), Runs: []Run{{Text: heading}}})

	for _, n := range markdown.Group(blocks) {
		if n.IsList() {
			r.renderList(b, n.List)
			continue
		}
		r.renderBlock(b, n.Block)
	}

	return b.Bytes()
}

func (r *Renderer) renderBlock(b *Builder, blk markdown.Block) {
	switch blk.Kind {
	case markdown.Blank:
		b.Add(Paragraph{})
	case markdown.Heading:
		b.Add(Paragraph{Style: headingStyleID(blk.Level), Runs: inlineRuns(blk.Text)})
	case markdown.Quote:
		b.Add(Paragraph{Style: styleIntenseQuote, Runs: inlineRuns(blk.Text)})
	case markdown.CodeBlock:
		r.renderCode(b, blk)
	default:
		b.Add(Paragraph{Runs: inlineRuns(blk.Text)})
	}
}

// renderList writes one paragraph per item. Each numbered run gets its own
// numbering instance so it restarts at the run's first ordinal.
func (r *Renderer) renderList(b *Builder, run *markdown.ListRun) {
	style, numID := styleListBullet, 0
	if run.Kind == markdown.Number {
		style, numID = styleListNumber, b.NewNumbering(run.Start)
	}
	for _, item := range run.Items {
		b.Add(Paragraph{Style: style, NumID: numID, Runs: inlineRuns(item.Text)})
	}
}

func (r *Renderer) renderCode(b *Builder, blk markdown.Block) {
	lines := blk.Lines()
	if len(lines) == 0 {
		b.Add(Paragraph{Style: styleSourceCode})
		return
	}

	var coloured [][]highlight.Span
	if r.opts.Highlight {
		coloured, _ = highlight.Lines(blk.Lang, blk.Text, r.opts.CodeStyle)
	}

	for i, line := range lines {
		if coloured == nil {
			b.Add(Paragraph{Style: styleSourceCode, Runs: []Run{{Text: line}}})
			continue
		}
		runs := make([]Run, 0, len(coloured[i]))
		for _, s := range coloured[i] {
			runs = append(runs, Run{Text: s.Text, Color: s.Color, Bold: s.Bold, Italic: s.Italic})
		}
		b.Add(Paragraph{Style: styleSourceCode, Runs: runs})
	}
}

// inlineRuns maps tokenized runs onto character formatting. Empty runs
// produce no output.
func inlineRuns(text string) []Run {
	tokens := markdown.Tokenize(text)
	runs := make([]Run, 0, len(tokens))
	for _, t := range tokens {
		switch t.Style {
		case markdown.Bold:
			runs = append(runs, Run{Text: t.Text, Bold: true})
		case markdown.Italic:
			runs = append(runs, Run{Text: t.Text, Italic: true})
		case markdown.Code:
			runs = append(runs, Run{Text: t.Text, Mono: true, Highlight: "lightGray", Shade: codeShade})
		default:
			runs = append(runs, Run{Text: t.Text})
		}
	}
	return runs
}
