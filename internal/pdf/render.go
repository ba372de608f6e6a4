// Package pdf renders parsed Markdown blocks onto fixed-size pages. It owns
// line wrapping and pagination: every line is measured, wrapped with
// Unicode line breaking rules so Japanese text breaks between ideographs,
// and placed below the previous one, starting a new page when the next line
// would cross the bottom margin.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/alnah/go-mdexport/internal/highlight"
	"github.com/alnah/go-mdexport/internal/markdown"
)

// Font sizes in points.
const (
	titleSize = 16
	bodySize  = 10
	codeSize  = 9
)

// leading is the line advance as a multiple of the font size.
const leading = 1.4

const (
	titleGap    = 6
	codeGap     = 4
	blankGap    = bodySize * leading // one empty body line
	quoteIndent = 14
	listIndent  = 18
	markerGap   = 4
	barWidth    = 2
	tabWidth    = 4
)

var (
	headingSizes = [...]float64{14, 12.5, 11.5}
	headingGaps  = [...]float64{8, 6, 4}

	textColor  = rgb{0, 0, 0, true}
	quoteColor = rgb{96, 96, 96, true}
	quoteBar   = rgb{190, 190, 190, true}
	codeFill   = rgb{242, 242, 242, true}
	inlineFill = rgb{232, 232, 232, true}
)

// Options configures a Renderer. Zero values select defaults.
type Options struct {
	FallbackTitle string   // title used when the given one is blank
	Page          Geometry // zero means A4
	FontPath      string   // TrueType face with Japanese glyphs; empty searches the system
	Highlight     bool     // colour fenced code with a known language
	CodeStyle     string   // chroma style name
	Warnings      io.Writer
}

// Renderer produces paginated PDF documents. It holds no per-document state
// and is safe for concurrent use.
type Renderer struct {
	opts  Options
	fonts *FontSet // nil loads opts.FontPath
}

// New returns a Renderer with the given options.
func New(opts Options) *Renderer {
	if opts.Page == (Geometry{}) {
		opts.Page = A4
	}
	return &Renderer{opts: opts}
}

// Render lays out the title followed by every block and returns the PDF.
// blocks is not modified.
func (r *Renderer) Render(title string, blocks []markdown.Block) ([]byte, error) {
	d, err := r.render(title, blocks)
	if err != nil {
		return nil, err
	}
	return d.data, nil
}

func (r *Renderer) render(title string, blocks []markdown.Block) (d *document, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("laying out pdf: %v", p)
		}
	}()

	fonts := r.fonts
	if fonts == nil {
		fonts = LoadFonts(r.opts.FontPath)
	}
	fonts.Warn(r.opts.Warnings)

	heading := strings.TrimSpace(title)
	if heading == "" {
		heading = r.opts.FallbackTitle
	}

	d = newDocument(r.opts, fonts, heading)
	d.place(para{spans: []span{{text: heading, face: faceBold}}, size: titleSize, words: true})
	d.gap(titleGap)

	for _, n := range markdown.Group(blocks) {
		if n.IsList() {
			d.list(n.List)
			continue
		}
		d.block(n.Block)
	}

	var buf bytes.Buffer
	if err := d.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	d.data = buf.Bytes()
	return d, nil
}

// document is the state of one render call.
type document struct {
	layout
	pdf        *gofpdf.Fpdf
	fonts      *FontSet
	body, mono string
	tr         func(string) string
	wrap       wrapper
	size       float64
	highlight  bool
	codeStyle  string
	data       []byte
}

func newDocument(opts Options, fonts *FontSet, title string) *document {
	geo := opts.Page
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: geo.Width, Ht: geo.Height},
	})
	pdf.SetMargins(geo.Left, geo.Top, geo.Right)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetTitle(basicPlane(title), true)
	pdf.SetCreator("go-mdexport", true)

	d := &document{
		pdf:       pdf,
		fonts:     fonts,
		tr:        func(s string) string { return s },
		highlight: opts.Highlight,
		codeStyle: opts.CodeStyle,
	}
	d.body, d.mono = fonts.register(pdf)
	if fonts.Core {
		d.tr = pdf.UnicodeTranslatorFromDescriptor("")
	}
	d.layout = layout{geo: geo, newPage: pdf.AddPage}
	d.wrap = wrapper{measure: d.measure}
	return d
}

func (d *document) setFont(f face) {
	switch f {
	case faceBold:
		d.pdf.SetFont(d.body, "B", d.size)
	case faceItalic:
		d.pdf.SetFont(d.body, "I", d.size)
	case faceMono:
		d.pdf.SetFont(d.mono, "", d.size)
	default:
		d.pdf.SetFont(d.body, "", d.size)
	}
}

func (d *document) measure(text string, f face) float64 {
	d.setFont(f)
	return d.pdf.GetStringWidth(d.tr(text))
}

// para is one paragraph-like unit of layout.
type para struct {
	spans  []span
	size   float64
	indent float64 // text offset from the left margin
	color  rgb     // colour of spans without their own
	marker string  // drawn left of the text on the first line
	bar    bool    // quote bar at the left margin
	fill   bool    // background across the full row
	words  bool    // wrap at line break opportunities
}

// place wraps p into the column and draws it line by line.
func (d *document) place(p para) {
	d.size = p.size
	h := p.size * leading
	left := d.geo.Left
	width := d.geo.ContentWidth()
	if !p.color.set {
		p.color = textColor
	}

	for i, ln := range d.wrap.wrap(p.spans, width-p.indent, p.words) {
		top := d.next(h)
		if p.fill {
			d.rect(left, top, width, h, codeFill)
		}
		if p.bar {
			d.rect(left, top, barWidth, h, quoteBar)
		}
		marker := ""
		if i == 0 && p.marker != "" {
			marker = p.marker
			d.draw(left, top, h, []span{{text: marker}}, p.color)
		}
		d.draw(left+p.indent, top, h, ln.spans, p.color)
		d.record(top, h, marker, ln.text())
	}
}

func (d *document) rect(x, y, w, h float64, c rgb) {
	d.pdf.SetFillColor(c.r, c.g, c.b)
	d.pdf.Rect(x, y, w, h, "F")
}

func (d *document) draw(x, top, h float64, spans []span, color rgb) {
	for _, s := range spans {
		if s.text == "" {
			continue
		}
		text := d.tr(s.text)
		d.setFont(s.face)
		w := d.pdf.GetStringWidth(text)
		c := color
		if s.color.set {
			c = s.color
		}
		if s.fill {
			d.pdf.SetFillColor(inlineFill.r, inlineFill.g, inlineFill.b)
		}
		d.pdf.SetTextColor(c.r, c.g, c.b)
		d.pdf.SetXY(x, top)
		d.pdf.CellFormat(w, h, text, "", 0, "LM", s.fill, 0, "")
		x += w
	}
}

func (d *document) block(b markdown.Block) {
	switch b.Kind {
	case markdown.Blank:
		d.gap(blankGap)
	case markdown.Heading:
		i := min(max(b.Level, 1), len(headingSizes)) - 1
		d.gap(headingGaps[i])
		d.place(para{spans: d.inline(b.Text, faceBold), size: headingSizes[i], words: true})
	case markdown.Quote:
		d.place(para{
			spans: d.inline(b.Text, faceRegular), size: bodySize, indent: quoteIndent,
			color: quoteColor, bar: true, words: true,
		})
	case markdown.CodeBlock:
		d.code(b)
	default:
		d.place(para{spans: d.inline(b.Text, faceRegular), size: bodySize, words: true})
	}
}

// list draws a list run with a hanging indent wide enough for its largest
// marker. Numbered runs count up from the run's first ordinal.
func (d *document) list(run *markdown.ListRun) {
	markers := make([]string, len(run.Items))
	for i := range run.Items {
		if run.Kind == markdown.Number {
			markers[i] = strconv.Itoa(run.Start+i) + "."
		} else {
			markers[i] = "•"
		}
	}

	d.size = bodySize
	indent := float64(listIndent)
	for _, m := range markers {
		indent = max(indent, d.measure(m, faceRegular)+markerGap)
	}

	for i, item := range run.Items {
		d.place(para{
			spans: d.inline(item.Text, faceRegular), size: bodySize, indent: indent,
			marker: markers[i], words: true,
		})
	}
}

func (d *document) code(b markdown.Block) {
	lines := b.Lines()
	if len(lines) == 0 {
		lines = []string{""}
	}

	var coloured [][]highlight.Span
	if d.highlight && b.Text != "" {
		coloured, _ = highlight.Lines(b.Lang, b.Text, d.codeStyle)
	}

	d.gap(codeGap)
	for i, src := range lines {
		var spans []span
		if coloured != nil {
			for _, s := range coloured[i] {
				c := rgb{}
				if r, g, bl, ok := s.RGB(); ok {
					c = rgb{r, g, bl, true}
				}
				spans = append(spans, d.codeSpans(expandTabs(s.Text), false, c)...)
			}
		} else {
			spans = d.codeSpans(expandTabs(src), false, rgb{})
		}
		d.place(para{spans: spans, size: codeSize, fill: true})
	}
	d.gap(codeGap)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}

// inline converts a block's inline markup into spans. Plain text uses base.
func (d *document) inline(text string, base face) []span {
	var out []span
	for _, run := range markdown.Tokenize(text) {
		switch run.Style {
		case markdown.Bold:
			out = append(out, span{text: run.Text, face: faceBold})
		case markdown.Italic:
			out = append(out, span{text: run.Text, face: faceItalic})
		case markdown.Code:
			out = append(out, d.codeSpans(run.Text, true, rgb{})...)
		default:
			out = append(out, span{text: run.Text, face: base})
		}
	}
	return out
}

// codeSpans sets text in the monospace face, handing runes the face lacks
// to the body face.
func (d *document) codeSpans(text string, fill bool, c rgb) []span {
	if d.fonts.Core {
		return []span{{text: text, face: faceMono, fill: fill, color: c}}
	}
	var out []span
	for _, r := range text {
		f := faceMono
		if !d.fonts.MonoCovers(r) && r != ' ' {
			f = faceRegular
		}
		out = appendMerged(out, span{text: string(r), face: f, fill: fill, color: c})
	}
	return out
}
