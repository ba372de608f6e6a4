package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// Paragraph describes one paragraph to append to the document body.
type Paragraph struct {
	Style string // style ID; empty means Normal
	NumID int    // numbering instance; 0 means none or the style's own
	Runs  []Run
}

// Run describes one uniformly formatted piece of paragraph text.
type Run struct {
	Text      string
	Bold      bool
	Italic    bool
	Mono      bool
	Color     string // RRGGBB
	Highlight string // WordprocessingML highlight name, e.g. "lightGray"
	Shade     string // background fill RRGGBB
}

// Page holds section geometry in twentieths of a point.
type Page struct {
	Width, Height            int
	Top, Right, Bottom, Left int
	Landscape                bool
}

// A4Portrait is the default section geometry with 1 inch margins.
var A4Portrait = Page{Width: 11906, Height: 16838, Top: 1440, Right: 1440, Bottom: 1440, Left: 1440}

// Builder accumulates paragraph descriptions and writes a WordprocessingML
// package. It owns all format-specific state: callers only append.
type Builder struct {
	title  string
	page   Page
	fonts  Fonts
	body   bytes.Buffer
	enc    *xml.Encoder
	starts []int // start value of each numbered-list instance, numId = index + firstNumberedID
	err    error
}

// Fonts names the typefaces written into the style definitions.
type Fonts struct {
	Body     string
	EastAsia string
	Mono     string
}

// DefaultFonts are used for any empty Fonts field.
var DefaultFonts = Fonts{Body: "Calibri", EastAsia: "MS Gothic", Mono: "Consolas"}

// bulletNumID is the numbering instance shared by all bullet paragraphs.
const (
	bulletNumID     = 1
	firstNumberedID = 2
)

// NewBuilder returns an empty document builder.
func NewBuilder(title string, page Page, fonts Fonts) *Builder {
	if fonts.Body == "" {
		fonts.Body = DefaultFonts.Body
	}
	if fonts.EastAsia == "" {
		fonts.EastAsia = DefaultFonts.EastAsia
	}
	if fonts.Mono == "" {
		fonts.Mono = DefaultFonts.Mono
	}
	b := &Builder{title: title, page: page, fonts: fonts}
	b.enc = xml.NewEncoder(&b.body)
	return b
}

// NewNumbering allocates a numbering instance for one numbered list that
// starts counting at start, and returns its ID for Paragraph.NumID.
func (b *Builder) NewNumbering(start int) int {
	b.starts = append(b.starts, start)
	return firstNumberedID + len(b.starts) - 1
}

// Add appends a paragraph to the body.
func (b *Builder) Add(p Paragraph) {
	if b.err != nil {
		return
	}
	xp := xmlParagraph{}
	if p.Style != "" || p.NumID != 0 {
		xp.Props = &xmlParaProps{}
		if p.Style != "" {
			xp.Props.Style = &xmlVal{Val: p.Style}
		}
		if p.NumID != 0 {
			xp.Props.Num = &xmlNumProps{Level: xmlVal{Val: "0"}, ID: xmlVal{Val: fmt.Sprint(p.NumID)}}
		}
	}
	for _, r := range p.Runs {
		if r.Text == "" {
			continue
		}
		xp.Runs = append(xp.Runs, b.run(r))
	}
	if err := b.enc.Encode(xp); err != nil {
		b.err = fmt.Errorf("encoding paragraph: %w", err)
	}
}

func (b *Builder) run(r Run) xmlRun {
	xr := xmlRun{Text: xmlText{Space: "preserve", Value: r.Text}}
	if !r.Bold && !r.Italic && !r.Mono && r.Color == "" && r.Highlight == "" && r.Shade == "" {
		return xr
	}
	props := &xmlRunProps{}
	if r.Mono {
		props.Fonts = &xmlFonts{ASCII: b.fonts.Mono, HAnsi: b.fonts.Mono, CS: b.fonts.Mono}
	}
	if r.Bold {
		props.Bold = &xmlEmpty{}
	}
	if r.Italic {
		props.Italic = &xmlEmpty{}
	}
	if r.Color != "" {
		props.Color = &xmlVal{Val: r.Color}
	}
	if r.Highlight != "" {
		props.Highlight = &xmlVal{Val: r.Highlight}
	}
	if r.Shade != "" {
		props.Shade = &xmlShade{Val: "clear", Color: "auto", Fill: r.Shade}
	}
	xr.Props = props
	return xr
}

// WriteTo writes the complete package as a zip archive.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	if b.err != nil {
		return 0, b.err
	}
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)

	parts := []struct {
		name  string
		write func(io.Writer) error
	}{
		{"[Content_Types].xml", writeStatic(contentTypesXML)},
		{"_rels/.rels", writeStatic(packageRelsXML)},
		{"docProps/core.xml", b.writeCore},
		{"docProps/app.xml", writeStatic(appXML)},
		{"word/_rels/document.xml.rels", writeStatic(documentRelsXML)},
		{"word/settings.xml", writeStatic(settingsXML)},
		{"word/styles.xml", b.writeStyles},
		{"word/numbering.xml", b.writeNumbering},
		{"word/document.xml", b.writeDocument},
	}

	for _, p := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate})
		if err != nil {
			return cw.n, fmt.Errorf("creating %s: %w", p.name, err)
		}
		if err := p.write(fw); err != nil {
			return cw.n, fmt.Errorf("writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("closing archive: %w", err)
	}
	return cw.n, nil
}

// Bytes returns the complete package.
func (b *Builder) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (b *Builder) writeDocument(w io.Writer) error {
	if _, err := io.WriteString(w, documentHeader); err != nil {
		return err
	}
	if _, err := w.Write(b.body.Bytes()); err != nil {
		return err
	}
	sect := xmlSection{
		Size: xmlPageSize{W: b.page.Width, H: b.page.Height},
		Margin: xmlPageMargin{
			Top: b.page.Top, Right: b.page.Right, Bottom: b.page.Bottom, Left: b.page.Left,
			Header: 720, Footer: 720,
		},
	}
	if b.page.Landscape {
		sect.Size.Orient = "landscape"
	}
	enc := xml.NewEncoder(w)
	if err := enc.Encode(sect); err != nil {
		return err
	}
	_, err := io.WriteString(w, documentFooter)
	return err
}

func (b *Builder) writeCore(w io.Writer) error {
	return coreTemplate.Execute(w, struct{ Title string }{b.title})
}

func (b *Builder) writeStyles(w io.Writer) error {
	return stylesTemplate.Execute(w, stylesData{Fonts: b.fonts, Headings: headingStyles()})
}

func (b *Builder) writeNumbering(w io.Writer) error {
	nums := make([]numberingInstance, len(b.starts))
	for i, s := range b.starts {
		nums[i] = numberingInstance{ID: firstNumberedID + i, Start: s}
	}
	return numberingTemplate.Execute(w, struct {
		BulletID int
		Numbered []numberingInstance
	}{bulletNumID, nums})
}

func writeStatic(s string) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	}
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// XML shapes for the document body. Element names carry the "w" prefix
// literally; the namespace is declared once on the root element.

type xmlParagraph struct {
	XMLName xml.Name      `xml:"w:p"`
	Props   *xmlParaProps `xml:"w:pPr,omitempty"`
	Runs    []xmlRun      `xml:"w:r"`
}

type xmlParaProps struct {
	Style *xmlVal      `xml:"w:pStyle,omitempty"`
	Num   *xmlNumProps `xml:"w:numPr,omitempty"`
}

type xmlNumProps struct {
	Level xmlVal `xml:"w:ilvl"`
	ID    xmlVal `xml:"w:numId"`
}

type xmlRun struct {
	XMLName xml.Name     `xml:"w:r"`
	Props   *xmlRunProps `xml:"w:rPr,omitempty"`
	Text    xmlText      `xml:"w:t"`
}

type xmlRunProps struct {
	Fonts     *xmlFonts `xml:"w:rFonts,omitempty"`
	Bold      *xmlEmpty `xml:"w:b,omitempty"`
	Italic    *xmlEmpty `xml:"w:i,omitempty"`
	Color     *xmlVal   `xml:"w:color,omitempty"`
	Highlight *xmlVal   `xml:"w:highlight,omitempty"`
	Shade     *xmlShade `xml:"w:shd,omitempty"`
}

type xmlShade struct {
	Val   string `xml:"w:val,attr"`
	Color string `xml:"w:color,attr"`
	Fill  string `xml:"w:fill,attr"`
}

type xmlFonts struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
	CS    string `xml:"w:cs,attr,omitempty"`
}

type xmlText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type xmlVal struct {
	Val string `xml:"w:val,attr"`
}

type xmlEmpty struct{}

type xmlSection struct {
	XMLName xml.Name      `xml:"w:sectPr"`
	Size    xmlPageSize   `xml:"w:pgSz"`
	Margin  xmlPageMargin `xml:"w:pgMar"`
}

type xmlPageSize struct {
	W      int    `xml:"w:w,attr"`
	H      int    `xml:"w:h,attr"`
	Orient string `xml:"w:orient,attr,omitempty"`
}

type xmlPageMargin struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
}
