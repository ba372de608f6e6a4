package mdexport

import (
	"context"
	"fmt"
	"sync"

	"github.com/alnah/go-mdexport/internal/docx"
	"github.com/alnah/go-mdexport/internal/markdown"
	"github.com/alnah/go-mdexport/internal/pdf"
)

// renderer turns a parsed document into the bytes of one output format.
type renderer interface {
	Render(title string, blocks []markdown.Block) ([]byte, error)
}

// Compile-time interface implementation checks.
var (
	_ renderer = (*docx.Renderer)(nil)
	_ renderer = (*pdf.Renderer)(nil)
)

// Exporter converts Markdown into DOCX and PDF documents.
// Create with NewExporter. An Exporter holds no per-document state and is
// safe for concurrent use.
type Exporter struct {
	cfg       exporterConfig
	renderers map[Format]renderer
}

// NewExporter creates an Exporter with default configuration.
// Returns an error if the page settings are invalid.
func NewExporter(opts ...Option) (*Exporter, error) {
	e := &Exporter{cfg: defaultConfig()}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.cfg.page.Validate(); err != nil {
		return nil, err
	}

	e.renderers = map[Format]renderer{
		FormatDOCX: docx.New(docx.Options{
			FallbackTitle: e.cfg.fallbackTitle,
			Page:          e.cfg.page.docxPage(),
			Highlight:     e.cfg.highlight,
			CodeStyle:     e.cfg.codeStyle,
		}),
		FormatPDF: pdf.New(pdf.Options{
			FallbackTitle: e.cfg.fallbackTitle,
			Page:          e.cfg.page.pdfGeometry(),
			FontPath:      e.cfg.cjkFont,
			Highlight:     e.cfg.highlight,
			CodeStyle:     e.cfg.codeStyle,
			Warnings:      e.cfg.warnings,
		}),
	}
	return e, nil
}

// Export renders in as a document of format f.
// The context is checked before parsing and before rendering; rendering
// itself is CPU-bound and not interruptible.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (e *Exporter) Export(ctx context.Context, f Format, in Input) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: internal error: %v", ErrRender, r)
		}
	}()

	r, ok := e.renderers[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	blocks := markdown.Parse(in.Markdown)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	data, err := r.Render(in.Title, blocks)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRender, f, err)
	}

	return &Document{
		Name:   FileName(in.Title, e.cfg.fallbackFileName, f),
		Format: f,
		Data:   data,
	}, nil
}

// ExportAll renders in once per format, in the order given. With no
// formats it renders every supported format. It stops at the first error.
func (e *Exporter) ExportAll(ctx context.Context, in Input, formats ...Format) ([]*Document, error) {
	if len(formats) == 0 {
		formats = Formats()
	}
	docs := make([]*Document, 0, len(formats))
	for _, f := range formats {
		doc, err := e.Export(ctx, f, in)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

var defaultExporter = sync.OnceValue(func() *Exporter {
	e, err := NewExporter()
	if err != nil {
		panic("mdexport: default configuration is invalid: " + err.Error())
	}
	return e
})

// ExportDOCX renders a Word document with default options and returns its
// file name and contents. Data is nil only if rendering hit an internal
// error, never because of the shape of the input.
func ExportDOCX(title, markdownText string) (name string, data []byte) {
	return exportDefault(FormatDOCX, title, markdownText)
}

// ExportPDF renders a PDF document with default options and returns its file
// name and contents. Data is nil only if rendering hit an internal error,
// never because of the shape of the input.
func ExportPDF(title, markdownText string) (name string, data []byte) {
	return exportDefault(FormatPDF, title, markdownText)
}

func exportDefault(f Format, title, markdownText string) (string, []byte) {
	doc, err := defaultExporter().Export(context.Background(), f, Input{Title: title, Markdown: markdownText})
	if err != nil {
		return FileName(title, DefaultFallbackFileName, f), nil
	}
	return doc.Name, doc.Data
}
