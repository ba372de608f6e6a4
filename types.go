package mdexport

import (
	"fmt"
	"math"
	"strings"

	"github.com/alnah/go-mdexport/internal/docx"
	"github.com/alnah/go-mdexport/internal/pdf"
)

// Format identifies an output document type.
type Format string

// Supported formats.
const (
	FormatDOCX Format = "docx" // reflowable word-processor document
	FormatPDF  Format = "pdf"  // paginated print document
)

// Formats returns every supported format in a stable order.
func Formats() []Format {
	return []Format{FormatDOCX, FormatPDF}
}

// Extension returns the file extension for f, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// ParseFormat converts a format name (case-insensitive, optional leading dot)
// to a Format.
func ParseFormat(s string) (Format, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")
	for _, f := range Formats() {
		if name == string(f) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q (must be docx or pdf)", ErrUnknownFormat, s)
}

// Input is one document to export.
type Input struct {
	Title    string // document title; blank selects the fallback
	Markdown string // source text; may be empty
}

// Document is an exported file: its name and contents.
type Document struct {
	Name   string // "<title-or-fallback>.<ext>"
	Format Format
	Data   []byte
}

// DefaultFallbackFileName is the file name stem used when a title is blank.
const DefaultFallbackFileName = "draft"

// DefaultFallbackTitle is the heading used when a title is blank.
const DefaultFallbackTitle = "特許明細書草案"

// FileName returns "<title><ext>", substituting fallback when title is empty
// or whitespace only. An empty fallback selects DefaultFallbackFileName.
func FileName(title, fallback string, f Format) string {
	stem := strings.TrimSpace(title)
	if stem == "" {
		stem = strings.TrimSpace(fallback)
	}
	if stem == "" {
		stem = DefaultFallbackFileName
	}
	return stem + f.Extension()
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

const pointsPerInch = 72

// pageSizes holds portrait dimensions in points.
var pageSizes = map[string][2]float64{
	PageSizeLetter: {612, 792},
	PageSizeA4:     {595.28, 841.89},
	PageSizeLegal:  {612, 1008},
}

// PageSettings configures page dimensions for both formats.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns page settings with default values.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeA4,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if _, ok := pageSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// points returns the page width, height and margin in points, with width
// and height swapped for landscape. p must be valid.
func (p *PageSettings) points() (w, h, margin float64) {
	size := pageSizes[strings.ToLower(p.Size)]
	w, h = size[0], size[1]
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		w, h = h, w
	}
	return w, h, p.Margin * pointsPerInch
}

func (p *PageSettings) pdfGeometry() pdf.Geometry {
	w, h, m := p.points()
	return pdf.Geometry{Width: w, Height: h, Top: m, Right: m, Bottom: m, Left: m}
}

// docxPage converts to twentieths of a point.
func (p *PageSettings) docxPage() docx.Page {
	w, h, m := p.points()
	tw := func(v float64) int { return int(math.Round(v * 20)) }
	return docx.Page{
		Width: tw(w), Height: tw(h),
		Top: tw(m), Right: tw(m), Bottom: tw(m), Left: tw(m),
		Landscape: strings.EqualFold(p.Orientation, OrientationLandscape),
	}
}
