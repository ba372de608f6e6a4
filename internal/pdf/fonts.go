package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// Font sources reported by FontSet.Source.
const (
	SourceExplicit = "explicit"
	SourceSystem   = "system"
	SourceGo       = "go fonts"
)

// Font errors.
var (
	ErrFontCollection  = errors.New("font collections (.ttc) are not supported")
	ErrFontPostScript  = errors.New("CFF-flavoured OpenType fonts are not supported")
	ErrFontUnreadable  = errors.New("not a TrueType font")
	ErrFontNoCJKGlyphs = errors.New("font has no Japanese glyphs")
)

// cjkCandidates are TrueType files searched for in the system font
// directories, best match first.
var cjkCandidates = []string{
	"ipaexg.ttf",
	"ipag.ttf",
	"ipagp.ttf",
	"TakaoPGothic.ttf",
	"TakaoGothic.ttf",
	"NotoSansJP-Regular.ttf",
	"NotoSansJP[wght].ttf",
	"VL-PGothic-Regular.ttf",
	"DroidSansFallbackFull.ttf",
	"DroidSansFallback.ttf",
	"Arial Unicode.ttf",
	"ARIALUNI.TTF",
}

// cjkSample must have a glyph in any face accepted as CJK-capable.
const cjkSample = 'あ'

// Family names registered with gofpdf.
const (
	bodyFamily = "body"
	monoFamily = "mono"
	coreBody   = "Helvetica"
	coreMono   = "Courier"
)

// FontSet is the resolved set of faces used by every PDF render that asks
// for the same font path. It is immutable once loaded.
type FontSet struct {
	Source string // SourceExplicit, SourceSystem or SourceGo
	Path   string // file of the body face, empty for Go fonts

	Regular, Bold, Italic, Mono []byte

	// Core is set when gofpdf could not embed the faces. Rendering then uses
	// the built-in Helvetica and Courier fonts.
	Core bool

	warning  string
	warnOnce sync.Once
	body     *sfnt.Font
	mono     *sfnt.Font
}

type fontEntry struct {
	once sync.Once
	set  *FontSet
}

var fontSets sync.Map // font path -> *fontEntry

// LoadFonts returns the FontSet for path, resolving it on first use. An
// empty path searches the system for a CJK-capable face. Resolution never
// fails: missing or unusable faces degrade to the Go fonts, and to the core
// PDF fonts if embedding is impossible.
func LoadFonts(path string) *FontSet {
	v, _ := fontSets.LoadOrStore(path, &fontEntry{})
	e := v.(*fontEntry)
	e.once.Do(func() {
		e.set = resolveFonts(path, discoverCJK)
	})
	return e.set
}

func resolveFonts(path string, discover func() (string, []byte, bool)) *FontSet {
	var notes []string
	fs := &FontSet{Mono: gomono.TTF}

	if path != "" {
		data, err := readTrueType(path)
		if err != nil {
			notes = append(notes, fmt.Sprintf("CJK font %s unusable: %v", path, err))
		} else {
			fs.useBody(SourceExplicit, path, data)
			if f, _ := sfnt.Parse(data); !covers(f, cjkSample) {
				notes = append(notes, fmt.Sprintf("CJK font %s: %v", path, ErrFontNoCJKGlyphs))
			}
		}
	}
	if fs.Regular == nil && discover != nil {
		if p, data, ok := discover(); ok {
			fs.useBody(SourceSystem, p, data)
		}
	}
	if fs.Regular == nil {
		fs.Source = SourceGo
		fs.Regular, fs.Bold, fs.Italic = goregular.TTF, gobold.TTF, goitalic.TTF
		notes = append(notes, "no CJK-capable TrueType font found, Japanese text will not render")
	}

	fs.body, _ = sfnt.Parse(fs.Regular)
	fs.mono, _ = sfnt.Parse(fs.Mono)

	if err := checkEmbedding(fs); err != nil {
		fs.Core = true
		notes = append(notes, fmt.Sprintf("embedding fonts failed (%v), using built-in Helvetica and Courier", err))
	}
	fs.warning = strings.Join(notes, "; ")
	return fs
}

// useBody installs one face for all body styles. CJK faces rarely ship
// bold and italic companions.
func (fs *FontSet) useBody(source, path string, data []byte) {
	fs.Source, fs.Path = source, path
	fs.Regular, fs.Bold, fs.Italic = data, data, data
}

// Warning describes any fallback taken while loading, or "".
func (fs *FontSet) Warning() string { return fs.warning }

// Warn writes the fallback warning to w, at most once per FontSet.
func (fs *FontSet) Warn(w io.Writer) {
	if w == nil || fs.warning == "" {
		return
	}
	fs.warnOnce.Do(func() {
		fmt.Fprintf(w, "warning: %s\n", fs.warning)
	})
}

// MonoCovers reports whether the monospace face has a glyph for r.
func (fs *FontSet) MonoCovers(r rune) bool {
	return covers(fs.mono, r)
}

// HasCJK reports whether the body face can draw Japanese text.
func (fs *FontSet) HasCJK() bool {
	return !fs.Core && covers(fs.body, cjkSample)
}

func covers(f *sfnt.Font, r rune) bool {
	if f == nil {
		return false
	}
	i, err := f.GlyphIndex(nil, r)
	return err == nil && i != 0
}

// register adds the faces to pdf. It returns the families to use for body
// and monospace text.
func (fs *FontSet) register(pdf *gofpdf.Fpdf) (body, mono string) {
	if fs.Core {
		return coreBody, coreMono
	}
	pdf.AddUTF8FontFromBytes(bodyFamily, "", fs.Regular)
	pdf.AddUTF8FontFromBytes(bodyFamily, "B", fs.Bold)
	pdf.AddUTF8FontFromBytes(bodyFamily, "I", fs.Italic)
	pdf.AddUTF8FontFromBytes(monoFamily, "", fs.Mono)
	return bodyFamily, monoFamily
}

func checkEmbedding(fs *FontSet) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	pdf := gofpdf.New("P", "pt", "A4", "")
	fs.register(pdf)
	return pdf.Error()
}

func readTrueType(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := checkTrueType(data); err != nil {
		return nil, err
	}
	return data, nil
}

func checkTrueType(data []byte) error {
	if len(data) < 4 {
		return ErrFontUnreadable
	}
	switch {
	case bytes.HasPrefix(data, []byte("ttcf")):
		return ErrFontCollection
	case bytes.HasPrefix(data, []byte("OTTO")):
		return ErrFontPostScript
	}
	if _, err := sfnt.Parse(data); err != nil {
		return fmt.Errorf("%w: %v", ErrFontUnreadable, err)
	}
	return nil
}

func discoverCJK() (string, []byte, bool) {
	for _, name := range cjkCandidates {
		p, err := findfont.Find(name)
		if err != nil || p == "" {
			continue
		}
		data, err := readTrueType(p)
		if err != nil {
			continue
		}
		if f, err := sfnt.Parse(data); err != nil || !covers(f, cjkSample) {
			continue
		}
		return p, data, true
	}
	return "", nil, false
}
