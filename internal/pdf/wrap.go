package pdf

import (
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
	"github.com/npillmayer/uax"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax14"
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// face selects one registered font style.
type face int

const (
	faceRegular face = iota
	faceBold
	faceItalic
	faceMono
)

// rgb is a text or fill colour. The zero value means "inherit".
type rgb struct {
	r, g, b int
	set     bool
}

// span is a uniformly drawn piece of text within a paragraph.
type span struct {
	text  string
	face  face
	fill  bool // light background behind the text
	color rgb
}

// line is one wrapped output line.
type line struct {
	spans []span
	width float64
}

func (l line) text() string {
	var b strings.Builder
	for _, s := range l.spans {
		b.WriteString(s.text)
	}
	return b.String()
}

// measureFunc returns the advance width of text drawn in face f.
type measureFunc func(text string, f face) float64

// wrapper breaks paragraphs into lines no wider than a limit.
type wrapper struct {
	measure measureFunc
}

// wrap fills lines greedily. With words set, lines end at line break
// opportunities; otherwise only at grapheme boundaries once a line is full.
// Whitespace at a break hangs past the margin. A paragraph always yields at
// least one line.
func (w wrapper) wrap(spans []span, limit float64, words bool) []line {
	spans = normalize(spans)
	text := joinSpans(spans)

	var breaks []int
	if words {
		breaks = breakPoints(text)
	} else {
		breaks = []int{len(text)}
	}

	var (
		lines []line
		cur   line
		hang  []span
		hangW float64
		start int
	)
	finish := func() {
		lines = append(lines, cur)
		cur, hang, hangW = line{}, nil, 0
	}

	for _, end := range breaks {
		if end <= start {
			continue
		}
		seg := sliceSpans(spans, start, end)
		start = end
		body, tail := splitTrailingSpace(seg)
		bodyW := w.width(body)

		if len(body) > 0 && len(cur.spans) > 0 && cur.width+hangW+bodyW > limit {
			finish()
		}
		if bodyW > limit {
			for _, part := range w.splitClusters(body, limit) {
				if len(cur.spans) > 0 {
					finish()
				}
				cur.spans = append(cur.spans, part.spans...)
				cur.width = part.width
			}
			hang, hangW = nil, 0
		} else if len(body) > 0 {
			cur.spans = append(cur.spans, hang...)
			cur.spans = append(cur.spans, body...)
			cur.width += hangW + bodyW
			hang, hangW = nil, 0
		}
		hang = append(hang, tail...)
		hangW += w.width(tail)
	}

	if len(cur.spans) > 0 || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}

func (w wrapper) width(spans []span) float64 {
	var total float64
	for _, s := range spans {
		total += w.measure(s.text, s.face)
	}
	return total
}

// splitClusters breaks spans into lines at grapheme cluster boundaries,
// placing at least one cluster on every line.
func (w wrapper) splitClusters(spans []span, limit float64) []line {
	var (
		out []line
		cur line
	)
	for _, s := range spans {
		g := uniseg.NewGraphemes(s.text)
		for g.Next() {
			c := s
			c.text = g.Str()
			cw := w.measure(c.text, c.face)
			if len(cur.spans) > 0 && cur.width+cw > limit {
				out = append(out, cur)
				cur = line{}
			}
			cur.spans = appendMerged(cur.spans, c)
			cur.width += cw
		}
	}
	if len(cur.spans) > 0 {
		out = append(out, cur)
	}
	return out
}

// appendMerged appends s, joining it to the last span when they look alike.
func appendMerged(spans []span, s span) []span {
	if n := len(spans); n > 0 {
		last := &spans[n-1]
		if last.face == s.face && last.fill == s.fill && last.color == s.color {
			last.text += s.text
			return spans
		}
	}
	return append(spans, s)
}

func normalize(spans []span) []span {
	out := make([]span, 0, len(spans))
	for _, s := range spans {
		if s.text == "" {
			continue
		}
		s.text = basicPlane(norm.NFC.String(s.text))
		out = append(out, s)
	}
	return out
}

// basicPlane replaces runes above U+FFFF with U+FFFD. gofpdf indexes its
// UTF-8 width table by rune and the table ends at U+FFFF.
func basicPlane(s string) string {
	return strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return unicode.ReplacementChar
		}
		return r
	}, s)
}

func joinSpans(spans []span) string {
	var b strings.Builder
	for _, s := range spans {
		b.WriteString(s.text)
	}
	return b.String()
}

// sliceSpans returns the spans covering bytes [from, to) of their joined text.
func sliceSpans(spans []span, from, to int) []span {
	var out []span
	pos := 0
	for _, s := range spans {
		end := pos + len(s.text)
		lo, hi := max(from, pos), min(to, end)
		if lo < hi {
			c := s
			c.text = s.text[lo-pos : hi-pos]
			out = append(out, c)
		}
		pos = end
		if pos >= to {
			break
		}
	}
	return out
}

// splitTrailingSpace separates the whitespace that ends a segment.
func splitTrailingSpace(seg []span) (body, tail []span) {
	body = append([]span(nil), seg...)
	for len(body) > 0 {
		last := body[len(body)-1]
		trimmed := strings.TrimRightFunc(last.text, unicode.IsSpace)
		if trimmed == last.text {
			break
		}
		ws := last
		ws.text = last.text[len(trimmed):]
		tail = append([]span{ws}, tail...)
		if trimmed == "" {
			body = body[:len(body)-1]
			continue
		}
		body[len(body)-1].text = trimmed
		break
	}
	return body, tail
}

// breakPoints returns the byte offsets at which a line may end, in
// increasing order and always ending with len(text).
func breakPoints(text string) []int {
	if text == "" {
		return nil
	}
	if pts, ok := lineBreaks(text); ok {
		return pts
	}
	return fallbackBreaks(text)
}

// lineBreaks applies the Unicode line breaking algorithm. ok is false if
// the segmenter fails or does not account for every byte of text.
func lineBreaks(text string) (pts []int, ok bool) {
	defer func() {
		if recover() != nil {
			pts, ok = nil, false
		}
	}()

	seg := segment.NewSegmenter(uax14.NewLineWrap())
	seg.Init(strings.NewReader(text))
	pos := 0
	for seg.Next() {
		pos += len(seg.Text())
		if p, _ := seg.Penalties(); p < uax.InfinitePenalty && pos > 0 && (len(pts) == 0 || pts[len(pts)-1] != pos) {
			pts = append(pts, pos)
		}
	}
	if pos != len(text) {
		return nil, false
	}
	if len(pts) == 0 || pts[len(pts)-1] != len(text) {
		pts = append(pts, len(text))
	}
	return pts, true
}

// fallbackBreaks allows a break after whitespace and on both sides of an
// East Asian wide grapheme.
func fallbackBreaks(text string) []int {
	var pts []int
	pos := 0
	prevWide := false
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		c := g.Str()
		wide := runewidth.StringWidth(c) == 2
		if pos > 0 && wide && !prevWide && (len(pts) == 0 || pts[len(pts)-1] != pos) {
			pts = append(pts, pos)
		}
		pos += len(c)
		if wide || strings.TrimFunc(c, unicode.IsSpace) == "" {
			pts = append(pts, pos)
		}
		prevWide = wide
	}
	if len(pts) == 0 || pts[len(pts)-1] != len(text) {
		pts = append(pts, len(text))
	}
	return pts
}
