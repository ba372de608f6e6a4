package markdown

import (
	"strconv"
	"strings"
)

// Style is the inline formatting of a Run.
type Style int

// Inline styles.
const (
	Plain Style = iota
	Bold
	Italic
	Code
)

var styleNames = [...]string{Plain: "Plain", Bold: "Bold", Italic: "Italic", Code: "Code"}

func (s Style) String() string {
	if s < 0 || int(s) >= len(styleNames) {
		return "Style(" + strconv.Itoa(int(s)) + ")"
	}
	return styleNames[s]
}

// Run is one styled fragment of a block's text, delimiters removed.
// Text may be empty when a delimiter pair encloses nothing.
type Run struct {
	Style Style
	Text  string
}

func (r Run) String() string {
	return r.Style.String() + "(" + strconv.Quote(r.Text) + ")"
}

const (
	codeMark   = '`'
	italicMark = '*'
	boldMark   = "**"
)

// Tokenize splits inline text into styled runs.
//
// A backtick pair always wins: its content becomes one Code run and is not
// scanned for other markup. Outside code spans, "**" pairs produce Bold runs
// and "*" pairs produce Italic runs, first delimiter wins, without nesting.
// A delimiter with no closing partner is literal text and merges into the
// surrounding Plain run.
func Tokenize(text string) []Run {
	t := tokenizer{}
	i := 0
	for i < len(text) {
		if text[i] == codeMark {
			if j := strings.IndexByte(text[i+1:], codeMark); j >= 0 {
				t.emit(Code, text[i+1:i+1+j])
				i += j + 2
				continue
			}
		}
		end := segmentEnd(text, i)
		t.scan(text[i:end])
		i = end
	}
	t.flush()
	return t.runs
}

// segmentEnd returns the end of the non-code segment starting at i: the next
// backtick that opens a code span, or the end of text. A backtick without a
// partner cannot open a span and so does not end the segment.
func segmentEnd(text string, i int) int {
	k := strings.IndexByte(text[i:], codeMark)
	if k < 0 || strings.IndexByte(text[i+k+1:], codeMark) < 0 {
		return len(text)
	}
	return i + k
}

type tokenizer struct {
	runs  []Run
	plain strings.Builder
}

// scan handles bold, italic and plain text within a segment free of code spans.
func (t *tokenizer) scan(seg string) {
	j := 0
	for j < len(seg) {
		if strings.HasPrefix(seg[j:], boldMark) {
			if k := strings.Index(seg[j+2:], boldMark); k >= 0 {
				t.emit(Bold, seg[j+2:j+2+k])
				j += k + 4
				continue
			}
			// Unmatched "**" stays literal as a whole.
			t.plain.WriteString(boldMark)
			j += 2
			continue
		}
		if seg[j] == italicMark {
			if k := strings.IndexByte(seg[j+1:], italicMark); k >= 0 {
				t.emit(Italic, seg[j+1:j+1+k])
				j += k + 2
				continue
			}
			t.plain.WriteByte(italicMark)
			j++
			continue
		}
		next := strings.IndexByte(seg[j:], italicMark)
		if next < 0 {
			next = len(seg) - j
		}
		t.plain.WriteString(seg[j : j+next])
		j += next
	}
}

func (t *tokenizer) emit(style Style, text string) {
	t.flush()
	t.runs = append(t.runs, Run{Style: style, Text: text})
}

func (t *tokenizer) flush() {
	if t.plain.Len() == 0 {
		return
	}
	t.runs = append(t.runs, Run{Style: Plain, Text: t.plain.String()})
	t.plain.Reset()
}

// PlainText concatenates the text of runs, dropping all markup.
func PlainText(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
