package markdown

import (
	"strconv"
	"strings"
)

// Kind identifies the structural type of a Block.
type Kind int

// Block kinds.
const (
	Blank Kind = iota
	Heading
	Bullet
	Number
	Quote
	CodeBlock
	Paragraph
)

var kindNames = [...]string{
	Blank:     "Blank",
	Heading:   "Heading",
	Bullet:    "Bullet",
	Number:    "Number",
	Quote:     "Quote",
	CodeBlock: "CodeBlock",
	Paragraph: "Paragraph",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// IsList reports whether blocks of this kind take part in list grouping.
func (k Kind) IsList() bool {
	return k == Bullet || k == Number
}

// Block is one line-derived unit of a parsed document.
//
// Text holds the raw, untokenized inline content. For CodeBlock it is the
// fence body joined by newlines with indentation preserved. Level is set for
// Heading only, Ordinal for Number only (the digits as written), and Lang for
// CodeBlock only (the opening fence's info string, possibly empty).
type Block struct {
	Kind    Kind
	Text    string
	Level   int
	Ordinal int
	Lang    string
}

// Lines splits a CodeBlock body into its source lines.
// An empty body has no lines.
func (b Block) Lines() []string {
	if b.Text == "" {
		return nil
	}
	return strings.Split(b.Text, "\n")
}

// Markdown serializes the block back into the dialect accepted by Parse.
// Parsing the result yields an equivalent block.
func (b Block) Markdown() string {
	switch b.Kind {
	case Blank:
		return ""
	case Heading:
		return strings.Repeat("#", clampLevel(b.Level)) + " " + b.Text
	case Bullet:
		return "- " + b.Text
	case Number:
		return strconv.Itoa(b.Ordinal) + ". " + b.Text
	case Quote:
		if b.Text == "" {
			return ">"
		}
		return "> " + b.Text
	case CodeBlock:
		if b.Text == "" {
			return fence + b.Lang + "\n" + fence
		}
		return fence + b.Lang + "\n" + b.Text + "\n" + fence
	default:
		return b.Text
	}
}

func (b Block) String() string {
	switch b.Kind {
	case Heading:
		return b.Kind.String() + "(" + strconv.Itoa(b.Level) + "," + strconv.Quote(b.Text) + ")"
	case Number:
		return b.Kind.String() + "(" + strconv.Itoa(b.Ordinal) + "," + strconv.Quote(b.Text) + ")"
	case Blank:
		return b.Kind.String()
	default:
		return b.Kind.String() + "(" + strconv.Quote(b.Text) + ")"
	}
}

// Serialize joins blocks back into Markdown source, one block per line group.
func Serialize(blocks []Block) string {
	lines := make([]string, len(blocks))
	for i, b := range blocks {
		lines[i] = b.Markdown()
	}
	return strings.Join(lines, "\n")
}

func clampLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > maxHeadingLevel:
		return maxHeadingLevel
	}
	return level
}
