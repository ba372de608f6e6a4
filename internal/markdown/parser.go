package markdown

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	fence           = "```"
	maxHeadingLevel = 6
)

// Line patterns, checked in this order after the fence and blank-line rules.
// Lines are right-trimmed before matching.
var (
	crlfOrCR       = regexp.MustCompile(`\r\n?`)
	fencePattern   = regexp.MustCompile("^\\s*```(.*)$")
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	bulletPattern  = regexp.MustCompile(`^\s*[-*]\s+(.+)$`)
	numberPattern  = regexp.MustCompile(`^(\d+)\.\s+(.+)$`)
	quotePattern   = regexp.MustCompile(`^\s*> ?(.*)$`)
)

// Parse turns Markdown text into an ordered sequence of blocks.
//
// Every input line contributes to exactly one block. Lines between a pair of
// fences are collected verbatim into one CodeBlock; a fence left open at the
// end of input is flushed as a final CodeBlock.
func Parse(text string) []Block {
	lines := splitLines(text)
	blocks := make([]Block, 0, len(lines))

	var (
		inCode bool
		lang   string
		code   []string
	)

	for _, raw := range lines {
		line := strings.TrimRightFunc(raw, unicode.IsSpace)

		if m := fencePattern.FindStringSubmatch(line); m != nil {
			if inCode {
				blocks = append(blocks, codeBlock(code, lang))
				inCode, lang, code = false, "", nil
			} else {
				inCode, lang = true, strings.TrimSpace(m[1])
			}
			continue
		}

		if inCode {
			code = append(code, raw)
			continue
		}

		blocks = append(blocks, parseLine(line))
	}

	if inCode {
		blocks = append(blocks, codeBlock(code, lang))
	}

	return blocks
}

// parseLine classifies a single right-trimmed line outside a fence.
func parseLine(line string) Block {
	if strings.TrimSpace(line) == "" {
		return Block{Kind: Blank}
	}

	if m := headingPattern.FindStringSubmatch(line); m != nil {
		return Block{Kind: Heading, Level: len(m[1]), Text: strings.TrimSpace(m[2])}
	}

	if m := bulletPattern.FindStringSubmatch(line); m != nil {
		return Block{Kind: Bullet, Text: strings.TrimSpace(m[1])}
	}

	if m := numberPattern.FindStringSubmatch(line); m != nil {
		// Digit runs too long for an int are not list items.
		if n, err := strconv.Atoi(m[1]); err == nil {
			return Block{Kind: Number, Ordinal: n, Text: strings.TrimSpace(m[2])}
		}
	}

	if m := quotePattern.FindStringSubmatch(line); m != nil {
		return Block{Kind: Quote, Text: strings.TrimSpace(m[1])}
	}

	return Block{Kind: Paragraph, Text: strings.TrimSpace(line)}
}

func codeBlock(lines []string, lang string) Block {
	return Block{Kind: CodeBlock, Text: strings.Join(lines, "\n"), Lang: lang}
}

// splitLines normalizes line endings and splits text into lines.
// A trailing line terminator does not produce an extra empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = crlfOrCR.ReplaceAllString(text, "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
