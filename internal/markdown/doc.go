// Package markdown parses the constrained Markdown dialect used for exported
// drafts into a flat stream of blocks, and splits block text into styled runs.
//
// Supported block constructs are ATX headings (levels 1-6), bullet items
// ("-" or "*"), numbered items ("N."), block quotes, fenced code blocks,
// blank lines and plain paragraphs. Inline markup is limited to **bold**,
// *italic* and `code`, with no nesting.
//
// Parsing never fails: anything unrecognized degrades to a paragraph, and
// unmatched inline delimiters stay literal text. Both Parse and Tokenize are
// pure functions and safe for concurrent use.
package markdown
