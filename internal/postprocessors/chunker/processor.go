// Package chunker provides a paragraph-aware text chunking processor.
package chunker

import (
	"regexp"
	"strings"
)

// DefaultMaxChars is the default character budget per chunk,
// roughly 500-700 words.
const DefaultMaxChars = 3000

// romanHeaderRe matches section headers of the form "IV. Title".
var romanHeaderRe = regexp.MustCompile(`^([IVXLCDM]+)\.\s+(.+)$`)

// Section is one chunk-sized piece of a document together with the
// title of the section it was cut from.
type Section struct {
	// Title is the section title the piece belongs to.
	Title string

	// Text is the piece content, paragraphs joined by one blank line.
	Text string
}

// Processor splits document text into bounded-size pieces on paragraph
// boundaries. Boundaries never fall mid-paragraph: a single paragraph
// larger than the budget is kept whole and the piece exceeds the budget.
type Processor struct {
	maxChars      int
	multiSection  bool
	fallbackTitle string
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithMaxChars sets the character budget per chunk.
func WithMaxChars(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.maxChars = n
		}
	}
}

// WithMultiSection enables Roman-numeral section header detection.
// Header lines start a new section, take its title, and are excluded
// from the section body.
func WithMultiSection(multi bool) Option {
	return func(p *Processor) {
		p.multiSection = multi
	}
}

// WithFallbackTitle sets the title used for single-section documents
// and for text preceding the first detected header.
func WithFallbackTitle(title string) Option {
	return func(p *Processor) {
		p.fallbackTitle = title
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		maxChars: DefaultMaxChars,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Split cuts the document text into ordered chunk-sized sections.
// Blank-line runs are normalised first, so the paragraph delimiter is
// always exactly one blank line. No content is dropped or duplicated;
// for multi-section documents only the header lines themselves are
// removed.
func (p *Processor) Split(text string) []Section {
	text = normalizeBlankLines(text)

	if !p.multiSection {
		return p.packParagraphs(p.fallbackTitle, splitParagraphs(text))
	}

	var (
		sections     []Section
		currentTitle string
		currentLines []string
	)

	flush := func(title string) {
		body := strings.TrimSpace(strings.Join(currentLines, "\n"))
		if body != "" {
			sections = append(sections, p.packParagraphs(title, splitParagraphs(body))...)
		}
		currentLines = nil
	}

	for _, line := range strings.Split(text, "\n") {
		m := romanHeaderRe.FindStringSubmatch(strings.TrimSpace(line))
		if m != nil {
			// Text before the first header belongs to the fallback title.
			if currentTitle == "" {
				flush(p.fallbackTitle)
			} else {
				flush(currentTitle)
			}
			currentTitle = strings.TrimSpace(m[2])
			continue
		}
		currentLines = append(currentLines, line)
	}

	if currentTitle == "" {
		flush(p.fallbackTitle)
	} else {
		flush(currentTitle)
	}

	return sections
}

// packParagraphs greedily packs consecutive paragraphs into sections
// until adding the next paragraph would exceed the character budget.
func (p *Processor) packParagraphs(title string, paragraphs []string) []Section {
	var (
		sections []Section
		current  []string
		curLen   int
	)

	for _, para := range paragraphs {
		// +2 accounts for the blank-line separator when joined.
		if len(current) > 0 && curLen+len(para)+2 > p.maxChars {
			sections = append(sections, Section{Title: title, Text: strings.Join(current, "\n\n")})
			current = []string{para}
			curLen = len(para)
			continue
		}
		current = append(current, para)
		curLen += len(para) + 2
	}

	if len(current) > 0 {
		sections = append(sections, Section{Title: title, Text: strings.Join(current, "\n\n")})
	}

	return sections
}

// normalizeBlankLines collapses runs of two or more blank lines down to
// exactly one blank line, so any number of Enters between paragraphs
// becomes a single paragraph break.
func normalizeBlankLines(text string) string {
	var (
		out         []string
		blankStreak int
	)

	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			blankStreak++
			if blankStreak == 1 {
				out = append(out, "")
			}
			continue
		}
		blankStreak = 0
		out = append(out, line)
	}

	return strings.Join(out, "\n")
}

// splitParagraphs splits normalised text on blank lines, trimming each
// paragraph and dropping empty ones.
func splitParagraphs(text string) []string {
	var paragraphs []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para != "" {
			paragraphs = append(paragraphs, para)
		}
	}
	return paragraphs
}
