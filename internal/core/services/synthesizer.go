package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/opencampus-labs/handbook-cli/internal/core/domain"
	"github.com/opencampus-labs/handbook-cli/internal/core/ports/driven"
	"github.com/opencampus-labs/handbook-cli/internal/logger"
)

// DefaultQuestionsPerChunk is the default number of synthetic questions
// requested per chunk.
const DefaultQuestionsPerChunk = 3

// minContentOverlap is the minimum number of content words a question
// must share with its source chunk to count as grounded.
const minContentOverlap = 2

// stopwords are excluded from the content-word overlap check.
var stopwords = map[string]bool{
	"the": true, "and": true, "or": true, "a": true, "an": true,
	"of": true, "to": true, "in": true, "for": true, "on": true,
	"at": true, "by": true, "is": true, "are": true, "be": true,
	"this": true, "that": true, "it": true, "with": true,
	"as": true, "from": true, "about": true,
	"what": true, "which": true, "who": true, "whom": true,
	"when": true, "where": true, "why": true, "how": true,
	"can": true, "could": true, "would": true, "should": true, "may": true,
}

var (
	digitRe = regexp.MustCompile(`\d+`)
	wordRe  = regexp.MustCompile(`[A-Za-z]+`)
)

// doc2queryPrompt instructs the generator to produce student-style
// questions answerable solely from the given excerpt.
const doc2queryPrompt = `You are helping build a search index for the college student handbook.

You will be given:
- the title of a handbook section
- an excerpt from that section

Write %d different questions that a student, parent, incoming student, or staff member might ask when trying to understand how these rules apply in real situations.

Guidelines:
- Sound natural and conversational, not like a textbook.
- Do NOT prefix question statements with roles, categories, labels, or markdown of any kind.
- You may ask about fines or sanctions only when the excerpt clearly mentions them, but do NOT invent additional penalties not stated.
- Do NOT describe fictional accidents, mishaps, or made-up stories involving friends "sneaking" into a violation.
- Do NOT ask about personal struggles, emotional support, family issues, relationship problems, or everyday mishaps; focus only on policy-related questions that this excerpt can answer.
- Do NOT refer to any meta-level structure; questions must be written as if the user only knows general campus topics, not the handbook text you were shown.
- Do NOT introduce sensitive topics unless they are explicitly stated in the excerpt.
- Do NOT copy long phrases from the excerpt; paraphrase in your own words.
- Each question must focus on a different situation or angle.
- Keep each question to one sentence.

Section title: %s

Handbook excerpt:
%s
`

// Synthesizer generates doc2query questions for chunks and filters out
// candidates the source chunk does not support.
type Synthesizer struct {
	llm   driven.LLMService
	count int
}

// NewSynthesizer creates a new question synthesizer. count is the
// number of questions requested per chunk; zero means the default.
func NewSynthesizer(llm driven.LLMService, count int) *Synthesizer {
	if count <= 0 {
		count = DefaultQuestionsPerChunk
	}
	return &Synthesizer{llm: llm, count: count}
}

// QuestionsFor generates, cleans and filters synthetic questions for
// one chunk. A chunk whose candidates all fail the support filter
// yields an empty slice and no error; a generation backend failure is
// returned to the caller.
func (s *Synthesizer) QuestionsFor(ctx context.Context, chunk domain.Chunk) ([]domain.SyntheticQuestion, error) {
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	prompt := fmt.Sprintf(doc2queryPrompt, s.count, chunk.SectionTitle, chunk.Text)

	raw, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{Temperature: 0})
	if err != nil {
		return nil, fmt.Errorf("generate questions for %s: %w", chunk.ID, err)
	}

	// Clean and truncate first, filter second: a candidate past the
	// requested count never enters the index, even when an earlier
	// candidate fails the support filter.
	var candidates []string
	for _, line := range strings.Split(raw, "\n") {
		q := stripListMarkers(line)
		if q == "" {
			continue
		}
		candidates = append(candidates, q)
		if len(candidates) == s.count {
			break
		}
	}

	var kept []string
	for _, q := range candidates {
		if !questionSupported(q, chunk.Text) {
			logger.Debug("Dropping unsupported question for %s: %q", chunk.ID, q)
			continue
		}
		kept = append(kept, q)
	}

	questions := make([]domain.SyntheticQuestion, 0, len(kept))
	for i, q := range kept {
		questions = append(questions, domain.SyntheticQuestion{
			ID:           domain.QuestionID(chunk.ID, i),
			ChunkID:      chunk.ID,
			SectionTitle: chunk.SectionTitle,
			Text:         q,
		})
	}

	return questions, nil
}

// stripListMarkers removes leading bullets and numbering the model may
// add despite instructions, e.g. "3. ", "- ", "* ".
func stripListMarkers(line string) string {
	line = strings.TrimSpace(line)
	for line != "" && strings.ContainsRune("-*0123456789", rune(line[0])) {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*0123456789. "))
	}
	return line
}

// questionSupported applies the support filter: every digit run in the
// question must appear verbatim in the chunk text, and the question
// must share at least minContentOverlap content words with the chunk.
func questionSupported(question, chunkText string) bool {
	for _, num := range digitRe.FindAllString(question, -1) {
		if !strings.Contains(chunkText, num) {
			return false
		}
	}

	qTokens := contentWords(question)
	overlap := 0
	for tok := range contentWords(chunkText) {
		if qTokens[tok] {
			overlap++
			if overlap >= minContentOverlap {
				return true
			}
		}
	}
	return false
}

// contentWords returns the set of lowercased alphabetic tokens with
// stopwords removed.
func contentWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, tok := range wordRe.FindAllString(strings.ToLower(text), -1) {
		if !stopwords[tok] {
			words[tok] = true
		}
	}
	return words
}
