package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencampus-labs/handbook-cli/internal/core/domain"
)

func TestStripListMarkers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1. What are the quiet hours?", "What are the quiet hours?"},
		{"- What are the quiet hours?", "What are the quiet hours?"},
		{"* What are the quiet hours?", "What are the quiet hours?"},
		{"  3.  Can guests stay overnight?", "Can guests stay overnight?"},
		{"What are the quiet hours?", "What are the quiet hours?"},
		{"", ""},
		{"   ", ""},
		{"10. ", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stripListMarkers(tt.in), "input %q", tt.in)
	}
}

func TestQuestionSupported(t *testing.T) {
	chunk := "Quiet hours in residence halls run from 10pm until 8am. Violations carry a 25 dollar fine."

	tests := []struct {
		name     string
		question string
		want     bool
	}{
		{
			name:     "content overlap and verbatim digits",
			question: "When do quiet hours start in the residence halls?",
			want:     true,
		},
		{
			name:     "invented number fails the digit check",
			question: "Is the fine for quiet hours violations 50 dollars?",
			want:     false,
		},
		{
			name:     "verbatim number passes",
			question: "Is the fine for violations 25 dollars?",
			want:     true,
		},
		{
			name:     "no content overlap",
			question: "What cafeteria meals does the college serve?",
			want:     false,
		},
		{
			name:     "stopwords alone do not count as overlap",
			question: "What is this about and how can it be for the when?",
			want:     false,
		},
		{
			name:     "single shared content word is not enough",
			question: "Where can I park my residence sticker?",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, questionSupported(tt.question, chunk))
		})
	}
}

func TestQuestionsFor(t *testing.T) {
	chunk := domain.Chunk{
		ID:           "chunk_4",
		SectionTitle: "Quiet Hours",
		Text:         "Quiet hours in residence halls run from 10pm until 8am on weekdays.",
	}

	llm := &mockLLMService{responses: []string{
		"1. When do quiet hours start in residence halls?\n" +
			"2. What is the best pizza topping?\n" +
			"3. Do quiet hours apply on weekdays in the halls?\n",
	}}

	synth := NewSynthesizer(llm, 3)
	questions, err := synth.QuestionsFor(context.Background(), chunk)
	require.NoError(t, err)

	// The pizza candidate shares no content words with the chunk and is
	// filtered out; the survivors keep generation order.
	require.Len(t, questions, 2)
	assert.Equal(t, "chunk_4_q0", questions[0].ID)
	assert.Equal(t, "When do quiet hours start in residence halls?", questions[0].Text)
	assert.Equal(t, "chunk_4", questions[0].ChunkID)
	assert.Equal(t, "Quiet Hours", questions[0].SectionTitle)
	assert.Equal(t, "chunk_4_q1", questions[1].ID)

	// The prompt carries the section title and the excerpt.
	assert.Contains(t, llm.lastPrompt, "Quiet Hours")
	assert.Contains(t, llm.lastPrompt, chunk.Text)
}

func TestQuestionsForCapsAtCount(t *testing.T) {
	chunk := domain.Chunk{
		ID:   "chunk_0",
		Text: "Quiet hours in residence halls run from 10pm until 8am.",
	}

	llm := &mockLLMService{responses: []string{
		"When do quiet hours begin in residence halls?\n" +
			"How late do quiet hours run in the halls?\n" +
			"Do residence halls enforce quiet hours until 8am?\n" +
			"Are quiet hours the same in every residence hall?\n",
	}}

	synth := NewSynthesizer(llm, 2)
	questions, err := synth.QuestionsFor(context.Background(), chunk)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestQuestionsForTruncatesBeforeFiltering(t *testing.T) {
	chunk := domain.Chunk{
		ID:   "chunk_2",
		Text: "Quiet hours in residence halls run from 10pm until 8am.",
	}

	// Four candidates for a count of three: the second fails the
	// support filter, and the fourth sits past the requested count, so
	// it must not take the second's place.
	llm := &mockLLMService{responses: []string{
		"1. When do quiet hours start in residence halls?\n" +
			"2. What is the best pizza topping?\n" +
			"3. How late do quiet hours run in the halls?\n" +
			"4. Do residence halls enforce quiet hours until 8am?\n",
	}}

	synth := NewSynthesizer(llm, 3)
	questions, err := synth.QuestionsFor(context.Background(), chunk)
	require.NoError(t, err)

	require.Len(t, questions, 2)
	assert.Equal(t, "When do quiet hours start in residence halls?", questions[0].Text)
	assert.Equal(t, "How late do quiet hours run in the halls?", questions[1].Text)
	assert.Equal(t, "chunk_2_q0", questions[0].ID)
	assert.Equal(t, "chunk_2_q1", questions[1].ID)
}

func TestQuestionsForAllFiltered(t *testing.T) {
	chunk := domain.Chunk{
		ID:   "chunk_0",
		Text: "Quiet hours in residence halls run from 10pm until 8am.",
	}

	llm := &mockLLMService{responses: []string{
		"What is the best pizza topping?\nHow do birds migrate?\n",
	}}

	synth := NewSynthesizer(llm, 3)
	questions, err := synth.QuestionsFor(context.Background(), chunk)
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestQuestionsForGenerateError(t *testing.T) {
	llm := &mockLLMService{generateErr: errors.New("backend down")}

	synth := NewSynthesizer(llm, 3)
	_, err := synth.QuestionsFor(context.Background(), domain.Chunk{ID: "chunk_0", Text: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chunk_0")
}

func TestQuestionsForNilLLM(t *testing.T) {
	synth := NewSynthesizer(nil, 3)
	_, err := synth.QuestionsFor(context.Background(), domain.Chunk{ID: "chunk_0"})
	assert.ErrorIs(t, err, domain.ErrLLMUnavailable)
}
