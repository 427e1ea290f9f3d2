package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Charan-r11/Hack-The-Future/internal/llm"
	"github.com/Charan-r11/Hack-The-Future/internal/tokenize"
)

// scriptedCompleter answers per-chunk question calls by substring match on
// the user prompt and synthesis calls with a fixed response.
type scriptedCompleter struct {
	answers      map[string]string // chunk substring -> answer
	synthesis    string
	synthesisErr error
}

func (s *scriptedCompleter) Complete(_ context.Context, req llm.CompletionRequest) (string, error) {
	if strings.Contains(req.User, "Partial answers:") {
		return s.synthesis, s.synthesisErr
	}
	for sub, ans := range s.answers {
		if strings.Contains(req.User, sub) {
			return ans, nil
		}
	}
	return llm.NotFoundAnswer, nil
}

func newTestChunker(maxTokens int) *tokenize.Chunker {
	return tokenize.NewChunker(tokenize.Estimator{}, maxTokens, nil)
}

func TestAnswerSingleQualifyingChunk(t *testing.T) {
	sc := &scriptedCompleter{answers: map[string]string{
		"retention": "Data is retained for two years.",
	}}
	q := NewQAService(sc, newTestChunker(5), nil)
	doc := "The retention clause is here.\nUnrelated boilerplate text here."

	got, err := q.Answer(context.Background(), doc, "How long is data retained?")
	require.NoError(t, err)
	assert.Equal(t, "Data is retained for two years.", got)
}

func TestAnswerSynthesizesMultipleChunks(t *testing.T) {
	sc := &scriptedCompleter{
		answers: map[string]string{
			"first clause":  "Partial answer one.",
			"second clause": "Partial answer two.",
		},
		synthesis: "Combined answer.",
	}
	q := NewQAService(sc, newTestChunker(4), nil)
	doc := "The first clause sits here.\nThe second clause sits here."

	got, err := q.Answer(context.Background(), doc, "What do the clauses say?")
	require.NoError(t, err)
	assert.Equal(t, "Combined answer.", got)
}

func TestAnswerSynthesisFailureFallsBackToFirstAnswer(t *testing.T) {
	sc := &scriptedCompleter{
		answers: map[string]string{
			"first clause":  "Partial answer one.",
			"second clause": "Partial answer two.",
		},
		synthesisErr: errors.New("model unavailable"),
	}
	q := NewQAService(sc, newTestChunker(4), nil)
	doc := "The first clause sits here.\nThe second clause sits here."

	got, err := q.Answer(context.Background(), doc, "What do the clauses say?")
	require.NoError(t, err)
	assert.Equal(t, "Partial answer one.", got)
}

func TestAnswerNoQualifyingChunks(t *testing.T) {
	sc := &scriptedCompleter{} // every chunk comes back NOT_FOUND
	q := NewQAService(sc, newTestChunker(100), nil)

	got, err := q.Answer(context.Background(), "Nothing relevant in here.", "Is there a pet policy?")
	require.NoError(t, err)
	assert.Equal(t, NoAnswerText, got)
}

func TestAnswerEmptyDocument(t *testing.T) {
	q := NewQAService(&scriptedCompleter{}, newTestChunker(100), nil)

	got, err := q.Answer(context.Background(), "   ", "Anything?")
	require.NoError(t, err)
	assert.Equal(t, NoAnswerText, got)
}
