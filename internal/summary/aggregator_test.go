package summary

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Charan-r11/Hack-The-Future/internal/common"
	"github.com/Charan-r11/Hack-The-Future/internal/entity"
)

// fakeAnalyzer maps chunk text to a canned result or error.
type fakeAnalyzer struct {
	results map[string]entity.ChunkResult
	errs    map[string]error
}

func (f *fakeAnalyzer) AnalyzeChunk(_ context.Context, chunk string) (entity.ChunkResult, error) {
	if err, ok := f.errs[chunk]; ok {
		return entity.ChunkResult{}, err
	}
	return f.results[chunk], nil
}

func TestAggregatePreservesChunkOrder(t *testing.T) {
	fa := &fakeAnalyzer{results: map[string]entity.ChunkResult{
		"c1": {Summary: "First part.", Risks: []string{"risk a"}},
		"c2": {Summary: "Second part.", Rights: []string{"right b"}},
		"c3": {Summary: "Third part.", Responsibilities: []string{"resp c"}},
	}}
	a := NewAggregator(fa, 2, nil)

	got, err := a.Aggregate(context.Background(), []string{"c1", "c2", "c3"})
	require.NoError(t, err)
	assert.Equal(t, "First part. Second part. Third part.", got.Summary)
	assert.Equal(t, []string{"risk a"}, got.Risks)
	assert.Equal(t, []string{"right b"}, got.Rights)
	assert.Equal(t, []string{"resp c"}, got.Responsibilities)
}

func TestAggregateDeduplicatesCategories(t *testing.T) {
	fa := &fakeAnalyzer{results: map[string]entity.ChunkResult{
		"c1": {Summary: "A.", Risks: []string{"shared risk", "only in one"}},
		"c2": {Summary: "B.", Risks: []string{"shared risk"}},
	}}
	a := NewAggregator(fa, 2, nil)

	got, err := a.Aggregate(context.Background(), []string{"c1", "c2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"shared risk", "only in one"}, got.Risks)
}

func TestAggregateToleratesPartialFailure(t *testing.T) {
	fa := &fakeAnalyzer{
		results: map[string]entity.ChunkResult{
			"good": {Summary: "Survivor.", Risks: []string{"risk"}},
		},
		errs: map[string]error{"bad": errors.New("model unavailable")},
	}
	a := NewAggregator(fa, 2, nil)

	got, err := a.Aggregate(context.Background(), []string{"bad", "good"})
	require.NoError(t, err)
	assert.Equal(t, "Survivor.", got.Summary)
	assert.Equal(t, []string{"risk"}, got.Risks)
}

func TestAggregateFailsWhenAllChunksFail(t *testing.T) {
	fa := &fakeAnalyzer{errs: map[string]error{
		"c1": errors.New("boom"),
		"c2": errors.New("boom"),
	}}
	a := NewAggregator(fa, 2, nil)

	_, err := a.Aggregate(context.Background(), []string{"c1", "c2"})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrProcessing)
}

func TestAggregateFailsOnEmptyInput(t *testing.T) {
	a := NewAggregator(&fakeAnalyzer{}, 2, nil)

	_, err := a.Aggregate(context.Background(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrProcessing)
}

func TestAggregateManyChunksKeepsOrderUnderConcurrency(t *testing.T) {
	results := map[string]entity.ChunkResult{}
	chunks := make([]string, 0, 20)
	want := make([]string, 0, 20)
	for _, word := range strings.Fields("a b c d e f g h i j k l m n o p q r s t") {
		chunks = append(chunks, word)
		results[word] = entity.ChunkResult{Summary: word + "."}
		want = append(want, word+".")
	}
	a := NewAggregator(&fakeAnalyzer{results: results}, 8, nil)

	got, err := a.Aggregate(context.Background(), chunks)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(want, " "), got.Summary)
}
