package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Charan-r11/Hack-The-Future/internal/common"
)

type fakeCompleter struct {
	response string
	err      error
	lastReq  CompletionRequest
}

func (f *fakeCompleter) Complete(_ context.Context, req CompletionRequest) (string, error) {
	f.lastReq = req
	return f.response, f.err
}

func TestAnalyzeChunkValidResponse(t *testing.T) {
	fc := &fakeCompleter{response: `{
		"summary": "Data is shared with third parties.",
		"risks": ["Data may be sold"],
		"rights": ["You may opt out"],
		"responsibilities": ["Keep your account secure"]
	}`}
	a := NewAnalyzer(fc, nil)

	got, err := a.AnalyzeChunk(context.Background(), "some chunk text")
	require.NoError(t, err)
	assert.Equal(t, "Data is shared with third parties.", got.Summary)
	assert.Equal(t, []string{"Data may be sold"}, got.Risks)
	assert.Equal(t, []string{"You may opt out"}, got.Rights)
	assert.Equal(t, []string{"Keep your account secure"}, got.Responsibilities)

	assert.True(t, fc.lastReq.JSONResponse)
	assert.Contains(t, fc.lastReq.User, "some chunk text")
}

func TestAnalyzeChunkSanitizeRecoversNearMiss(t *testing.T) {
	// Singular key, a string where a list belongs, and an unknown key.
	fc := &fakeCompleter{response: `{
		"summary": "  padded summary  ",
		"risk": "Single risk as a string",
		"rights": ["Right one", null],
		"responsibilities": [],
		"confidence": 0.9
	}`}
	a := NewAnalyzer(fc, nil)

	got, err := a.AnalyzeChunk(context.Background(), "chunk")
	require.NoError(t, err)
	assert.Equal(t, "padded summary", got.Summary)
	assert.Equal(t, []string{"Single risk as a string"}, got.Risks)
	assert.Equal(t, []string{"Right one"}, got.Rights)
	assert.Empty(t, got.Responsibilities)
}

func TestAnalyzeChunkMalformedJSON(t *testing.T) {
	fc := &fakeCompleter{response: "Sure! Here is the analysis you asked for."}
	a := NewAnalyzer(fc, nil)

	_, err := a.AnalyzeChunk(context.Background(), "chunk")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrProcessing)
}

func TestAnalyzeChunkMissingRequiredField(t *testing.T) {
	// No summary; sanitize must not invent it, so validation still fails.
	fc := &fakeCompleter{response: `{"risks": [], "rights": [], "responsibilities": []}`}
	a := NewAnalyzer(fc, nil)

	_, err := a.AnalyzeChunk(context.Background(), "chunk")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrProcessing)
}

func TestAnalyzeChunkCompleterError(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("upstream timeout")}
	a := NewAnalyzer(fc, nil)

	_, err := a.AnalyzeChunk(context.Background(), "chunk")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrProcessing)
	assert.Contains(t, err.Error(), "upstream timeout")
}
