package entity

// ChunkResult is the structured extraction from a single chunk. A failed chunk
// contributes no ChunkResult at all; it is dropped by the aggregator.
type ChunkResult struct {
	Summary          string   `json:"summary"`
	Risks            []string `json:"risks"`
	Rights           []string `json:"rights"`
	Responsibilities []string `json:"responsibilities"`
}

// DocumentSummary is the merged result over all successful chunks. Category
// lists contain no duplicate string (case-sensitive) across the whole
// document; Summary concatenates per-chunk summaries in chunk order.
type DocumentSummary struct {
	Summary          string   `json:"summary"`
	Risks            []string `json:"risks"`
	Rights           []string `json:"rights"`
	Responsibilities []string `json:"responsibilities"`
}

// TrustScore is the normalized verification signal for a document. Score is
// always clamped into [0,1]; on any verification failure the value is the
// fixed fallback and never an error.
type TrustScore struct {
	Score    float64 `json:"score"`
	Verified bool    `json:"is_verified"`
	Source   string  `json:"source"`
}

// DocumentAnalysis bundles everything the analyze flow produces for a document.
type DocumentAnalysis struct {
	Content    string          `json:"content"`
	Hash       string          `json:"document_hash"`
	Summary    DocumentSummary `json:"summary"`
	TrustScore TrustScore      `json:"trust_score"`
	// ChunkCount and TokenCount report how the document was split and billed,
	// measured with the same counter the chunker used.
	ChunkCount int `json:"chunk_count"`
	TokenCount int `json:"token_count"`
}

// Flags groups the three category lists the free flagging endpoints expose.
func (s DocumentSummary) Flags() map[string][]string {
	return map[string][]string{
		"risks":            s.Risks,
		"rights":           s.Rights,
		"responsibilities": s.Responsibilities,
	}
}
