package llm

// Prompts for the consent-document extraction and Q&A calls. The extraction
// prompt pins the exact four-field JSON shape the analyzer validates against.

const analyzeSystemPrompt = "You are an expert at analyzing legal documents and contracts. " +
	"Extract key information about rights, responsibilities, and risks."

const analyzeUserPromptPrefix = "Analyze this text and provide a JSON response with the following structure: " +
	`{"summary": "brief summary", "risks": ["list of risks"], "rights": ["list of rights"], ` +
	`"responsibilities": ["list of responsibilities"]}` +
	"\n\nText:\n"

// BuildAnalyzePrompt packages one chunk into a completion request.
func BuildAnalyzePrompt(chunk string) CompletionRequest {
	return CompletionRequest{
		System:       analyzeSystemPrompt,
		User:         analyzeUserPromptPrefix + chunk,
		JSONResponse: true,
	}
}

// NotFoundAnswer is the exact marker a per-chunk Q&A call must return when
// the chunk does not answer the question.
const NotFoundAnswer = "NOT_FOUND"

const qaSystemPrompt = "You answer questions about consent documents using only the text provided. " +
	"If the text does not contain the answer, reply with exactly " + NotFoundAnswer + " and nothing else."

// BuildQuestionPrompt asks whether one chunk answers the question.
func BuildQuestionPrompt(chunk, question string) CompletionRequest {
	return CompletionRequest{
		System: qaSystemPrompt,
		User:   "Question: " + question + "\n\nText:\n" + chunk,
	}
}

const synthesizeSystemPrompt = "You combine partial answers drawn from different sections of the same " +
	"document into a single coherent answer. Do not invent information that is not in the partial answers."

// BuildSynthesizePrompt merges multiple qualifying per-chunk answers.
func BuildSynthesizePrompt(question string, answers []string) CompletionRequest {
	user := "Question: " + question + "\n\nPartial answers:\n"
	for _, a := range answers {
		user += "- " + a + "\n"
	}
	return CompletionRequest{
		System: synthesizeSystemPrompt,
		User:   user,
	}
}

// BuildChunkJSONSchema returns the JSON-Schema (draft 2020-12 subset) the
// extraction response must satisfy. Passed to the provider as guidance and
// used locally to validate.
func BuildChunkJSONSchema() map[string]any {
	stringList := map[string]any{
		"type":  "array",
		"items": map[string]any{"type": "string"},
	}
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"summary":          map[string]any{"type": "string"},
			"risks":            stringList,
			"rights":           stringList,
			"responsibilities": stringList,
		},
		"required": []string{"summary", "risks", "rights", "responsibilities"},
	}
}
