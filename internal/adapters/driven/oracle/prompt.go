// Package oracle holds the prompt and response handling shared by the
// relevance oracle adapters. Each backend sends the same instructions
// and must return the same JSON shape, so building the prompt and
// validating the reply live here rather than in every adapter.
package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
)

// maxDocPromptChars caps the content sent per document. Extraction
// already truncates to domain.MaxExtractedChars; this tighter cap
// keeps a full batch inside a single request.
const maxDocPromptChars = 3000

// SystemPrompt frames the evaluation task for the model.
const SystemPrompt = `You are a document relevance evaluator. You receive a search query and a numbered list of documents. For each document, judge how relevant its content is to the query and respond with JSON only, no prose and no code fences.

The response must be a JSON object of the form:
{"verdicts": [{"id": "<document id>", "score": <0-100>, "summary": "<one sentence on why it is or is not relevant>", "excerpts": ["<short verbatim quote>", ...]}]}

Score 0 means completely unrelated, 100 means the document is exactly what the query asks for. Include at most 3 excerpts per document, quoted verbatim from the content. Return one verdict for every document listed.`

// verdictSchema validates the oracle's JSON reply before it is
// trusted. Unknown fields are allowed; missing ids or out-of-range
// scores are not.
const verdictSchema = `{
	"type": "object",
	"required": ["verdicts"],
	"properties": {
		"verdicts": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "score"],
				"properties": {
					"id": {"type": "string", "minLength": 1},
					"score": {"type": "number", "minimum": 0, "maximum": 100},
					"summary": {"type": "string"},
					"excerpts": {"type": "array", "items": {"type": "string"}}
				}
			}
		}
	}
}`

var compiledSchema = jsonschema.MustCompileString("verdicts.json", verdictSchema)

// BuildPrompt renders the user prompt for one batch.
func BuildPrompt(query string, docs []driven.BatchDocument) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Search query: %s\n\n", query)
	fmt.Fprintf(&b, "Documents (%d):\n\n", len(docs))
	for i, doc := range docs {
		fmt.Fprintf(&b, "--- Document %d ---\n", i+1)
		fmt.Fprintf(&b, "id: %s\n", doc.ID)
		fmt.Fprintf(&b, "path: %s\n", doc.RelPath)
		fmt.Fprintf(&b, "content:\n%s\n\n", truncate(doc.Text, maxDocPromptChars))
	}
	b.WriteString("Evaluate every document against the query and reply with the JSON object described in your instructions.")
	return b.String()
}

// verdictsPayload mirrors the JSON reply shape.
type verdictsPayload struct {
	Verdicts []struct {
		ID       string   `json:"id"`
		Score    float64  `json:"score"`
		Summary  string   `json:"summary"`
		Excerpts []string `json:"excerpts"`
	} `json:"verdicts"`
}

// ParseVerdicts validates and decodes a raw oracle reply. Verdicts
// for ids that were not part of the batch are dropped; the model
// occasionally hallucinates entries and they must not leak into the
// run. Scores are clamped to the valid range.
func ParseVerdicts(raw string, docs []driven.BatchDocument) ([]domain.RelevanceVerdict, error) {
	raw = stripCodeFence(raw)

	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("oracle reply is not valid JSON: %w", err)
	}
	if err := compiledSchema.Validate(decoded); err != nil {
		return nil, fmt.Errorf("oracle reply failed validation: %w", err)
	}

	var payload verdictsPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, fmt.Errorf("decode oracle reply: %w", err)
	}

	known := make(map[string]bool, len(docs))
	for _, doc := range docs {
		known[doc.ID] = true
	}

	verdicts := make([]domain.RelevanceVerdict, 0, len(payload.Verdicts))
	for _, v := range payload.Verdicts {
		if !known[v.ID] {
			continue
		}
		verdicts = append(verdicts, domain.RelevanceVerdict{
			DocumentID: v.ID,
			Score:      domain.ClampScore(int(v.Score)),
			Summary:    v.Summary,
			Excerpts:   v.Excerpts,
		})
	}
	return verdicts, nil
}

// truncate bounds a string to n runes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// stripCodeFence removes a surrounding markdown fence. Models add one
// despite the instructions often enough to handle it here.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
