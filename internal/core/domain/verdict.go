package domain

// DefaultRelevanceThreshold is the minimum score for a document to
// appear in the final report.
const DefaultRelevanceThreshold = 30

// MaxRelevanceScore is the upper bound of the oracle's scoring scale.
const MaxRelevanceScore = 100

// RelevanceVerdict is the oracle's judgement for a single document.
// The oracle may omit documents it considers irrelevant; absence of a
// verdict is valid and is treated as score 0.
type RelevanceVerdict struct {
	// DocumentID references the ExtractedDocument this verdict is for.
	DocumentID string

	// Score is the relevance score in [0, 100].
	Score int

	// Summary is a short description of what the document discusses.
	Summary string

	// Excerpts are the most relevant passages, in oracle order.
	Excerpts []string

	// MatchSources records how the document matched: "content" for an
	// oracle verdict, "path" for a filename/folder term hit, or both.
	MatchSources []string

	// MatchedTerms lists the query terms found in the file path, when
	// MatchSources includes "path".
	MatchedTerms []string
}

// ClampScore bounds a raw oracle score to [0, MaxRelevanceScore].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > MaxRelevanceScore {
		return MaxRelevanceScore
	}
	return score
}
