package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
)

// pathScoreWeight is the contribution of a path-term match when the
// document also received a content verdict.
const pathScoreWeight = 0.3

// runInput carries everything the aggregator needs to finalise a run.
type runInput struct {
	query     string
	root      string
	startedAt time.Time
	threshold int
	docs      []domain.ExtractedDocument
	verdicts  map[string]domain.RelevanceVerdict
	timedOut  map[int]bool
	warnings  []string
}

// buildRun applies the relevance threshold, sorts matches by
// descending score with scan order as the stable tie-break, and
// computes the final counts. Accounting rules:
//
//   - every non-ok extraction is a skip, including empty documents,
//     so scanned = extracted-ok + skipped always holds;
//   - documents whose batch was abandoned at the deadline are
//     reclassified skipped(timeout) and removed from extracted-ok;
//   - path-term matching applies only to ok documents, keeping
//     matched <= extracted-ok.
func buildRun(in runInput) *domain.SearchRun {
	run := &domain.SearchRun{
		Query:     in.query,
		Root:      in.root,
		StartedAt: in.startedAt,
		Threshold: in.threshold,
		Warnings:  append([]string(nil), in.warnings...),
	}
	// Warnings may arrive in batch-completion order; sort for
	// reproducible reports.
	sort.Strings(run.Warnings)

	terms := splitQueryTerms(in.query)

	for i, doc := range in.docs {
		run.Stats.Scanned++

		if doc.Status != domain.StatusOK {
			run.Stats.Skipped++
			run.Skips = append(run.Skips, domain.SkipRecord{
				RelPath: doc.RelPath,
				Status:  doc.Status,
				Reason:  doc.Reason,
			})
			continue
		}
		if in.timedOut[i] {
			run.Stats.Skipped++
			run.Skips = append(run.Skips, domain.SkipRecord{
				RelPath: doc.RelPath,
				Status:  domain.StatusTimeout,
				Reason:  "run deadline expired before evaluation",
			})
			continue
		}

		run.Stats.ExtractedOK++

		verdict, ok := combineVerdict(doc, in.verdicts[doc.ID], terms)
		if !ok || verdict.Score < in.threshold {
			continue
		}
		run.Matches = append(run.Matches, domain.Match{
			Document:  doc,
			Verdict:   verdict,
			ScanIndex: i,
		})
	}

	// Matches were appended in scan order; the stable sort keeps that
	// order for equal scores.
	sort.SliceStable(run.Matches, func(a, b int) bool {
		return run.Matches[a].Verdict.Score > run.Matches[b].Verdict.Score
	})

	run.Stats.Matched = len(run.Matches)
	return run
}

// combineVerdict merges the oracle's content verdict with path-term
// matching. A path hit boosts a content score; a path hit with no
// content verdict produces a synthetic verdict so documents whose
// names match the query still surface. Returns ok=false when the
// document matched neither way.
func combineVerdict(
	doc domain.ExtractedDocument,
	content domain.RelevanceVerdict,
	terms []string,
) (domain.RelevanceVerdict, bool) {
	matchedTerms, pathScore := matchPathTerms(doc.RelPath, terms)
	hasContent := content.DocumentID != ""

	switch {
	case hasContent && pathScore > 0:
		combined := content
		combined.Score = domain.ClampScore(content.Score + int(float64(pathScore)*pathScoreWeight))
		combined.MatchSources = []string{"path", "content"}
		combined.MatchedTerms = matchedTerms
		return combined, true

	case hasContent:
		content.MatchSources = []string{"content"}
		return content, true

	case pathScore > 0:
		return domain.RelevanceVerdict{
			DocumentID:   doc.ID,
			Score:        pathScore,
			Summary:      fmt.Sprintf("File or folder name contains: %s", strings.Join(matchedTerms, ", ")),
			Excerpts:     []string{fmt.Sprintf("Path match: %s", doc.RelPath)},
			MatchSources: []string{"path"},
			MatchedTerms: matchedTerms,
		}, true

	default:
		return domain.RelevanceVerdict{}, false
	}
}
