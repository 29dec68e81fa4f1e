package services

import (
	"fmt"
	"path"
	"strings"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
)

// RenderMarkdown renders the final report for a run. It is a pure
// function of the run: two identical runs produce byte-identical
// reports apart from the timestamp line.
func RenderMarkdown(run *domain.SearchRun) string {
	var b strings.Builder

	b.WriteString("# Document Search Results\n\n")
	fmt.Fprintf(&b, "**Query:** `%s`\n", run.Query)
	fmt.Fprintf(&b, "**Folder:** `%s`\n", run.Root)
	fmt.Fprintf(&b, "**Scanned:** %d documents | **Matched:** %d documents | **Skipped:** %d\n",
		run.Stats.Scanned, run.Stats.Matched, run.Stats.Skipped)
	fmt.Fprintf(&b, "**Generated:** %s UTC\n", run.StartedAt.UTC().Format("2006-01-02 15:04:05"))
	b.WriteString("\n---\n\n")

	if len(run.Matches) > 0 {
		b.WriteString("## Matched Documents\n\n")
		for i, m := range run.Matches {
			renderMatch(&b, i+1, m)
		}
	}

	renderStatistics(&b, run)
	renderSkipped(&b, run)
	renderWarnings(&b, run)

	b.WriteString("---\n\n")
	b.WriteString("*Generated by docscout*\n")
	return b.String()
}

func renderMatch(b *strings.Builder, rank int, m domain.Match) {
	name := path.Base(m.Document.RelPath)

	fmt.Fprintf(b, "### %d. %s\n", rank, name)
	fmt.Fprintf(b, "**File:** `%s`\n", m.Document.RelPath)
	fmt.Fprintf(b, "**Relevance:** %d/100\n", m.Verdict.Score)

	if hasPathMatch(m.Verdict) {
		fmt.Fprintf(b, "**Match Sources:** %s\n", strings.Join(m.Verdict.MatchSources, ", "))
		if len(m.Verdict.MatchedTerms) > 0 {
			fmt.Fprintf(b, "**Matched Terms:** %s\n", strings.Join(m.Verdict.MatchedTerms, ", "))
		}
	}

	fmt.Fprintf(b, "**Summary:** %s\n", m.Verdict.Summary)

	if len(m.Verdict.Excerpts) > 0 {
		b.WriteString("\n**Relevant Excerpts:**\n")
		for _, excerpt := range m.Verdict.Excerpts {
			fmt.Fprintf(b, "> %s\n", excerpt)
		}
	}

	b.WriteString("\n---\n\n")
}

func renderStatistics(b *strings.Builder, run *domain.SearchRun) {
	b.WriteString("## Statistics\n\n")
	b.WriteString("| Metric | Count |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| Total files scanned | %d |\n", run.Stats.Scanned)
	fmt.Fprintf(b, "| Successfully read | %d |\n", run.Stats.ExtractedOK)
	fmt.Fprintf(b, "| Relevant matches (>=%d%%) | %d |\n", run.Threshold, run.Stats.Matched)
	fmt.Fprintf(b, "| Files skipped | %d |\n", run.Stats.Skipped)
	b.WriteString("\n")
}

// renderSkipped lists skipped files with their reasons. Empty
// documents are counted in the statistics but deliberately left out
// of this list: an image-only PDF is an expected outcome, not an
// error worth flagging per file.
func renderSkipped(b *strings.Builder, run *domain.SearchRun) {
	var listed []domain.SkipRecord
	for _, skip := range run.Skips {
		if skip.Status == domain.StatusEmpty {
			continue
		}
		listed = append(listed, skip)
	}
	if len(listed) == 0 {
		return
	}

	b.WriteString("## Skipped Files\n\n")
	for _, skip := range listed {
		fmt.Fprintf(b, "- `%s` - %s: %s\n", skip.RelPath, skip.Status, skip.Reason)
	}
	b.WriteString("\n")
}

func renderWarnings(b *strings.Builder, run *domain.SearchRun) {
	if len(run.Warnings) == 0 {
		return
	}
	b.WriteString("## Warnings\n\n")
	for _, w := range run.Warnings {
		fmt.Fprintf(b, "- %s\n", w)
	}
	b.WriteString("\n")
}

func hasPathMatch(v domain.RelevanceVerdict) bool {
	for _, s := range v.MatchSources {
		if s == "path" {
			return true
		}
	}
	return false
}
