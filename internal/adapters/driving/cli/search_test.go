package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driving"
)

// stubPipeline returns a canned run without touching the filesystem
// or any oracle.
type stubPipeline struct {
	run *domain.SearchRun
	err error
}

func (s *stubPipeline) Search(_ context.Context, _, _ string, _ driving.SearchOptions) (*domain.SearchRun, error) {
	return s.run, s.err
}

// memoryHistory is an in-memory driven.RunHistoryStore.
type memoryHistory struct {
	records []driven.RunRecord
}

func (m *memoryHistory) Save(_ context.Context, rec driven.RunRecord) error {
	m.records = append(m.records, rec)
	return nil
}

func (m *memoryHistory) List(_ context.Context, limit int) ([]driven.RunRecord, error) {
	if limit > len(m.records) {
		limit = len(m.records)
	}
	out := make([]driven.RunRecord, 0, limit)
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.records[i])
	}
	return out, nil
}

func (m *memoryHistory) Close() error { return nil }

func setupTestServices(run *domain.SearchRun, searchErr error) (*memoryHistory, func()) {
	history := &memoryHistory{}
	prevPipeline := newPipeline
	prevHistory := newHistoryStore
	newPipeline = func(string) (driving.SearchPipeline, error) {
		return &stubPipeline{run: run, err: searchErr}, nil
	}
	newHistoryStore = func() (driven.RunHistoryStore, error) {
		return history, nil
	}
	return history, func() {
		newPipeline = prevPipeline
		newHistoryStore = prevHistory
	}
}

func testRun() *domain.SearchRun {
	return &domain.SearchRun{
		Query:     "budget",
		Root:      "/data/docs",
		StartedAt: time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC),
		Threshold: 30,
		Stats:     domain.RunStats{Scanned: 3, ExtractedOK: 2, Skipped: 1, Matched: 1},
		Matches: []domain.Match{
			{
				Document: domain.ExtractedDocument{ID: "d1", RelPath: "a.txt"},
				Verdict:  domain.RelevanceVerdict{DocumentID: "d1", Score: 80, Summary: "Relevant."},
			},
		},
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [folder] [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresTwoArgs(t *testing.T) {
	_, err := execute(t, "search", "only-folder")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestSearchCmd_DefaultFlags(t *testing.T) {
	flag := searchCmd.Flags().Lookup("output")
	require.NotNil(t, flag)
	assert.Equal(t, "o", flag.Shorthand)
	assert.Equal(t, "search_results.md", flag.DefValue)

	assert.Equal(t, "5", searchCmd.Flags().Lookup("batch-size").DefValue)
	assert.Equal(t, "50", searchCmd.Flags().Lookup("max-docs").DefValue)
	assert.Equal(t, "30", searchCmd.Flags().Lookup("threshold").DefValue)
}

func TestSearchCmd_WritesReport(t *testing.T) {
	history, cleanup := setupTestServices(testRun(), nil)
	defer cleanup()

	output := filepath.Join(t.TempDir(), "report.md")
	out, err := execute(t, "search", "/data/docs", "budget", "-o", output, "-q")
	require.NoError(t, err)

	assert.Contains(t, out, "Scanned 3 documents, matched 1, skipped 1")
	assert.Contains(t, out, "Report written to "+output)

	report, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(report), "# Document Search Results")
	assert.Contains(t, string(report), "a.txt")

	require.Len(t, history.records, 1)
	rec := history.records[0]
	assert.Equal(t, "budget", rec.Query)
	assert.Equal(t, 1, rec.Matched)
	assert.Equal(t, []string{"a.txt"}, rec.MatchedPaths)
}

func TestSearchCmd_ZeroMatchesExitsClean(t *testing.T) {
	run := testRun()
	run.Matches = nil
	run.Stats.Matched = 0
	_, cleanup := setupTestServices(run, nil)
	defer cleanup()

	output := filepath.Join(t.TempDir(), "report.md")
	out, err := execute(t, "search", "/data/docs", "nothing", "-o", output, "-q")
	require.NoError(t, err)
	assert.Contains(t, out, "No relevant documents found.")

	_, err = os.Stat(output)
	assert.NoError(t, err, "report should be written even with zero matches")
}

func TestSearchCmd_SearchFailure(t *testing.T) {
	_, cleanup := setupTestServices(nil, domain.ErrFolderNotFound)
	defer cleanup()

	_, err := execute(t, "search", "/missing", "budget", "-q")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFolderNotFound)
}
