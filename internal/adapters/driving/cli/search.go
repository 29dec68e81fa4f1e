package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docscout-cli/internal/core/services"
	"github.com/custodia-labs/docscout-cli/internal/logger"
)

var (
	searchOutput      string
	searchBatchSize   int
	searchMaxDocs     int
	searchThreshold   int
	searchConcurrency int
	searchTimeout     time.Duration
	searchOracle      string
	searchQuiet       bool
)

var searchCmd = &cobra.Command{
	Use:   "search [folder] [query]",
	Short: "Search a folder of documents with AI relevance scoring",
	Long: `Scans a folder, extracts text from every supported document and asks
the configured AI model which documents are relevant to the query.
Matches are written to a Markdown report sorted by relevance score.

Supported formats: txt, md, docx, doc, pdf, xlsx, xls, and images
(png, jpg, jpeg) when tesseract OCR is available.`,
	Args: cobra.ExactArgs(2),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "search_results.md", "report output path")
	searchCmd.Flags().IntVar(&searchBatchSize, "batch-size", services.DefaultBatchSize, "documents per AI request")
	searchCmd.Flags().IntVar(&searchMaxDocs, "max-docs", services.DefaultMaxDocs, "maximum documents to scan")
	searchCmd.Flags().IntVar(&searchThreshold, "threshold", domain.DefaultRelevanceThreshold, "minimum relevance score (0-100)")
	searchCmd.Flags().IntVar(&searchConcurrency, "concurrency", services.DefaultExtractConcurrency, "parallel file extractions")
	searchCmd.Flags().DurationVar(&searchTimeout, "timeout", 0, "overall run deadline (e.g. 5m); 0 means no limit")
	searchCmd.Flags().StringVar(&searchOracle, "oracle", "", "AI provider: openai or anthropic")
	searchCmd.Flags().BoolVarP(&searchQuiet, "quiet", "q", false, "suppress progress output")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	folder, query := args[0], args[1]

	pipeline, err := newPipeline(searchOracle)
	if err != nil {
		return err
	}

	opts := driving.SearchOptions{
		BatchSize:          searchBatchSize,
		MaxDocs:            searchMaxDocs,
		Threshold:          searchThreshold,
		ExtractConcurrency: searchConcurrency,
		Timeout:            searchTimeout,
	}
	if !searchQuiet {
		opts.Progress = newConsoleProgress(cmd.OutOrStdout())
	}

	run, err := pipeline.Search(context.Background(), folder, query, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	report := services.RenderMarkdown(run)
	if err := os.WriteFile(searchOutput, []byte(report), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	saveHistory(run)

	cmd.Printf("\nScanned %d documents, matched %d, skipped %d\n",
		run.Stats.Scanned, run.Stats.Matched, run.Stats.Skipped)
	if run.Stats.Matched == 0 {
		// Zero matches is a valid outcome, not a failure.
		cmd.Println("No relevant documents found.")
	}
	cmd.Printf("Report written to %s\n", searchOutput)
	return nil
}

// saveHistory records the run summary. History is best-effort; a
// storage failure must never fail a completed search.
func saveHistory(run *domain.SearchRun) {
	store, err := newHistoryStore()
	if err != nil {
		logger.Warn("run history unavailable: %v", err)
		return
	}
	defer store.Close()

	paths := make([]string, len(run.Matches))
	for i, m := range run.Matches {
		paths[i] = m.Document.RelPath
	}

	rec := driven.RunRecord{
		ID:           uuid.NewString(),
		Query:        run.Query,
		Root:         run.Root,
		Scanned:      run.Stats.Scanned,
		ExtractedOK:  run.Stats.ExtractedOK,
		Skipped:      run.Stats.Skipped,
		Matched:      run.Stats.Matched,
		MatchedPaths: paths,
		ReportPath:   searchOutput,
		StartedAt:    run.StartedAt,
	}
	if err := store.Save(context.Background(), rec); err != nil {
		logger.Warn("save run history: %v", err)
	}
}
