package services

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docscout-cli/internal/core/domain"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docscout-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docscout-cli/internal/logger"
)

// Ensure Pipeline implements the interface.
var _ driving.SearchPipeline = (*Pipeline)(nil)

// Default option values.
const (
	DefaultBatchSize          = 5
	DefaultMaxDocs            = 50
	DefaultExtractConcurrency = 4
	DefaultBatchConcurrency   = 1
)

// oracleInterval paces oracle requests; the endpoint is rate-limited
// and batching already bounds request size.
const oracleInterval = 250 * time.Millisecond

// Pipeline runs the scan → extract → evaluate → aggregate flow for
// one search invocation. It holds no state between runs.
type Pipeline struct {
	scanner  *Scanner
	registry driven.ExtractorRegistry
	oracle   driven.RelevanceOracle
	ocr      driven.OCREngine
	limiter  *rate.Limiter
}

// NewPipeline creates a search pipeline. The OCR engine may be nil or
// a stub; it is only consulted when the scan contains image files.
func NewPipeline(
	scanner *Scanner,
	registry driven.ExtractorRegistry,
	oracle driven.RelevanceOracle,
	ocr driven.OCREngine,
) *Pipeline {
	return &Pipeline{
		scanner:  scanner,
		registry: registry,
		oracle:   oracle,
		ocr:      ocr,
		limiter:  rate.NewLimiter(rate.Every(oracleInterval), 1),
	}
}

// indexedDoc pairs an ok-status document with its scan position.
type indexedDoc struct {
	doc       domain.ExtractedDocument
	scanIndex int
}

// Search executes one single-pass search over root.
func (p *Pipeline) Search(
	ctx context.Context, root, query string, opts driving.SearchOptions,
) (*domain.SearchRun, error) {
	if p.oracle == nil {
		return nil, domain.ErrOracleUnavailable
	}
	applyDefaults(&opts)
	progress := sink{opts.Progress}
	startedAt := time.Now().UTC()

	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root: %w", err)
	}

	logger.Section("Scanning")
	files, err := p.scanner.Scan(absRoot, opts.MaxDocs)
	if err != nil {
		return nil, err
	}
	progress.ScanComplete(len(files))

	// OCR availability is a configuration failure, but only when the
	// scan actually contains images.
	if err := p.checkOCR(files); err != nil {
		return nil, err
	}

	logger.Section("Extraction")
	docs, err := p.extractAll(ctx, files, opts, progress)
	if err != nil {
		return nil, err
	}

	logger.Section("Evaluation")
	okDocs := collectOK(docs)
	verdicts, timedOut, warnings := p.evaluateAll(ctx, query, okDocs, opts, progress)

	run := buildRun(runInput{
		query:     query,
		root:      absRoot,
		startedAt: startedAt,
		threshold: opts.Threshold,
		docs:      docs,
		verdicts:  verdicts,
		timedOut:  timedOut,
		warnings:  warnings,
	})
	logger.Info("Run complete: %d scanned, %d matched, %d skipped",
		run.Stats.Scanned, run.Stats.Matched, run.Stats.Skipped)
	return run, nil
}

// checkOCR fails fast when image files are present but the engine is
// not usable.
func (p *Pipeline) checkOCR(files []domain.FileDescriptor) error {
	hasImages := false
	for _, fd := range files {
		switch fd.Ext {
		case ".jpg", ".jpeg", ".png":
			hasImages = true
		}
	}
	if !hasImages {
		return nil
	}
	if p.ocr == nil {
		return domain.ErrOCRUnavailable
	}
	if err := p.ocr.Available(); err != nil {
		return fmt.Errorf("scan contains images: %w", err)
	}
	return nil
}

// extractAll runs extraction concurrently, placing results by scan
// index so downstream order is deterministic regardless of which file
// finishes first.
func (p *Pipeline) extractAll(
	ctx context.Context,
	files []domain.FileDescriptor,
	opts driving.SearchOptions,
	progress sink,
) ([]domain.ExtractedDocument, error) {
	docs := make([]domain.ExtractedDocument, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.ExtractConcurrency)
	for i, fd := range files {
		g.Go(func() error {
			doc, err := p.registry.Extract(gctx, fd)
			if err != nil {
				return fmt.Errorf("extract %s: %w", fd.RelPath, err)
			}
			docs[i] = doc
			logger.Debug("[%d/%d] %s: %s", i+1, len(files), fd.RelPath, doc.Status)
			progress.FileExtracted(i, len(files), doc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// collectOK filters extraction results to ok-status documents,
// keeping their scan indexes for batching and tie-breaks.
func collectOK(docs []domain.ExtractedDocument) []indexedDoc {
	var ok []indexedDoc
	for i, doc := range docs {
		if doc.Status == domain.StatusOK {
			ok = append(ok, indexedDoc{doc: doc, scanIndex: i})
		}
	}
	return ok
}

// evaluateAll partitions ok documents into consecutive batches and
// submits each to the oracle exactly once. Verdicts are merged by
// document ID, so report ordering is independent of batch completion
// order. A failed batch degrades to "no matches" with a run warning;
// batches not yet started when the deadline expires are abandoned and
// their documents reported by scan index in timedOut.
func (p *Pipeline) evaluateAll(
	ctx context.Context,
	query string,
	okDocs []indexedDoc,
	opts driving.SearchOptions,
	progress sink,
) (map[string]domain.RelevanceVerdict, map[int]bool, []string) {
	verdicts := make(map[string]domain.RelevanceVerdict)
	timedOut := make(map[int]bool)
	var warnings []string
	var mu sync.Mutex

	batches := partition(okDocs, opts.BatchSize)
	var processed atomic.Int64

	var g errgroup.Group
	g.SetLimit(opts.BatchConcurrency)
	for bi, batch := range batches {
		g.Go(func() error {
			if err := p.waitTurn(ctx); err != nil {
				mu.Lock()
				for _, d := range batch {
					timedOut[d.scanIndex] = true
				}
				mu.Unlock()
				return nil
			}

			logger.Debug("Batch %d/%d (%d docs)", bi+1, len(batches), len(batch))
			result, err := p.oracle.EvaluateBatch(ctx, query, toBatchDocs(batch))

			mu.Lock()
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("batch %d/%d failed: %v", bi+1, len(batches), err))
				logger.Warn("Batch %d failed: %v", bi+1, err)
			} else {
				for _, v := range result {
					v.Score = domain.ClampScore(v.Score)
					verdicts[v.DocumentID] = v
				}
			}
			mu.Unlock()

			done := processed.Add(int64(len(batch)))
			progress.BatchComplete(bi+1, len(batches), int(done))
			return nil
		})
	}
	// Batch goroutines never return errors; failures degrade to warnings.
	_ = g.Wait()

	return verdicts, timedOut, warnings
}

// waitTurn paces oracle calls and reports an expired deadline before
// a batch has started.
func (p *Pipeline) waitTurn(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return p.limiter.Wait(ctx)
}

// partition splits documents into consecutive batches of size n,
// preserving order within and across batches.
func partition(docs []indexedDoc, n int) [][]indexedDoc {
	var batches [][]indexedDoc
	for start := 0; start < len(docs); start += n {
		end := start + n
		if end > len(docs) {
			end = len(docs)
		}
		batches = append(batches, docs[start:end])
	}
	return batches
}

func toBatchDocs(batch []indexedDoc) []driven.BatchDocument {
	out := make([]driven.BatchDocument, len(batch))
	for i, d := range batch {
		out[i] = driven.BatchDocument{
			ID:      d.doc.ID,
			RelPath: d.doc.RelPath,
			Text:    d.doc.Text,
		}
	}
	return out
}

func applyDefaults(opts *driving.SearchOptions) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.MaxDocs <= 0 {
		opts.MaxDocs = DefaultMaxDocs
	}
	if opts.Threshold <= 0 {
		opts.Threshold = domain.DefaultRelevanceThreshold
	}
	if opts.ExtractConcurrency <= 0 {
		opts.ExtractConcurrency = DefaultExtractConcurrency
	}
	if opts.BatchConcurrency <= 0 {
		opts.BatchConcurrency = DefaultBatchConcurrency
	}
}

// sink wraps an optional ProgressSink so the pipeline can call it
// without nil checks.
type sink struct {
	s driving.ProgressSink
}

func (w sink) ScanComplete(found int) {
	if w.s != nil {
		w.s.ScanComplete(found)
	}
}

func (w sink) FileExtracted(index, total int, doc domain.ExtractedDocument) {
	if w.s != nil {
		w.s.FileExtracted(index, total, doc)
	}
}

func (w sink) BatchComplete(batch, batches, docsProcessed int) {
	if w.s != nil {
		w.s.BatchComplete(batch, batches, docsProcessed)
	}
}
