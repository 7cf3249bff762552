// Package pipeline provides the high-level orchestration for the CV analysis
// process: text extraction, structured parsing, recommendation, and draft
// projection, committed to the session as one unit.
package pipeline

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/extraction"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/llm"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/parsing"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/recommend"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/review"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/session"
	"github.com/omar-shandaq/AI-Agent-CV-v2/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"runId,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Step names emitted through progress events
const (
	StepExtraction     = "extraction"
	StepParsing        = "parsing"
	StepRecommendation = "recommendation"
	StepDrafts         = "drafts"
)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Files         []extraction.File
	MaxConcurrent int // documents parsed at once, minimum 1
	BatchPolicy   extraction.BatchPolicy
	Verbose       bool
	OnProgress    ProgressCallback
}

// Result holds the outputs of one completed analysis run
type Result struct {
	RunID           uuid.UUID
	Cvs             []types.UploadedCv
	Drafts          []types.DraftCv
	Recommendations *types.RecommendationResult
}

// Runner binds the pipeline to an LLM client and a session.
type Runner struct {
	client llm.Client
	sess   *session.Session
}

// NewRunner returns a pipeline runner over the given client and session.
func NewRunner(client llm.Client, sess *session.Session) *Runner {
	return &Runner{client: client, sess: sess}
}

func emitProgress(opts *RunOptions, runID uuid.UUID, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   runID.String(),
			Content: content,
		})
	}
}

// Run executes the full analysis for the given files. Extraction and parsing
// run per document with bounded concurrency, the recommendation step starts
// only after every document has finished, and the session is updated only
// when the whole run succeeds. A failed run leaves all prior session state
// untouched.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if len(opts.Files) == 0 {
		return nil, fmt.Errorf("no files to analyze")
	}

	runID := uuid.New()

	names := make([]string, len(opts.Files))
	for i, f := range opts.Files {
		names[i] = f.Name
	}
	if err := r.sess.CheckSelection(names); err != nil {
		return nil, err
	}

	limit := opts.MaxConcurrent
	if limit < 1 {
		limit = 1
	}

	// Results are placed by input index so output order always matches the
	// upload order regardless of completion order.
	slots := make([]*types.UploadedCv, len(opts.Files))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, file := range opts.Files {
		g.Go(func() error {
			cv, err := r.processFile(gCtx, file)
			if err != nil {
				if opts.BatchPolicy == extraction.SkipFailed {
					log.Printf("skipping %s: %v", file.Name, err)
					emitProgress(&opts, runID, StepExtraction,
						fmt.Sprintf("Skipped %s: %v", file.Name, err), nil)
					return nil
				}
				return fmt.Errorf("processing %s: %w", file.Name, err)
			}
			slots[i] = &cv
			emitProgress(&opts, runID, StepParsing,
				fmt.Sprintf("Parsed %s", file.Name), nil)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cvs := make([]types.UploadedCv, 0, len(slots))
	for _, cv := range slots {
		if cv != nil {
			cvs = append(cvs, *cv)
		}
	}
	if len(cvs) == 0 {
		return nil, fmt.Errorf("no files could be processed")
	}
	emitProgress(&opts, runID, StepExtraction,
		fmt.Sprintf("Extracted %d of %d document(s)", len(cvs), len(opts.Files)), nil)

	recs, err := recommend.Recommend(ctx, r.client, cvs, r.sess.Rules(), r.sess.Catalog())
	if err != nil {
		return nil, err
	}
	emitProgress(&opts, runID, StepRecommendation,
		fmt.Sprintf("Generated recommendations for %d candidate(s)", len(recs.Candidates)), recs)

	drafts := make([]types.DraftCv, len(cvs))
	for i, cv := range cvs {
		drafts[i] = review.ProjectDraft(cv.Name, cv.Structured)
	}
	emitProgress(&opts, runID, StepDrafts,
		fmt.Sprintf("Prepared %d editable draft(s)", len(drafts)), nil)

	if err := r.sess.RecordAnalysis(ctx, cvs, drafts, recs); err != nil {
		return nil, fmt.Errorf("failed to commit analysis: %w", err)
	}

	return &Result{
		RunID:           runID,
		Cvs:             cvs,
		Drafts:          drafts,
		Recommendations: recs,
	}, nil
}

// processFile turns one uploaded file into a structured CV. Text extraction
// failures are fatal for the file; a structured parse that the model fumbles
// still yields an empty record, handled inside parsing.
func (r *Runner) processFile(ctx context.Context, file extraction.File) (types.UploadedCv, error) {
	text, err := extraction.ExtractText(file.Name, file.Mime, file.Data)
	if err != nil {
		return types.UploadedCv{}, err
	}

	record, err := parsing.ExtractCvRecord(ctx, r.client, text)
	if err != nil {
		return types.UploadedCv{}, err
	}

	return types.UploadedCv{Name: file.Name, RawText: text, Structured: record}, nil
}
