// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/subnav/ai"
	"github.com/poiesic/subnav/core"
	"github.com/poiesic/subnav/source"
	"github.com/poiesic/subnav/storage"
)

// Pipeline turns candidate listings into stored subsidies.
// Candidates are processed one at a time in source order; each new candidate
// gets three concurrent model calls whose results are assembled into one record.
type Pipeline struct {
	subsidies   storage.SubsidyRepository
	client      ai.ClientSummarizer
	accountant  ai.AccountantSummarizer
	tagger      ai.IndustryTagger
	failFast    bool
	maxAttempts int
	retryDelay  time.Duration
	now         func() time.Time
	newID       func() string
	logger      *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithFailFast stops the run at the first failed candidate.
// By default failures are recorded and the run continues.
func WithFailFast(failFast bool) Option {
	return func(p *Pipeline) error {
		p.failFast = failFast
		return nil
	}
}

// WithRetry retries the summarization step up to maxAttempts times in total,
// waiting baseDelay before the second attempt and doubling after that.
// Default is a single attempt.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(p *Pipeline) error {
		if maxAttempts < 1 {
			return ErrInvalidMaxAttempts
		}
		p.maxAttempts = maxAttempts
		p.retryDelay = baseDelay
		return nil
	}
}

// WithClock overrides the source of processing timestamps.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) error {
		if now != nil {
			p.now = now
		}
		return nil
	}
}

// WithIDGenerator overrides how subsidy IDs are generated.
func WithIDGenerator(newID func() string) Option {
	return func(p *Pipeline) error {
		if newID != nil {
			p.newID = newID
		}
		return nil
	}
}

// NewPipeline creates a new pipeline writing to subsidies and calling provider's services.
func NewPipeline(subsidies storage.SubsidyRepository, provider ai.AIProvider, opts ...Option) (*Pipeline, error) {
	if subsidies == nil {
		return nil, ErrSubsidyRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	p := &Pipeline{
		subsidies:   subsidies,
		client:      provider.ClientSummarizer(),
		accountant:  provider.AccountantSummarizer(),
		tagger:      provider.IndustryTagger(),
		maxAttempts: 1,
		retryDelay:  time.Second,
		now:         time.Now,
		newID:       core.NewID,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	p.logger = p.logger.With("component", "pipeline")
	return p, nil
}

// Result reports the outcome of one run.
type Result struct {
	Created  []*core.Subsidy         // records written, in source order
	Skipped  []string                // source URLs already stored
	Failures []core.CandidateFailure // candidates that could not be stored

	errs []error
}

// Err joins the errors of every failed candidate, or returns nil.
func (r *Result) Err() error {
	return errors.Join(r.errs...)
}

func (r *Result) fail(c core.Candidate, err error) error {
	err = fmt.Errorf("%w: %s: %w", ErrCandidateFailed, c.URL, err)
	r.errs = append(r.errs, err)
	r.Failures = append(r.Failures, core.CandidateFailure{
		Name:      c.Name,
		SourceURL: c.URL,
		Error:     err.Error(),
	})
	return err
}

// Run reads the candidates from src and processes them.
// A source failure is returned before anything is processed.
func (p *Pipeline) Run(ctx context.Context, src source.Source, monitor Monitor) (*Result, error) {
	if src == nil {
		return nil, ErrSourceRequired
	}
	candidates, err := src.Candidates(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading candidates: %w", err)
	}
	return p.Process(ctx, candidates, monitor)
}

// Process runs the candidates through dedup, summarization, assembly and
// persistence in order.
//
// A candidate that fails is recorded in Result.Failures and the next one is
// processed, unless the pipeline was built WithFailFast, in which case the
// failure is returned. Context cancellation always stops the run. The Result
// is returned in every case, holding whatever was done before the stop.
func (p *Pipeline) Process(ctx context.Context, candidates []core.Candidate, monitor Monitor) (*Result, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}
	result := &Result{
		Created:  []*core.Subsidy{},
		Skipped:  []string{},
		Failures: []core.CandidateFailure{},
	}

	monitor.Start(len(candidates))
	defer monitor.Finish(result)

	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		subsidy, skipped, err := p.processCandidate(ctx, c)
		switch {
		case err != nil:
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			err = result.fail(c, err)
			monitor.Failed(c, err)
			p.logger.Error("candidate failed", "name", c.Name, "url", c.URL, "err", err)
			if p.failFast {
				return result, err
			}
		case skipped:
			result.Skipped = append(result.Skipped, c.URL)
			monitor.Skipped(c)
			p.logger.Info("skipping existing subsidy", "url", c.URL)
		default:
			result.Created = append(result.Created, subsidy)
			monitor.Stored(c, subsidy)
			p.logger.Info("stored subsidy", "id", subsidy.ID, "name", subsidy.Name)
		}
	}

	return result, nil
}

// processCandidate moves one candidate through its states. It reports
// skipped=true when the source URL is already stored, including when a
// concurrent writer stored it between the check and the write.
func (p *Pipeline) processCandidate(ctx context.Context, c core.Candidate) (*core.Subsidy, bool, error) {
	if err := core.ValidateCandidate(&c); err != nil {
		return nil, false, err
	}

	exists, err := p.subsidies.ExistsBySourceURL(ctx, c.URL)
	if err != nil {
		return nil, false, fmt.Errorf("checking source url: %w", err)
	}
	if exists {
		return nil, true, nil
	}

	var sum summaries
	err = retryWithBackoff(ctx, p.logger, func() error {
		var err error
		sum, err = p.summarize(ctx, c)
		return err
	}, p.maxAttempts, p.retryDelay)
	if err != nil {
		return nil, false, err
	}

	subsidy := p.assemble(c, sum)
	if err := p.subsidies.AddSubsidy(ctx, subsidy); err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			p.logger.Warn("source url stored concurrently", "url", c.URL)
			return nil, true, nil
		}
		return nil, false, fmt.Errorf("storing subsidy: %w", err)
	}
	return subsidy, false, nil
}

// assemble builds the record from the candidate and the fan-out results.
// Tags and summaries are copied as produced.
func (p *Pipeline) assemble(c core.Candidate, sum summaries) *core.Subsidy {
	now := p.now().UTC()
	tags := append([]string{}, sum.tags...)
	return &core.Subsidy{
		ID:                p.newID(),
		Name:              c.Name,
		SourceURL:         c.URL,
		Deadline:          core.ParseDeadline(sum.client.Deadline, now),
		ProcessedDate:     now,
		IndustryTags:      tags,
		ClientSummary:     sum.client,
		AccountantSummary: sum.accountant,
	}
}
