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

// Package dispatch runs pipeline executions in the background.
//
// Submit returns a run ID immediately; the run's progress and outcome are
// persisted through a storage.RunRepository and can be polled with Status.
// At most one run executes at a time. Submitting while a run is active queues
// a single follow-up run; further submissions share that queued run until it
// starts.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/subnav/core"
	"github.com/poiesic/subnav/ingestion"
	"github.com/poiesic/subnav/source"
	"github.com/poiesic/subnav/storage"
)

var (
	// ErrDispatcherClosed is returned by Submit after Close, and recorded on
	// a queued run that Close discarded.
	ErrDispatcherClosed = errors.New("dispatcher is closed")

	// ErrRunPanicked is recorded on a run whose pipeline panicked.
	ErrRunPanicked = errors.New("pipeline run panicked")

	// ErrPipelineRequired is returned when no pipeline is provided.
	ErrPipelineRequired = errors.New("pipeline required")

	// ErrRunRepositoryRequired is returned when no run repository is provided.
	ErrRunRepositoryRequired = errors.New("run repository required")
)

// Runner executes one pipeline run. *ingestion.Pipeline implements it.
type Runner interface {
	Run(ctx context.Context, src source.Source, monitor ingestion.Monitor) (*ingestion.Result, error)
}

var _ Runner = (*ingestion.Pipeline)(nil)

// Dispatcher submits runs to a single-worker pool.
type Dispatcher struct {
	runner     Runner
	source     source.Source
	runs       storage.RunRepository
	pool       *ants.Pool
	runTimeout time.Duration
	now        func() time.Time
	logger     *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
	active bool
	queued *core.Run
}

// Option configures a Dispatcher.
type Option func(*Dispatcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		d.logger = logger
		return nil
	}
}

// WithRunTimeout bounds each run. Zero means no bound.
func WithRunTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) error {
		if timeout < 0 {
			return fmt.Errorf("run timeout cannot be negative: %s", timeout)
		}
		d.runTimeout = timeout
		return nil
	}
}

// WithClock overrides the source of run timestamps.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) error {
		if now != nil {
			d.now = now
		}
		return nil
	}
}

// New creates a dispatcher that runs runner over src and records runs in runs.
func New(runner Runner, src source.Source, runs storage.RunRepository, opts ...Option) (*Dispatcher, error) {
	if runner == nil {
		return nil, ErrPipelineRequired
	}
	if src == nil {
		return nil, ingestion.ErrSourceRequired
	}
	if runs == nil {
		return nil, ErrRunRepositoryRequired
	}

	d := &Dispatcher{
		runner: runner,
		source: src,
		runs:   runs,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	d.logger = d.logger.With("component", "dispatcher")

	// active gates admission, so the pool holds at most one task; Submit
	// blocks briefly if the worker has not yet returned to the idle queue
	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, err
	}
	d.pool = pool
	d.ctx, d.cancel = context.WithCancel(context.Background())
	return d, nil
}

// Submit records a pending run and returns it without waiting for it.
// If a run is already executing the new run is queued behind it; if one is
// already queued, Submit returns that queued run instead of adding another.
func (d *Dispatcher) Submit(ctx context.Context) (*core.Run, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrDispatcherClosed
	}
	if d.queued != nil {
		snapshot := *d.queued
		d.logger.Info("run coalesced", "run_id", snapshot.ID)
		return &snapshot, nil
	}

	run := &core.Run{
		ID:          core.NewID(),
		Status:      core.RunStatusPending,
		SubmittedAt: d.now().UTC(),
		Created:     []string{},
		Skipped:     []string{},
		Failures:    []core.CandidateFailure{},
	}
	if err := d.runs.SaveRun(ctx, run); err != nil {
		return nil, fmt.Errorf("recording run: %w", err)
	}

	// copy before handing the record to the worker, which mutates it
	snapshot := *run

	if d.active {
		d.queued = run
		d.logger.Info("run queued", "run_id", snapshot.ID)
		return &snapshot, nil
	}

	d.active = true
	d.wg.Add(1)
	if err := d.pool.Submit(func() { d.drain(run) }); err != nil {
		d.active = false
		d.wg.Done()
		d.finish(run, nil, err)
		return nil, fmt.Errorf("submitting run: %w", err)
	}

	d.logger.Info("run submitted", "run_id", snapshot.ID)
	return &snapshot, nil
}

// drain executes run, then any run queued while it was executing.
func (d *Dispatcher) drain(run *core.Run) {
	defer d.wg.Done()
	for run != nil {
		d.execute(run)

		d.mu.Lock()
		run, d.queued = d.queued, nil
		if run == nil {
			d.active = false
		}
		d.mu.Unlock()
	}
}

// execute performs the run on the dispatcher's own context, detached from
// the submitting request. A panic in the runner fails the run.
func (d *Dispatcher) execute(run *core.Run) {
	ctx := d.ctx
	if d.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.runTimeout)
		defer cancel()
	}

	run.Status = core.RunStatusRunning
	run.StartedAt = d.now().UTC()
	if err := d.runs.SaveRun(ctx, run); err != nil {
		d.logger.Error("failed to record run start", "run_id", run.ID, "err", err)
	}

	defer func() {
		if v := recover(); v != nil {
			d.finish(run, nil, fmt.Errorf("%w: %v", ErrRunPanicked, v))
		}
	}()

	d.logger.Info("run started", "run_id", run.ID)
	result, err := d.runner.Run(ctx, d.source, nil)
	d.finish(run, result, err)
}

// finish records the terminal state of a run.
func (d *Dispatcher) finish(run *core.Run, result *ingestion.Result, err error) {
	run.FinishedAt = d.now().UTC()
	if result != nil {
		for _, s := range result.Created {
			run.Created = append(run.Created, s.ID)
		}
		run.Skipped = append(run.Skipped, result.Skipped...)
		run.Failures = append(run.Failures, result.Failures...)
	}

	run.Status = core.RunStatusSucceeded
	if err != nil {
		run.Status = core.RunStatusFailed
		run.Error = err.Error()
		d.logger.Error("run failed", "run_id", run.ID, "err", err)
	} else {
		d.logger.Info("run finished", "run_id", run.ID,
			"created", len(run.Created), "skipped", len(run.Skipped), "failed", len(run.Failures))
	}

	// the run context may be cancelled or expired; the final record must still land
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := d.runs.SaveRun(ctx, run); err != nil {
		d.logger.Error("failed to record run result", "run_id", run.ID, "err", err)
	}
}

// Status returns the current record of a run.
func (d *Dispatcher) Status(ctx context.Context, id string) (*core.Run, error) {
	return d.runs.GetRun(ctx, id)
}

// List returns up to limit recent runs, newest first.
func (d *Dispatcher) List(ctx context.Context, limit int) ([]*core.Run, error) {
	return d.runs.ListRuns(ctx, limit)
}

// Busy reports whether a run is executing.
func (d *Dispatcher) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.active
}

// Wait blocks until every submitted run has finished or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels any active run, fails any queued run, waits for the active
// run to record its outcome and releases the pool. Close is idempotent.
func (d *Dispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	queued := d.queued
	d.queued = nil
	d.mu.Unlock()

	if queued != nil {
		d.finish(queued, nil, ErrDispatcherClosed)
	}

	d.cancel()
	d.wg.Wait()
	d.pool.Release()
	return nil
}
