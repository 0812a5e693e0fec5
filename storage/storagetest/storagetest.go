// Package storagetest holds a conformance suite run against every
// storage.Repositories implementation.
package storagetest

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/subnav/core"
	"github.com/poiesic/subnav/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Opener returns fresh, empty repositories. The suite closes them.
type Opener func(t *testing.T) storage.Repositories

// NewSubsidy builds a valid subsidy for url with the given deadline and tags.
func NewSubsidy(name, url string, deadline time.Time, tags ...string) *core.Subsidy {
	if tags == nil {
		tags = []string{}
	}
	return &core.Subsidy{
		ID:            core.NewID(),
		Name:          name,
		SourceURL:     url,
		Deadline:      deadline.UTC().Truncate(time.Microsecond),
		ProcessedDate: time.Now().UTC().Truncate(time.Microsecond),
		IndustryTags:  tags,
		ClientSummary: core.ClientSummary{
			Catchphrase: name + "のキャッチコピー",
			Merit:       "メリット",
			Target:      "対象者",
			Amount:      "最大100万円",
			Deadline:    deadline.Format("2006-01-02"),
		},
		AccountantSummary: core.AccountantSummary{
			Overview:     "概要",
			Requirements: "要件",
			Expenses:     "経費",
			Pitfalls:     "注意点",
		},
	}
}

// Run exercises open against the storage contract.
func Run(t *testing.T, open Opener) {
	t.Run("subsidies", func(t *testing.T) { testSubsidies(t, open) })
	t.Run("runs", func(t *testing.T) { testRuns(t, open) })
}

func openRepos(t *testing.T, open Opener) storage.Repositories {
	t.Helper()
	repos := open(t)
	t.Cleanup(func() { _ = repos.Close() })
	return repos
}

func assertSameSubsidy(t *testing.T, want, got *core.Subsidy) {
	t.Helper()
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.Name, got.Name)
	assert.Equal(t, want.SourceURL, got.SourceURL)
	assert.True(t, want.Deadline.Equal(got.Deadline), "deadline %v != %v", want.Deadline, got.Deadline)
	assert.True(t, want.ProcessedDate.Equal(got.ProcessedDate), "processed %v != %v", want.ProcessedDate, got.ProcessedDate)
	assert.Equal(t, want.IndustryTags, got.IndustryTags)
	assert.Equal(t, want.ClientSummary, got.ClientSummary)
	assert.Equal(t, want.AccountantSummary, got.AccountantSummary)
}

func testSubsidies(t *testing.T, open Opener) {
	ctx := context.Background()
	deadline := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	t.Run("add then get", func(t *testing.T) {
		repo := openRepos(t, open).Subsidies()
		s := NewSubsidy("ものづくりDX支援補助金", "https://example.jp/dx", deadline, "製造業", "IT・情報通信")

		require.NoError(t, repo.AddSubsidy(ctx, s))

		got, err := repo.GetSubsidy(ctx, s.ID)
		require.NoError(t, err)
		assertSameSubsidy(t, s, got)
	})

	t.Run("get missing", func(t *testing.T) {
		repo := openRepos(t, open).Subsidies()

		_, err := repo.GetSubsidy(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("exists by source url is exact", func(t *testing.T) {
		repo := openRepos(t, open).Subsidies()
		s := NewSubsidy("補助金", "https://example.jp/a", deadline)
		require.NoError(t, repo.AddSubsidy(ctx, s))

		exists, err := repo.ExistsBySourceURL(ctx, "https://example.jp/a")
		require.NoError(t, err)
		assert.True(t, exists)

		for _, other := range []string{"https://example.jp/a/", "https://EXAMPLE.jp/a", "https://example.jp/b"} {
			exists, err := repo.ExistsBySourceURL(ctx, other)
			require.NoError(t, err)
			assert.False(t, exists, other)
		}
	})

	t.Run("duplicate source url rejected", func(t *testing.T) {
		repo := openRepos(t, open).Subsidies()
		first := NewSubsidy("補助金", "https://example.jp/dup", deadline)
		second := NewSubsidy("補助金 (再掲)", "https://example.jp/dup", deadline)

		require.NoError(t, repo.AddSubsidy(ctx, first))
		err := repo.AddSubsidy(ctx, second)
		assert.ErrorIs(t, err, storage.ErrDuplicateKey)

		n, err := repo.CountSubsidies(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("concurrent adds for one url store one record", func(t *testing.T) {
		repo := openRepos(t, open).Subsidies()

		const writers = 8
		errs := make([]error, writers)
		var wg sync.WaitGroup
		for i := range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = repo.AddSubsidy(ctx, NewSubsidy(fmt.Sprintf("補助金%d", i), "https://example.jp/race", deadline))
			}()
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
				continue
			}
			assert.ErrorIs(t, err, storage.ErrDuplicateKey)
		}
		assert.Equal(t, 1, succeeded)

		n, err := repo.CountSubsidies(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("invalid subsidy rejected", func(t *testing.T) {
		repo := openRepos(t, open).Subsidies()
		s := NewSubsidy("補助金", "https://example.jp/x", deadline)
		s.ID = ""

		err := repo.AddSubsidy(ctx, s)
		assert.ErrorIs(t, err, core.ErrInvalidSubsidy)
	})

	t.Run("list sorted by deadline with tag filter", func(t *testing.T) {
		repo := openRepos(t, open).Subsidies()
		late := NewSubsidy("C 補助金", "https://example.jp/c", deadline, "全業種対象")
		early := NewSubsidy("A 補助金", "https://example.jp/a", deadline.AddDate(0, -1, 0), "IT・情報通信")
		tie := NewSubsidy("B 補助金", "https://example.jp/b", deadline, "IT・情報通信", "製造業")
		for _, s := range []*core.Subsidy{late, early, tie} {
			require.NoError(t, repo.AddSubsidy(ctx, s))
		}

		all, err := repo.ListSubsidies(ctx, storage.SubsidyFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{early.ID, tie.ID, late.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

		it, err := repo.ListSubsidies(ctx, storage.SubsidyFilter{Tag: "IT・情報通信"})
		require.NoError(t, err)
		require.Len(t, it, 2)
		assert.Equal(t, early.ID, it[0].ID)
		assert.Equal(t, tie.ID, it[1].ID)

		none, err := repo.ListSubsidies(ctx, storage.SubsidyFilter{Tag: "IT"})
		require.NoError(t, err)
		assert.Empty(t, none)

		limited, err := repo.ListSubsidies(ctx, storage.SubsidyFilter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, limited, 1)
		assert.Equal(t, early.ID, limited[0].ID)
	})

	t.Run("list empty store", func(t *testing.T) {
		repo := openRepos(t, open).Subsidies()

		all, err := repo.ListSubsidies(ctx, storage.SubsidyFilter{})
		require.NoError(t, err)
		assert.Empty(t, all)

		n, err := repo.CountSubsidies(ctx)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("cancelled context", func(t *testing.T) {
		repo := openRepos(t, open).Subsidies()
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.ExistsBySourceURL(cctx, "https://example.jp/a")
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func testRuns(t *testing.T, open Opener) {
	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Microsecond)

	t.Run("save get update", func(t *testing.T) {
		repo := openRepos(t, open).Runs()
		run := &core.Run{
			ID:          core.NewID(),
			Status:      core.RunStatusPending,
			SubmittedAt: base,
			Created:     []string{},
			Skipped:     []string{},
			Failures:    []core.CandidateFailure{},
		}
		require.NoError(t, repo.SaveRun(ctx, run))

		got, err := repo.GetRun(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, core.RunStatusPending, got.Status)
		assert.True(t, got.StartedAt.IsZero())

		run.Status = core.RunStatusSucceeded
		run.StartedAt = base.Add(time.Second)
		run.FinishedAt = base.Add(2 * time.Second)
		run.Created = []string{"s1", "s2"}
		run.Skipped = []string{"https://example.jp/a"}
		run.Failures = []core.CandidateFailure{{Name: "n", SourceURL: "u", Error: "boom"}}
		require.NoError(t, repo.SaveRun(ctx, run))

		got, err = repo.GetRun(ctx, run.ID)
		require.NoError(t, err)
		assert.Equal(t, core.RunStatusSucceeded, got.Status)
		assert.True(t, run.FinishedAt.Equal(got.FinishedAt))
		assert.Equal(t, run.Created, got.Created)
		assert.Equal(t, run.Skipped, got.Skipped)
		assert.Equal(t, run.Failures, got.Failures)
	})

	t.Run("get missing", func(t *testing.T) {
		repo := openRepos(t, open).Runs()

		_, err := repo.GetRun(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("list newest first", func(t *testing.T) {
		repo := openRepos(t, open).Runs()
		var ids []string
		for i := range 3 {
			run := &core.Run{
				ID:          core.NewID(),
				Status:      core.RunStatusSucceeded,
				SubmittedAt: base.Add(time.Duration(i) * time.Minute),
			}
			ids = append(ids, run.ID)
			require.NoError(t, repo.SaveRun(ctx, run))
		}

		runs, err := repo.ListRuns(ctx, 0)
		require.NoError(t, err)
		require.Len(t, runs, 3)
		assert.Equal(t, ids[2], runs[0].ID)
		assert.Equal(t, ids[0], runs[2].ID)

		runs, err = repo.ListRuns(ctx, 2)
		require.NoError(t, err)
		assert.Len(t, runs, 2)
	})
}
