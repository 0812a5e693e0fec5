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

package storage

import (
	"context"

	"github.com/poiesic/subnav/core"
)

// SubsidyFilter narrows ListSubsidies. The zero value matches everything.
type SubsidyFilter struct {
	// Tag, if set, keeps only subsidies carrying this exact industry tag.
	Tag string

	// Limit caps the number of results. Zero means no limit.
	Limit int
}

// SubsidyRepository provides operations for managing subsidy records.
// Implementations must be thread-safe and support concurrent access.
type SubsidyRepository interface {
	// ExistsBySourceURL reports whether a subsidy with exactly this source URL
	// is stored. No URL normalization is applied.
	ExistsBySourceURL(ctx context.Context, url string) (bool, error)

	// AddSubsidy writes a new subsidy keyed by its ID.
	// The URL uniqueness check and the write happen in one transaction;
	// returns ErrDuplicateKey if the source URL or ID is already stored.
	AddSubsidy(ctx context.Context, subsidy *core.Subsidy) error

	// GetSubsidy retrieves a subsidy by ID.
	// Returns ErrNotFound if the subsidy doesn't exist.
	GetSubsidy(ctx context.Context, id string) (*core.Subsidy, error)

	// ListSubsidies returns stored subsidies ordered by deadline ascending,
	// ties broken by name.
	ListSubsidies(ctx context.Context, filter SubsidyFilter) ([]*core.Subsidy, error)

	// CountSubsidies returns the number of stored subsidies.
	CountSubsidies(ctx context.Context) (int, error)
}

// RunRepository persists pipeline run status.
type RunRepository interface {
	// SaveRun inserts or replaces a run.
	SaveRun(ctx context.Context, run *core.Run) error

	// GetRun retrieves a run by ID.
	// Returns ErrNotFound if the run doesn't exist.
	GetRun(ctx context.Context, id string) (*core.Run, error)

	// ListRuns returns up to limit runs, most recently submitted first.
	// A limit of zero or less returns every run.
	ListRuns(ctx context.Context, limit int) ([]*core.Run, error)
}

// Repositories bundles the repositories of one store with its lifecycle.
type Repositories interface {
	Subsidies() SubsidyRepository
	Runs() RunRepository

	// Close closes the storage backend and releases resources.
	Close() error
}
