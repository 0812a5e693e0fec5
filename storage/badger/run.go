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

package badger

import (
	"context"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/subnav/core"
	"github.com/poiesic/subnav/storage"
)

// RunRepository implements storage.RunRepository using BadgerDB.
type RunRepository struct {
	backend *Backend
}

var _ storage.RunRepository = (*RunRepository)(nil)

// NewRunRepository creates a new RunRepository.
func NewRunRepository(backend *Backend) *RunRepository {
	return &RunRepository{backend: backend}
}

// SaveRun inserts or replaces a run.
func (r *RunRepository) SaveRun(ctx context.Context, run *core.Run) error {
	if run.ID == "" {
		return core.ErrEmptyID
	}
	return r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		if err := tx.Set(makeRunKey(run.ID), storage.MarshalRun(run)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetRun retrieves a run by ID.
func (r *RunRepository) GetRun(ctx context.Context, id string) (*core.Run, error) {
	var run *core.Run
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		val, err := getValue(tx, makeRunKey(id))
		if err != nil {
			return err
		}
		run, err = storage.UnmarshalRun(val)
		return err
	}, false)
	return run, err
}

// ListRuns returns up to limit runs, most recently submitted first.
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*core.Run, error) {
	var runs []*core.Run
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		return scanPrefix(tx, []byte(runPrefix), func(val []byte) error {
			run, err := storage.UnmarshalRun(val)
			if err != nil {
				return err
			}
			runs = append(runs, run)
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(runs, func(a, b *core.Run) int {
		return b.SubmittedAt.Compare(a.SubmittedAt)
	})
	if limit > 0 && len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}
