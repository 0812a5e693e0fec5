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
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/subnav/core"
	"github.com/poiesic/subnav/storage"
)

const maxConflictRetries = 3

// SubsidyRepository implements storage.SubsidyRepository using BadgerDB.
type SubsidyRepository struct {
	backend *Backend
}

var _ storage.SubsidyRepository = (*SubsidyRepository)(nil)

// NewSubsidyRepository creates a new SubsidyRepository.
func NewSubsidyRepository(backend *Backend) *SubsidyRepository {
	return &SubsidyRepository{backend: backend}
}

// ExistsBySourceURL reports whether a subsidy with this exact source URL is stored.
func (r *SubsidyRepository) ExistsBySourceURL(ctx context.Context, url string) (bool, error) {
	var exists bool
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		s, err := r.lookupSourceURL(tx, url)
		if err != nil {
			return err
		}
		exists = s != nil && s.SourceURL == url
		return nil
	}, false)
	return exists, err
}

// AddSubsidy writes the subsidy and its source URL index in one transaction.
// A transaction conflict with a concurrent writer is retried so the caller
// sees ErrDuplicateKey rather than badger.ErrConflict.
func (r *SubsidyRepository) AddSubsidy(ctx context.Context, subsidy *core.Subsidy) error {
	if err := core.ValidateSubsidy(subsidy); err != nil {
		return err
	}

	var err error
	for range maxConflictRetries {
		err = r.addSubsidy(ctx, subsidy)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", storage.ErrTransactionFailed, err)
}

func (r *SubsidyRepository) addSubsidy(ctx context.Context, subsidy *core.Subsidy) error {
	return r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		existing, err := r.lookupSourceURL(tx, subsidy.SourceURL)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: source url %s held by %s", storage.ErrDuplicateKey, subsidy.SourceURL, existing.ID)
		}

		key := makeSubsidyKey(subsidy.ID)
		if _, err := tx.Get(key); err == nil {
			return fmt.Errorf("%w: subsidy id %s", storage.ErrDuplicateKey, subsidy.ID)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}

		if err := tx.Set(key, storage.MarshalSubsidy(subsidy)); err != nil {
			return err
		}
		if err := tx.Set(makeSourceURLKey(subsidy.SourceURL), storage.MarshalID(subsidy.ID)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetSubsidy retrieves a subsidy by ID.
func (r *SubsidyRepository) GetSubsidy(ctx context.Context, id string) (*core.Subsidy, error) {
	var subsidy *core.Subsidy
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		var err error
		subsidy, err = readSubsidy(tx, id)
		return err
	}, false)
	return subsidy, err
}

// ListSubsidies returns stored subsidies ordered by deadline, then name.
func (r *SubsidyRepository) ListSubsidies(ctx context.Context, filter storage.SubsidyFilter) ([]*core.Subsidy, error) {
	var results []*core.Subsidy
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		return scanPrefix(tx, []byte(subsidyPrefix), func(val []byte) error {
			s, err := storage.UnmarshalSubsidy(val)
			if err != nil {
				return err
			}
			if filter.Tag == "" || s.HasTag(filter.Tag) {
				results = append(results, s)
			}
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.Subsidy) int {
		if c := a.Deadline.Compare(b.Deadline); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	if filter.Limit > 0 && len(results) > filter.Limit {
		results = results[:filter.Limit]
	}
	return results, nil
}

// CountSubsidies returns the number of stored subsidies.
func (r *SubsidyRepository) CountSubsidies(ctx context.Context) (int, error) {
	count := 0
	err := r.backend.WithTx(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(subsidyPrefix)
		opts.PrefetchValues = false
		iter := tx.NewIterator(opts)
		defer iter.Close()
		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// lookupSourceURL follows the source URL index. It returns nil if the
// index has no entry. The caller compares SourceURL to rule out hash collisions.
func (r *SubsidyRepository) lookupSourceURL(tx *badger.Txn, url string) (*core.Subsidy, error) {
	val, err := getValue(tx, makeSourceURLKey(url))
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	id, err := storage.UnmarshalID(val)
	if err != nil {
		return nil, err
	}
	s, err := readSubsidy(tx, id)
	if errors.Is(err, storage.ErrNotFound) {
		r.backend.logger.Warn("dangling source url index", "url", url, "id", id)
		return nil, nil
	}
	return s, err
}

func readSubsidy(tx *badger.Txn, id string) (*core.Subsidy, error) {
	val, err := getValue(tx, makeSubsidyKey(id))
	if err != nil {
		return nil, err
	}
	return storage.UnmarshalSubsidy(val)
}
