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

import "github.com/poiesic/subnav/storage"

// Repositories bundles the BadgerDB-backed repositories sharing one Backend.
type Repositories struct {
	backend   *Backend
	subsidies *SubsidyRepository
	runs      *RunRepository
}

var _ storage.Repositories = (*Repositories)(nil)

// NewRepositories opens (creating if needed) an on-disk store at path.
func NewRepositories(path string) (storage.Repositories, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return newRepositories(backend), nil
}

func newRepositories(backend *Backend) *Repositories {
	return &Repositories{
		backend:   backend,
		subsidies: NewSubsidyRepository(backend),
		runs:      NewRunRepository(backend),
	}
}

// Subsidies returns the subsidy repository.
func (r *Repositories) Subsidies() storage.SubsidyRepository {
	return r.subsidies
}

// Runs returns the run repository.
func (r *Repositories) Runs() storage.RunRepository {
	return r.runs
}

// Close closes the underlying backend.
func (r *Repositories) Close() error {
	return r.backend.Close()
}
