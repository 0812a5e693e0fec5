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

// Package storage provides the storage abstraction layer for subnav.
//
// This package defines repository interfaces that decouple the document store
// from the pipeline and the web layer. Two implementations exist:
//
//   - storage/badger: embedded BadgerDB, the default
//   - storage/sqlite: gorm over SQLite, for deployments that want SQL access
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.Repositories interface:
//
//	repos, err := badger.NewRepositories("/path/to/db")
//
// Internal constructors (newBackend, newSubsidyRepository, ...) may return
// concrete types since they're only used within the implementation package.
//
// # Source URL Uniqueness
//
// A subsidy's source URL is its natural key. AddSubsidy performs the URL
// lookup and the write in one transaction and fails with ErrDuplicateKey when
// the URL is taken, so concurrent writers cannot create two records for one URL.
//
// # Serialization
//
// Badger values are encoded with mus-format primitives (see MarshalSubsidy
// and MarshalRun). The SQLite store maps records onto gorm models instead.
//
// # Usage
//
// Use in tests with in-memory storage:
//
//	repos, err := badger.NewMemoryRepositories()
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer repos.Close()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage
