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

import "errors"

// Sentinel errors shared by every store. Implementations wrap them with
// context, so callers compare with errors.Is.
var (
	// ErrNotFound is returned when no subsidy or run has the requested ID.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when a subsidy's ID or source URL is
	// already stored. The pipeline counts it as a skip.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrTransactionFailed is returned when a write could not commit, for
	// instance after repeated conflicts with concurrent writers.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrStorageClosed is returned by every operation after Close.
	ErrStorageClosed = errors.New("storage is closed")

	// ErrSerializationFailed is returned when a stored value cannot be
	// encoded or decoded.
	ErrSerializationFailed = errors.New("serialization failed")
)
