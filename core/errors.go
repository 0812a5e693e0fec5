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

package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidCandidate indicates a Candidate failed validation.
	ErrInvalidCandidate = errors.New("invalid candidate")

	// ErrInvalidSubsidy indicates a Subsidy failed validation.
	ErrInvalidSubsidy = errors.New("invalid subsidy")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptySourceURL indicates the source URL is empty.
	ErrEmptySourceURL = errors.New("source url cannot be empty")

	// ErrEmptyID indicates a record was not assigned an identifier.
	ErrEmptyID = errors.New("id cannot be empty")

	// ErrMissingProcessedDate indicates the processed date was never set.
	ErrMissingProcessedDate = errors.New("processed date must be set")

	// ErrMissingTags indicates the industry tags were never assigned.
	ErrMissingTags = errors.New("industry tags must be assigned")
)
