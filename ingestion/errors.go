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

import "errors"

var (
	// ErrSubsidyRepositoryRequired is returned when a subsidy repository is not provided.
	ErrSubsidyRepositoryRequired = errors.New("subsidy repository required")

	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrSourceRequired is returned when Run is called without a source.
	ErrSourceRequired = errors.New("source required")

	// ErrInvalidMaxAttempts is returned when max attempts is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrCandidateFailed wraps the error that stopped one candidate.
	ErrCandidateFailed = errors.New("candidate failed")

	// ErrSummarizationFailed marks a failure inside the fan-out step.
	ErrSummarizationFailed = errors.New("summarization failed")
)
