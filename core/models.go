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

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// Key is a fixed-width hash used to index records by a natural key
// such as a source URL.
type Key uint64

// KeyFromContent derives a deterministic Key from text using BLAKE2b hashing.
// Identical content always produces the same Key.
func KeyFromContent(text string) Key {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return Key(binary.LittleEndian.Uint64(sum))
}

// NewID returns a fresh random identifier for a subsidy or run.
func NewID() string {
	return uuid.NewString()
}

// Candidate is a subsidy listing as found by a record source.
// It is never persisted; the pipeline turns new candidates into Subsidy records.
type Candidate struct {
	Name    string `json:"name" yaml:"name"`
	URL     string `json:"url" yaml:"url"`
	Snippet string `json:"snippet" yaml:"snippet"`
	Content string `json:"content" yaml:"content"`
}

// ClientSummary is the business-owner facing digest of a subsidy.
type ClientSummary struct {
	Catchphrase string `json:"catchphrase"`
	Merit       string `json:"merit"`
	Target      string `json:"target"`
	Amount      string `json:"amount"`
	Deadline    string `json:"deadline"` // free text as produced by the model, ideally YYYY-MM-DD
}

// AccountantSummary is the professional-facing digest of a subsidy.
type AccountantSummary struct {
	Overview     string `json:"overview"`
	Requirements string `json:"requirements"`
	Expenses     string `json:"expenses"`
	Pitfalls     string `json:"pitfalls"`
}

// Subsidy is one government subsidy program with its generated summaries.
type Subsidy struct {
	ID                string            `json:"id"`
	Name              string            `json:"name"`
	SourceURL         string            `json:"source_url"`
	Deadline          time.Time         `json:"deadline"`
	ProcessedDate     time.Time         `json:"processed_date"`
	IndustryTags      []string          `json:"industry_tags"`
	ClientSummary     ClientSummary     `json:"summary_for_client"`
	AccountantSummary AccountantSummary `json:"summary_for_accountant"`
}

// HasTag reports whether the subsidy carries the given industry tag.
func (s *Subsidy) HasTag(tag string) bool {
	for _, t := range s.IndustryTags {
		if t == tag {
			return true
		}
	}
	return false
}

// RunStatus tracks a pipeline run through its lifecycle.
type RunStatus string

const (
	RunStatusPending   RunStatus = "pending"
	RunStatusRunning   RunStatus = "running"
	RunStatusSucceeded RunStatus = "succeeded"
	RunStatusFailed    RunStatus = "failed"
)

// Terminal reports whether no further transitions are expected.
func (s RunStatus) Terminal() bool {
	return s == RunStatusSucceeded || s == RunStatusFailed
}

// CandidateFailure records why a single candidate was not persisted.
type CandidateFailure struct {
	Name      string `json:"name"`
	SourceURL string `json:"source_url"`
	Error     string `json:"error"`
}

// Run is one submitted execution of the pipeline.
type Run struct {
	ID          string             `json:"id"`
	Status      RunStatus          `json:"status"`
	SubmittedAt time.Time          `json:"submitted_at"`
	StartedAt   time.Time          `json:"started_at,omitzero"`
	FinishedAt  time.Time          `json:"finished_at,omitzero"`
	Created     []string           `json:"created"`  // IDs of subsidies written by the run
	Skipped     []string           `json:"skipped"`  // source URLs already present
	Failures    []CandidateFailure `json:"failures"` // candidates that failed in isolation
	Error       string             `json:"error,omitempty"`
}
