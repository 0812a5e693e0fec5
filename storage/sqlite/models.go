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

package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/poiesic/subnav/core"
	"github.com/poiesic/subnav/storage"
)

// subsidyRow is the gorm model for the subsidies table. List columns are
// stored as JSON text so the tag filter can use json_each.
type subsidyRow struct {
	ID            string    `gorm:"primaryKey"`
	Name          string    `gorm:"not null"`
	SourceURL     string    `gorm:"uniqueIndex;not null"`
	Deadline      time.Time `gorm:"index"`
	ProcessedDate time.Time
	IndustryTags  string `gorm:"type:text"`

	ClientCatchphrase string
	ClientMerit       string
	ClientTarget      string
	ClientAmount      string
	ClientDeadline    string

	AccountantOverview     string
	AccountantRequirements string
	AccountantExpenses     string
	AccountantPitfalls     string
}

func (subsidyRow) TableName() string { return "subsidies" }

type runRow struct {
	ID          string    `gorm:"primaryKey"`
	Status      string    `gorm:"not null"`
	SubmittedAt time.Time `gorm:"index"`
	StartedAt   time.Time
	FinishedAt  time.Time
	Created     string `gorm:"type:text"`
	Skipped     string `gorm:"type:text"`
	Failures    string `gorm:"type:text"`
	Error       string
}

func (runRow) TableName() string { return "runs" }

func encodeJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return string(b), nil
}

func decodeJSON(s string, v any) error {
	if s == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(s), v); err != nil {
		return fmt.Errorf("%w: %w", storage.ErrSerializationFailed, err)
	}
	return nil
}

func toSubsidyRow(s *core.Subsidy) (*subsidyRow, error) {
	tags, err := encodeJSON(s.IndustryTags)
	if err != nil {
		return nil, err
	}
	return &subsidyRow{
		ID:                     s.ID,
		Name:                   s.Name,
		SourceURL:              s.SourceURL,
		Deadline:               s.Deadline.UTC(),
		ProcessedDate:          s.ProcessedDate.UTC(),
		IndustryTags:           tags,
		ClientCatchphrase:      s.ClientSummary.Catchphrase,
		ClientMerit:            s.ClientSummary.Merit,
		ClientTarget:           s.ClientSummary.Target,
		ClientAmount:           s.ClientSummary.Amount,
		ClientDeadline:         s.ClientSummary.Deadline,
		AccountantOverview:     s.AccountantSummary.Overview,
		AccountantRequirements: s.AccountantSummary.Requirements,
		AccountantExpenses:     s.AccountantSummary.Expenses,
		AccountantPitfalls:     s.AccountantSummary.Pitfalls,
	}, nil
}

func (r *subsidyRow) toSubsidy() (*core.Subsidy, error) {
	tags := []string{}
	if err := decodeJSON(r.IndustryTags, &tags); err != nil {
		return nil, err
	}
	return &core.Subsidy{
		ID:            r.ID,
		Name:          r.Name,
		SourceURL:     r.SourceURL,
		Deadline:      r.Deadline.UTC(),
		ProcessedDate: r.ProcessedDate.UTC(),
		IndustryTags:  tags,
		ClientSummary: core.ClientSummary{
			Catchphrase: r.ClientCatchphrase,
			Merit:       r.ClientMerit,
			Target:      r.ClientTarget,
			Amount:      r.ClientAmount,
			Deadline:    r.ClientDeadline,
		},
		AccountantSummary: core.AccountantSummary{
			Overview:     r.AccountantOverview,
			Requirements: r.AccountantRequirements,
			Expenses:     r.AccountantExpenses,
			Pitfalls:     r.AccountantPitfalls,
		},
	}, nil
}

func toRunRow(run *core.Run) (*runRow, error) {
	row := &runRow{
		ID:          run.ID,
		Status:      string(run.Status),
		SubmittedAt: run.SubmittedAt.UTC(),
		StartedAt:   run.StartedAt.UTC(),
		FinishedAt:  run.FinishedAt.UTC(),
		Error:       run.Error,
	}
	var err error
	if row.Created, err = encodeJSON(nonNil(run.Created)); err != nil {
		return nil, err
	}
	if row.Skipped, err = encodeJSON(nonNil(run.Skipped)); err != nil {
		return nil, err
	}
	failures := run.Failures
	if failures == nil {
		failures = []core.CandidateFailure{}
	}
	if row.Failures, err = encodeJSON(failures); err != nil {
		return nil, err
	}
	return row, nil
}

func (r *runRow) toRun() (*core.Run, error) {
	run := &core.Run{
		ID:          r.ID,
		Status:      core.RunStatus(r.Status),
		SubmittedAt: r.SubmittedAt.UTC(),
		StartedAt:   zeroUTC(r.StartedAt),
		FinishedAt:  zeroUTC(r.FinishedAt),
		Created:     []string{},
		Skipped:     []string{},
		Failures:    []core.CandidateFailure{},
		Error:       r.Error,
	}
	if err := decodeJSON(r.Created, &run.Created); err != nil {
		return nil, err
	}
	if err := decodeJSON(r.Skipped, &run.Skipped); err != nil {
		return nil, err
	}
	if err := decodeJSON(r.Failures, &run.Failures); err != nil {
		return nil, err
	}
	return run, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// zeroUTC keeps an unset time as the zero value after a round trip.
func zeroUTC(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	return t.UTC()
}
