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

import (
	"fmt"
	"strings"
	"time"
)

// deadlineLayouts are tried in order by ParseDeadline.
var deadlineLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"2006/1/2",
	"2006年1月2日",
	"2006年01月02日",
}

// ValidateCandidate validates a Candidate before it enters the pipeline.
//
// Validation rules:
//   - Name must not be empty
//   - URL must not be empty
//
// Content may be empty; the summarizers decide what to make of it.
func ValidateCandidate(c *Candidate) error {
	if c == nil {
		return fmt.Errorf("%w: candidate is nil", ErrInvalidCandidate)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, ErrEmptyName)
	}
	if c.URL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidCandidate, ErrEmptySourceURL)
	}
	return nil
}

// ValidateSubsidy validates an assembled Subsidy before it is written.
//
// Validation rules:
//   - ID, Name and SourceURL must not be empty
//   - ProcessedDate must be set
//   - IndustryTags must be assigned (an empty, non-nil slice is valid)
//
// Summary fields are NOT validated: empty strings are legitimate model output.
func ValidateSubsidy(s *Subsidy) error {
	if s == nil {
		return fmt.Errorf("%w: subsidy is nil", ErrInvalidSubsidy)
	}
	if s.ID == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSubsidy, ErrEmptyID)
	}
	if s.Name == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSubsidy, ErrEmptyName)
	}
	if s.SourceURL == "" {
		return fmt.Errorf("%w: %w", ErrInvalidSubsidy, ErrEmptySourceURL)
	}
	if s.ProcessedDate.IsZero() {
		return fmt.Errorf("%w: %w", ErrInvalidSubsidy, ErrMissingProcessedDate)
	}
	if s.IndustryTags == nil {
		return fmt.Errorf("%w: %w", ErrInvalidSubsidy, ErrMissingTags)
	}
	return nil
}

// ParseDeadline interprets a model-produced deadline string.
// Empty or unparseable input yields fallback. Results are in UTC.
func ParseDeadline(text string, fallback time.Time) time.Time {
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback.UTC()
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t.UTC()
		}
	}
	return fallback.UTC()
}
