package core

import (
	"errors"
	"testing"
	"time"
)

func TestValidateCandidate(t *testing.T) {
	tests := []struct {
		name      string
		candidate *Candidate
		wantErr   error
	}{
		{
			name: "valid candidate",
			candidate: &Candidate{
				Name:    "ものづくり補助金",
				URL:     "https://example.jp/a",
				Content: "本文",
			},
		},
		{
			name: "empty content is allowed",
			candidate: &Candidate{
				Name: "補助金",
				URL:  "https://example.jp/b",
			},
		},
		{
			name:      "nil candidate",
			candidate: nil,
			wantErr:   ErrInvalidCandidate,
		},
		{
			name:      "missing name",
			candidate: &Candidate{URL: "https://example.jp/c"},
			wantErr:   ErrEmptyName,
		},
		{
			name:      "missing url",
			candidate: &Candidate{Name: "補助金"},
			wantErr:   ErrEmptySourceURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCandidate(tt.candidate)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCandidate() error = %v, want nil", err)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCandidate() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidCandidate) {
				t.Errorf("ValidateCandidate() error = %v, want wrapped ErrInvalidCandidate", err)
			}
		})
	}
}

func TestValidateSubsidy(t *testing.T) {
	now := time.Now().UTC()
	valid := func() *Subsidy {
		return &Subsidy{
			ID:            "id-1",
			Name:          "IT導入サポート助成金",
			SourceURL:     "https://example.jp/it",
			ProcessedDate: now,
			Deadline:      now,
			IndustryTags:  []string{"IT"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Subsidy)
		nilRec  bool
		wantErr error
	}{
		{name: "valid subsidy", mutate: func(*Subsidy) {}},
		{name: "empty tag list is allowed", mutate: func(s *Subsidy) { s.IndustryTags = []string{} }},
		{name: "empty summaries are allowed", mutate: func(s *Subsidy) { s.ClientSummary = ClientSummary{} }},
		{name: "nil subsidy", nilRec: true, wantErr: ErrInvalidSubsidy},
		{name: "missing id", mutate: func(s *Subsidy) { s.ID = "" }, wantErr: ErrEmptyID},
		{name: "missing name", mutate: func(s *Subsidy) { s.Name = "" }, wantErr: ErrEmptyName},
		{name: "missing url", mutate: func(s *Subsidy) { s.SourceURL = "" }, wantErr: ErrEmptySourceURL},
		{name: "zero processed date", mutate: func(s *Subsidy) { s.ProcessedDate = time.Time{} }, wantErr: ErrMissingProcessedDate},
		{name: "nil tags", mutate: func(s *Subsidy) { s.IndustryTags = nil }, wantErr: ErrMissingTags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s *Subsidy
			if !tt.nilRec {
				s = valid()
				tt.mutate(s)
			}
			err := ValidateSubsidy(s)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateSubsidy() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateSubsidy() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseDeadline(t *testing.T) {
	fallback := time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"iso date", "2025-12-31", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2025-11-30T00:00:00Z", time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)},
		{"slash date", "2025/11/30", time.Date(2025, 11, 30, 0, 0, 0, 0, time.UTC)},
		{"japanese date", "2025年12月31日", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"surrounding whitespace", "  2025-12-31\n", time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"empty falls back", "", fallback},
		{"free text falls back", "随時受付", fallback},
		{"partial date falls back", "2025年12月", fallback},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDeadline(tt.input, fallback)
			if !got.Equal(tt.want) {
				t.Errorf("ParseDeadline(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
