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

// Package source supplies the candidate subsidy listings fed to the pipeline.
//
// Two sources ship with subnav: a fixed list of mock Kanagawa listings and a
// YAML file of listings. A search or crawl integration would implement Source.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/poiesic/subnav/core"
	"gopkg.in/yaml.v3"
)

// ErrNoCandidates indicates a file source held no listings.
var ErrNoCandidates = errors.New("source: no candidates")

// Source yields candidate listings in a stable order.
type Source interface {
	Candidates(ctx context.Context) ([]core.Candidate, error)
}

// Static is a Source over a fixed in-memory list.
type Static struct {
	candidates []core.Candidate
}

var _ Source = (*Static)(nil)

// NewStatic returns the built-in mock listings.
func NewStatic() *Static {
	return NewStaticList(mockCandidates...)
}

// NewStaticList returns a Static source over the given candidates.
func NewStaticList(candidates ...core.Candidate) *Static {
	return &Static{candidates: candidates}
}

// Candidates returns a copy of the list.
func (s *Static) Candidates(ctx context.Context) ([]core.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]core.Candidate(nil), s.candidates...), nil
}

// File is a Source reading a YAML document on every call, so edits take
// effect on the next run. The document is either a list of candidates or a
// mapping with a "candidates" key.
type File struct {
	path string
}

var _ Source = (*File)(nil)

// NewFile returns a File source for path. The file is not read until Candidates is called.
func NewFile(path string) *File {
	return &File{path: path}
}

type fileDocument struct {
	Candidates []core.Candidate `yaml:"candidates"`
}

// Candidates reads and validates the file.
func (f *File) Candidates(ctx context.Context) ([]core.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("source: reading %s: %w", f.path, err)
	}

	var candidates []core.Candidate
	if err := yaml.Unmarshal(data, &candidates); err != nil {
		var doc fileDocument
		if derr := yaml.Unmarshal(data, &doc); derr != nil {
			return nil, fmt.Errorf("source: parsing %s: %w", f.path, errors.Join(err, derr))
		}
		candidates = doc.Candidates
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoCandidates, f.path)
	}

	var errs []error
	for i := range candidates {
		if err := core.ValidateCandidate(&candidates[i]); err != nil {
			errs = append(errs, fmt.Errorf("entry %d: %w", i, err))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("source: %s: %w", f.path, errors.Join(errs...))
	}
	return candidates, nil
}
