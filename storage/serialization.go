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

import (
	"fmt"

	"github.com/mus-format/mus-go/ord"
	"github.com/poiesic/subnav/core"
)

// MarshalSubsidy serializes a Subsidy to bytes.
func MarshalSubsidy(s *core.Subsidy) []byte {
	buf := make([]byte, core.SubsidyMUS.Size(*s))
	core.SubsidyMUS.Marshal(*s, buf)
	return buf
}

// UnmarshalSubsidy deserializes a Subsidy from bytes.
// Timestamps come back in UTC.
func UnmarshalSubsidy(data []byte) (*core.Subsidy, error) {
	s, _, err := core.SubsidyMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	s.Deadline = s.Deadline.UTC()
	s.ProcessedDate = s.ProcessedDate.UTC()
	return &s, nil
}

// MarshalRun serializes a Run to bytes.
func MarshalRun(run *core.Run) []byte {
	buf := make([]byte, core.RunMUS.Size(*run))
	core.RunMUS.Marshal(*run, buf)
	return buf
}

// UnmarshalRun deserializes a Run from bytes.
func UnmarshalRun(data []byte) (*core.Run, error) {
	run, _, err := core.RunMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	run.SubmittedAt = run.SubmittedAt.UTC()
	run.StartedAt = run.StartedAt.UTC()
	run.FinishedAt = run.FinishedAt.UTC()
	return &run, nil
}

// MarshalID serializes a record ID, as stored in secondary indexes.
func MarshalID(id string) []byte {
	buf := make([]byte, ord.String.Size(id))
	ord.String.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes a record ID.
func UnmarshalID(data []byte) (string, error) {
	id, _, err := ord.String.Unmarshal(data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return id, nil
}
