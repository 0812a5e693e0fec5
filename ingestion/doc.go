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

// Package ingestion implements the subsidy pipeline.
//
// For every candidate from a source.Source, in order, the pipeline:
//
//  1. Checks whether the candidate's source URL is already stored, and skips it if so
//  2. Issues the client summary, accountant summary and tagging calls concurrently
//     and waits for all three; any failure fails the candidate
//  3. Assembles a core.Subsidy with a fresh ID, the processing time and a deadline
//     parsed from the client summary (falling back to the processing time)
//  4. Writes it with a single AddSubsidy call
//
// A write rejected with storage.ErrDuplicateKey counts as a skip, which covers
// another writer storing the same URL between steps 1 and 4.
//
// Failed candidates are recorded and the run moves on; WithFailFast stops at
// the first failure instead. Cancelling the context stops the run between
// candidates or mid fan-out.
//
// # Usage
//
//	pipeline, err := ingestion.NewPipeline(repos.Subsidies(), provider)
//	if err != nil {
//	    return err
//	}
//	result, err := pipeline.Run(ctx, source.NewStatic(), ingestion.NewProgressMonitor(os.Stderr))
package ingestion
