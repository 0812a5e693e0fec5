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

import (
	"context"
	"fmt"

	"github.com/poiesic/subnav/core"
	"golang.org/x/sync/errgroup"
)

// summaries holds the three fan-out results for one candidate.
type summaries struct {
	client     core.ClientSummary
	accountant core.AccountantSummary
	tags       []string
}

// summarize issues the client, accountant and tagging calls together and
// waits for all three. The first failure cancels the other two and is returned.
func (p *Pipeline) summarize(ctx context.Context, c core.Candidate) (summaries, error) {
	var sum summaries
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		cs, err := p.client.SummarizeForClient(gCtx, c.URL, c.Content)
		if err != nil {
			return fmt.Errorf("%w: client summary: %w", ErrSummarizationFailed, err)
		}
		sum.client = cs
		return nil
	})

	g.Go(func() error {
		as, err := p.accountant.SummarizeForAccountant(gCtx, c.URL, c.Content)
		if err != nil {
			return fmt.Errorf("%w: accountant summary: %w", ErrSummarizationFailed, err)
		}
		sum.accountant = as
		return nil
	})

	g.Go(func() error {
		tags, err := p.tagger.TagIndustries(gCtx, c.Name, c.Content)
		if err != nil {
			return fmt.Errorf("%w: industry tags: %w", ErrSummarizationFailed, err)
		}
		if tags == nil {
			tags = []string{}
		}
		sum.tags = tags
		return nil
	})

	if err := g.Wait(); err != nil {
		return summaries{}, err
	}
	return sum, nil
}
