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

package openai

import (
	"context"
	"fmt"

	"github.com/poiesic/subnav/ai"
	"github.com/poiesic/subnav/core"
)

// clientResponse mirrors the JSON object requested by clientSystemPrompt.
// Pointer fields distinguish an absent key from an empty value.
type clientResponse struct {
	Catchphrase *string `json:"catchphrase"`
	Merit       *string `json:"merit"`
	Target      *string `json:"target"`
	Amount      *string `json:"amount"`
	Deadline    *string `json:"deadline"`
}

type accountantResponse struct {
	Overview     *string `json:"overview"`
	Requirements *string `json:"requirements"`
	Expenses     *string `json:"expenses"`
	Pitfalls     *string `json:"pitfalls"`
}

type taggingResponse struct {
	IndustryTags *[]string `json:"industry_tags"`
}

// ClientSummarizer implements ai.ClientSummarizer.
type ClientSummarizer struct {
	chat        *chat
	temperature float64
}

// AccountantSummarizer implements ai.AccountantSummarizer.
type AccountantSummarizer struct {
	chat        *chat
	temperature float64
}

// IndustryTagger implements ai.IndustryTagger.
type IndustryTagger struct {
	chat        *chat
	temperature float64
}

var (
	_ ai.ClientSummarizer     = (*ClientSummarizer)(nil)
	_ ai.AccountantSummarizer = (*AccountantSummarizer)(nil)
	_ ai.IndustryTagger       = (*IndustryTagger)(nil)
)

// SummarizeForClient asks the model for the five client-facing fields.
func (s *ClientSummarizer) SummarizeForClient(ctx context.Context, url, content string) (core.ClientSummary, error) {
	var r clientResponse
	human := buildPageMessage(url, prepareContent(content, ai.ClientContentLimit))
	if err := s.chat.completeJSON(ctx, clientSystemPrompt, human, s.temperature, &r); err != nil {
		return core.ClientSummary{}, err
	}
	if err := requireFields(map[string]*string{
		"catchphrase": r.Catchphrase,
		"merit":       r.Merit,
		"target":      r.Target,
		"amount":      r.Amount,
		"deadline":    r.Deadline,
	}); err != nil {
		return core.ClientSummary{}, err
	}
	return core.ClientSummary{
		Catchphrase: *r.Catchphrase,
		Merit:       *r.Merit,
		Target:      *r.Target,
		Amount:      *r.Amount,
		Deadline:    *r.Deadline,
	}, nil
}

// SummarizeForAccountant asks the model for the four professional-facing fields.
func (s *AccountantSummarizer) SummarizeForAccountant(ctx context.Context, url, content string) (core.AccountantSummary, error) {
	var r accountantResponse
	human := buildPageMessage(url, prepareContent(content, ai.AccountantContentLimit))
	if err := s.chat.completeJSON(ctx, accountantSystemPrompt, human, s.temperature, &r); err != nil {
		return core.AccountantSummary{}, err
	}
	if err := requireFields(map[string]*string{
		"overview":     r.Overview,
		"requirements": r.Requirements,
		"expenses":     r.Expenses,
		"pitfalls":     r.Pitfalls,
	}); err != nil {
		return core.AccountantSummary{}, err
	}
	return core.AccountantSummary{
		Overview:     *r.Overview,
		Requirements: *r.Requirements,
		Expenses:     *r.Expenses,
		Pitfalls:     *r.Pitfalls,
	}, nil
}

// TagIndustries asks the model for industry tags. Tags are returned as given.
func (t *IndustryTagger) TagIndustries(ctx context.Context, name, content string) ([]string, error) {
	var r taggingResponse
	human := buildTaggingMessage(name, prepareContent(content, ai.TaggingContentLimit))
	if err := t.chat.completeJSON(ctx, buildTaggingSystemPrompt(), human, t.temperature, &r); err != nil {
		return nil, err
	}
	if r.IndustryTags == nil {
		return nil, fmt.Errorf("%w: missing field %q", ai.ErrMalformedResponse, "industry_tags")
	}
	tags := *r.IndustryTags
	if tags == nil {
		tags = []string{}
	}
	t.chat.logger.Debug("tagged subsidy", "name", name, "tags", len(tags))
	return tags, nil
}
