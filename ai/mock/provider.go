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

package mock

import "github.com/poiesic/subnav/ai"

// MockProvider is a test double for ai.AIProvider.
type MockProvider struct {
	client     *MockClientSummarizer
	accountant *MockAccountantSummarizer
	tagger     *MockIndustryTagger
	closed     bool
}

// NewMockProvider creates a new mock provider with default mock services.
//
// Returned as the concrete type so tests can reach the individual mocks
// through GetMockClient, GetMockAccountant and GetMockTagger.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		client:     NewMockClientSummarizer(),
		accountant: NewMockAccountantSummarizer(),
		tagger:     NewMockIndustryTagger(),
	}
}

// ClientSummarizer returns the mock client summarizer.
func (p *MockProvider) ClientSummarizer() ai.ClientSummarizer {
	return p.client
}

// AccountantSummarizer returns the mock accountant summarizer.
func (p *MockProvider) AccountantSummarizer() ai.AccountantSummarizer {
	return p.accountant
}

// IndustryTagger returns the mock tagger.
func (p *MockProvider) IndustryTagger() ai.IndustryTagger {
	return p.tagger
}

// Close marks the provider closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// Closed reports whether Close has been called.
func (p *MockProvider) Closed() bool {
	return p.closed
}

// GetMockClient returns the underlying mock client summarizer.
func (p *MockProvider) GetMockClient() *MockClientSummarizer {
	return p.client
}

// GetMockAccountant returns the underlying mock accountant summarizer.
func (p *MockProvider) GetMockAccountant() *MockAccountantSummarizer {
	return p.accountant
}

// GetMockTagger returns the underlying mock tagger.
func (p *MockProvider) GetMockTagger() *MockIndustryTagger {
	return p.tagger
}

// Reset restores default behavior on every service.
func (p *MockProvider) Reset() {
	p.client.Reset()
	p.accountant.Reset()
	p.tagger.Reset()
}

var _ ai.AIProvider = (*MockProvider)(nil)
