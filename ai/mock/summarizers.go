package mock

import (
	"context"
	"sync"

	"github.com/poiesic/subnav/ai"
	"github.com/poiesic/subnav/core"
)

// calls records invocations. The summarizers run concurrently inside the
// pipeline, so every mock guards its state with a mutex.
type calls struct {
	mu   sync.Mutex
	keys []string
}

func (c *calls) record(key string) {
	c.mu.Lock()
	c.keys = append(c.keys, key)
	c.mu.Unlock()
}

// CallCount returns the number of recorded calls.
func (c *calls) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.keys)
}

// Calls returns the url (or name, for the tagger) of every recorded call in order.
func (c *calls) Calls() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.keys...)
}

func (c *calls) reset() {
	c.mu.Lock()
	c.keys = nil
	c.mu.Unlock()
}

// MockClientSummarizer is a test double for ai.ClientSummarizer.
type MockClientSummarizer struct {
	calls
	fn func(ctx context.Context, url, content string) (core.ClientSummary, error)
}

// NewMockClientSummarizer creates a mock client summarizer with default behavior.
func NewMockClientSummarizer() *MockClientSummarizer {
	return &MockClientSummarizer{}
}

// WithSummarizeFunc replaces the default behavior.
func (m *MockClientSummarizer) WithSummarizeFunc(fn func(ctx context.Context, url, content string) (core.ClientSummary, error)) *MockClientSummarizer {
	m.mu.Lock()
	m.fn = fn
	m.mu.Unlock()
	return m
}

// SummarizeForClient returns a fixed summary derived from url.
// The default deadline is "2025-12-31".
func (m *MockClientSummarizer) SummarizeForClient(ctx context.Context, url, content string) (core.ClientSummary, error) {
	m.record(url)
	m.mu.Lock()
	fn := m.fn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, url, content)
	}
	if err := ctx.Err(); err != nil {
		return core.ClientSummary{}, err
	}
	return core.ClientSummary{
		Catchphrase: "catchphrase for " + url,
		Merit:       "merit",
		Target:      "target",
		Amount:      "amount",
		Deadline:    "2025-12-31",
	}, nil
}

// Reset clears recorded calls and custom functions.
func (m *MockClientSummarizer) Reset() {
	m.reset()
	m.WithSummarizeFunc(nil)
}

// MockAccountantSummarizer is a test double for ai.AccountantSummarizer.
type MockAccountantSummarizer struct {
	calls
	fn func(ctx context.Context, url, content string) (core.AccountantSummary, error)
}

// NewMockAccountantSummarizer creates a mock accountant summarizer with default behavior.
func NewMockAccountantSummarizer() *MockAccountantSummarizer {
	return &MockAccountantSummarizer{}
}

// WithSummarizeFunc replaces the default behavior.
func (m *MockAccountantSummarizer) WithSummarizeFunc(fn func(ctx context.Context, url, content string) (core.AccountantSummary, error)) *MockAccountantSummarizer {
	m.mu.Lock()
	m.fn = fn
	m.mu.Unlock()
	return m
}

// SummarizeForAccountant returns a fixed summary derived from url.
func (m *MockAccountantSummarizer) SummarizeForAccountant(ctx context.Context, url, content string) (core.AccountantSummary, error) {
	m.record(url)
	m.mu.Lock()
	fn := m.fn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, url, content)
	}
	if err := ctx.Err(); err != nil {
		return core.AccountantSummary{}, err
	}
	return core.AccountantSummary{
		Overview:     "overview of " + url,
		Requirements: "requirements",
		Expenses:     "expenses",
		Pitfalls:     "pitfalls",
	}, nil
}

// Reset clears recorded calls and custom functions.
func (m *MockAccountantSummarizer) Reset() {
	m.reset()
	m.WithSummarizeFunc(nil)
}

// MockIndustryTagger is a test double for ai.IndustryTagger.
type MockIndustryTagger struct {
	calls
	fn func(ctx context.Context, name, content string) ([]string, error)
}

// NewMockIndustryTagger creates a mock tagger with default behavior.
func NewMockIndustryTagger() *MockIndustryTagger {
	return &MockIndustryTagger{}
}

// WithTagFunc replaces the default behavior.
func (m *MockIndustryTagger) WithTagFunc(fn func(ctx context.Context, name, content string) ([]string, error)) *MockIndustryTagger {
	m.mu.Lock()
	m.fn = fn
	m.mu.Unlock()
	return m
}

// TagIndustries returns the all-industries tag.
func (m *MockIndustryTagger) TagIndustries(ctx context.Context, name, content string) ([]string, error) {
	m.record(name)
	m.mu.Lock()
	fn := m.fn
	m.mu.Unlock()
	if fn != nil {
		return fn(ctx, name, content)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []string{ai.AllIndustriesTag}, nil
}

// Reset clears recorded calls and custom functions.
func (m *MockIndustryTagger) Reset() {
	m.reset()
	m.WithTagFunc(nil)
}
