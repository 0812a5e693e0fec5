package ai

import (
	"context"

	"github.com/poiesic/subnav/core"
)

// ClientSummarizer produces the business-owner facing digest of a subsidy page.
// Implementations must be thread-safe for concurrent use.
type ClientSummarizer interface {
	// SummarizeForClient reads the page content found at url and returns the
	// catchphrase, merit, target, amount and deadline fields. Every field must
	// be present in the model response; empty strings are accepted.
	// Returns ErrMalformedResponse if the response is missing a field.
	SummarizeForClient(ctx context.Context, url, content string) (core.ClientSummary, error)
}

// AccountantSummarizer produces the professional-facing digest of a subsidy page.
// Implementations must be thread-safe for concurrent use.
type AccountantSummarizer interface {
	// SummarizeForAccountant returns overview, requirements, expenses and pitfalls.
	// Returns ErrMalformedResponse if the response is missing a field.
	SummarizeForAccountant(ctx context.Context, url, content string) (core.AccountantSummary, error)
}

// IndustryTagger assigns industry tags to a subsidy.
// Implementations must be thread-safe for concurrent use.
type IndustryTagger interface {
	// TagIndustries returns the industry tags for the named subsidy.
	// The returned slice is never nil on success.
	TagIndustries(ctx context.Context, name, content string) ([]string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// The three services share configuration and may share an underlying client.
type AIProvider interface {
	// ClientSummarizer returns the client summary service.
	ClientSummarizer() ClientSummarizer

	// AccountantSummarizer returns the accountant summary service.
	AccountantSummarizer() AccountantSummarizer

	// IndustryTagger returns the tagging service.
	IndustryTagger() IndustryTagger

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
