// Package mock provides test double implementations of AI service interfaces.
//
// The mocks implement ai.ClientSummarizer, ai.AccountantSummarizer,
// ai.IndustryTagger and ai.AIProvider without any external service. They are
// safe for concurrent use, since the pipeline calls all three at once.
//
// # Usage in Tests
//
//	provider := mock.NewMockProvider()
//
//	// Fail one service
//	provider.GetMockAccountant().WithSummarizeFunc(
//	    func(ctx context.Context, url, content string) (core.AccountantSummary, error) {
//	        return core.AccountantSummary{}, errors.New("quota exceeded")
//	    })
//
//	// Check call counts
//	count := provider.GetMockClient().CallCount()
//
// # Default Behavior
//
//   - MockClientSummarizer: fields derived from the url, deadline "2025-12-31"
//   - MockAccountantSummarizer: fields derived from the url
//   - MockIndustryTagger: returns ai.AllIndustriesTag
package mock
