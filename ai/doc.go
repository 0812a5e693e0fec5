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

// Package ai provides abstractions for the generative AI services used by subnav.
//
// Three services turn the raw text of a subsidy page into the fields of a
// core.Subsidy:
//
//   - ClientSummarizer: five short fields for business owners
//   - AccountantSummarizer: four detailed fields for tax professionals
//   - IndustryTagger: a handful of industry tags
//
// AIProvider aggregates the three for initialization and shutdown.
//
// # Implementation Packages
//
//   - ai/openai: production implementation against OpenAI-compatible chat APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Public constructors in ai/openai return interface types. Mock constructors
// return concrete types so tests can inject behaviour and count calls:
//
//	provider := mock.NewMockProvider()
//	provider.GetMockTagger().WithTagFunc(func(ctx context.Context, name, content string) ([]string, error) {
//	    return nil, errors.New("boom")
//	})
//
// # Response Contract
//
// Every service asks the model for a single JSON object. A response that
// cannot be decoded, or that omits a field, is reported as ErrMalformedResponse.
// Empty string values are legitimate and are passed through unchanged.
//
// # Usage Example
//
//	cfg := ai.NewConfig(ai.WithAPIKey(key), ai.WithModel("gemini-2.5-flash"))
//	provider, err := openai.NewProvider(cfg)
//	if err != nil {
//	    return err
//	}
//	defer provider.Close()
//
//	summary, err := provider.ClientSummarizer().SummarizeForClient(ctx, url, content)
package ai
