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
	"log/slog"

	"github.com/poiesic/subnav/ai"
	"github.com/tmc/langchaingo/llms"
)

// Provider implements ai.AIProvider using an OpenAI-compatible chat service.
// The three services share one underlying client.
type Provider struct {
	config     *ai.Config
	client     *ClientSummarizer
	accountant *AccountantSummarizer
	tagger     *IndustryTagger
	logger     *slog.Logger
}

// NewProvider creates a new AI provider with OpenAI-compatible services.
// The config is validated and normalized before use.
//
// Returns ai.AIProvider interface (not *Provider) to enforce abstraction
// and prevent coupling to OpenAI-specific implementation details.
func NewProvider(config *ai.Config) (ai.AIProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	model, err := newModel(config)
	if err != nil {
		return nil, err
	}
	return newProvider(config, model), nil
}

// newProvider wires the services around an existing model.
func newProvider(config *ai.Config, model llms.Model) *Provider {
	base := slog.Default()
	mk := func(component string) *chat {
		return &chat{model: model, timeout: config.RequestTimeout, logger: base.With("component", component)}
	}
	return &Provider{
		config:     config,
		client:     &ClientSummarizer{chat: mk("openai-client-summarizer"), temperature: config.ClientTemperature},
		accountant: &AccountantSummarizer{chat: mk("openai-accountant-summarizer"), temperature: config.AccountantTemperature},
		tagger:     &IndustryTagger{chat: mk("openai-tagger"), temperature: config.TaggingTemperature},
		logger:     base.With("component", "openai-provider"),
	}
}

// ClientSummarizer returns the client summary service.
func (p *Provider) ClientSummarizer() ai.ClientSummarizer {
	return p.client
}

// AccountantSummarizer returns the accountant summary service.
func (p *Provider) AccountantSummarizer() ai.AccountantSummarizer {
	return p.accountant
}

// IndustryTagger returns the tagging service.
func (p *Provider) IndustryTagger() ai.IndustryTagger {
	return p.tagger
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying client doesn't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
