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
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/subnav/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// chat issues single-turn JSON-mode completions against one model.
// It is safe for concurrent use.
type chat struct {
	model   llms.Model
	timeout time.Duration
	logger  *slog.Logger
}

func newModel(config *ai.Config) (llms.Model, error) {
	return openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
	)
}

// completeJSON sends the system and human turns and decodes the reply into v.
// Decoding failures are reported as ai.ErrMalformedResponse.
func (c *chat) completeJSON(ctx context.Context, system, human string, temperature float64, v any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, human),
	}

	response, err := c.model.GenerateContent(ctx, content,
		llms.WithTemperature(temperature),
		llms.WithJSONMode())
	if err != nil {
		c.logger.Error("failed to generate content", "err", err)
		return err
	}
	if len(response.Choices) < 1 {
		c.logger.Debug("no choices returned from model")
		return ai.ErrEmptyResponse
	}

	text := repairJSON(stripCodeFences(response.Choices[0].Content))
	if err := json.Unmarshal([]byte(text), v); err != nil {
		c.logger.Warn("error parsing model response", "response", text, "err", err)
		return fmt.Errorf("%w: %w", ai.ErrMalformedResponse, err)
	}
	return nil
}

// requireFields returns ai.ErrMalformedResponse if any field was absent.
func requireFields(fields map[string]*string) error {
	for name, v := range fields {
		if v == nil {
			return fmt.Errorf("%w: missing field %q", ai.ErrMalformedResponse, name)
		}
	}
	return nil
}
