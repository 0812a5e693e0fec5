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

package ai

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Configuration errors returned by Validate.
var (
	ErrHostRequired       = errors.New("ai config: Host is required")
	ErrModelRequired      = errors.New("ai config: Model is required")
	ErrInvalidTemperature = errors.New("ai config: temperatures must be between 0 and 2")
	ErrInvalidTimeout     = errors.New("ai config: RequestTimeout cannot be negative")
)

// Config holds configuration for AI service providers.
type Config struct {
	// Host is the base URL of an OpenAI-compatible chat completions API.
	// Example: "http://localhost:11434/v1" for a local server, or
	// "https://generativelanguage.googleapis.com/v1beta/openai" for Gemini.
	Host string

	// APIKey is sent as the bearer token. Local servers accept any value.
	APIKey string

	// Model is the chat model identifier.
	// Example: "gemini-2.5-flash", "qwen2.5:7b"
	Model string

	// ClientTemperature is the sampling temperature for client summaries.
	// Default: 0.3
	ClientTemperature float64

	// AccountantTemperature is the sampling temperature for accountant summaries.
	// Default: 0.1
	AccountantTemperature float64

	// TaggingTemperature is the sampling temperature for industry tagging.
	// Default: 0.1
	TaggingTemperature float64

	// RequestTimeout bounds each model call. Zero disables the bound.
	// Default: 2m
	RequestTimeout time.Duration
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithHost sets the service host URL.
func WithHost(host string) ConfigOption {
	return func(c *Config) {
		c.Host = host
	}
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithModel sets the chat model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithTemperatures sets the client, accountant and tagging temperatures.
func WithTemperatures(client, accountant, tagging float64) ConfigOption {
	return func(c *Config) {
		c.ClientTemperature = client
		c.AccountantTemperature = accountant
		c.TaggingTemperature = tagging
	}
}

// WithRequestTimeout sets the per-call timeout.
func WithRequestTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.RequestTimeout = d
	}
}

// DefaultConfig returns a Config with sensible defaults for a local OpenAI-compatible service.
func DefaultConfig() *Config {
	return &Config{
		Host:                  "http://localhost:11434/v1",
		APIKey:                "none",
		Model:                 "qwen2.5:7b",
		ClientTemperature:     0.3,
		AccountantTemperature: 0.1,
		TaggingTemperature:    0.1,
		RequestTimeout:        2 * time.Minute,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithHost("https://generativelanguage.googleapis.com/v1beta/openai"),
//	    WithAPIKey(os.Getenv("GOOGLE_GENAI_API_KEY")),
//	    WithModel("gemini-2.5-flash"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// A bare host such as "http://localhost:11434" gets the /v1 suffix most
// OpenAI-compatible servers expect; hosts that already carry a path are kept.
func (c *Config) Normalize() {
	c.Host = strings.TrimSuffix(strings.TrimSpace(c.Host), "/")
	if c.Host == "" {
		return
	}
	if u, err := url.Parse(c.Host); err == nil && (u.Path == "" || u.Path == "/") {
		c.Host += "/v1"
	}
	if c.APIKey == "" {
		c.APIKey = "none"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.Host == "" {
		return ErrHostRequired
	}
	if c.Model == "" {
		return ErrModelRequired
	}
	for _, t := range []float64{c.ClientTemperature, c.AccountantTemperature, c.TaggingTemperature} {
		if t < 0 || t > 2 {
			return ErrInvalidTemperature
		}
	}
	if c.RequestTimeout < 0 {
		return ErrInvalidTimeout
	}
	return nil
}
