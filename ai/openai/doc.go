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

// Package openai provides AI service implementations using OpenAI-compatible APIs.
//
// This package implements ai.AIProvider on top of langchaingo's OpenAI client,
// which also talks to Gemini's OpenAI endpoint, Ollama, LocalAI or vLLM.
// Every call runs in JSON mode with the temperature configured for its service.
//
// Page content is flattened from HTML to text and cut to the per-service rune
// limit before it is sent. Replies have surrounding code fences stripped and
// common key quoting mistakes repaired before decoding; nothing else about a
// reply is corrected.
//
// # Usage
//
//	config := ai.NewConfig(
//	    ai.WithHost("https://generativelanguage.googleapis.com/v1beta/openai"),
//	    ai.WithAPIKey(os.Getenv("GOOGLE_GENAI_API_KEY")),
//	    ai.WithModel("gemini-2.5-flash"),
//	)
//
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	tags, err := provider.IndustryTagger().TagIndustries(ctx, name, content)
package openai
