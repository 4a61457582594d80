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
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/aracbul/aracbul/ai"
)

// ErrEmptyResponse is returned when the model produces no usable text.
// Callers treat it like any other collaborator failure.
var ErrEmptyResponse = errors.New("completion returned no text")

// Completer implements ai.Completer using OpenAI-compatible chat APIs.
type Completer struct {
	client  llms.Model
	timeout time.Duration
	logger  *slog.Logger
}

// newCompleter is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newCompleter(config *ai.Config) (*Completer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't
	// require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.Host),
		openai.WithToken("none"),
		openai.WithModel(config.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Completer{
		client:  client,
		timeout: config.Timeout,
		logger:  slog.Default().With("component", "openai-completer"),
	}, nil
}

// NewCompleter creates a new completer using the provided configuration.
//
// Returns ai.Completer interface to enforce abstraction.
func NewCompleter(config *ai.Config) (ai.Completer, error) {
	return newCompleter(config)
}

// Complete sends the system instruction and user content to the model and
// returns the generated text. The call is bounded by the configured timeout.
func (c *Completer) Complete(ctx context.Context, systemInstruction, userContent string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemInstruction),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userContent),
			},
		},
	}

	response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.7))
	if err != nil {
		c.logger.Error("failed to generate content", "err", err)
		return "", err
	}

	if len(response.Choices) < 1 {
		c.logger.Debug("no choices returned from model")
		return "", ErrEmptyResponse
	}

	text := strings.TrimSpace(response.Choices[0].Content)
	if text == "" {
		return "", ErrEmptyResponse
	}

	return text, nil
}
