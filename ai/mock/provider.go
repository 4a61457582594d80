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

import (
	"context"
	"sync"
	"time"

	"github.com/aracbul/aracbul/ai"
)

// MockCompleter is a test double for ai.Completer.
// All fields may be set before use; access during a test run is mutex-guarded.
type MockCompleter struct {
	mu sync.Mutex

	// Response is returned by Complete when Err is nil.
	Response string
	// Err, when set, is returned by every Complete call.
	Err error
	// Delay, when set, is waited before responding (or until ctx expires).
	Delay time.Duration

	// LastSystemInstruction and LastUserContent record the most recent call.
	LastSystemInstruction string
	LastUserContent       string
	callCount             int
}

var _ ai.Completer = (*MockCompleter)(nil)

// NewMockCompleter creates a mock completer with a canned default response.
func NewMockCompleter() *MockCompleter {
	return &MockCompleter{Response: "mock completion"}
}

// Complete records the call and returns the configured response or error.
func (m *MockCompleter) Complete(ctx context.Context, systemInstruction, userContent string) (string, error) {
	m.mu.Lock()
	m.LastSystemInstruction = systemInstruction
	m.LastUserContent = userContent
	m.callCount++
	delay := m.Delay
	response := m.Response
	err := m.Err
	m.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	if err != nil {
		return "", err
	}
	return response, nil
}

// CallCount returns how many times Complete was invoked.
func (m *MockCompleter) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// MockProvider is a test double for ai.Provider.
type MockProvider struct {
	completer *MockCompleter
}

// NewMockProvider creates a new mock provider with a default mock completer.
//
// Returns ai.Provider interface for consistency with production constructors.
// Use GetMockCompleter() to access the concrete type for test assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		completer: NewMockCompleter(),
	}
}

// NewMockProviderWithCompleter creates a mock provider around a custom
// mock completer, for full control over its behavior.
func NewMockProviderWithCompleter(completer *MockCompleter) ai.Provider {
	return &MockProvider{completer: completer}
}

// Completer returns the mock completer.
func (p *MockProvider) Completer() ai.Completer {
	return p.completer
}

// Close is a no-op for mock provider.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockCompleter returns the underlying mock completer for test assertions.
func (p *MockProvider) GetMockCompleter() *MockCompleter {
	return p.completer
}
