// Package mock provides test double implementations of the ai interfaces.
//
// The mocks allow tests to run without an external completion service and
// enable controlled, deterministic behavior:
//
//	// Basic usage with default behavior
//	provider := mock.NewMockProvider()
//	text, err := provider.Completer().Complete(ctx, "system", "user")
//
//	// Failure injection
//	completer := provider.GetMockCompleter()
//	completer.Err = errors.New("connection refused")
//
//	// Assertions on what was sent
//	assert.Contains(t, completer.LastUserContent, "Renault")
package mock
