package ai

import "context"

// Completer produces free-form text from a system instruction and user
// content. Implementations must be thread-safe for concurrent use.
type Completer interface {
	// Complete sends the system instruction and user content to the
	// completion service and returns the generated text verbatim.
	// Returns an error on timeout, transport failure, or an empty
	// response; callers are expected to degrade gracefully.
	Complete(ctx context.Context, systemInstruction, userContent string) (string, error)
}

// Provider aggregates collaborator services for convenient initialization
// and lifecycle management.
type Provider interface {
	// Completer returns the text completion service.
	// The returned Completer is safe for concurrent use.
	Completer() Completer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
