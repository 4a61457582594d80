package storage

import (
	"context"

	"github.com/aracbul/aracbul/core"
)

// Repository provides common storage operations shared across repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ListingRepository provides operations for managing catalog listings.
//
// The catalog is an ordered sequence: GetAllListings returns listings in
// insertion order, observed from a single consistent snapshot, so a caller
// refreshing the catalog concurrently never exposes a partial refresh to an
// in-flight request.
type ListingRepository interface {
	Repository

	// AddListings adds one or more listings to the catalog.
	// Listings with an empty Id get a deterministic content-based ID.
	// A listing whose Id already exists is overwritten in place and keeps
	// its position in the catalog order.
	// Returns the listings with IDs populated.
	AddListings(ctx context.Context, listings ...*core.Listing) ([]*core.Listing, error)

	// GetListing retrieves a single listing by ID.
	// Returns ErrNotFound if the listing doesn't exist.
	GetListing(ctx context.Context, id string) (*core.Listing, error)

	// GetAllListings retrieves the full catalog in insertion order,
	// read in one snapshot.
	GetAllListings(ctx context.Context) ([]*core.Listing, error)

	// CountListings returns the number of listings in the catalog.
	CountListings(ctx context.Context) (int, error)

	// DeleteListings removes listings by their IDs.
	// Returns ErrNotFound if any listing doesn't exist.
	DeleteListings(ctx context.Context, ids ...string) error

	// ReplaceAll atomically replaces the whole catalog with a new ordered
	// sequence of listings. In-flight readers keep seeing the snapshot
	// they started with.
	ReplaceAll(ctx context.Context, listings []*core.Listing) error
}

// CheckpointRepository persists ingestion checkpoints so repeated ingests of
// an unchanged source can be skipped.
type CheckpointRepository interface {
	// SaveCheckpoint persists the checkpoint for its source.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a source.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, source string) (*core.Checkpoint, error)
}
