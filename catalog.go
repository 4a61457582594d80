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


package aracbul

import (
	"context"
	"log/slog"

	"github.com/aracbul/aracbul/ai"
	"github.com/aracbul/aracbul/ai/openai"
	"github.com/aracbul/aracbul/core"
	"github.com/aracbul/aracbul/explain"
	"github.com/aracbul/aracbul/ingestion"
	"github.com/aracbul/aracbul/query"
	"github.com/aracbul/aracbul/storage"
	"github.com/aracbul/aracbul/storage/badger"
)

// Catalog is the top-level handle: a listing store plus the optional
// text-completion collaborator, from which engines, explainers, and
// ingestion pipelines are constructed.
type Catalog struct {
	backend        *badger.Backend
	listingRepo    storage.ListingRepository
	checkpointRepo storage.CheckpointRepository
	provider       ai.Provider
	logger         *slog.Logger
}

// CatalogOption configures a Catalog.
type CatalogOption func(*catalogOptions)

type catalogOptions struct {
	aiConfig  *ai.Config
	disableAI bool
}

// WithAIConfig overrides the collaborator configuration.
func WithAIConfig(config *ai.Config) CatalogOption {
	return func(o *catalogOptions) {
		o.aiConfig = config
	}
}

// WithoutAI opens the catalog without a collaborator; explanations
// always render locally.
func WithoutAI() CatalogOption {
	return func(o *catalogOptions) {
		o.disableAI = true
	}
}

// OpenCatalog opens (or creates) a catalog store at filePath.
func OpenCatalog(filePath string, opts ...CatalogOption) (*Catalog, error) {
	options := &catalogOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}

	listingRepo, err := badger.NewListingRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	checkpointRepo := badger.NewCheckpointRepository(backend)

	var provider ai.Provider
	if !options.disableAI {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			backend.Close()
			return nil, err
		}
	}

	return &Catalog{
		backend:        backend,
		listingRepo:    listingRepo,
		checkpointRepo: checkpointRepo,
		provider:       provider,
		logger:         slog.Default(),
	}, nil
}

// Close releases the collaborator and the backing store.
func (c *Catalog) Close() error {
	if c.provider != nil {
		if err := c.provider.Close(); err != nil {
			c.logger.Error("error closing AI provider", "err", err)
		}
	}
	if err := c.listingRepo.Close(); err != nil {
		c.logger.Error("error closing listing repository", "err", err)
		return err
	}
	if err := c.backend.Close(); err != nil {
		c.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

// ListingRepository exposes the listing store.
func (c *Catalog) ListingRepository() storage.ListingRepository {
	return c.listingRepo
}

// CheckpointRepository exposes the ingest checkpoint store.
func (c *Catalog) CheckpointRepository() storage.CheckpointRepository {
	return c.checkpointRepo
}

// LoadListings reads the whole catalog in insertion order from a single
// storage snapshot.
func (c *Catalog) LoadListings(ctx context.Context) ([]*core.Listing, error) {
	return c.listingRepo.GetAllListings(ctx)
}

// NewExplainer creates an explainer wired to the catalog's collaborator,
// when one is configured.
func (c *Catalog) NewExplainer(opts ...explain.Option) (*explain.Explainer, error) {
	if c.provider != nil {
		opts = append([]explain.Option{explain.WithCompleter(c.provider.Completer())}, opts...)
	}
	return explain.NewExplainer(opts...)
}

// NewEngine creates a query engine over this catalog's explainer.
func (c *Catalog) NewEngine(opts ...query.Option) (*query.Engine, error) {
	explainer, err := c.NewExplainer()
	if err != nil {
		return nil, err
	}
	return query.NewEngine(explainer, opts...)
}

// NewIngestionPipeline creates an ingestion pipeline over this catalog's
// repositories.
func (c *Catalog) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(c.listingRepo, c.checkpointRepo, opts...)
}
