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


package ingestion

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/panjf2000/ants/v2"

	"github.com/aracbul/aracbul/core"
	"github.com/aracbul/aracbul/storage"
)

const defaultBatchSize = 64

// rawListing is the scraped file shape, all display strings.
type rawListing struct {
	Id       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Price    string `json:"price"`
	Year     string `json:"year"`
	Km       string `json:"km"`
	Location string `json:"location"`
	Date     string `json:"date"`
	Image    string `json:"image"`
}

// Report summarizes one ingestion run.
type Report struct {
	Source   string
	Ingested int
	Rejected int
	// Skipped is true when the source digest matched the last checkpoint
	// and nothing was written.
	Skipped bool
}

// Pipeline loads scraped listings into catalog storage in concurrent
// batches and checkpoints each completed run.
type Pipeline struct {
	listingRepo    storage.ListingRepository
	checkpointRepo storage.CheckpointRepository
	pool           *ants.Pool
	batchSize      int
	replace        bool
	progress       *ProgressTracker
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for batch writes.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.pool != nil {
			p.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithBatchSize sets how many listings each pool task writes.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			return fmt.Errorf("batch size must be positive, got %d", size)
		}
		p.batchSize = size
		return nil
	}
}

// WithReplace makes each run replace the stored catalog instead of
// upserting into it.
func WithReplace(replace bool) Option {
	return func(p *Pipeline) error {
		p.replace = replace
		return nil
	}
}

// WithProgress attaches a progress tracker, updated once per batch.
func WithProgress(progress *ProgressTracker) Option {
	return func(p *Pipeline) error {
		p.progress = progress
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(
	listingRepo storage.ListingRepository,
	checkpointRepo storage.CheckpointRepository,
	opts ...Option,
) (*Pipeline, error) {
	if listingRepo == nil {
		return nil, ErrListingRepositoryRequired
	}
	if checkpointRepo == nil {
		return nil, ErrCheckpointRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		listingRepo:    listingRepo,
		checkpointRepo: checkpointRepo,
		pool:           pool,
		batchSize:      defaultBatchSize,
		logger:         slog.Default().With("component", "ingestion"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}
	return p, nil
}

// IngestFile ingests a scraped listings file. The file path doubles as
// the checkpoint source name.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return p.IngestReader(ctx, path, f)
}

// IngestReader ingests listings from r, checkpointed under the given
// source name. An unchanged digest short-circuits without writing.
func (p *Pipeline) IngestReader(ctx context.Context, source string, r io.Reader) (*Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	digest := contentDigest(data)
	checkpoint, err := p.checkpointRepo.LoadCheckpoint(ctx, source)
	if err != nil {
		return nil, err
	}
	if checkpoint != nil && checkpoint.Digest == digest {
		p.logger.Info("source unchanged, skipping ingestion", "source", source)
		return &Report{Source: source, Ingested: checkpoint.Count, Skipped: true}, nil
	}

	var raws []rawListing
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeFailed, err)
	}

	listings, rejected := p.convert(raws)

	if p.progress != nil {
		p.progress.SetTotal(len(listings))
		p.progress.Start()
	}

	if p.replace {
		if err := p.listingRepo.ReplaceAll(ctx, listings); err != nil {
			return nil, err
		}
		if p.progress != nil {
			p.progress.Increment(len(listings))
		}
	} else if err := p.writeBatches(ctx, listings); err != nil {
		return nil, err
	}

	if p.progress != nil {
		p.progress.Finish()
	}

	if err := p.checkpointRepo.SaveCheckpoint(ctx, &core.Checkpoint{
		Source:     source,
		Digest:     digest,
		Count:      len(listings),
		IngestedAt: time.Now().UTC(),
	}); err != nil {
		return nil, err
	}

	p.logger.Info("ingestion complete",
		"source", source, "ingested", len(listings), "rejected", rejected)

	return &Report{Source: source, Ingested: len(listings), Rejected: rejected}, nil
}

// convert normalizes raw records into listings, dropping the invalid ones.
func (p *Pipeline) convert(raws []rawListing) ([]*core.Listing, int) {
	listings := make([]*core.Listing, 0, len(raws))
	rejected := 0

	for i, raw := range raws {
		listing := &core.Listing{
			Id:        raw.Id,
			Title:     strings.TrimSpace(raw.Title),
			Brand:     deriveBrand(raw.Title),
			City:      strings.TrimSpace(raw.Location),
			Year:      core.NormalizeYear(raw.Year),
			Price:     core.NormalizePrice(raw.Price),
			Distance:  core.NormalizeDistance(raw.Km),
			URL:       raw.URL,
			Image:     raw.Image,
			ScrapedAt: parseScrapeDate(raw.Date),
		}
		if err := core.ValidateListing(listing); err != nil {
			p.logger.Warn("rejecting listing", "index", i, "err", err)
			rejected++
			continue
		}
		listings = append(listings, listing)
	}
	return listings, rejected
}

// writeBatches fans the listings out to the pool in fixed-size batches.
// The first write error wins; remaining batches still run to completion.
func (p *Pipeline) writeBatches(ctx context.Context, listings []*core.Listing) error {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for start := 0; start < len(listings); start += p.batchSize {
		end := start + p.batchSize
		if end > len(listings) {
			end = len(listings)
		}
		batch := listings[start:end]

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()
			if _, err := p.listingRepo.AddListings(ctx, batch...); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			if p.progress != nil {
				p.progress.Increment(len(batch))
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()
	return firstErr
}

// Release releases the worker pool. The pipeline should not be used
// after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// deriveBrand takes the first word of the title. Scraped sources put the
// make first ("Renault Clio 1.0 TCe"), and the extractor lowercases
// before comparing, so the raw casing is kept for display.
func deriveBrand(title string) string {
	fields := strings.Fields(title)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func parseScrapeDate(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999999", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}

func contentDigest(data []byte) string {
	h, err := blake2b.New(16, nil)
	if err != nil {
		return ""
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
