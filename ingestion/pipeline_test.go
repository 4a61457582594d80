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
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aracbul/aracbul/storage"
	storagebadger "github.com/aracbul/aracbul/storage/badger"
)

const sampleSource = `[
  {
    "id": "1181542093",
    "title": "Renault Clio 1.0 TCe Joy",
    "url": "https://example.com/ilan/1181542093",
    "price": "785.000 TL",
    "year": "2021",
    "km": "64.000 km",
    "location": "İstanbul",
    "date": "2025-08-30T11:42:00",
    "image": "https://example.com/clio.jpg"
  },
  {
    "id": "1181542094",
    "title": "Toyota Corolla 1.8 Hybrid",
    "url": "https://example.com/ilan/1181542094",
    "price": "1.450.000 TL",
    "year": "2022",
    "km": "30.500 km",
    "location": "Ankara",
    "date": "2025-08-30T11:45:00",
    "image": "https://example.com/corolla.jpg"
  },
  {
    "id": "1181542095",
    "title": "",
    "url": "",
    "price": "Belirtilmemiş",
    "year": "",
    "km": "",
    "location": "",
    "date": "",
    "image": ""
  }
]`

func newTestRepos(t *testing.T) (storage.ListingRepository, storage.CheckpointRepository) {
	t.Helper()
	listings, checkpoints, backend, err := storagebadger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })
	return listings, checkpoints
}

func newTestPipeline(t *testing.T, opts ...Option) (*Pipeline, storage.ListingRepository) {
	t.Helper()
	listings, checkpoints := newTestRepos(t)
	pipeline, err := NewPipeline(listings, checkpoints, opts...)
	require.NoError(t, err)
	t.Cleanup(pipeline.Release)
	return pipeline, listings
}

func TestNewPipelineValidation(t *testing.T) {
	listings, checkpoints := newTestRepos(t)

	_, err := NewPipeline(nil, checkpoints)
	assert.ErrorIs(t, err, ErrListingRepositoryRequired)

	_, err = NewPipeline(listings, nil)
	assert.ErrorIs(t, err, ErrCheckpointRepositoryRequired)

	_, err = NewPipeline(listings, checkpoints, WithBatchSize(0))
	assert.Error(t, err)
}

func TestIngestReader(t *testing.T) {
	pipeline, listings := newTestPipeline(t)
	ctx := context.Background()

	report, err := pipeline.IngestReader(ctx, "cars.json", strings.NewReader(sampleSource))
	require.NoError(t, err)

	assert.Equal(t, 2, report.Ingested)
	assert.Equal(t, 1, report.Rejected)
	assert.False(t, report.Skipped)

	stored, err := listings.GetAllListings(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 2)

	clio := stored[0]
	assert.Equal(t, "1181542093", clio.Id)
	assert.Equal(t, "Renault Clio 1.0 TCe Joy", clio.Title)
	assert.Equal(t, "Renault", clio.Brand)
	assert.Equal(t, "İstanbul", clio.City)
	assert.Equal(t, 2021, clio.Year)
	assert.Equal(t, 785000, clio.Price)
	assert.Equal(t, 64000, clio.Distance)
	assert.Equal(t, 2025, clio.ScrapedAt.Year())
}

func TestIngestReaderSkipsUnchangedSource(t *testing.T) {
	pipeline, _ := newTestPipeline(t)
	ctx := context.Background()

	first, err := pipeline.IngestReader(ctx, "cars.json", strings.NewReader(sampleSource))
	require.NoError(t, err)
	require.False(t, first.Skipped)

	second, err := pipeline.IngestReader(ctx, "cars.json", strings.NewReader(sampleSource))
	require.NoError(t, err)
	assert.True(t, second.Skipped)
	assert.Equal(t, first.Ingested, second.Ingested)
}

func TestIngestReaderReplace(t *testing.T) {
	pipeline, listings := newTestPipeline(t, WithReplace(true))
	ctx := context.Background()

	_, err := pipeline.IngestReader(ctx, "old.json", strings.NewReader(sampleSource))
	require.NoError(t, err)

	smaller := `[{"id": "x1", "title": "Fiat Egea 1.4", "price": "900.000 TL", "year": "2020", "km": "80.000 km", "location": "İzmir"}]`
	report, err := pipeline.IngestReader(ctx, "new.json", strings.NewReader(smaller))
	require.NoError(t, err)
	assert.Equal(t, 1, report.Ingested)

	stored, err := listings.GetAllListings(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Fiat", stored[0].Brand)
}

func TestIngestReaderDecodeError(t *testing.T) {
	pipeline, _ := newTestPipeline(t)

	_, err := pipeline.IngestReader(context.Background(), "bad.json", strings.NewReader("{not json"))
	assert.ErrorIs(t, err, ErrDecodeFailed)
}

func TestIngestReaderManyBatches(t *testing.T) {
	pipeline, listings := newTestPipeline(t, WithBatchSize(3), WithPoolSize(4))
	ctx := context.Background()

	var b strings.Builder
	b.WriteString("[")
	for i := 0; i < 20; i++ {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(`{"id": "id-` + string(rune('a'+i)) + `", "title": "Renault Clio", "price": "500.000 TL", "year": "2020", "km": "10.000 km", "location": "Bursa"}`)
	}
	b.WriteString("]")

	report, err := pipeline.IngestReader(ctx, "many.json", strings.NewReader(b.String()))
	require.NoError(t, err)
	assert.Equal(t, 20, report.Ingested)

	count, err := listings.CountListings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}

func TestDeriveBrand(t *testing.T) {
	assert.Equal(t, "Renault", deriveBrand("Renault Clio 1.0 TCe"))
	assert.Equal(t, "BMW", deriveBrand("  BMW 320i  "))
	assert.Equal(t, "", deriveBrand(""))
	assert.Equal(t, "", deriveBrand("   "))
}

func TestProgressTracker(t *testing.T) {
	var buf bytes.Buffer
	progress := NewProgressTracker(&buf, 10, 5)

	progress.Increment(3)
	assert.Empty(t, buf.String(), "not started yet")

	progress.Start()
	progress.Increment(5)
	assert.Contains(t, buf.String(), "5/10")

	progress.Increment(100)
	progress.Finish()
	assert.Contains(t, buf.String(), "10/10 (100.0%)")
	assert.Greater(t, progress.Elapsed(), time.Duration(0))
}
