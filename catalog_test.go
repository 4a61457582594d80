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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aracbul/aracbul/core"
)

func openTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := OpenCatalog(filepath.Join(t.TempDir(), "catalog"), WithoutAI())
	require.NoError(t, err)
	t.Cleanup(func() { catalog.Close() })
	return catalog
}

func TestOpenCatalogAndQuery(t *testing.T) {
	catalog := openTestCatalog(t)
	ctx := context.Background()

	_, err := catalog.ListingRepository().AddListings(ctx,
		&core.Listing{Title: "Renault Clio 1.0 TCe", Brand: "Renault", City: "İstanbul", Transmission: "Otomatik", Year: 2021, Price: 785000, Distance: 64000},
		&core.Listing{Title: "Toyota Corolla 1.8 Hybrid", Brand: "Toyota", City: "Ankara", Transmission: "CVT", Year: 2022, Price: 1450000, Distance: 30000},
	)
	require.NoError(t, err)

	listings, err := catalog.LoadListings(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	engine, err := catalog.NewEngine()
	require.NoError(t, err)

	result, err := engine.InterpretAndRank(ctx, "istanbulda renault", listings)
	require.NoError(t, err)
	assert.Equal(t, 1, result.TotalMatches)
	require.Len(t, result.Shortlist, 1)
	assert.Equal(t, "Renault Clio 1.0 TCe", result.Shortlist[0].Title)
}

func TestCatalogIngestionPipeline(t *testing.T) {
	catalog := openTestCatalog(t)

	pipeline, err := catalog.NewIngestionPipeline()
	require.NoError(t, err)
	defer pipeline.Release()

	assert.NotNil(t, pipeline)
	assert.NotNil(t, catalog.CheckpointRepository())
}

func TestCatalogExplainerWithoutAI(t *testing.T) {
	catalog := openTestCatalog(t)

	explainer, err := catalog.NewExplainer()
	require.NoError(t, err)

	text := explainer.AnalyzeListing(context.Background(),
		&core.Listing{Title: "Fiat Egea 1.4", City: "İzmir", Year: 2020, Price: 900000})
	assert.Contains(t, text, "Fiat Egea")
	assert.Contains(t, text, "900.000 TL")
}
