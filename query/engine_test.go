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


package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aracbul/aracbul/core"
	"github.com/aracbul/aracbul/explain"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	explainer, err := explain.NewExplainer()
	require.NoError(t, err)
	engine, err := NewEngine(explainer, opts...)
	require.NoError(t, err)
	return engine
}

func TestNewEngine(t *testing.T) {
	t.Run("requires explainer", func(t *testing.T) {
		_, err := NewEngine(nil)
		assert.ErrorIs(t, err, ErrExplainerRequired)
	})

	t.Run("defaults to strict mode", func(t *testing.T) {
		engine := newTestEngine(t)
		assert.Equal(t, core.FilterModeStrict, engine.Mode())
	})

	t.Run("rejects unknown mode", func(t *testing.T) {
		explainer, err := explain.NewExplainer()
		require.NoError(t, err)
		_, err = NewEngine(explainer, WithFilterMode(core.FilterMode(42)))
		assert.ErrorIs(t, err, ErrUnknownFilterMode)
	})

	t.Run("rejects non-positive shortlist size", func(t *testing.T) {
		explainer, err := explain.NewExplainer()
		require.NoError(t, err)
		_, err = NewEngine(explainer, WithShortlistSize(0))
		assert.Error(t, err)
	})
}

func TestInterpretAndRankBudgetAndTransmission(t *testing.T) {
	catalog := []*core.Listing{
		{Id: "auto", Title: "Renault Clio Otomatik", Brand: "Renault", City: "İstanbul", Transmission: "Otomatik", Year: 2020, Price: 450000},
		{Id: "manual", Title: "Renault Megane Manuel", Brand: "Renault", City: "İstanbul", Transmission: "Manuel", Year: 2021, Price: 900000},
	}
	engine := newTestEngine(t)

	result, err := engine.InterpretAndRank(context.Background(), "500000 TL altı otomatik", catalog)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalMatches)
	require.Len(t, result.Shortlist, 1)
	assert.Equal(t, "auto", result.Shortlist[0].Id)
	assert.Contains(t, result.CriteriaSummary, "Bütçe: 500.000 TL altı")
	assert.Contains(t, result.CriteriaSummary, "Vites: otomatik")
}

func TestInterpretAndRankCityAndYear(t *testing.T) {
	catalog := []*core.Listing{
		{Id: "ist", Title: "Fiat Egea", Brand: "Fiat", City: "İstanbul", Year: 2021, Price: 600000},
		{Id: "ank", Title: "Fiat Egea", Brand: "Fiat", City: "Ankara", Year: 2022, Price: 620000},
	}
	engine := newTestEngine(t)

	result, err := engine.InterpretAndRank(context.Background(), "istanbulda 2020 üstü", catalog)
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalMatches)
	require.Len(t, result.Shortlist, 1)
	assert.Equal(t, "ist", result.Shortlist[0].Id)
}

func TestInterpretAndRankEmptyQuery(t *testing.T) {
	engine := newTestEngine(t)

	for _, q := range []string{"", "   ", "\t\n"} {
		result, err := engine.InterpretAndRank(context.Background(), q, testCatalog())
		require.NoError(t, err)
		assert.Equal(t, explain.PromptForQueryMessage, result.Explanation)
		assert.Empty(t, result.Shortlist)
		assert.Zero(t, result.TotalMatches)
	}
}

func TestInterpretAndRankUnknownCity(t *testing.T) {
	catalog := []*core.Listing{
		{Id: "1", Title: "Renault Clio", Brand: "Renault", City: "İstanbul", Year: 2020, Price: 500000},
		{Id: "2", Title: "Toyota Corolla", Brand: "Toyota", City: "Ankara", Year: 2021, Price: 700000},
	}
	engine := newTestEngine(t)

	result, err := engine.InterpretAndRank(context.Background(), "trabzonda araba", catalog)
	require.NoError(t, err)

	assert.Zero(t, result.TotalMatches)
	assert.Empty(t, result.Shortlist)
	assert.Equal(t, explain.NoMatchMessage, result.Explanation)
}

func TestInterpretAndRankCheapestOrdering(t *testing.T) {
	catalog := []*core.Listing{
		{Id: "c", Title: "C", Brand: "A", City: "İstanbul", Year: 2019, Price: 800000},
		{Id: "a", Title: "A", Brand: "B", City: "Ankara", Year: 2020, Price: 300000},
		{Id: "b", Title: "B", Brand: "C", City: "İzmir", Year: 2021, Price: 500000},
	}
	engine := newTestEngine(t)

	result, err := engine.InterpretAndRank(context.Background(), "en ucuz", catalog)
	require.NoError(t, err)

	require.Len(t, result.Shortlist, 3)
	prices := []int{result.Shortlist[0].Price, result.Shortlist[1].Price, result.Shortlist[2].Price}
	assert.Equal(t, []int{300000, 500000, 800000}, prices)
}

func TestInterpretAndRankNilCatalog(t *testing.T) {
	engine := newTestEngine(t)
	_, err := engine.InterpretAndRank(context.Background(), "renault", nil)
	assert.ErrorIs(t, err, core.ErrNilCatalog)
}

func TestInterpretAndRankEmptyCatalog(t *testing.T) {
	engine := newTestEngine(t)
	result, err := engine.InterpretAndRank(context.Background(), "renault", []*core.Listing{})
	require.NoError(t, err)
	assert.Zero(t, result.TotalMatches)
	assert.Equal(t, explain.NoMatchMessage, result.Explanation)
}

func TestInterpretAndRankIdempotent(t *testing.T) {
	catalog := testCatalog()
	engine := newTestEngine(t)

	first, err := engine.InterpretAndRank(context.Background(), "istanbulda renault", catalog)
	require.NoError(t, err)
	second, err := engine.InterpretAndRank(context.Background(), "istanbulda renault", catalog)
	require.NoError(t, err)

	assert.Equal(t, first.TotalMatches, second.TotalMatches)
	assert.Equal(t, first.Shortlist, second.Shortlist)
	assert.Equal(t, first.CriteriaSummary, second.CriteriaSummary)
}

func TestInterpretAndRankBudgetMonotonicity(t *testing.T) {
	catalog := testCatalog()
	engine := newTestEngine(t)

	loose, err := engine.InterpretAndRank(context.Background(), "1500000 tl altı", catalog)
	require.NoError(t, err)
	tight, err := engine.InterpretAndRank(context.Background(), "500000 tl altı", catalog)
	require.NoError(t, err)

	assert.LessOrEqual(t, tight.TotalMatches, loose.TotalMatches)
}

func TestInterpretAndRankCityExactPolicy(t *testing.T) {
	catalog := testCatalog()
	engine := newTestEngine(t)

	result, err := engine.InterpretAndRank(context.Background(), "istanbulda araba", catalog)
	require.NoError(t, err)

	require.NotEmpty(t, result.Shortlist)
	for _, listing := range result.Shortlist {
		assert.Equal(t, "İstanbul", listing.City)
	}
}

func TestInterpretAndRankShortlistBounds(t *testing.T) {
	var catalog []*core.Listing
	for i := 0; i < 15; i++ {
		catalog = append(catalog, &core.Listing{
			Id:    string(rune('a' + i)),
			Title: "Renault Clio",
			Brand: "Renault",
			City:  "İstanbul",
			Year:  2020,
			Price: 400000 + i*1000,
		})
	}
	engine := newTestEngine(t)

	result, err := engine.InterpretAndRank(context.Background(), "renault", catalog)
	require.NoError(t, err)

	assert.Equal(t, 15, result.TotalMatches)
	assert.Len(t, result.Shortlist, ShortlistSize)
	assert.LessOrEqual(t, len(result.Shortlist), result.TotalMatches)
}

func TestInterpretAndRankWeightedMode(t *testing.T) {
	catalog := []*core.Listing{
		{Id: "fit", Title: "Renault Clio", Brand: "Renault", City: "İstanbul", Year: 2021, Price: 450000},
		{Id: "over", Title: "Renault Megane", Brand: "Renault", City: "İstanbul", Year: 2022, Price: 900000},
		{Id: "other", Title: "Toyota Corolla", Brand: "Toyota", City: "Ankara", Year: 2020, Price: 2000000},
	}
	engine := newTestEngine(t, WithFilterMode(core.FilterModeWeighted))

	result, err := engine.InterpretAndRank(context.Background(), "500 bin tl altı renault", catalog)
	require.NoError(t, err)

	// The over-budget Renault is penalized but not excluded; the Toyota
	// has no positive evidence and drops out.
	assert.Equal(t, 2, result.TotalMatches)
	require.Len(t, result.Shortlist, 2)
	assert.Equal(t, "fit", result.Shortlist[0].Id)
	assert.Equal(t, "over", result.Shortlist[1].Id)
}

type recordingMonitor struct {
	started      bool
	catalogSize  int
	criteria     *core.Criteria
	matches      int
	policy       core.SortPolicy
	finished     bool
	finishResult *core.QueryResult
}

func (m *recordingMonitor) Start(_ string, size int) { m.started = true; m.catalogSize = size }
func (m *recordingMonitor) AfterExtraction(c *core.Criteria) { m.criteria = c }
func (m *recordingMonitor) AfterFiltering(n int) { m.matches = n }
func (m *recordingMonitor) AfterRanking(p core.SortPolicy) { m.policy = p }
func (m *recordingMonitor) Finish(r *core.QueryResult) { m.finished = true; m.finishResult = r }

func TestInterpretAndRankWithMonitor(t *testing.T) {
	catalog := testCatalog()
	engine := newTestEngine(t)
	monitor := &recordingMonitor{}

	result, err := engine.InterpretAndRankWithMonitor(context.Background(), "en ucuz renault", catalog, monitor)
	require.NoError(t, err)

	assert.True(t, monitor.started)
	assert.Equal(t, len(catalog), monitor.catalogSize)
	require.NotNil(t, monitor.criteria)
	assert.Equal(t, []string{"renault"}, monitor.criteria.Brands)
	assert.Equal(t, 2, monitor.matches)
	assert.Equal(t, core.SortPriceAscending, monitor.policy)
	assert.True(t, monitor.finished)
	assert.Same(t, result, monitor.finishResult)
}
