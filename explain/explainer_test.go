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


package explain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aracbul/aracbul/ai/mock"
	"github.com/aracbul/aracbul/core"
)

func intPtr(n int) *int { return &n }

func sampleShortlist() []*core.Listing {
	return []*core.Listing{
		{
			Id:       "a1",
			Title:    "Renault Clio 1.0 TCe Joy",
			Brand:    "renault",
			City:     "Ankara",
			Year:     2021,
			Price:    785000,
			Distance: 64000,
		},
		{
			Id:    "b2",
			Title: "Renault Megane 1.3 TCe",
			Brand: "renault",
			City:  "Ankara",
			Year:  2019,
			Price: 920000,
		},
	}
}

func TestExplainNoMatches(t *testing.T) {
	explainer, err := NewExplainer()
	require.NoError(t, err)

	got := explainer.Explain(context.Background(), "uçan araba", &core.Criteria{}, nil, 0)
	assert.Equal(t, NoMatchMessage, got)
}

func TestExplainLocalRendering(t *testing.T) {
	explainer, err := NewExplainer()
	require.NoError(t, err)

	criteria := &core.Criteria{
		Brands: []string{"renault"},
		Cities: []string{"ankara"},
	}
	got := explainer.Explain(context.Background(), "ankarada renault", criteria, sampleShortlist(), 5)

	assert.Contains(t, got, "Toplam 5 uygun ilan")
	assert.Contains(t, got, "Renault Clio 1.0 TCe Joy")
	assert.Contains(t, got, "785.000 TL")
	assert.Contains(t, got, "64.000 km")
	assert.Contains(t, got, "Marka: renault")
}

func TestExplainDelegatesToCompleter(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.Response = "Size Clio'yu öneririm."

	explainer, err := NewExplainer(WithCompleter(completer))
	require.NoError(t, err)

	got := explainer.Explain(context.Background(), "ankarada renault", &core.Criteria{Brands: []string{"renault"}}, sampleShortlist(), 5)

	assert.Equal(t, "Size Clio'yu öneririm.", got)
	assert.Equal(t, 1, completer.CallCount())
	assert.Contains(t, completer.LastUserContent, "ankarada renault")
	assert.Contains(t, completer.LastUserContent, "Renault Clio")
	assert.Contains(t, completer.LastSystemInstruction, "danışman")
}

func TestExplainFallsBackOnCompleterError(t *testing.T) {
	completer := mock.NewMockCompleter()
	completer.Err = errors.New("connection refused")

	explainer, err := NewExplainer(WithCompleter(completer))
	require.NoError(t, err)

	got := explainer.Explain(context.Background(), "renault", &core.Criteria{Brands: []string{"renault"}}, sampleShortlist(), 2)

	assert.Contains(t, got, "Toplam 2 uygun ilan")
	assert.Contains(t, got, "Renault Clio")
}

func TestExplainPromptWindowLimit(t *testing.T) {
	completer := mock.NewMockCompleter()
	explainer, err := NewExplainer(WithCompleter(completer), WithMaxPromptListings(1))
	require.NoError(t, err)

	explainer.Explain(context.Background(), "renault", &core.Criteria{Brands: []string{"renault"}}, sampleShortlist(), 2)

	assert.Contains(t, completer.LastUserContent, "Renault Clio")
	assert.NotContains(t, completer.LastUserContent, "Renault Megane")
}

func TestSummarize(t *testing.T) {
	explainer, err := NewExplainer()
	require.NoError(t, err)

	t.Run("empty criteria", func(t *testing.T) {
		assert.Equal(t, NoCriteriaSummary, explainer.Summarize(&core.Criteria{}))
		assert.Equal(t, NoCriteriaSummary, explainer.Summarize(nil))
	})

	t.Run("full criteria", func(t *testing.T) {
		criteria := &core.Criteria{
			Brands:        []string{"renault"},
			Cities:        []string{"ankara"},
			Fuels:         []string{"dizel"},
			Transmissions: []string{"otomatik"},
			YearMin:       intPtr(2018),
			BudgetMax:     intPtr(900000),
			Sort:          core.SortPriceAscending,
		}
		got := explainer.Summarize(criteria)
		assert.Contains(t, got, "Marka: renault")
		assert.Contains(t, got, "Şehir: ankara")
		assert.Contains(t, got, "Yakıt: dizel")
		assert.Contains(t, got, "Vites: otomatik")
		assert.Contains(t, got, "Yıl: 2018 ve üstü")
		assert.Contains(t, got, "Bütçe: 900.000 TL altı")
		assert.Contains(t, got, "Sıralama: en ucuz")
	})

	t.Run("budget range", func(t *testing.T) {
		criteria := &core.Criteria{
			BudgetMin: intPtr(500000),
			BudgetMax: intPtr(750000),
		}
		got := explainer.Summarize(criteria)
		assert.Contains(t, got, "Bütçe: 500.000 TL - 750.000 TL")
	})
}

func TestAnalyzeListing(t *testing.T) {
	listing := sampleShortlist()[0]

	t.Run("local card without completer", func(t *testing.T) {
		explainer, err := NewExplainer()
		require.NoError(t, err)

		got := explainer.AnalyzeListing(context.Background(), listing)
		assert.Contains(t, got, "Renault Clio")
		assert.Contains(t, got, "Fiyat: 785.000 TL")
		assert.Contains(t, got, "Kilometre: 64.000 km")
	})

	t.Run("delegated", func(t *testing.T) {
		completer := mock.NewMockCompleter()
		completer.Response = "Fiyatı piyasaya göre makul."

		explainer, err := NewExplainer(WithCompleter(completer))
		require.NoError(t, err)

		got := explainer.AnalyzeListing(context.Background(), listing)
		assert.Equal(t, "Fiyatı piyasaya göre makul.", got)
		assert.Contains(t, completer.LastUserContent, "Renault Clio")
	})
}

func TestFormatTL(t *testing.T) {
	tests := []struct {
		amount   int
		expected string
	}{
		{0, "0 TL"},
		{950, "950 TL"},
		{1000, "1.000 TL"},
		{785000, "785.000 TL"},
		{1250000, "1.250.000 TL"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatTL(tt.amount))
	}
}

func TestNewExplainerOptionValidation(t *testing.T) {
	_, err := NewExplainer(WithLogger(nil))
	assert.Error(t, err)

	_, err = NewExplainer(WithMaxPromptListings(0))
	assert.Error(t, err)
}
