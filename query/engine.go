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
	"fmt"
	"log/slog"
	"strings"

	"github.com/aracbul/aracbul/core"
	"github.com/aracbul/aracbul/explain"
)

// Engine interprets free-text queries against a catalog snapshot and
// produces explained, ranked results.
type Engine struct {
	explainer     *explain.Explainer
	mode          core.FilterMode
	shortlistSize int
	logger        *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithFilterMode selects strict or weighted filtering. The default is
// strict.
func WithFilterMode(mode core.FilterMode) Option {
	return func(e *Engine) error {
		switch mode {
		case core.FilterModeStrict, core.FilterModeWeighted:
			e.mode = mode
			return nil
		}
		return fmt.Errorf("%w: %d", ErrUnknownFilterMode, mode)
	}
}

// WithShortlistSize overrides how many listings the result presents.
func WithShortlistSize(size int) Option {
	return func(e *Engine) error {
		if size < 1 {
			return fmt.Errorf("shortlist size must be positive, got %d", size)
		}
		e.shortlistSize = size
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates a query engine. The explainer is required; everything
// else defaults.
func NewEngine(explainer *explain.Explainer, opts ...Option) (*Engine, error) {
	if explainer == nil {
		return nil, ErrExplainerRequired
	}

	e := &Engine{
		explainer:     explainer,
		mode:          core.FilterModeStrict,
		shortlistSize: ShortlistSize,
		logger:        slog.Default().With("component", "query-engine"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Mode returns the engine's filter mode.
func (e *Engine) Mode() core.FilterMode {
	return e.mode
}

// InterpretAndRank runs the full pipeline: extract criteria from the
// query, filter the catalog, rank, shortlist, and explain.
//
// A nil catalog is an error; an empty one flows through and yields the
// no-match message. A blank query short-circuits to a prompt for input
// without touching the catalog.
func (e *Engine) InterpretAndRank(ctx context.Context, query string, catalog []*core.Listing) (*core.QueryResult, error) {
	return e.InterpretAndRankWithMonitor(ctx, query, catalog, NoopMonitor{})
}

// InterpretAndRankWithMonitor is InterpretAndRank with stage observation.
func (e *Engine) InterpretAndRankWithMonitor(ctx context.Context, query string, catalog []*core.Listing, monitor QueryMonitor) (*core.QueryResult, error) {
	if catalog == nil {
		return nil, core.ErrNilCatalog
	}
	if monitor == nil {
		monitor = NoopMonitor{}
	}

	monitor.Start(query, len(catalog))

	if strings.TrimSpace(query) == "" {
		result := &core.QueryResult{
			CriteriaSummary: explain.NoCriteriaSummary,
			Explanation:     explain.PromptForQueryMessage,
		}
		monitor.Finish(result)
		return result, nil
	}

	vocab := BuildVocabulary(catalog)
	criteria := Extract(query, vocab, e.mode)
	monitor.AfterExtraction(criteria)

	matches, err := Filter(catalog, criteria, e.mode)
	if err != nil {
		return nil, err
	}
	monitor.AfterFiltering(len(matches))

	Rank(matches, criteria.Sort, e.mode)
	monitor.AfterRanking(criteria.Sort)

	shortlist := Shortlist(matches, e.shortlistSize)

	result := &core.QueryResult{
		CriteriaSummary: e.explainer.Summarize(criteria),
		TotalMatches:    len(matches),
		Shortlist:       shortlist,
		Explanation:     e.explainer.Explain(ctx, query, criteria, shortlist, len(matches)),
	}

	e.logger.Debug("query interpreted",
		"mode", e.mode.String(),
		"criteria", result.CriteriaSummary,
		"matches", result.TotalMatches,
		"shortlisted", len(shortlist))

	monitor.Finish(result)
	return result, nil
}
