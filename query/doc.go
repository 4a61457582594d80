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


// Package query interprets free-text Turkish vehicle queries against an
// in-memory catalog snapshot and ranks the matches.
//
// The pipeline has four stages, all deterministic and side-effect free:
//
//  1. Extraction: the query is lowercased with Turkish casing rules and
//     scanned for brands, cities (including locative suffixes), fuel and
//     transmission synonyms, year bounds, budget amounts, and sort hints.
//     The catalog supplies the brand and city vocabularies.
//  2. Filtering: strict mode excludes any listing violating a recognized
//     criterion; weighted mode scores every listing and discards only
//     non-positive scores.
//  3. Ranking: stable sort by the requested policy (price, mileage, a
//     composite best-match score, or weighted relevance).
//  4. Shortlisting: the top candidates are kept for presentation.
//
// The Engine orchestrates the stages and hands the outcome to an explain
// renderer. A QueryMonitor can observe each stage for diagnostics.
package query
