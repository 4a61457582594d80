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
	"sort"

	"github.com/aracbul/aracbul/core"
)

// ShortlistSize is how many ranked listings are presented.
const ShortlistSize = 6

// Rank orders the matches in place by the requested policy and returns
// the same slice. Sorting is stable, so equal keys keep catalog order.
//
// The default policy depends on the filter mode: weighted results order
// by relevance score with price breaking ties, strict results order by
// price with mileage breaking ties.
func Rank(matches []*core.ScoredListing, policy core.SortPolicy, mode core.FilterMode) []*core.ScoredListing {
	switch policy {
	case core.SortPriceAscending:
		sort.SliceStable(matches, func(i, j int) bool {
			a, b := matches[i].Listing, matches[j].Listing
			if a.Price != b.Price {
				return a.Price < b.Price
			}
			return a.Distance < b.Distance
		})
	case core.SortDistanceAscending:
		sort.SliceStable(matches, func(i, j int) bool {
			a, b := matches[i].Listing, matches[j].Listing
			if a.Distance != b.Distance {
				return a.Distance < b.Distance
			}
			return a.Price < b.Price
		})
	case core.SortBestMatch:
		sort.SliceStable(matches, func(i, j int) bool {
			return bestMatchScore(matches[i].Listing) > bestMatchScore(matches[j].Listing)
		})
	default:
		if mode == core.FilterModeWeighted {
			sort.SliceStable(matches, func(i, j int) bool {
				a, b := matches[i], matches[j]
				if a.Score != b.Score {
					return a.Score > b.Score
				}
				return a.Listing.Price < b.Listing.Price
			})
		} else {
			sort.SliceStable(matches, func(i, j int) bool {
				a, b := matches[i].Listing, matches[j].Listing
				if a.Price != b.Price {
					return a.Price < b.Price
				}
				return a.Distance < b.Distance
			})
		}
	}
	return matches
}

// Shortlist returns up to size listings from the head of the ranking.
func Shortlist(matches []*core.ScoredListing, size int) []*core.Listing {
	if size > len(matches) {
		size = len(matches)
	}
	shortlist := make([]*core.Listing, 0, size)
	for _, m := range matches[:size] {
		shortlist = append(shortlist, m.Listing)
	}
	return shortlist
}

// bestMatchScore trades off recency against price and mileage: a model
// year is worth 5000 points, spent at 1 point per 200 TL of price and
// 1 point per 10 km on the clock.
func bestMatchScore(l *core.Listing) int {
	return l.Year*5000 - l.Price/200 - l.Distance/10
}
