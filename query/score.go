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
	"github.com/aracbul/aracbul/core"
)

// Relevance weights for weighted filtering.
const (
	weightBudgetWithin = 4
	weightBudgetOver   = -2
	weightBrand        = 3
	weightCity         = 2
	weightFuel         = 2
	weightTransmission = 2
	weightYear         = 2
)

// Filter applies the criteria to the catalog under the given mode.
//
// Strict mode excludes any listing that violates a recognized criterion.
// Weighted mode scores every listing and keeps positive scores; when no
// criterion was recognized the whole catalog is kept at score zero so the
// ranking policies still have material to work with.
func Filter(catalog []*core.Listing, criteria *core.Criteria, mode core.FilterMode) ([]*core.ScoredListing, error) {
	if catalog == nil {
		return nil, core.ErrNilCatalog
	}

	switch mode {
	case core.FilterModeStrict, core.FilterModeWeighted:
	default:
		return nil, ErrUnknownFilterMode
	}

	matches := make([]*core.ScoredListing, 0, len(catalog))
	empty := criteria == nil || criteria.IsEmpty()

	for _, listing := range catalog {
		if listing == nil {
			continue
		}
		switch mode {
		case core.FilterModeStrict:
			if matchesStrict(listing, criteria) {
				matches = append(matches, &core.ScoredListing{Listing: listing})
			}
		case core.FilterModeWeighted:
			score := scoreWeighted(listing, criteria)
			if score > 0 || empty {
				matches = append(matches, &core.ScoredListing{
					Listing: listing,
					Score:   score,
				})
			}
		}
	}
	return matches, nil
}

func matchesStrict(listing *core.Listing, criteria *core.Criteria) bool {
	if criteria == nil {
		return true
	}

	if len(criteria.Brands) > 0 && !containsString(criteria.Brands, lowerTurkish(listing.Brand)) {
		return false
	}
	if len(criteria.Cities) > 0 && !containsString(criteria.Cities, lowerTurkish(listing.City)) {
		return false
	}
	if len(criteria.Fuels) > 0 && !matchesFuel(listing, criteria.Fuels) {
		return false
	}
	if len(criteria.Transmissions) > 0 && !matchesTransmission(listing, criteria.Transmissions) {
		return false
	}
	if criteria.YearMin != nil && listing.Year < *criteria.YearMin {
		return false
	}
	if criteria.YearMax != nil && listing.Year > *criteria.YearMax {
		return false
	}
	if criteria.BudgetMax != nil && listing.Price > *criteria.BudgetMax {
		return false
	}
	if criteria.BudgetMin != nil && listing.Price < *criteria.BudgetMin {
		return false
	}
	return true
}

// scoreWeighted is the fuzzy policy: substring matches accumulate points,
// an over-budget price costs some but does not exclude.
func scoreWeighted(listing *core.Listing, criteria *core.Criteria) int {
	if criteria == nil {
		return 0
	}

	score := 0
	if criteria.BudgetMax != nil {
		if listing.Price <= *criteria.BudgetMax {
			score += weightBudgetWithin
		} else {
			score += weightBudgetOver
		}
	}
	if len(criteria.Brands) > 0 && anySubstring(lowerTurkish(listing.Brand), criteria.Brands) {
		score += weightBrand
	}
	if len(criteria.Cities) > 0 && anySubstring(lowerTurkish(listing.City), criteria.Cities) {
		score += weightCity
	}
	if len(criteria.Fuels) > 0 && matchesFuel(listing, criteria.Fuels) {
		score += weightFuel
	}
	if len(criteria.Transmissions) > 0 && matchesTransmission(listing, criteria.Transmissions) {
		score += weightTransmission
	}
	if criteria.YearMin != nil && listing.Year >= *criteria.YearMin {
		score += weightYear
	}
	return score
}

func matchesFuel(listing *core.Listing, labels []string) bool {
	fuel := lowerTurkish(listing.Fuel)
	for _, label := range labels {
		if anySubstring(fuel, FuelMatchSet(label)) {
			return true
		}
	}
	return false
}

func matchesTransmission(listing *core.Listing, labels []string) bool {
	transmission := lowerTurkish(listing.Transmission)
	for _, label := range labels {
		if anySubstring(transmission, TransmissionMatchSet(label)) {
			return true
		}
	}
	return false
}

func containsString(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
