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


package core

import "fmt"

// ValidateListing validates a Listing according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Year must not be negative
//
// NOT validated (best-effort by design):
//   - Price and Distance (unparsable values normalize to 0)
//   - Brand, City, Fuel, Transmission (free text, may be empty)
//   - Id (assigned from content when empty)
func ValidateListing(listing *Listing) error {
	if listing == nil {
		return fmt.Errorf("%w: listing is nil", ErrInvalidListing)
	}

	if listing.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidListing, ErrEmptyTitle)
	}

	if listing.Year < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidListing, ErrNegativeYear)
	}

	return nil
}
