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

import "errors"

// Domain validation errors
var (
	// ErrInvalidListing indicates a Listing failed validation.
	ErrInvalidListing = errors.New("invalid listing")

	// ErrEmptyTitle indicates the Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrNegativeYear indicates a negative model year.
	ErrNegativeYear = errors.New("year cannot be negative")

	// ErrNilCatalog indicates the caller supplied no catalog at all.
	// A missing catalog is an ingestion or wiring bug and must fail fast
	// instead of masquerading as an empty result.
	ErrNilCatalog = errors.New("catalog is nil")
)
