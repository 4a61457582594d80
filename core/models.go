package core

import (
	"encoding/hex"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// IDFromContent generates a deterministic listing ID from text content using
// BLAKE2b hashing. Listings scraped without a source ID get the same ID for
// the same content on every ingest.
func IDFromContent(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// FilterMode selects the filtering policy applied to a catalog.
type FilterMode int

const (
	// FilterModeStrict excludes every listing that fails a set criterion
	// exactly. This is the default mode.
	FilterModeStrict FilterMode = iota + 1
	// FilterModeWeighted scores listings fuzzily and only discards those
	// with no positive evidence. Over-budget listings are penalized, not
	// excluded.
	FilterModeWeighted
)

func (m FilterMode) String() string {
	switch m {
	case FilterModeStrict:
		return "strict"
	case FilterModeWeighted:
		return "weighted"
	default:
		return "unknown"
	}
}

// SortPolicy determines the ordering of ranked listings.
type SortPolicy int

const (
	SortDefault SortPolicy = iota
	SortPriceAscending
	SortDistanceAscending
	SortBestMatch
)

func (s SortPolicy) String() string {
	switch s {
	case SortPriceAscending:
		return "priceAscending"
	case SortDistanceAscending:
		return "distanceAscending"
	case SortBestMatch:
		return "bestMatch"
	default:
		return "default"
	}
}

// Listing represents one catalog entry (a vehicle listing).
// Immutable once loaded. Brand, City, Fuel and Transmission are free-text
// strings compared case-insensitively; Price (TL) and Distance (km) are
// normalized at ingestion, 0 when the source value was unparsable.
type Listing struct {
	Id           string
	Title        string
	Brand        string
	City         string
	Fuel         string
	Transmission string
	Year         int
	Price        int
	Distance     int
	URL          string
	Image        string
	ScrapedAt    time.Time // When the listing was scraped from its source
}

// Criteria holds the structured constraints derived from a free-text query.
// Optional numeric fields are nil when the query did not set them; the string
// sets may be empty. A Criteria is populated during one extraction pass and
// read-only afterwards.
type Criteria struct {
	BudgetMin     *int
	BudgetMax     *int
	Brands        []string
	Cities        []string
	Fuels         []string
	Transmissions []string
	YearMin       *int
	YearMax       *int
	Sort          SortPolicy
}

// IsEmpty reports whether no constraint was recognized at all.
// The sort policy is not a constraint.
func (c *Criteria) IsEmpty() bool {
	return c.BudgetMin == nil && c.BudgetMax == nil &&
		len(c.Brands) == 0 && len(c.Cities) == 0 &&
		len(c.Fuels) == 0 && len(c.Transmissions) == 0 &&
		c.YearMin == nil && c.YearMax == nil
}

// ScoredListing pairs a listing with its weighted score.
// Transient: used only while ranking, discarded after shortlist truncation.
type ScoredListing struct {
	Listing *Listing
	Score   int
}

// QueryResult is the outcome of interpreting and ranking one query.
// TotalMatches reports the full filtered count; Shortlist is truncated to
// the display limit.
type QueryResult struct {
	CriteriaSummary string
	TotalMatches    int
	Shortlist       []*Listing
	Explanation     string
}

// Checkpoint records the outcome of an ingestion run for one source.
type Checkpoint struct {
	Source     string
	Digest     string
	Count      int
	IngestedAt time.Time
}
