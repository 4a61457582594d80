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
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/aracbul/aracbul/core"
)

// Amounts below this are never treated as money unless a currency or
// magnitude marker qualifies them.
const bareAmountThreshold = 1000

// Fuel trigger words map to a canonical label; the match set for each
// label lists the substrings a listing's fuel field may carry.
var (
	fuelTriggers = map[string]string{
		"dizel":      "dizel",
		"benzin":     "benzin",
		"benzinli":   "benzin",
		"lpg":        "lpg",
		"hibrit":     "hibrit",
		"hybrid":     "hibrit",
		"elektrik":   "elektrik",
		"elektrikli": "elektrik",
	}

	fuelMatchSets = map[string][]string{
		"dizel":    {"dizel"},
		"benzin":   {"benzin"},
		"lpg":      {"lpg", "benzin & lpg"},
		"hibrit":   {"hibrit", "hybrid"},
		"elektrik": {"elektrik"},
	}

	transmissionTriggers = map[string]string{
		"otomatik": "otomatik",
		"manuel":   "manuel",
		"düz":      "manuel",
	}

	// "otomatik" covers the automated gearbox family as sellers label it.
	transmissionMatchSets = map[string][]string{
		"otomatik": {"otomatik", "yarı otomatik", "dct", "cvt", "pdk", "dsg", "triptonik"},
		"manuel":   {"manuel", "düz"},
	}
)

// citySuffixes are the Turkish locative and ablative endings a city name
// may carry in free text. The empty suffix matches the bare name.
var citySuffixes = []string{
	"", "da", "de", "ta", "te",
	"dan", "den", "tan", "ten",
	"daki", "deki", "taki", "teki",
}

var (
	yearLowerRe = regexp.MustCompile(`((?:19|20)\d{2})\s*(?:ve\s*)?(?:üstü|üzeri|sonrası)`)
	yearRangeRe = regexp.MustCompile(`((?:19|20)\d{2})\s*(?:-|ile)\s*((?:19|20)\d{2})`)

	numberRe = regexp.MustCompile(`^\d+(?:\.\d{3})*(?:,\d+)?$`)
)

// Extract interprets a free-text query against the catalog vocabulary.
//
// The query is lowercased with Turkish casing before any matching. Brands
// match as whole words; cities match as whole words with an optional
// locative suffix; fuel and transmission triggers expand to their synonym
// families at filter time. Year bounds and budget amounts follow the
// grammar described in the package documentation. In weighted mode a
// query with no explicit budget takes its largest bare number above the
// money threshold as a budget ceiling guess.
func Extract(query string, vocab *Vocabulary, mode core.FilterMode) *core.Criteria {
	criteria := &core.Criteria{Sort: core.SortDefault}

	lowered := lowerTurkish(query)
	// Apostrophes separate a proper name from its suffix ("Ankara'da");
	// matching runs on the fused form.
	fused := strings.NewReplacer("'", "", "’", "").Replace(lowered)

	if vocab != nil {
		criteria.Brands = matchBrands(fused, vocab.Brands)
		criteria.Cities = matchCities(fused, vocab.Cities)
	}
	criteria.Fuels = matchTriggers(fused, fuelTriggers)
	criteria.Transmissions = matchTriggers(fused, transmissionTriggers)
	criteria.Sort = detectSort(lowered)

	yearNums := extractYears(lowered, criteria)
	extractBudget(lowered, yearNums, mode, criteria)

	return criteria
}

// FuelMatchSet returns the listing-field substrings for a canonical fuel
// label. Unknown labels match themselves.
func FuelMatchSet(label string) []string {
	if set, ok := fuelMatchSets[label]; ok {
		return set
	}
	return []string{label}
}

// TransmissionMatchSet returns the listing-field substrings for a
// canonical transmission label.
func TransmissionMatchSet(label string) []string {
	if set, ok := transmissionMatchSets[label]; ok {
		return set
	}
	return []string{label}
}

func matchBrands(text string, brands []string) []string {
	var found []string
	for _, brand := range brands {
		if containsWholeWord(text, brand) {
			found = append(found, brand)
		}
	}
	return found
}

func matchCities(text string, cities []string) []string {
	var found []string
	for _, city := range cities {
		for _, suffix := range citySuffixes {
			if containsWholeWord(text, city+suffix) {
				found = append(found, city)
				break
			}
		}
	}
	return found
}

func matchTriggers(text string, triggers map[string]string) []string {
	seen := make(map[string]struct{})
	var found []string
	for trigger, label := range triggers {
		if _, dup := seen[label]; dup {
			continue
		}
		if containsWholeWord(text, trigger) {
			seen[label] = struct{}{}
			found = append(found, label)
		}
	}
	// Map iteration order is random; keep output deterministic.
	sort.Strings(found)
	return found
}

func detectSort(text string) core.SortPolicy {
	switch {
	case containsAny(text, "en ucuz", "fiyatı düşük", "ucuza"):
		return core.SortPriceAscending
	case containsAny(text, "en az km", "en düşük km", "kilometresi düşük", "az kilometreli"):
		return core.SortDistanceAscending
	case containsAny(text, "en iyi", "öner"):
		return core.SortBestMatch
	}
	return core.SortDefault
}

// extractYears applies the year grammar and returns every year value a
// pattern consumed, so the budget scanner can skip them.
func extractYears(text string, criteria *core.Criteria) map[int]struct{} {
	consumed := make(map[int]struct{})

	if m := yearRangeRe.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if lo > hi {
			lo, hi = hi, lo
		}
		criteria.YearMin = &lo
		criteria.YearMax = &hi
		consumed[lo] = struct{}{}
		consumed[hi] = struct{}{}
		return consumed
	}

	if m := yearLowerRe.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.Atoi(m[1])
		criteria.YearMin = &lo
		consumed[lo] = struct{}{}
	}
	return consumed
}

// amountSpan is one money-candidate number with its surrounding markers.
type amountSpan struct {
	raw      float64
	factor   int
	explicit bool
	below    bool
	distance bool
	joined   bool
	start    int
	end      int
}

func (a amountSpan) value() int {
	return int(math.Round(a.raw * float64(a.factor)))
}

func (a amountSpan) yearLike() bool {
	v := a.value()
	return a.factor == 1 && v >= 1900 && v <= 2099
}

// extractBudget applies the money grammar. A range (two amounts plus a
// hyphen join or an "arası" marker anywhere) wins over a single "altı"
// bound; in weighted mode a query with neither takes its largest
// resolved amount above the threshold as a budget ceiling guess.
func extractBudget(text string, yearNums map[int]struct{}, mode core.FilterMode, criteria *core.Criteria) {
	tokens := tokenize(text)
	spans := scanAmounts(tokens)
	marker := hasRangeMarker(tokens)

	eligible := spans[:0:0]
	for _, s := range spans {
		if s.distance {
			continue
		}
		if _, consumed := yearNums[s.value()]; consumed && s.yearLike() {
			continue
		}
		eligible = append(eligible, s)
	}

	for i := 0; i+1 < len(eligible); i++ {
		a, b := eligible[i], eligible[i+1]
		if !b.joined && !marker {
			continue
		}
		// "500-700 bin": the magnitude after the pair applies to both.
		if a.factor == 1 && b.factor > 1 {
			a.factor = b.factor
		}
		lo, hi := a.value(), b.value()
		if lo > hi {
			lo, hi = hi, lo
		}
		criteria.BudgetMin = &lo
		criteria.BudgetMax = &hi
		return
	}

	for _, s := range eligible {
		if s.below && s.value() > bareAmountThreshold {
			v := s.value()
			criteria.BudgetMax = &v
			return
		}
	}

	if mode != core.FilterModeWeighted {
		return
	}
	var best *amountSpan
	for i := range eligible {
		s := &eligible[i]
		if s.value() <= bareAmountThreshold {
			continue
		}
		if best == nil || s.value() > best.value() {
			best = s
		}
	}
	if best != nil {
		v := best.value()
		criteria.BudgetMax = &v
	}
}

func hasRangeMarker(tokens []string) bool {
	for _, tok := range tokens {
		if tok == "arası" || tok == "arasında" {
			return true
		}
	}
	return false
}

// scanAmounts walks the token stream and records every number with the
// magnitude, currency, distance, and below markers that follow it.
func scanAmounts(tokens []string) []amountSpan {
	var spans []amountSpan

	for i := 0; i < len(tokens); i++ {
		first, second, ok := parseNumberToken(tokens[i])
		if !ok {
			continue
		}

		span := amountSpan{raw: first.raw, factor: first.factor, explicit: first.explicit, start: i, end: i + 1}
		j := i + 1
		j = consumeMarkers(tokens, j, &span)
		span.end = j

		if second != nil {
			// Hyphen-joined pair: trailing markers apply to both halves.
			pair := amountSpan{raw: second.raw, factor: second.factor, explicit: second.explicit, joined: true, start: i, end: j}
			if pair.factor == 1 && span.factor > 1 {
				pair.factor = span.factor
			}
			if span.factor == 1 && pair.factor > 1 {
				span.factor = pair.factor
			}
			pair.explicit = pair.explicit || span.explicit
			pair.below = span.below
			pair.distance = span.distance
			spans = append(spans, span, pair)
		} else {
			spans = append(spans, span)
		}
		i = j - 1
	}
	return spans
}

func consumeMarkers(tokens []string, j int, span *amountSpan) int {
	for ; j < len(tokens); j++ {
		switch tokens[j] {
		case "bin", "k":
			span.factor *= 1000
			span.explicit = true
		case "milyon", "m":
			span.factor *= 1000000
			span.explicit = true
		case "tl", "₺", "lira":
			span.explicit = true
		case "km", "kilometre":
			span.distance = true
		case "altı", "altında":
			span.below = true
		default:
			return j
		}
	}
	return j
}

// parsedNumber is a number token with any attached magnitude suffix.
type parsedNumber struct {
	raw      float64
	factor   int
	explicit bool
}

// parseNumberToken parses "785000", "1,5", "750k", "2m", "500bin", and the
// hyphen-joined pair form "500-700".
func parseNumberToken(token string) (parsedNumber, *parsedNumber, bool) {
	if lo, hi, ok := strings.Cut(token, "-"); ok {
		a, aok := parsePlainNumber(lo)
		b, bok := parsePlainNumber(hi)
		if aok && bok {
			return a, &b, true
		}
		return parsedNumber{}, nil, false
	}
	n, ok := parsePlainNumber(token)
	return n, nil, ok
}

func parsePlainNumber(token string) (parsedNumber, bool) {
	n := parsedNumber{factor: 1}

	for _, suffix := range [...]struct {
		text   string
		factor int
	}{
		{"milyon", 1000000},
		{"bin", 1000},
		{"tl", 1},
		{"lira", 1},
		{"₺", 1},
		{"m", 1000000},
		{"k", 1000},
	} {
		if strings.HasSuffix(token, suffix.text) && len(token) > len(suffix.text) {
			token = strings.TrimSuffix(token, suffix.text)
			n.factor = suffix.factor
			n.explicit = true
			break
		}
	}

	if !numberRe.MatchString(token) {
		return parsedNumber{}, false
	}
	cleaned := strings.ReplaceAll(token, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	raw, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return parsedNumber{}, false
	}
	n.raw = raw
	return n, true
}
