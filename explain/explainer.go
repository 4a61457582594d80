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
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aracbul/aracbul/ai"
	"github.com/aracbul/aracbul/core"
)

const (
	// PromptForQueryMessage is returned when the user submits an empty query.
	PromptForQueryMessage = "Lütfen bir arama terimi girin."

	// NoMatchMessage is returned when no listing survives filtering.
	NoMatchMessage = "Üzgünüm, bu kriterlere uygun bir araç bulamadım. " +
		"Bütçenizi veya filtrelerinizi biraz genişletip tekrar deneyebilirsiniz."

	// NoCriteriaSummary labels a query in which nothing was recognized.
	NoCriteriaSummary = "Belirli bir kriter algılanmadı"

	defaultMaxPromptListings = 20
)

// systemInstruction frames the collaborator as a Turkish car sales assistant
// and forbids it from inventing listings that were not handed to it.
const systemInstruction = `Sen deneyimli ve samimi bir araba satış danışmanısın. ` +
	`Sana verilen ilan listesi dışında hiçbir araç uydurmazsın. ` +
	`Müşterinin aradığı kriterlere göre listedeki araçları kısaca değerlendirir, ` +
	`en uygun bir veya iki tanesini öne çıkarırsın. ` +
	`Fiyatları ve yılları listede yazıldığı gibi kullanırsın. ` +
	`Cevabın Türkçe, kısa ve doğal olmalı.`

// analyzeInstruction frames a single-listing assessment.
const analyzeInstruction = `Sen deneyimli bir araba eksperisin. ` +
	`Sana verilen tek bir ilanın fiyatını, yılını ve kilometresini değerlendirip ` +
	`alıcıya kısa bir yorum yaparsın. İlanda olmayan bilgi uydurmazsın. ` +
	`Cevabın Türkçe ve birkaç cümle olmalı.`

// Explainer turns ranked results into Turkish prose, optionally delegating
// to a text-completion collaborator.
type Explainer struct {
	completer         ai.Completer
	maxPromptListings int
	logger            *slog.Logger
}

// Option configures an Explainer.
type Option func(*Explainer) error

// WithCompleter attaches a text-completion collaborator. Without one the
// explainer always renders locally.
func WithCompleter(completer ai.Completer) Option {
	return func(e *Explainer) error {
		e.completer = completer
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Explainer) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		e.logger = logger
		return nil
	}
}

// WithMaxPromptListings bounds how many shortlisted listings are placed in
// the collaborator prompt.
func WithMaxPromptListings(n int) Option {
	return func(e *Explainer) error {
		if n < 1 {
			return fmt.Errorf("max prompt listings must be positive, got %d", n)
		}
		e.maxPromptListings = n
		return nil
	}
}

// NewExplainer creates an explainer. All options are optional; the zero
// configuration renders locally with the default logger.
func NewExplainer(opts ...Option) (*Explainer, error) {
	e := &Explainer{
		maxPromptListings: defaultMaxPromptListings,
		logger:            slog.Default().With("component", "explainer"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Explain produces the user-facing explanation for a ranked result set.
//
// When totalMatches is zero the fixed no-match message is returned. When a
// collaborator is configured it is tried first; any failure falls back to
// the local renderer.
func (e *Explainer) Explain(ctx context.Context, query string, criteria *core.Criteria, shortlist []*core.Listing, totalMatches int) string {
	if totalMatches == 0 || len(shortlist) == 0 {
		return NoMatchMessage
	}

	local := e.renderLocal(criteria, shortlist, totalMatches)
	if e.completer == nil {
		return local
	}

	prompt := e.buildPrompt(query, shortlist, totalMatches)
	text, err := e.completer.Complete(ctx, systemInstruction, prompt)
	if err != nil {
		e.logger.Warn("collaborator unavailable, rendering locally", "err", err)
		return local
	}
	return text
}

// AnalyzeListing produces a short assessment of a single listing.
//
// With a collaborator the assessment is generated; without one (or on any
// failure) a deterministic summary card is returned.
func (e *Explainer) AnalyzeListing(ctx context.Context, listing *core.Listing) string {
	local := renderListingCard(listing)
	if e.completer == nil {
		return local
	}

	text, err := e.completer.Complete(ctx, analyzeInstruction, local)
	if err != nil {
		e.logger.Warn("collaborator unavailable, rendering locally", "err", err)
		return local
	}
	return text
}

// Summarize renders the recognized criteria as a single Turkish line.
func (e *Explainer) Summarize(criteria *core.Criteria) string {
	if criteria == nil {
		return NoCriteriaSummary
	}

	var parts []string
	if len(criteria.Brands) > 0 {
		parts = append(parts, "Marka: "+strings.Join(criteria.Brands, ", "))
	}
	if len(criteria.Cities) > 0 {
		parts = append(parts, "Şehir: "+strings.Join(criteria.Cities, ", "))
	}
	if len(criteria.Fuels) > 0 {
		parts = append(parts, "Yakıt: "+strings.Join(criteria.Fuels, ", "))
	}
	if len(criteria.Transmissions) > 0 {
		parts = append(parts, "Vites: "+strings.Join(criteria.Transmissions, ", "))
	}
	if criteria.YearMin != nil || criteria.YearMax != nil {
		parts = append(parts, "Yıl: "+formatYearRange(criteria.YearMin, criteria.YearMax))
	}
	if criteria.BudgetMin != nil || criteria.BudgetMax != nil {
		parts = append(parts, "Bütçe: "+formatBudget(criteria.BudgetMin, criteria.BudgetMax))
	}
	if criteria.Sort != core.SortDefault {
		parts = append(parts, "Sıralama: "+sortLabel(criteria.Sort))
	}

	if len(parts) == 0 {
		return NoCriteriaSummary
	}
	return strings.Join(parts, " | ")
}

// renderLocal is the deterministic fallback explanation.
func (e *Explainer) renderLocal(criteria *core.Criteria, shortlist []*core.Listing, totalMatches int) string {
	var b strings.Builder

	summary := e.Summarize(criteria)
	fmt.Fprintf(&b, "Aradığınız kriterler: %s\n", summary)
	fmt.Fprintf(&b, "Toplam %d uygun ilan bulundu, en iyi %d tanesi:\n\n", totalMatches, len(shortlist))

	for i, listing := range shortlist {
		fmt.Fprintf(&b, "%d. %s\n", i+1, listingLine(listing))
	}

	return strings.TrimRight(b.String(), "\n")
}

// buildPrompt assembles the collaborator prompt from the query and the
// top listings.
func (e *Explainer) buildPrompt(query string, shortlist []*core.Listing, totalMatches int) string {
	limit := len(shortlist)
	if limit > e.maxPromptListings {
		limit = e.maxPromptListings
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Müşterinin isteği: %s\n", query)
	fmt.Fprintf(&b, "Toplam %d uygun ilan bulundu. Öne çıkanlar:\n", totalMatches)
	for i := 0; i < limit; i++ {
		fmt.Fprintf(&b, "- %s\n", listingLine(shortlist[i]))
	}
	b.WriteString("Bu araçları müşteriye kısaca tanıt ve en uygun olanı öner.")
	return b.String()
}

func listingLine(l *core.Listing) string {
	var fields []string
	fields = append(fields, l.Title)
	if l.Year > 0 {
		fields = append(fields, strconv.Itoa(l.Year))
	}
	if l.Price > 0 {
		fields = append(fields, FormatTL(l.Price))
	}
	if l.Distance > 0 {
		fields = append(fields, formatGrouped(l.Distance)+" km")
	}
	if l.City != "" {
		fields = append(fields, l.City)
	}
	return strings.Join(fields, ", ")
}

func renderListingCard(l *core.Listing) string {
	var b strings.Builder
	fmt.Fprintf(&b, "İlan: %s\n", l.Title)
	if l.Year > 0 {
		fmt.Fprintf(&b, "Yıl: %d\n", l.Year)
	}
	if l.Price > 0 {
		fmt.Fprintf(&b, "Fiyat: %s\n", FormatTL(l.Price))
	}
	if l.Distance > 0 {
		fmt.Fprintf(&b, "Kilometre: %s km\n", formatGrouped(l.Distance))
	}
	if l.City != "" {
		fmt.Fprintf(&b, "Şehir: %s\n", l.City)
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatYearRange(min, max *int) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%d - %d", *min, *max)
	case min != nil:
		return fmt.Sprintf("%d ve üstü", *min)
	case max != nil:
		return fmt.Sprintf("%d ve altı", *max)
	}
	return ""
}

func formatBudget(min, max *int) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%s - %s", FormatTL(*min), FormatTL(*max))
	case max != nil:
		return FormatTL(*max) + " altı"
	case min != nil:
		return FormatTL(*min) + " üstü"
	}
	return ""
}

func sortLabel(policy core.SortPolicy) string {
	switch policy {
	case core.SortPriceAscending:
		return "en ucuz"
	case core.SortDistanceAscending:
		return "en düşük kilometre"
	case core.SortBestMatch:
		return "en iyi eşleşme"
	}
	return "varsayılan"
}

// FormatTL renders an amount with Turkish dot grouping and the TL suffix.
func FormatTL(amount int) string {
	return formatGrouped(amount) + " TL"
}

func formatGrouped(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	if n < 0 {
		return "-" + b.String()
	}
	return b.String()
}
