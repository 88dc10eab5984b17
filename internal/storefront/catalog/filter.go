package catalog

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"techmobile/internal/domain"
)

// Sort modes for the display list.
const (
	SortRelevance = "relevance"
	SortNewest    = "newest"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
)

// CategoryAll selects every category.
const CategoryAll = "all"

// DefaultMaxPriceCents is the upper bound of the price slider.
const DefaultMaxPriceCents int64 = 250000

// FilterState is the full set of catalog narrowing and sorting criteria.
// It is ephemeral UI state, reflected into the URL query rather than the
// persistence store. Price bounds are inclusive; build values with
// NewFilterState so the zero max does not filter everything out.
type FilterState struct {
	Category      string
	Brands        []string
	PriceMinCents int64
	PriceMaxCents int64
	Search        string
	Sort          string
}

// NewFilterState returns the unfiltered default state.
func NewFilterState() FilterState {
	return FilterState{
		Category:      CategoryAll,
		PriceMinCents: 0,
		PriceMaxCents: DefaultMaxPriceCents,
		Sort:          SortRelevance,
	}
}

// HasBrand reports whether brand is part of the selection.
func (f FilterState) HasBrand(brand string) bool {
	for _, b := range f.Brands {
		if b == brand {
			return true
		}
	}
	return false
}

// ToggleBrand adds or removes brand from the selection.
func (f *FilterState) ToggleBrand(brand string) {
	for i, b := range f.Brands {
		if b == brand {
			f.Brands = append(f.Brands[:i], f.Brands[i+1:]...)
			return
		}
	}
	f.Brands = append(f.Brands, brand)
}

// Query reflects the state into URL query values.
func (f FilterState) Query() url.Values {
	q := url.Values{}
	if f.Category != "" && f.Category != CategoryAll {
		q.Set("category", f.Category)
	}
	for _, b := range f.Brands {
		q.Add("brand", b)
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.PriceMinCents > 0 {
		q.Set("min", strconv.FormatInt(f.PriceMinCents, 10))
	}
	if f.PriceMaxCents != DefaultMaxPriceCents {
		q.Set("max", strconv.FormatInt(f.PriceMaxCents, 10))
	}
	if f.Sort != "" && f.Sort != SortRelevance {
		q.Set("sort", f.Sort)
	}
	return q
}

// ParseQuery rebuilds a FilterState from URL query values. Unknown or
// malformed values fall back to the defaults.
func ParseQuery(q url.Values) FilterState {
	f := NewFilterState()
	if v := q.Get("category"); v != "" {
		f.Category = v
	}
	f.Brands = append(f.Brands, q["brand"]...)
	f.Search = q.Get("search")
	if v, err := strconv.ParseInt(q.Get("min"), 10, 64); err == nil && v >= 0 {
		f.PriceMinCents = v
	}
	if v, err := strconv.ParseInt(q.Get("max"), 10, 64); err == nil && v >= 0 {
		f.PriceMaxCents = v
	}
	switch v := q.Get("sort"); v {
	case SortNewest, SortPriceAsc, SortPriceDesc:
		f.Sort = v
	}
	return f
}

// Apply produces the display list for products under f. Stages run in a
// fixed order: search, category, brands, price, then sort. The input slice
// is never mutated and a degenerate input yields an empty result.
func Apply(products []domain.Product, f FilterState) []domain.Product {
	result := make([]domain.Product, 0, len(products))

	search := strings.ToLower(strings.TrimSpace(f.Search))
	for _, p := range products {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if f.Category != "" && f.Category != CategoryAll && p.Category != f.Category {
			continue
		}
		if len(f.Brands) > 0 && !f.HasBrand(p.Brand) {
			continue
		}
		if p.PriceCents < f.PriceMinCents || p.PriceCents > f.PriceMaxCents {
			continue
		}
		result = append(result, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].PriceCents < result[j].PriceCents
		})
	case SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].PriceCents > result[j].PriceCents
		})
	case SortNewest:
		// Reverse of the catalog's natural fetch order.
		for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
			result[i], result[j] = result[j], result[i]
		}
	}

	return result
}

func matchesSearch(p domain.Product, lowered string) bool {
	return strings.Contains(strings.ToLower(p.Title), lowered) ||
		strings.Contains(strings.ToLower(p.Category), lowered) ||
		strings.Contains(strings.ToLower(p.Brand), lowered)
}

// Brands derives the selectable brand options for a category ("all" for
// the whole catalog): deduplicated, blanks dropped, alphabetical.
func Brands(products []domain.Product, category string) []string {
	seen := map[string]bool{}
	var out []string
	for _, p := range products {
		if category != "" && category != CategoryAll && p.Category != category {
			continue
		}
		if p.Brand == "" || seen[p.Brand] {
			continue
		}
		seen[p.Brand] = true
		out = append(out, p.Brand)
	}
	sort.Strings(out)
	return out
}
