package domain

import "math"

type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortNewest     SortKey = "newest"
	SortPriceAsc   SortKey = "price_asc"
	SortPriceDesc  SortKey = "price_desc"
	SortRating     SortKey = "rating"
)

// ParseSortKey maps a raw sort parameter to one of the supported keys.
// Anything unrecognized falls back to the default, newest first.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortPopularity, SortNewest, SortPriceAsc, SortPriceDesc, SortRating:
		return SortKey(s)
	}
	return SortNewest
}

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// FilterCriteria is the normalized representation of a catalog query. It is
// built once per request and never mutated; page or sort changes construct a
// new value.
type FilterCriteria struct {
	Gender   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
	Colors   []string
	Sizes    []string
	Sort     SortKey
	Page     int
	Limit    int
}

// Normalized returns a copy with page, limit and sort clamped to valid
// values. The receiver is left untouched.
func (f FilterCriteria) Normalized() FilterCriteria {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}
	if f.Sort == "" {
		f.Sort = SortNewest
	}
	return f
}

// Offset is the row offset implied by page and limit.
func (f FilterCriteria) Offset() int {
	return (f.Page - 1) * f.Limit
}

// CatalogItem is a product annotated with its derived rating.
type CatalogItem struct {
	Product
	Rating float64 `json:"rating"`
}

type CatalogPage struct {
	Items      []CatalogItem `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

// PageCount computes ceil(total/limit) for a positive limit.
func PageCount(total int64, limit int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Ceil(float64(total) / float64(limit)))
}

// FacetMetadata describes the filter surface of the storefront: every value
// a catalog query may facet on, plus the store-wide price range.
type FacetMetadata struct {
	Genders    []Gender   `json:"genders"`
	Categories []Category `json:"categories"`
	Colors     []string   `json:"colors"`
	Sizes      []string   `json:"sizes"`
	PriceRange PriceRange `json:"priceRange"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}
