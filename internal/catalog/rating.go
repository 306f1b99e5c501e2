package catalog

import "github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"

// AverageRating derives a product's display rating: the arithmetic mean of
// its review ratings, 0 when it has none. Always in [0,5], never an error,
// so unreviewed products sort last under descending rating.
func AverageRating(reviews []domain.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// ReviewSummary is the aggregate exposed on product detail payloads.
type ReviewSummary struct {
	AverageRating float64 `json:"averageRating"`
	TotalCount    int     `json:"totalCount"`
}

func Summarize(reviews []domain.Review) ReviewSummary {
	return ReviewSummary{
		AverageRating: AverageRating(reviews),
		TotalCount:    len(reviews),
	}
}
