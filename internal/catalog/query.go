// Package catalog holds the pure catalog-query core: the predicate builder
// that turns a FilterCriteria into a declarative storage query, and the
// rating aggregation over reviews. Nothing here touches a database.
package catalog

import (
	"strings"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
)

// Cond is one WHERE condition with its bind arguments.
type Cond struct {
	Expr string
	Args []any
}

// Query is the declarative predicate description produced from a
// FilterCriteria. The storage adapter applies it verbatim; conditions are
// combined with AND, order expressions in priority order.
type Query struct {
	Conds []Cond
	Joins []string
	Group string
	Order []string
}

const reviewsJoin = "LEFT JOIN reviews ON reviews.product_id = products.id"

// Build translates the criteria into conditions and an ordering rule.
// Omitted facets impose no constraint; supplied ones combine with AND.
func Build(f domain.FilterCriteria) Query {
	q := Query{}
	q.where("products.active = ?", true)

	if g := strings.TrimSpace(f.Gender); g != "" {
		// Inclusive OR: unisex products belong to every gendered view.
		q.where("products.gender_id IN (SELECT id FROM genders WHERE slug IN ?)",
			[]string{g, domain.GenderUnisex})
	}
	if c := strings.TrimSpace(f.Category); c != "" {
		// Direct category match or membership in one of its immediate
		// subcategories. The hierarchy is a single level deep.
		q.where("products.category_id IN (SELECT id FROM categories WHERE slug = ? OR parent_id = (SELECT id FROM categories WHERE slug = ?))",
			c, c)
	}
	if f.MinPrice != nil {
		q.where("products.base_price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q.where("products.base_price <= ?", *f.MaxPrice)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q.where("(LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?)", like, like)
	}
	if len(f.Colors) > 0 {
		// Per-product existence check over declared colors, independent of
		// stock. Unknown slugs simply match nothing.
		q.where("EXISTS (SELECT 1 FROM color_options co WHERE co.product_id = products.id AND co.slug IN ?)",
			lowered(f.Colors))
	}
	if len(f.Sizes) > 0 {
		q.where("EXISTS (SELECT 1 FROM size_options so WHERE so.product_id = products.id AND so.slug IN ?)",
			lowered(f.Sizes))
	}

	q.order(f.Sort)
	return q
}

func (q *Query) where(expr string, args ...any) {
	q.Conds = append(q.Conds, Cond{Expr: expr, Args: args})
}

func (q *Query) order(sort domain.SortKey) {
	switch sort {
	case domain.SortPopularity:
		q.Joins = append(q.Joins, reviewsJoin)
		q.Group = "products.id"
		q.Order = append(q.Order, "COUNT(reviews.id) DESC")
	case domain.SortRating:
		// COALESCE keeps unreviewed products at 0, sorting them last, the
		// same value AverageRating derives for an empty collection.
		q.Joins = append(q.Joins, reviewsJoin)
		q.Group = "products.id"
		q.Order = append(q.Order, "COALESCE(AVG(reviews.rating), 0) DESC")
	case domain.SortPriceAsc:
		q.Order = append(q.Order, "products.base_price ASC")
	case domain.SortPriceDesc:
		q.Order = append(q.Order, "products.base_price DESC")
	case domain.SortNewest:
		q.Order = append(q.Order, "products.created_at DESC")
	default:
		q.Order = append(q.Order, "products.created_at DESC")
	}
	// Stable tie-break on creation order, id last for determinism.
	if sort != domain.SortNewest && sort != "" {
		q.Order = append(q.Order, "products.created_at ASC")
	}
	q.Order = append(q.Order, "products.id ASC")
}

func lowered(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.ToLower(strings.TrimSpace(s)); s != "" {
			out = append(out, s)
		}
	}
	return out
}
