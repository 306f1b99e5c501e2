package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/catalog"
	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
)

const (
	facetCacheKey = "catalog:filters"
	facetCacheTTL = 10 * time.Minute
)

// CatalogUC executes catalog queries: it normalizes the criteria, runs the
// predicate through the product store and annotates each item with its
// derived rating. Calls are idempotent modulo underlying data changes.
type CatalogUC struct {
	Products domain.ProductRepo
	Cache    domain.KVCache
}

func (uc *CatalogUC) List(ctx context.Context, f domain.FilterCriteria) (*domain.CatalogPage, error) {
	f = f.Normalized()
	items, total, err := uc.Products.List(ctx, f)
	if err != nil {
		return nil, err
	}
	page := &domain.CatalogPage{
		Items:      make([]domain.CatalogItem, 0, len(items)),
		Total:      total,
		Page:       f.Page,
		TotalPages: domain.PageCount(total, f.Limit),
	}
	for _, p := range items {
		page.Items = append(page.Items, domain.CatalogItem{
			Product: p,
			Rating:  catalog.AverageRating(p.Reviews),
		})
	}
	return page, nil
}

// Filters returns the facet metadata for the storefront, read through the
// injected cache when one is configured.
func (uc *CatalogUC) Filters(ctx context.Context) (*domain.FacetMetadata, error) {
	if uc.Cache != nil {
		if raw, err := uc.Cache.Get(ctx, facetCacheKey); err == nil {
			var m domain.FacetMetadata
			if json.Unmarshal([]byte(raw), &m) == nil {
				return &m, nil
			}
		}
	}
	m, err := uc.Products.FacetMetadata(ctx)
	if err != nil {
		return nil, err
	}
	if uc.Cache != nil {
		if raw, err := json.Marshal(m); err == nil {
			if err := uc.Cache.Set(ctx, facetCacheKey, string(raw), facetCacheTTL); err != nil {
				log.Warn().Err(err).Msg("facet cache write")
			}
		}
	}
	return m, nil
}

// InvalidateFilters drops the cached facet metadata after an admin edit.
func (uc *CatalogUC) InvalidateFilters(ctx context.Context) {
	if uc.Cache != nil {
		_ = uc.Cache.Del(ctx, facetCacheKey)
	}
}
