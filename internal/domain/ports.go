package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrCacheMiss = errors.New("cache miss")
)

type ProductRepo interface {
	List(ctx context.Context, f FilterCriteria) ([]Product, int64, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	Save(ctx context.Context, p *Product) error
	DeleteBySlug(ctx context.Context, slug string) error
	SaveVariant(ctx context.Context, v *Variant) error
	DeleteVariant(ctx context.Context, id uuid.UUID) error
	AddReview(ctx context.Context, rev *Review) error
	FacetMetadata(ctx context.Context) (*FacetMetadata, error)
}

type CustomerRepo interface {
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	Save(ctx context.Context, c *Customer) error
}

// KVCache is an injected cache collaborator with a lifetime owned by the
// caller. Get returns ErrCacheMiss for absent keys.
type KVCache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
