package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/catalog"
	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Save(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *ProductRepo) FindBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var p domain.Product
	err := r.preloaded(r.db.WithContext(ctx)).First(&p, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// List applies the predicate description built from the criteria. The count
// runs over conditions only; joins and grouping exist purely for ordering.
func (r *ProductRepo) List(ctx context.Context, f domain.FilterCriteria) ([]domain.Product, int64, error) {
	f = f.Normalized()
	built := catalog.Build(f)

	base := r.db.WithContext(ctx).Model(&domain.Product{})
	for _, c := range built.Conds {
		base = base.Where(c.Expr, c.Args...)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := base.Session(&gorm.Session{})
	for _, j := range built.Joins {
		q = q.Joins(j)
	}
	if built.Group != "" {
		q = q.Group(built.Group)
	}
	for _, o := range built.Order {
		q = q.Order(o)
	}

	var list []domain.Product
	err := r.preloaded(q).Offset(f.Offset()).Limit(f.Limit).Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *ProductRepo) DeleteBySlug(ctx context.Context, slug string) error {
	var p domain.Product
	if err := r.db.WithContext(ctx).First(&p, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return err
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&domain.Variant{}, &domain.ColorOption{}, &domain.SizeOption{}, &domain.Review{}} {
			if err := tx.Where("product_id = ?", p.ID).Delete(m).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&domain.Product{}, "id = ?", p.ID).Error
	})
}

func (r *ProductRepo) SaveVariant(ctx context.Context, v *domain.Variant) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *ProductRepo) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("empty variant id")
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Variant{}).Error
}

func (r *ProductRepo) AddReview(ctx context.Context, rev *domain.Review) error {
	if rev.ID == uuid.Nil {
		rev.ID = uuid.New()
	}
	if rev.CreatedAt.IsZero() {
		rev.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(rev).Error
}

// FacetMetadata gathers everything the storefront can filter on.
func (r *ProductRepo) FacetMetadata(ctx context.Context) (*domain.FacetMetadata, error) {
	m := &domain.FacetMetadata{}
	db := r.db.WithContext(ctx)

	if err := db.Order("slug asc").Find(&m.Genders).Error; err != nil {
		return nil, err
	}
	if err := db.Order("name asc").Find(&m.Categories).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.ColorOption{}).
		Distinct("slug").Where("slug <> ''").Order("slug asc").Pluck("slug", &m.Colors).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.SizeOption{}).
		Distinct("slug").Where("slug <> ''").Order("slug asc").Pluck("slug", &m.Sizes).Error; err != nil {
		return nil, err
	}
	row := struct {
		Min float64
		Max float64
	}{}
	if err := db.Model(&domain.Product{}).Where("active = ?", true).
		Select("COALESCE(MIN(base_price),0) AS min, COALESCE(MAX(base_price),0) AS max").
		Scan(&row).Error; err != nil {
		return nil, err
	}
	m.PriceRange = domain.PriceRange{Min: row.Min, Max: row.Max}
	return m, nil
}

// preloaded attaches the product's child collections in declaration order;
// variants load in creation order so selection seeding is deterministic.
func (r *ProductRepo) preloaded(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Gender").
		Preload("Category").
		Preload("Colors", func(db *gorm.DB) *gorm.DB { return db.Order("position asc, created_at asc") }).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("position asc, created_at asc") }).
		Preload("Variants", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") }).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("created_at asc") })
}
