package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/catalog"
	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/variant"
)

type ProductUC struct {
	Products domain.ProductRepo
}

func (uc *ProductUC) GetBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if slug == "" {
		return nil, errors.New("empty slug")
	}
	return uc.Products.FindBySlug(ctx, slug)
}

func (uc *ProductUC) Create(ctx context.Context, p *domain.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	return uc.Products.Save(ctx, p)
}

func (uc *ProductUC) Update(ctx context.Context, p *domain.Product) error {
	if p == nil || p.ID == uuid.Nil {
		return errors.New("product id")
	}
	return uc.Products.Save(ctx, p)
}

func (uc *ProductUC) DeleteBySlug(ctx context.Context, slug string) error {
	if slug == "" {
		return errors.New("empty slug")
	}
	return uc.Products.DeleteBySlug(ctx, slug)
}

func (uc *ProductUC) SaveVariant(ctx context.Context, v *domain.Variant) error {
	if v == nil || v.ProductID == uuid.Nil {
		return errors.New("variant product id")
	}
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return uc.Products.SaveVariant(ctx, v)
}

func (uc *ProductUC) DeleteVariant(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("variant id")
	}
	return uc.Products.DeleteVariant(ctx, id)
}

func (uc *ProductUC) AddReview(ctx context.Context, rev *domain.Review) error {
	if rev == nil || rev.ProductID == uuid.Nil {
		return errors.New("review product id")
	}
	if rev.Rating < 1 || rev.Rating > 5 {
		return errors.New("rating out of range")
	}
	if rev.ID == uuid.Nil {
		rev.ID = uuid.New()
	}
	return uc.Products.AddReview(ctx, rev)
}

// SelectionChange names which axis the customer moved. Empty means seed a
// fresh selection for the product.
type SelectionChange string

const (
	ChangeNone  SelectionChange = ""
	ChangeColor SelectionChange = "color"
	ChangeSize  SelectionChange = "size"
)

type SelectionInput struct {
	ColorID uuid.UUID
	SizeID  uuid.UUID
	Change  SelectionChange
}

// SelectionResult is the state handed back to the product view after a
// transition: the repaired pick, both annotated axes, and the resolved
// variant when the pair is purchasable.
type SelectionResult struct {
	ColorID  *uuid.UUID                   `json:"colorId"`
	SizeID   *uuid.UUID                   `json:"sizeId"`
	Sizes    []variant.OptionAvailability `json:"sizes"`
	Colors   []variant.OptionAvailability `json:"colors"`
	Resolved *variant.Resolved            `json:"resolved,omitempty"`
	Rating   catalog.ReviewSummary        `json:"rating"`
}

// ResolveSelection loads the product, replays the caller's selection through
// the state machine and applies the requested transition.
func (uc *ProductUC) ResolveSelection(ctx context.Context, slug string, in SelectionInput) (*SelectionResult, error) {
	p, err := uc.Products.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return SelectionFor(p, in), nil
}

// SelectionFor runs the state machine over an already-loaded product.
func SelectionFor(p *domain.Product, in SelectionInput) *SelectionResult {
	sel := variant.NewSelection(p)
	switch in.Change {
	case ChangeColor:
		sel.SizeID = in.SizeID
		sel.OnColorChange(in.ColorID)
	case ChangeSize:
		sel.ColorID = in.ColorID
		sel.OnSizeChange(in.SizeID)
	}
	res := &SelectionResult{
		ColorID: nilIfUnset(sel.ColorID),
		SizeID:  nilIfUnset(sel.SizeID),
		Sizes:   sel.Resolver().SizesFor(sel.ColorID),
		Colors:  sel.Resolver().ColorsFor(sel.SizeID),
		Rating:  catalog.Summarize(p.Reviews),
	}
	if resolved, ok := sel.Resolved(); ok {
		res.Resolved = &resolved
	}
	return res
}

func nilIfUnset(id uuid.UUID) *uuid.UUID {
	if id == uuid.Nil {
		return nil
	}
	return &id
}

// Slugify builds a URL slug the way the storefront names products.
func Slugify(name string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}
