package variant

import (
	"github.com/google/uuid"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
)

// OptionAvailability annotates one declared option of an axis. Unavailable
// options are kept (shown disabled), never hidden.
type OptionAvailability struct {
	ID        uuid.UUID `json:"id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Available bool      `json:"isAvailable"`
}

// Resolver answers availability questions for one product against its
// variant matrix. Build it once per product load; it holds no mutable state.
type Resolver struct {
	productID uuid.UUID
	basePrice float64
	colors    []domain.ColorOption
	sizes     []domain.SizeOption
	matrix    *Matrix
	variants  []domain.Variant
}

func NewResolver(p *domain.Product) *Resolver {
	return &Resolver{
		productID: p.ID,
		basePrice: p.BasePrice,
		colors:    p.Colors,
		sizes:     p.Sizes,
		matrix:    NewMatrix(p.Variants),
		variants:  p.Variants,
	}
}

// SizesFor annotates every declared size with its availability under the
// given color, preserving declaration order.
func (r *Resolver) SizesFor(colorID uuid.UUID) []OptionAvailability {
	out := make([]OptionAvailability, 0, len(r.sizes))
	for _, s := range r.sizes {
		out = append(out, OptionAvailability{
			ID:        s.ID,
			Slug:      s.Slug,
			Name:      s.Name,
			Available: r.matrix.InStock(colorID, s.ID),
		})
	}
	return out
}

// ColorsFor is the symmetric operation over declared colors.
func (r *Resolver) ColorsFor(sizeID uuid.UUID) []OptionAvailability {
	out := make([]OptionAvailability, 0, len(r.colors))
	for _, c := range r.colors {
		out = append(out, OptionAvailability{
			ID:        c.ID,
			Slug:      c.Slug,
			Name:      c.Name,
			Available: r.matrix.InStock(c.ID, sizeID),
		})
	}
	return out
}

// SingleUnit reports whether the product declares no colors and no sizes and
// is therefore sold as one implicit always-available unit at base price.
func (r *Resolver) SingleUnit() bool {
	return len(r.colors) == 0 && len(r.sizes) == 0
}
