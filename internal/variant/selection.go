package variant

import (
	"github.com/google/uuid"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
)

// Resolved is what the add-to-cart collaborator receives: the purchasable
// variant and its unit price. VariantID is uuid.Nil for single-unit products
// with no variant rows; the collaborator then carts by product id.
type Resolved struct {
	ProductID uuid.UUID `json:"productId"`
	VariantID uuid.UUID `json:"variantId,omitempty"`
	UnitPrice float64   `json:"unitPrice"`
}

// Selection is the (chosenColor, chosenSize) pair and its repair rule. Either
// axis may be unset (uuid.Nil). Mutate it only through OnColorChange and
// OnSizeChange; it lives for the duration of one product view.
type Selection struct {
	r       *Resolver
	ColorID uuid.UUID
	SizeID  uuid.UUID
}

// NewSelection seeds from the first in-stock variant in declaration order.
// If nothing is in stock it falls back to the first declared color and size
// so the view always has something selected, possibly unavailable.
func NewSelection(p *domain.Product) *Selection {
	s := &Selection{r: NewResolver(p)}
	for _, v := range p.Variants {
		if !v.InStock {
			continue
		}
		s.ColorID = deref(v.ColorID)
		s.SizeID = deref(v.SizeID)
		return s
	}
	if len(p.Colors) > 0 {
		s.ColorID = p.Colors[0].ID
	}
	if len(p.Sizes) > 0 {
		s.SizeID = p.Sizes[0].ID
	}
	return s
}

// Resolver exposes the resolver the selection was built over.
func (s *Selection) Resolver() *Resolver { return s.r }

// OnColorChange fixes the color axis and repairs the size: if the current
// size is no longer available under the new color it moves to the first
// available size, or to unset when none is.
func (s *Selection) OnColorChange(colorID uuid.UUID) {
	s.ColorID = colorID
	s.SizeID = repair(s.r.SizesFor(colorID), s.SizeID)
}

// OnSizeChange is the symmetric transition.
func (s *Selection) OnSizeChange(sizeID uuid.UUID) {
	s.SizeID = sizeID
	s.ColorID = repair(s.r.ColorsFor(sizeID), s.ColorID)
}

// Resolved returns the purchasable variant for the current pair. A selection
// can be complete yet not purchasable; the boolean is the distinction
// downstream purchase actions must honor.
func (s *Selection) Resolved() (Resolved, bool) {
	if s.r.SingleUnit() {
		if len(s.r.variants) > 0 {
			v := s.r.variants[0]
			return Resolved{
				ProductID: s.r.productID,
				VariantID: v.ID,
				UnitPrice: v.UnitPrice(s.r.basePrice),
			}, v.InStock
		}
		// Implicit single unit at base price.
		return Resolved{ProductID: s.r.productID, UnitPrice: s.r.basePrice}, true
	}
	e, ok := s.r.matrix.Get(s.ColorID, s.SizeID)
	if !ok || !e.InStock {
		return Resolved{}, false
	}
	price := s.r.basePrice
	if e.PriceOverride != nil {
		price = *e.PriceOverride
	}
	return Resolved{ProductID: s.r.productID, VariantID: e.VariantID, UnitPrice: price}, true
}

func repair(options []OptionAvailability, current uuid.UUID) uuid.UUID {
	for _, o := range options {
		if o.Available && o.ID == current {
			return current
		}
	}
	for _, o := range options {
		if o.Available {
			return o.ID
		}
	}
	return uuid.Nil
}

func deref(id *uuid.UUID) uuid.UUID {
	if id == nil {
		return uuid.Nil
	}
	return *id
}
