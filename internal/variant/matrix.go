// Package variant implements product variant resolution: a (color, size)
// availability matrix, the axis resolver that answers "which sizes are
// buyable for this color" (and the symmetric question), and the selection
// state machine that keeps a two-dimensional pick consistent. Everything is
// pure and synchronous; callers rebuild the matrix wholesale when the
// variant list changes.
package variant

import (
	"github.com/google/uuid"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
)

// Entry is the availability record for one (color, size) pairing.
type Entry struct {
	VariantID     uuid.UUID
	InStock       bool
	PriceOverride *float64
}

type pairKey struct {
	color uuid.UUID
	size  uuid.UUID
}

// Matrix indexes a product's variants by (colorID, sizeID). A pairing absent
// from the matrix is implicitly unavailable.
type Matrix struct {
	entries map[pairKey]Entry
}

// NewMatrix builds the lookup from the full variant list. Duplicate pairs
// should not occur; if they do, the last row wins.
func NewMatrix(variants []domain.Variant) *Matrix {
	m := &Matrix{entries: make(map[pairKey]Entry, len(variants))}
	for _, v := range variants {
		m.entries[keyFor(v.ColorID, v.SizeID)] = Entry{
			VariantID:     v.ID,
			InStock:       v.InStock,
			PriceOverride: v.Price,
		}
	}
	return m
}

// Get looks up a pairing. uuid.Nil stands for an undeclared axis.
func (m *Matrix) Get(colorID, sizeID uuid.UUID) (Entry, bool) {
	e, ok := m.entries[pairKey{color: colorID, size: sizeID}]
	return e, ok
}

// InStock reports whether the pairing exists and is purchasable.
func (m *Matrix) InStock(colorID, sizeID uuid.UUID) bool {
	e, ok := m.Get(colorID, sizeID)
	return ok && e.InStock
}

func (m *Matrix) Len() int { return len(m.entries) }

func keyFor(colorID, sizeID *uuid.UUID) pairKey {
	k := pairKey{}
	if colorID != nil {
		k.color = *colorID
	}
	if sizeID != nil {
		k.size = *sizeID
	}
	return k
}
