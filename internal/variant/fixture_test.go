package variant

import (
	"github.com/google/uuid"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
)

// fixture is the product used across the resolver and selection tests:
// sizes [S, M, L], colors [Black, Gray], and in-stock variants for every
// pairing except (Black, L), which has no variant row at all.
type fixture struct {
	product *domain.Product
	black   uuid.UUID
	gray    uuid.UUID
	s       uuid.UUID
	m       uuid.UUID
	l       uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		black: uuid.New(),
		gray:  uuid.New(),
		s:     uuid.New(),
		m:     uuid.New(),
		l:     uuid.New(),
	}
	p := &domain.Product{
		ID:        uuid.New(),
		Slug:      "crewneck-tee",
		Name:      "Crewneck Tee",
		BasePrice: 30,
		Colors: []domain.ColorOption{
			{ID: f.black, Slug: "black", Name: "Black", Position: 0},
			{ID: f.gray, Slug: "gray", Name: "Gray", Position: 1},
		},
		Sizes: []domain.SizeOption{
			{ID: f.s, Slug: "s", Name: "S", Position: 0},
			{ID: f.m, Slug: "m", Name: "M", Position: 1},
			{ID: f.l, Slug: "l", Name: "L", Position: 2},
		},
	}
	for _, pair := range []struct {
		color, size uuid.UUID
	}{
		{f.black, f.s}, {f.black, f.m},
		{f.gray, f.s}, {f.gray, f.m}, {f.gray, f.l},
	} {
		c, z := pair.color, pair.size
		p.Variants = append(p.Variants, domain.Variant{
			ID: uuid.New(), ProductID: p.ID, ColorID: &c, SizeID: &z, InStock: true,
		})
	}
	f.product = p
	return f
}

func (f *fixture) variantFor(color, size uuid.UUID) *domain.Variant {
	for i := range f.product.Variants {
		v := &f.product.Variants[i]
		if *v.ColorID == color && *v.SizeID == size {
			return v
		}
	}
	return nil
}
