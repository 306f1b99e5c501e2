package variant

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
)

func TestNewSelection_SeedsFromFirstInStockVariant(t *testing.T) {
	f := newFixture()
	f.variantFor(f.black, f.s).InStock = false

	sel := NewSelection(f.product)

	assert.Equal(t, f.black, sel.ColorID, "second variant (black, M) is first in stock")
	assert.Equal(t, f.m, sel.SizeID)
}

func TestNewSelection_AllSoldOutFallsBackToFirstDeclaredPair(t *testing.T) {
	f := newFixture()
	for i := range f.product.Variants {
		f.product.Variants[i].InStock = false
	}

	sel := NewSelection(f.product)

	assert.Equal(t, f.black, sel.ColorID)
	assert.Equal(t, f.s, sel.SizeID)
	_, ok := sel.Resolved()
	assert.False(t, ok, "selected but not purchasable")
}

// Selecting Black while on size L reassigns the size to S, the first
// available one under the new color.
func TestOnColorChange_RepairsSizeToFirstAvailable(t *testing.T) {
	f := newFixture()
	sel := NewSelection(f.product)
	sel.OnColorChange(f.gray)
	sel.OnSizeChange(f.l)
	require.Equal(t, f.l, sel.SizeID)

	sel.OnColorChange(f.black)

	assert.Equal(t, f.black, sel.ColorID)
	assert.Equal(t, f.s, sel.SizeID)
}

func TestOnColorChange_KeepsSizeWhenStillAvailable(t *testing.T) {
	f := newFixture()
	sel := NewSelection(f.product)
	sel.OnSizeChange(f.m)

	sel.OnColorChange(f.gray)

	assert.Equal(t, f.m, sel.SizeID, "M exists in gray; no repair needed")
}

func TestOnColorChange_NoAvailableSizesUnsetsThenRepairs(t *testing.T) {
	f := newFixture()
	// black runs out entirely
	f.variantFor(f.black, f.s).InStock = false
	f.variantFor(f.black, f.m).InStock = false
	sel := NewSelection(f.product)

	sel.OnColorChange(f.black)
	assert.Equal(t, uuid.Nil, sel.SizeID, "no in-stock size under black")
	_, ok := sel.Resolved()
	assert.False(t, ok)

	sel.OnColorChange(f.gray)
	assert.Equal(t, f.s, sel.SizeID, "first available size under gray")
	_, ok = sel.Resolved()
	assert.True(t, ok)
}

func TestOnSizeChange_RepairsColorSymmetrically(t *testing.T) {
	f := newFixture()
	sel := NewSelection(f.product)
	require.Equal(t, f.black, sel.ColorID)

	sel.OnSizeChange(f.l)

	assert.Equal(t, f.l, sel.SizeID)
	assert.Equal(t, f.gray, sel.ColorID, "black has no L; gray is first available")
}

func TestResolved_UsesPriceOverride(t *testing.T) {
	f := newFixture()
	override := 42.5
	f.variantFor(f.black, f.s).Price = &override
	sel := NewSelection(f.product)
	require.Equal(t, f.black, sel.ColorID)
	require.Equal(t, f.s, sel.SizeID)

	res, ok := sel.Resolved()
	require.True(t, ok)
	assert.Equal(t, f.variantFor(f.black, f.s).ID, res.VariantID)
	assert.Equal(t, override, res.UnitPrice)
	assert.Equal(t, f.product.ID, res.ProductID)
}

func TestResolved_BasePriceWhenNoOverride(t *testing.T) {
	f := newFixture()
	sel := NewSelection(f.product)

	res, ok := sel.Resolved()
	require.True(t, ok)
	assert.Equal(t, f.product.BasePrice, res.UnitPrice)
}

func TestResolved_SingleUnitProductAlwaysPurchasableAtBasePrice(t *testing.T) {
	p := &domain.Product{ID: uuid.New(), BasePrice: 18}
	sel := NewSelection(p)

	res, ok := sel.Resolved()
	require.True(t, ok)
	assert.Equal(t, uuid.Nil, res.VariantID, "implicit unit carts by product id")
	assert.Equal(t, 18.0, res.UnitPrice)
}

func TestResolved_SelectionValidityDistinctFromPurchasability(t *testing.T) {
	f := newFixture()
	f.variantFor(f.gray, f.l).InStock = false
	sel := NewSelection(f.product)
	sel.ColorID = f.gray
	sel.SizeID = f.l

	_, ok := sel.Resolved()
	assert.False(t, ok, "both axes selected, pair not purchasable")
}
