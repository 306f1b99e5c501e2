package domain

import (
	"time"

	"github.com/google/uuid"
)

// GenderUnisex is the universal gender marker: unisex products appear in
// every gender-filtered view.
const GenderUnisex = "unisex"

type Gender struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug      string    `gorm:"uniqueIndex;size:60" json:"slug"`
	Name      string    `gorm:"size:100" json:"name"`
	CreatedAt time.Time `json:"-"`
}

// Category supports a single level of nesting: a category either has no
// parent or points at a top-level one.
type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Slug      string     `gorm:"uniqueIndex;size:100" json:"slug"`
	Name      string     `gorm:"size:140" json:"name"`
	ParentID  *uuid.UUID `gorm:"type:uuid;index" json:"parentId,omitempty"`
	CreatedAt time.Time  `json:"-"`
}

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string    `gorm:"uniqueIndex;size:140" json:"slug"`
	Name        string    `gorm:"size:180" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	BasePrice   float64   `gorm:"type:decimal(12,2)" json:"basePrice"`
	GenderID    uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Gender      Gender    `json:"gender"`
	CategoryID  uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Category    Category  `json:"category"`
	Active      bool      `gorm:"default:true;index" json:"-"`

	Colors   []ColorOption `json:"colors"`
	Sizes    []SizeOption  `json:"sizes"`
	Variants []Variant     `json:"variants"`
	Reviews  []Review      `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ColorOption is a color a product declares. Declaring a color does not make
// any (color, size) pairing purchasable; only a Variant row does.
type ColorOption struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Slug      string    `gorm:"size:60" json:"slug"`
	Name      string    `gorm:"size:100" json:"name"`
	Position  int       `gorm:"type:int;default:0" json:"-"`
	CreatedAt time.Time `json:"-"`
}

type SizeOption struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Slug      string    `gorm:"size:60" json:"slug"`
	Name      string    `gorm:"size:100" json:"name"`
	Position  int       `gorm:"type:int;default:0" json:"-"`
	CreatedAt time.Time `json:"-"`
}

// Variant is one purchasable (color, size) combination. The triple
// (ProductID, ColorID, SizeID) is unique per product. A pairing with no
// variant row is implicitly unavailable, same as InStock=false.
type Variant struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID  `gorm:"type:uuid;index;uniqueIndex:idx_variant_pair" json:"-"`
	ColorID   *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_variant_pair" json:"colorId,omitempty"`
	SizeID    *uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_variant_pair" json:"sizeId,omitempty"`
	Price     *float64   `gorm:"type:decimal(12,2)" json:"price,omitempty"`
	InStock   bool       `gorm:"default:false" json:"inStock"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

// UnitPrice resolves the price override against the product base price.
func (v Variant) UnitPrice(basePrice float64) float64 {
	if v.Price != nil {
		return *v.Price
	}
	return basePrice
}

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProductID uuid.UUID `gorm:"type:uuid;index" json:"-"`
	Author    string    `gorm:"size:140" json:"author"`
	Rating    int       `gorm:"type:int" json:"rating"`
	Body      string    `gorm:"type:text" json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}
