package models

import (
	"time"

	"github.com/google/uuid"
)

// PriceTier is a quantity band attached to a product. Position preserves the
// order tiers were supplied in; resolution walks tiers in that order and the
// first band containing the quantity wins.
type PriceTier struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	ProductID      uuid.UUID `gorm:"type:uuid;not null;index:idx_price_tiers_product" json:"product_id"`
	Position       int       `gorm:"not null" json:"position"`
	MinQty         int       `gorm:"not null" json:"min_qty"`
	MaxQty         *int      `json:"max_qty,omitempty"`
	UnitPriceCents int64     `gorm:"not null" json:"unit_price_cents"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides the default table name.
func (PriceTier) TableName() string {
	return "price_tiers"
}
