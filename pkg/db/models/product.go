package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kolade-dev/vendorhub-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Product is a sellable listing owned by a merchant. Its base price applies
// whenever no quantity tier matches.
type Product struct {
	ID                    uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MerchantID            uuid.UUID       `gorm:"type:uuid;not null;index:idx_products_merchant" json:"merchant_id"`
	SKU                   string          `gorm:"size:64;not null;uniqueIndex:idx_products_merchant_sku,composite:merchant_id" json:"sku"`
	Title                 string          `gorm:"size:255;not null" json:"title"`
	Description           string          `gorm:"type:text" json:"description,omitempty"`
	PriceCents            int64           `gorm:"not null" json:"price_cents"`
	Currency              enums.Currency  `gorm:"size:3;not null;default:'USD'" json:"currency"`
	CommissionRatePercent decimal.Decimal `gorm:"type:numeric(5,2);not null;default:92" json:"commission_rate_percent"`
	IsActive              bool            `gorm:"not null;default:true" json:"is_active"`
	PriceTiers            []PriceTier     `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"price_tiers,omitempty"`
	CreatedAt             time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides the default table name.
func (Product) TableName() string {
	return "products"
}
