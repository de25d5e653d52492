package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/kolade-dev/vendorhub-backend/pkg/db/models"
)

// ProductDTO represents the merchant product payload returned to clients.
type ProductDTO struct {
	ID                    uuid.UUID  `json:"id"`
	MerchantID            uuid.UUID  `json:"merchant_id"`
	SKU                   string     `json:"sku"`
	Title                 string     `json:"title"`
	Description           string     `json:"description,omitempty"`
	PriceCents            int64      `json:"price_cents"`
	Currency              string     `json:"currency"`
	CommissionRatePercent string     `json:"commission_rate_percent"`
	IsActive              bool       `json:"is_active"`
	PriceTiers            []TierDTO  `json:"price_tiers,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// TierDTO represents one quantity band on a product.
type TierDTO struct {
	ID             uuid.UUID `json:"id"`
	Position       int       `json:"position"`
	MinQty         int       `json:"min_qty"`
	MaxQty         *int      `json:"max_qty,omitempty"`
	UnitPriceCents int64     `json:"unit_price_cents"`
}

// QuoteDTO is the priced answer for a requested quantity.
type QuoteDTO struct {
	ProductID             uuid.UUID `json:"product_id"`
	Quantity              int       `json:"quantity"`
	UnitPriceCents        int64     `json:"unit_price_cents"`
	SubtotalCents         int64     `json:"subtotal_cents"`
	Currency              string    `json:"currency"`
	MerchantEarningsCents int64     `json:"merchant_earnings_cents"`
	PlatformFeeCents      int64     `json:"platform_fee_cents"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:                    product.ID,
		MerchantID:            product.MerchantID,
		SKU:                   product.SKU,
		Title:                 product.Title,
		Description:           product.Description,
		PriceCents:            product.PriceCents,
		Currency:              product.Currency.String(),
		CommissionRatePercent: product.CommissionRatePercent.String(),
		IsActive:              product.IsActive,
		CreatedAt:             product.CreatedAt,
		UpdatedAt:             product.UpdatedAt,
	}

	if len(product.PriceTiers) > 0 {
		dto.PriceTiers = make([]TierDTO, len(product.PriceTiers))
		for i, tier := range product.PriceTiers {
			dto.PriceTiers[i] = TierDTO{
				ID:             tier.ID,
				Position:       tier.Position,
				MinQty:         tier.MinQty,
				MaxQty:         tier.MaxQty,
				UnitPriceCents: tier.UnitPriceCents,
			}
		}
	}
	return dto
}
