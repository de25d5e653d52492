package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kolade-dev/vendorhub-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Invoice is a priced point-of-sale document. Monetary totals are captured at
// creation time and never recomputed afterwards.
type Invoice struct {
	ID                    uuid.UUID           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	MerchantID            uuid.UUID           `gorm:"type:uuid;not null;index:idx_invoices_merchant" json:"merchant_id"`
	Status                enums.InvoiceStatus `gorm:"size:32;not null;default:'open'" json:"status"`
	Currency              enums.Currency      `gorm:"size:3;not null;default:'USD'" json:"currency"`
	SubtotalCents         int64               `gorm:"not null" json:"subtotal_cents"`
	TaxRatePercent        decimal.Decimal     `gorm:"type:numeric(5,2);not null;default:0" json:"tax_rate_percent"`
	TaxCents              int64               `gorm:"not null" json:"tax_cents"`
	TotalCents            int64               `gorm:"not null" json:"total_cents"`
	CommissionRatePercent decimal.Decimal     `gorm:"type:numeric(5,2);not null;default:92" json:"commission_rate_percent"`
	MerchantEarningsCents int64               `gorm:"not null" json:"merchant_earnings_cents"`
	PlatformFeeCents      int64               `gorm:"not null" json:"platform_fee_cents"`
	Items                 []InvoiceLineItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt             time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides the default table name.
func (Invoice) TableName() string {
	return "invoices"
}
