package models

import (
	"time"

	"github.com/google/uuid"
)

// InvoiceLineItem is one priced line on an invoice. ItemRef is the caller's
// identity key for the line; lines sharing a ref are merged before pricing.
type InvoiceLineItem struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InvoiceID         uuid.UUID `gorm:"type:uuid;not null;index:idx_invoice_line_items_invoice" json:"invoice_id"`
	ItemRef           string    `gorm:"size:128;not null" json:"item_ref"`
	Title             string    `gorm:"size:255;not null" json:"title"`
	UnitPriceCents    int64     `gorm:"not null" json:"unit_price_cents"`
	Quantity          int       `gorm:"not null" json:"quantity"`
	LineSubtotalCents int64     `gorm:"not null" json:"line_subtotal_cents"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName overrides the default table name.
func (InvoiceLineItem) TableName() string {
	return "invoice_line_items"
}
