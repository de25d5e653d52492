package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/kolade-dev/vendorhub-backend/pkg/enums"
	"github.com/kolade-dev/vendorhub-backend/pkg/types"
)

// LedgerEvent is an append-only earnings record. Events are never updated or
// deleted once written.
type LedgerEvent struct {
	ID          uuid.UUID             `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	InvoiceID   uuid.UUID             `gorm:"type:uuid;not null;index:idx_ledger_events_invoice" json:"invoice_id"`
	MerchantID  uuid.UUID             `gorm:"type:uuid;not null;index:idx_ledger_events_merchant" json:"merchant_id"`
	Type        enums.LedgerEventType `gorm:"size:32;not null" json:"type"`
	AmountCents int64                 `gorm:"not null" json:"amount_cents"`
	Metadata    types.Metadata        `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt   time.Time             `gorm:"autoCreateTime" json:"created_at"`
}

// TableName overrides the default table name.
func (LedgerEvent) TableName() string {
	return "ledger_events"
}
