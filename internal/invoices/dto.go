package invoices

import (
	"time"

	"github.com/google/uuid"
	"github.com/kolade-dev/vendorhub-backend/pkg/db/models"
)

// InvoiceDTO represents a priced invoice returned to clients.
type InvoiceDTO struct {
	ID                    uuid.UUID     `json:"id"`
	MerchantID            uuid.UUID     `json:"merchant_id"`
	Status                string        `json:"status"`
	Currency              string        `json:"currency"`
	SubtotalCents         int64         `json:"subtotal_cents"`
	TaxRatePercent        string        `json:"tax_rate_percent"`
	TaxCents              int64         `json:"tax_cents"`
	TotalCents            int64         `json:"total_cents"`
	CommissionRatePercent string        `json:"commission_rate_percent"`
	MerchantEarningsCents int64         `json:"merchant_earnings_cents"`
	PlatformFeeCents      int64         `json:"platform_fee_cents"`
	Items                 []LineItemDTO `json:"items,omitempty"`
	CreatedAt             time.Time     `json:"created_at"`
}

// LineItemDTO represents one priced invoice line.
type LineItemDTO struct {
	ID                uuid.UUID `json:"id"`
	ItemRef           string    `json:"item_ref"`
	Title             string    `json:"title"`
	UnitPriceCents    int64     `json:"unit_price_cents"`
	Quantity          int       `json:"quantity"`
	LineSubtotalCents int64     `json:"line_subtotal_cents"`
}

// CartQuoteDTO is the stateless totals preview for an in-progress cart.
type CartQuoteDTO struct {
	SubtotalCents int64         `json:"subtotal_cents"`
	TaxCents      int64         `json:"tax_cents"`
	DiscountCents int64         `json:"discount_cents"`
	TotalCents    int64         `json:"total_cents"`
	Items         []LineItemDTO `json:"items"`
}

// NewInvoiceDTO builds a DTO from the persisted model.
func NewInvoiceDTO(invoice *models.Invoice) *InvoiceDTO {
	dto := &InvoiceDTO{
		ID:                    invoice.ID,
		MerchantID:            invoice.MerchantID,
		Status:                invoice.Status.String(),
		Currency:              invoice.Currency.String(),
		SubtotalCents:         invoice.SubtotalCents,
		TaxRatePercent:        invoice.TaxRatePercent.String(),
		TaxCents:              invoice.TaxCents,
		TotalCents:            invoice.TotalCents,
		CommissionRatePercent: invoice.CommissionRatePercent.String(),
		MerchantEarningsCents: invoice.MerchantEarningsCents,
		PlatformFeeCents:      invoice.PlatformFeeCents,
		CreatedAt:             invoice.CreatedAt,
	}

	if len(invoice.Items) > 0 {
		dto.Items = make([]LineItemDTO, len(invoice.Items))
		for i, item := range invoice.Items {
			dto.Items[i] = LineItemDTO{
				ID:                item.ID,
				ItemRef:           item.ItemRef,
				Title:             item.Title,
				UnitPriceCents:    item.UnitPriceCents,
				Quantity:          item.Quantity,
				LineSubtotalCents: item.LineSubtotalCents,
			}
		}
	}
	return dto
}
