package invoices

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kolade-dev/vendorhub-backend/internal/cartledger"
	"github.com/kolade-dev/vendorhub-backend/internal/ledger"
	"github.com/kolade-dev/vendorhub-backend/internal/pricing"
	"github.com/kolade-dev/vendorhub-backend/pkg/db/models"
	"github.com/kolade-dev/vendorhub-backend/pkg/enums"
	pkgerrors "github.com/kolade-dev/vendorhub-backend/pkg/errors"
	"github.com/kolade-dev/vendorhub-backend/pkg/pagination"
	"github.com/kolade-dev/vendorhub-backend/pkg/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes the point-of-sale invoice flow.
type Service interface {
	QuoteCart(ctx context.Context, input QuoteCartInput) (*CartQuoteDTO, error)
	CreateInvoice(ctx context.Context, merchantID uuid.UUID, input CreateInvoiceInput) (*InvoiceDTO, error)
	GetInvoice(ctx context.Context, merchantID, invoiceID uuid.UUID) (*InvoiceDTO, error)
	ListInvoices(ctx context.Context, merchantID uuid.UUID, params pagination.Params) (*InvoiceListResult, error)
}

// LineItemInput is one raw cart line from the POS client. Lines sharing an
// ItemRef merge into a single invoice line before pricing.
type LineItemInput struct {
	ItemRef        string
	Title          string
	UnitPriceCents int64
	Quantity       int
}

// QuoteCartInput previews totals for an in-progress cart without persisting.
type QuoteCartInput struct {
	Items          []LineItemInput
	TaxRatePercent *decimal.Decimal
	DiscountCents  int64
}

// CreateInvoiceInput holds the validated payload to create an invoice.
type CreateInvoiceInput struct {
	Items                 []LineItemInput
	Currency              enums.Currency
	TaxRatePercent        *decimal.Decimal
	CommissionRatePercent *decimal.Decimal
	DiscountCents         int64
}

// InvoiceListResult is one page of invoices plus the cursor for the next.
type InvoiceListResult struct {
	Invoices   []InvoiceDTO `json:"invoices"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo                  Repository
	ledgerRepo            ledger.Repository
	tx                    txRunner
	defaultTaxRate        decimal.Decimal
	defaultCommissionRate decimal.Decimal
}

// NewService constructs an invoice service instance.
func NewService(repo Repository, ledgerRepo ledger.Repository, tx txRunner, defaultTaxRatePercent, defaultCommissionRate decimal.Decimal) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("invoice repository required")
	}
	if ledgerRepo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:                  repo,
		ledgerRepo:            ledgerRepo,
		tx:                    tx,
		defaultTaxRate:        defaultTaxRatePercent,
		defaultCommissionRate: defaultCommissionRate,
	}, nil
}

// QuoteCart previews cart totals. The total is not clamped; a discount larger
// than the cart yields a negative preview the client can surface.
func (s *service) QuoteCart(ctx context.Context, input QuoteCartInput) (*CartQuoteDTO, error) {
	cart, err := buildCart(input.Items)
	if err != nil {
		return nil, err
	}

	taxRate := s.taxRateFraction(input.TaxRatePercent)
	totals, err := cartledger.ComputeTotals(cart, taxRate, input.DiscountCents)
	if err != nil {
		return nil, err
	}

	items := make([]LineItemDTO, len(cart))
	for i, line := range cart {
		items[i] = LineItemDTO{
			ItemRef:           line.ID,
			Title:             line.Title,
			UnitPriceCents:    line.UnitPriceCents,
			Quantity:          line.Quantity,
			LineSubtotalCents: line.UnitPriceCents * int64(line.Quantity),
		}
	}

	return &CartQuoteDTO{
		SubtotalCents: totals.SubtotalCents,
		TaxCents:      totals.TaxCents,
		DiscountCents: input.DiscountCents,
		TotalCents:    totals.TotalCents,
		Items:         items,
	}, nil
}

// CreateInvoice prices the cart, records the invoice and both ledger events
// inside a single transaction.
func (s *service) CreateInvoice(ctx context.Context, merchantID uuid.UUID, input CreateInvoiceInput) (*InvoiceDTO, error) {
	if merchantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant id is required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice requires at least one line item")
	}
	if !input.Currency.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid currency %q", input.Currency))
	}

	cart, err := buildCart(input.Items)
	if err != nil {
		return nil, err
	}

	taxRatePercent := s.defaultTaxRate
	if input.TaxRatePercent != nil {
		taxRatePercent = *input.TaxRatePercent
	}
	commissionRate := s.defaultCommissionRate
	if input.CommissionRatePercent != nil {
		commissionRate = *input.CommissionRatePercent
	}

	totals, err := cartledger.ComputeTotals(cart, percentToFraction(taxRatePercent), input.DiscountCents)
	if err != nil {
		return nil, err
	}
	if totals.TotalCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount exceeds invoice total").
			WithDetails(map[string]int64{
				"subtotal_cents": totals.SubtotalCents,
				"tax_cents":      totals.TaxCents,
				"discount_cents": input.DiscountCents,
			})
	}

	split, err := pricing.SplitEarnings(totals.TotalCents, commissionRate)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		MerchantID:            merchantID,
		Status:                enums.InvoiceStatusOpen,
		Currency:              input.Currency,
		SubtotalCents:         totals.SubtotalCents,
		TaxRatePercent:        taxRatePercent,
		TaxCents:              totals.TaxCents,
		TotalCents:            totals.TotalCents,
		CommissionRatePercent: commissionRate,
		MerchantEarningsCents: split.MerchantEarningsCents,
		PlatformFeeCents:      split.PlatformFeeCents,
		Items:                 toLineItemModels(cart),
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.CreateInvoice(ctx, invoice); err != nil {
			return err
		}

		txLedger := s.ledgerRepo.WithTx(tx)
		events := []models.LedgerEvent{
			{
				InvoiceID:   invoice.ID,
				MerchantID:  merchantID,
				Type:        enums.LedgerEventMerchantEarnings,
				AmountCents: split.MerchantEarningsCents,
				Metadata:    types.Metadata{"total_cents": totals.TotalCents},
			},
			{
				InvoiceID:   invoice.ID,
				MerchantID:  merchantID,
				Type:        enums.LedgerEventPlatformFee,
				AmountCents: split.PlatformFeeCents,
				Metadata:    types.Metadata{"total_cents": totals.TotalCents},
			},
		}
		for i := range events {
			if err := txLedger.Create(ctx, &events[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating invoice")
	}

	return NewInvoiceDTO(invoice), nil
}

func (s *service) GetInvoice(ctx context.Context, merchantID, invoiceID uuid.UUID) (*InvoiceDTO, error) {
	if merchantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant id is required")
	}
	if invoiceID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invoice id is required")
	}

	invoice, err := s.repo.FindByMerchantAndID(ctx, merchantID, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "invoice not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading invoice")
	}
	return NewInvoiceDTO(invoice), nil
}

func (s *service) ListInvoices(ctx context.Context, merchantID uuid.UUID, params pagination.Params) (*InvoiceListResult, error) {
	if merchantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant id is required")
	}

	rows, err := s.repo.ListByMerchant(ctx, merchantID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing invoices")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	result := &InvoiceListResult{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	result.Invoices = make([]InvoiceDTO, len(rows))
	for i := range rows {
		result.Invoices[i] = *NewInvoiceDTO(&rows[i])
	}
	return result, nil
}

func (s *service) taxRateFraction(override *decimal.Decimal) decimal.Decimal {
	if override != nil {
		return percentToFraction(*override)
	}
	return percentToFraction(s.defaultTaxRate)
}

func percentToFraction(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(decimal.NewFromInt(100))
}

// buildCart merges raw lines by ItemRef using the ledger's add semantics.
func buildCart(items []LineItemInput) ([]cartledger.LineItem, error) {
	var cart []cartledger.LineItem
	for _, item := range items {
		next, err := cartledger.AddItem(cart, cartledger.LineItem{
			ID:             strings.TrimSpace(item.ItemRef),
			Title:          item.Title,
			UnitPriceCents: item.UnitPriceCents,
			Quantity:       item.Quantity,
		})
		if err != nil {
			return nil, err
		}
		cart = next
	}
	return cart, nil
}

func toLineItemModels(cart []cartledger.LineItem) []models.InvoiceLineItem {
	out := make([]models.InvoiceLineItem, len(cart))
	for i, line := range cart {
		out[i] = models.InvoiceLineItem{
			ItemRef:           line.ID,
			Title:             line.Title,
			UnitPriceCents:    line.UnitPriceCents,
			Quantity:          line.Quantity,
			LineSubtotalCents: line.UnitPriceCents * int64(line.Quantity),
		}
	}
	return out
}
