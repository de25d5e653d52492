package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kolade-dev/vendorhub-backend/api/responses"
	"github.com/kolade-dev/vendorhub-backend/api/validators"
	invoicesvc "github.com/kolade-dev/vendorhub-backend/internal/invoices"
	ledgersvc "github.com/kolade-dev/vendorhub-backend/internal/ledger"
	"github.com/kolade-dev/vendorhub-backend/pkg/enums"
	pkgerrors "github.com/kolade-dev/vendorhub-backend/pkg/errors"
	"github.com/kolade-dev/vendorhub-backend/pkg/logger"
	"github.com/kolade-dev/vendorhub-backend/pkg/types"
)

// CartQuote previews totals for an in-progress cart. Nothing is persisted and
// the total is allowed to go negative when the discount exceeds the cart.
func CartQuote(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload cartQuoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quote, err := svc.QuoteCart(r.Context(), invoicesvc.QuoteCartInput{
			Items:          toLineItemInputs(payload.Items),
			TaxRatePercent: payload.TaxRatePercent,
			DiscountCents:  payload.DiscountCents.Int64(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

// InvoiceCreate finalizes a cart into a persisted invoice and writes both
// ledger events in the same transaction.
func InvoiceCreate(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createInvoiceRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.CreateInvoice(r.Context(), merchantID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, invoice)
	}
}

func InvoiceGet(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoiceID, err := validators.ParseUUIDParam(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoice, err := svc.GetInvoice(r.Context(), merchantID, invoiceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, invoice)
	}
}

func InvoiceList(svc invoicesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListInvoices(r.Context(), merchantID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// InvoiceLedger lists the append-only earnings events behind an invoice. The
// invoice lookup scopes the read to the acting merchant.
func InvoiceLedger(invoices invoicesvc.Service, ledger ledgersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		invoiceID, err := validators.ParseUUIDParam(r, "invoiceId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if _, err := invoices.GetInvoice(r.Context(), merchantID, invoiceID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		events, err := ledger.ListByInvoice(r.Context(), invoiceID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"events": events})
	}
}

// cartLineRequest prices arrive from POS forms as numbers or numeric
// strings; types.Cents coerces both.
type cartLineRequest struct {
	ItemRef        string      `json:"item_ref" validate:"required"`
	Title          string      `json:"title" validate:"required"`
	UnitPriceCents types.Cents `json:"unit_price_cents" validate:"min=0"`
	Quantity       int         `json:"quantity" validate:"required,min=1"`
}

type cartQuoteRequest struct {
	Items          []cartLineRequest `json:"items" validate:"required,min=1,dive"`
	TaxRatePercent *decimal.Decimal  `json:"tax_rate_percent,omitempty"`
	DiscountCents  types.Cents       `json:"discount_cents,omitempty" validate:"omitempty,min=0"`
}

type createInvoiceRequest struct {
	Items                 []cartLineRequest `json:"items" validate:"required,min=1,dive"`
	Currency              string            `json:"currency" validate:"required"`
	TaxRatePercent        *decimal.Decimal  `json:"tax_rate_percent,omitempty"`
	CommissionRatePercent *decimal.Decimal  `json:"commission_rate_percent,omitempty"`
	DiscountCents         types.Cents       `json:"discount_cents,omitempty" validate:"omitempty,min=0"`
}

func (req createInvoiceRequest) toInput() (invoicesvc.CreateInvoiceInput, error) {
	currency, err := enums.ParseCurrency(strings.TrimSpace(req.Currency))
	if err != nil {
		return invoicesvc.CreateInvoiceInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid currency")
	}

	return invoicesvc.CreateInvoiceInput{
		Items:                 toLineItemInputs(req.Items),
		Currency:              currency,
		TaxRatePercent:        req.TaxRatePercent,
		CommissionRatePercent: req.CommissionRatePercent,
		DiscountCents:         req.DiscountCents.Int64(),
	}, nil
}

func toLineItemInputs(items []cartLineRequest) []invoicesvc.LineItemInput {
	out := make([]invoicesvc.LineItemInput, len(items))
	for i, item := range items {
		out[i] = invoicesvc.LineItemInput{
			ItemRef:        item.ItemRef,
			Title:          item.Title,
			UnitPriceCents: item.UnitPriceCents.Int64(),
			Quantity:       item.Quantity,
		}
	}
	return out
}
