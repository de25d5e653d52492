package controllers

import (
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/kolade-dev/vendorhub-backend/api/responses"
	"github.com/kolade-dev/vendorhub-backend/api/validators"
	"github.com/kolade-dev/vendorhub-backend/internal/pricing"
	productsvc "github.com/kolade-dev/vendorhub-backend/internal/products"
	"github.com/kolade-dev/vendorhub-backend/pkg/enums"
	pkgerrors "github.com/kolade-dev/vendorhub-backend/pkg/errors"
	"github.com/kolade-dev/vendorhub-backend/pkg/logger"
	"github.com/kolade-dev/vendorhub-backend/pkg/types"
)

// ProductCreate handles product creation for the acting merchant.
func ProductCreate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), merchantID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ProductUpdate applies a partial update to one of the merchant's products.
func ProductUpdate(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toUpdateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), merchantID, productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func ProductDelete(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteProduct(r.Context(), merchantID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ProductGet(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), merchantID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func ProductList(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
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

		result, err := svc.ListProducts(r.Context(), merchantID, params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// ProductReplaceTiers swaps the product's tier ladder for the supplied one.
// The stored order is the order the merchant sent.
func ProductReplaceTiers(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload replaceTiersRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		tiers, err := payload.toTierInputs()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.ReplaceTiers(r.Context(), merchantID, productID, tiers)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ProductQuote prices a quantity against the product's tier ladder.
func ProductQuote(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merchantID, err := merchantFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParseUUIDParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity, err := validators.ParseQueryInt(r, "quantity", 0, 1, 1_000_000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if quantity == 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "quantity query parameter required"))
			return
		}

		quote, err := svc.QuotePrice(r.Context(), merchantID, productID, quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quote)
	}
}

type createProductRequest struct {
	SKU                   string           `json:"sku" validate:"required"`
	Title                 string           `json:"title" validate:"required"`
	Description           string           `json:"description,omitempty"`
	PriceCents            types.Cents      `json:"price_cents" validate:"min=0"`
	Currency              string           `json:"currency" validate:"required"`
	CommissionRatePercent *decimal.Decimal `json:"commission_rate_percent,omitempty"`
	IsActive              *bool            `json:"is_active,omitempty"`
	PriceTiers            []tierRequest    `json:"price_tiers,omitempty"`
}

type updateProductRequest struct {
	SKU         *string      `json:"sku,omitempty"`
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	PriceCents  *types.Cents `json:"price_cents,omitempty" validate:"omitempty,min=0"`
	Currency    *string      `json:"currency,omitempty"`
	IsActive    *bool        `json:"is_active,omitempty"`
}

// tierRequest fields are deliberately untyped: merchant forms submit tier
// bounds and prices as numbers or numeric strings, and NormalizeTiers
// coerces them in one place.
type tierRequest struct {
	MinQty         any `json:"min_qty"`
	MaxQty         any `json:"max_qty,omitempty"`
	UnitPriceCents any `json:"unit_price_cents"`
}

type replaceTiersRequest struct {
	PriceTiers []tierRequest `json:"price_tiers"`
}

func (req createProductRequest) toCreateInput() (productsvc.CreateProductInput, error) {
	currency, err := enums.ParseCurrency(strings.TrimSpace(req.Currency))
	if err != nil {
		return productsvc.CreateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid currency")
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	tiers, err := toTierInputs(req.PriceTiers)
	if err != nil {
		return productsvc.CreateProductInput{}, err
	}

	return productsvc.CreateProductInput{
		SKU:                   strings.TrimSpace(req.SKU),
		Title:                 strings.TrimSpace(req.Title),
		Description:           req.Description,
		PriceCents:            req.PriceCents.Int64(),
		Currency:              currency,
		CommissionRatePercent: req.CommissionRatePercent,
		IsActive:              isActive,
		PriceTiers:            tiers,
	}, nil
}

func (req updateProductRequest) toUpdateInput() (productsvc.UpdateProductInput, error) {
	input := productsvc.UpdateProductInput{
		SKU:         req.SKU,
		Title:       req.Title,
		Description: req.Description,
		IsActive:    req.IsActive,
	}
	if req.PriceCents != nil {
		price := req.PriceCents.Int64()
		input.PriceCents = &price
	}

	if req.Currency != nil {
		currency, err := enums.ParseCurrency(strings.TrimSpace(*req.Currency))
		if err != nil {
			return productsvc.UpdateProductInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid currency")
		}
		input.Currency = &currency
	}

	return input, nil
}

func (req replaceTiersRequest) toTierInputs() ([]productsvc.TierInput, error) {
	return toTierInputs(req.PriceTiers)
}

func toTierInputs(tiers []tierRequest) ([]productsvc.TierInput, error) {
	raw := make([]pricing.TierInput, len(tiers))
	for i, tier := range tiers {
		raw[i] = pricing.TierInput{
			MinQty:         tier.MinQty,
			MaxQty:         tier.MaxQty,
			UnitPriceCents: tier.UnitPriceCents,
		}
	}

	normalized, err := pricing.NormalizeTiers(raw)
	if err != nil {
		return nil, err
	}

	out := make([]productsvc.TierInput, len(normalized))
	for i, tier := range normalized {
		out[i] = productsvc.TierInput{
			MinQty:         tier.MinQty,
			MaxQty:         tier.MaxQty,
			UnitPriceCents: tier.UnitPriceCents,
		}
	}
	return out, nil
}
