package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/kolade-dev/vendorhub-backend/internal/pricing"
	"github.com/kolade-dev/vendorhub-backend/pkg/db/models"
	"github.com/kolade-dev/vendorhub-backend/pkg/enums"
	pkgerrors "github.com/kolade-dev/vendorhub-backend/pkg/errors"
	"github.com/kolade-dev/vendorhub-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes merchant product management and price quoting.
type Service interface {
	CreateProduct(ctx context.Context, merchantID uuid.UUID, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, merchantID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, merchantID, productID uuid.UUID) error
	GetProduct(ctx context.Context, merchantID, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, merchantID uuid.UUID, params pagination.Params) (*ProductListResult, error)
	ReplaceTiers(ctx context.Context, merchantID, productID uuid.UUID, tiers []TierInput) (*ProductDTO, error)
	QuotePrice(ctx context.Context, merchantID, productID uuid.UUID, quantity int) (*QuoteDTO, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	SKU                   string
	Title                 string
	Description           string
	PriceCents            int64
	Currency              enums.Currency
	CommissionRatePercent *decimal.Decimal
	IsActive              bool
	PriceTiers            []TierInput
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	SKU         *string
	Title       *string
	Description *string
	PriceCents  *int64
	Currency    *enums.Currency
	IsActive    *bool
}

// TierInput defines one quantity band in the order the merchant supplied it.
type TierInput struct {
	MinQty         int
	MaxQty         *int
	UnitPriceCents int64
}

// ProductListResult is one page of products plus the cursor for the next.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

type repositoryAPI interface {
	CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error
	FindByMerchantAndID(ctx context.Context, merchantID, id uuid.UUID) (*models.Product, error)
	ListByMerchant(ctx context.Context, merchantID uuid.UUID, params pagination.Params) ([]models.Product, error)
	ReplaceTiers(ctx context.Context, merchantID, productID uuid.UUID, tiers []models.PriceTier) (*models.Product, error)
}

type service struct {
	repo                  repositoryAPI
	defaultCommissionRate decimal.Decimal
}

// NewService constructs a product service instance.
func NewService(repo repositoryAPI, defaultCommissionRate decimal.Decimal) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	return &service{
		repo:                  repo,
		defaultCommissionRate: defaultCommissionRate,
	}, nil
}

func (s *service) CreateProduct(ctx context.Context, merchantID uuid.UUID, input CreateProductInput) (*ProductDTO, error) {
	if merchantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant id is required")
	}
	if strings.TrimSpace(input.SKU) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.PriceCents < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if !input.Currency.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid currency %q", input.Currency))
	}
	if err := pricing.ValidateTiers(toPricingTiers(input.PriceTiers)); err != nil {
		return nil, err
	}

	commissionRate := s.defaultCommissionRate
	if input.CommissionRatePercent != nil {
		commissionRate = *input.CommissionRatePercent
	}
	if commissionRate.IsNegative() || commissionRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("commission rate %s outside [0,100]", commissionRate))
	}

	record := &models.Product{
		MerchantID:            merchantID,
		SKU:                   strings.TrimSpace(input.SKU),
		Title:                 strings.TrimSpace(input.Title),
		Description:           input.Description,
		PriceCents:            input.PriceCents,
		Currency:              input.Currency,
		CommissionRatePercent: commissionRate,
		IsActive:              input.IsActive,
		PriceTiers:            toTierModels(uuid.Nil, input.PriceTiers),
	}

	created, err := s.repo.CreateProduct(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating product")
	}
	return NewProductDTO(created), nil
}

func (s *service) UpdateProduct(ctx context.Context, merchantID, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	record, err := s.findOwned(ctx, merchantID, productID)
	if err != nil {
		return nil, err
	}

	if input.SKU != nil {
		if strings.TrimSpace(*input.SKU) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku must not be blank")
		}
		record.SKU = strings.TrimSpace(*input.SKU)
	}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title must not be blank")
		}
		record.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		record.Description = *input.Description
	}
	if input.PriceCents != nil {
		if *input.PriceCents < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
		}
		record.PriceCents = *input.PriceCents
	}
	if input.Currency != nil {
		if !input.Currency.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid currency %q", *input.Currency))
		}
		record.Currency = *input.Currency
	}
	if input.IsActive != nil {
		record.IsActive = *input.IsActive
	}

	updated, err := s.repo.UpdateProduct(ctx, record)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating product")
	}
	return NewProductDTO(updated), nil
}

func (s *service) DeleteProduct(ctx context.Context, merchantID, productID uuid.UUID) error {
	if _, err := s.findOwned(ctx, merchantID, productID); err != nil {
		return err
	}
	if err := s.repo.DeleteProduct(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "deleting product")
	}
	return nil
}

func (s *service) GetProduct(ctx context.Context, merchantID, productID uuid.UUID) (*ProductDTO, error) {
	record, err := s.findOwned(ctx, merchantID, productID)
	if err != nil {
		return nil, err
	}
	return NewProductDTO(record), nil
}

func (s *service) ListProducts(ctx context.Context, merchantID uuid.UUID, params pagination.Params) (*ProductListResult, error) {
	if merchantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant id is required")
	}

	rows, err := s.repo.ListByMerchant(ctx, merchantID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	result := &ProductListResult{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	result.Products = make([]ProductDTO, len(rows))
	for i := range rows {
		result.Products[i] = *NewProductDTO(&rows[i])
	}
	return result, nil
}

func (s *service) ReplaceTiers(ctx context.Context, merchantID, productID uuid.UUID, tiers []TierInput) (*ProductDTO, error) {
	if _, err := s.findOwned(ctx, merchantID, productID); err != nil {
		return nil, err
	}
	if err := pricing.ValidateTiers(toPricingTiers(tiers)); err != nil {
		return nil, err
	}

	record, err := s.repo.ReplaceTiers(ctx, merchantID, productID, toTierModels(productID, tiers))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "replacing price tiers")
	}
	return NewProductDTO(record), nil
}

// QuotePrice resolves the unit price for a quantity and splits the subtotal
// between merchant and platform.
func (s *service) QuotePrice(ctx context.Context, merchantID, productID uuid.UUID, quantity int) (*QuoteDTO, error) {
	record, err := s.findOwned(ctx, merchantID, productID)
	if err != nil {
		return nil, err
	}

	unitPrice, err := pricing.ResolveUnitPrice(toPricingTiersFromModels(record.PriceTiers), quantity, record.PriceCents)
	if err != nil {
		return nil, err
	}

	subtotal := unitPrice * int64(quantity)
	split, err := pricing.SplitEarnings(subtotal, record.CommissionRatePercent)
	if err != nil {
		return nil, err
	}

	return &QuoteDTO{
		ProductID:             record.ID,
		Quantity:              quantity,
		UnitPriceCents:        unitPrice,
		SubtotalCents:         subtotal,
		Currency:              record.Currency.String(),
		MerchantEarningsCents: split.MerchantEarningsCents,
		PlatformFeeCents:      split.PlatformFeeCents,
	}, nil
}

func (s *service) findOwned(ctx context.Context, merchantID, productID uuid.UUID) (*models.Product, error) {
	if merchantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "merchant id is required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	record, err := s.repo.FindByMerchantAndID(ctx, merchantID, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	return record, nil
}

func toPricingTiers(tiers []TierInput) []pricing.Tier {
	out := make([]pricing.Tier, len(tiers))
	for i, tier := range tiers {
		out[i] = pricing.Tier{
			MinQty:         tier.MinQty,
			MaxQty:         tier.MaxQty,
			UnitPriceCents: tier.UnitPriceCents,
		}
	}
	return out
}

func toPricingTiersFromModels(tiers []models.PriceTier) []pricing.Tier {
	out := make([]pricing.Tier, len(tiers))
	for i, tier := range tiers {
		out[i] = pricing.Tier{
			MinQty:         tier.MinQty,
			MaxQty:         tier.MaxQty,
			UnitPriceCents: tier.UnitPriceCents,
		}
	}
	return out
}

func toTierModels(productID uuid.UUID, tiers []TierInput) []models.PriceTier {
	if len(tiers) == 0 {
		return nil
	}
	out := make([]models.PriceTier, len(tiers))
	for i, tier := range tiers {
		out[i] = models.PriceTier{
			ProductID:      productID,
			Position:       i,
			MinQty:         tier.MinQty,
			MaxQty:         tier.MaxQty,
			UnitPriceCents: tier.UnitPriceCents,
		}
	}
	return out
}
