package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kolade-dev/vendorhub-backend/api/middleware"
	productsvc "github.com/kolade-dev/vendorhub-backend/internal/products"
	"github.com/kolade-dev/vendorhub-backend/pkg/pagination"
	"github.com/kolade-dev/vendorhub-backend/pkg/types"
)

type stubProductService struct {
	createFn func(ctx context.Context, merchantID uuid.UUID, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error)
	quoteFn  func(ctx context.Context, merchantID, productID uuid.UUID, quantity int) (*productsvc.QuoteDTO, error)
}

func (s stubProductService) CreateProduct(ctx context.Context, merchantID uuid.UUID, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
	if s.createFn != nil {
		return s.createFn(ctx, merchantID, input)
	}
	return &productsvc.ProductDTO{ID: uuid.New(), MerchantID: merchantID}, nil
}

func (s stubProductService) UpdateProduct(ctx context.Context, merchantID, productID uuid.UUID, input productsvc.UpdateProductInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: productID, MerchantID: merchantID}, nil
}

func (s stubProductService) DeleteProduct(ctx context.Context, merchantID, productID uuid.UUID) error {
	return nil
}

func (s stubProductService) GetProduct(ctx context.Context, merchantID, productID uuid.UUID) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: productID, MerchantID: merchantID}, nil
}

func (s stubProductService) ListProducts(ctx context.Context, merchantID uuid.UUID, params pagination.Params) (*productsvc.ProductListResult, error) {
	return &productsvc.ProductListResult{}, nil
}

func (s stubProductService) ReplaceTiers(ctx context.Context, merchantID, productID uuid.UUID, tiers []productsvc.TierInput) (*productsvc.ProductDTO, error) {
	return &productsvc.ProductDTO{ID: productID, MerchantID: merchantID}, nil
}

func (s stubProductService) QuotePrice(ctx context.Context, merchantID, productID uuid.UUID, quantity int) (*productsvc.QuoteDTO, error) {
	if s.quoteFn != nil {
		return s.quoteFn(ctx, merchantID, productID, quantity)
	}
	return &productsvc.QuoteDTO{ProductID: productID, Quantity: quantity}, nil
}

func withMerchant(req *http.Request, merchantID uuid.UUID) *http.Request {
	return req.WithContext(middleware.WithMerchantID(req.Context(), merchantID.String()))
}

func TestProductCreateRequiresMerchantContext(t *testing.T) {
	handler := ProductCreate(stubProductService{}, nil)
	body := `{"sku":"ESP-01","title":"Espresso","price_cents":1000,"currency":"USD"}`
	req := httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body))
	resp := httptest.NewRecorder()
	handler(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without merchant context got %d", resp.Code)
	}
}

func TestProductCreateRejectsMissingSKU(t *testing.T) {
	handler := ProductCreate(stubProductService{}, nil)
	body := `{"title":"Espresso","price_cents":1000,"currency":"USD"}`
	req := withMerchant(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing sku got %d", resp.Code)
	}
}

func TestProductCreatePassesTiersInOrder(t *testing.T) {
	var captured productsvc.CreateProductInput
	svc := stubProductService{
		createFn: func(ctx context.Context, merchantID uuid.UUID, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
			captured = input
			return &productsvc.ProductDTO{ID: uuid.New(), MerchantID: merchantID}, nil
		},
	}
	handler := ProductCreate(svc, nil)
	body := `{
		"sku": "ESP-01",
		"title": "Espresso",
		"price_cents": 1000,
		"currency": "USD",
		"price_tiers": [
			{"min_qty": 10, "max_qty": 49, "unit_price_cents": 800},
			{"min_qty": 1, "max_qty": 9, "unit_price_cents": 1000}
		]
	}`
	req := withMerchant(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(captured.PriceTiers) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(captured.PriceTiers))
	}
	if captured.PriceTiers[0].MinQty != 10 || captured.PriceTiers[1].MinQty != 1 {
		t.Fatalf("tier order not preserved: %+v", captured.PriceTiers)
	}
}

func TestProductCreateCoercesStringNumerics(t *testing.T) {
	var captured productsvc.CreateProductInput
	svc := stubProductService{
		createFn: func(ctx context.Context, merchantID uuid.UUID, input productsvc.CreateProductInput) (*productsvc.ProductDTO, error) {
			captured = input
			return &productsvc.ProductDTO{ID: uuid.New(), MerchantID: merchantID}, nil
		},
	}
	handler := ProductCreate(svc, nil)
	body := `{
		"sku": "ESP-01",
		"title": "Espresso",
		"price_cents": "1000",
		"currency": "USD",
		"price_tiers": [
			{"min_qty": "10", "max_qty": "49", "unit_price_cents": "800"}
		]
	}`
	req := withMerchant(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler(resp, req)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if captured.PriceCents != 1000 {
		t.Fatalf("string base price not coerced: %d", captured.PriceCents)
	}
	if len(captured.PriceTiers) != 1 {
		t.Fatalf("expected 1 tier, got %d", len(captured.PriceTiers))
	}
	tier := captured.PriceTiers[0]
	if tier.MinQty != 10 || tier.MaxQty == nil || *tier.MaxQty != 49 || tier.UnitPriceCents != 800 {
		t.Fatalf("string tier fields not coerced: %+v", tier)
	}
}

func TestProductCreateRejectsNonNumericTierValue(t *testing.T) {
	handler := ProductCreate(stubProductService{}, nil)
	body := `{
		"sku": "ESP-01",
		"title": "Espresso",
		"price_cents": 1000,
		"currency": "USD",
		"price_tiers": [
			{"min_qty": "ten", "max_qty": null, "unit_price_cents": 800}
		]
	}`
	req := withMerchant(httptest.NewRequest(http.MethodPost, "/products", strings.NewReader(body)), uuid.New())
	resp := httptest.NewRecorder()
	handler(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric tier bound got %d", resp.Code)
	}
}

func TestProductQuoteRequiresQuantity(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/products/{productId}/quote", ProductQuote(stubProductService{}, nil))

	req := withMerchant(httptest.NewRequest(http.MethodGet, "/products/"+uuid.NewString()+"/quote", nil), uuid.New())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without quantity got %d", resp.Code)
	}
}

func TestProductQuoteReturnsServicePayload(t *testing.T) {
	productID := uuid.New()
	svc := stubProductService{
		quoteFn: func(ctx context.Context, merchantID, pid uuid.UUID, quantity int) (*productsvc.QuoteDTO, error) {
			return &productsvc.QuoteDTO{
				ProductID:      pid,
				Quantity:       quantity,
				UnitPriceCents: 800,
				SubtotalCents:  8000,
			}, nil
		},
	}

	r := chi.NewRouter()
	r.Get("/products/{productId}/quote", ProductQuote(svc, nil))

	req := withMerchant(httptest.NewRequest(http.MethodGet, "/products/"+productID.String()+"/quote?quantity=10", nil), uuid.New())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	payload := envelope.Data.(map[string]any)
	if payload["subtotal_cents"].(float64) != 8000 {
		t.Fatalf("unexpected subtotal %v", payload["subtotal_cents"])
	}
}
