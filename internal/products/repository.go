package product

import (
	"context"

	"github.com/google/uuid"
	"github.com/kolade-dev/vendorhub-backend/pkg/db/models"
	"github.com/kolade-dev/vendorhub-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository wires together product and price tier persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// CreateProduct inserts a new product row with its tiers.
func (r *Repository) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct updates an existing product row.
func (r *Repository) UpdateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product by ID; tiers cascade.
func (r *Repository) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Product{}).Error
}

// FindByMerchantAndID loads a product with its tiers ordered by position.
func (r *Repository) FindByMerchantAndID(ctx context.Context, merchantID, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("PriceTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		First(&product, "id = ? AND merchant_id = ?", id, merchantID).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListByMerchant returns a page of products ordered newest first.
func (r *Repository) ListByMerchant(ctx context.Context, merchantID uuid.UUID, params pagination.Params) ([]models.Product, error) {
	query := r.db.WithContext(ctx).
		Preload("PriceTiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Where("merchant_id = ?", merchantID).
		Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit))

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		query = query.Where(
			"(created_at, id) < (?, ?)",
			cursor.CreatedAt, cursor.ID,
		)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ReplaceTiers swaps every tier on the product in stored order and returns
// the product reloaded within the same transaction, so the caller never sees
// a half-replaced ladder.
func (r *Repository) ReplaceTiers(ctx context.Context, merchantID, productID uuid.UUID, tiers []models.PriceTier) (*models.Product, error) {
	var reloaded *models.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.PriceTier{}).Error; err != nil {
			return err
		}
		if len(tiers) > 0 {
			if err := tx.Create(&tiers).Error; err != nil {
				return err
			}
		}

		product, err := r.WithTx(tx).FindByMerchantAndID(ctx, merchantID, productID)
		if err != nil {
			return err
		}
		reloaded = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reloaded, nil
}
