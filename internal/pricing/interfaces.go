package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository defines persistence operations for discount configuration and
// the cached discounted prices on product rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindActiveConfig(ctx context.Context) (*models.DiscountConfig, error)
	DeleteAllConfigs(ctx context.Context) error
	CreateConfig(ctx context.Context, cfg *models.DiscountConfig) error
	ListProductsAfter(ctx context.Context, afterID uuid.UUID, limit int) ([]models.Product, error)
	CountProducts(ctx context.Context) (int64, error)
	UpdateDiscountedPriceIfUnchanged(ctx context.Context, productID uuid.UUID, expectedPrice, discounted decimal.Decimal) (bool, error)
}

// Service exposes the discount engine operations.
type Service interface {
	GetConfig(ctx context.Context) (*ConfigView, error)
	ReplaceConfig(ctx context.Context, input ReplaceConfigInput) (*ConfigView, *RecomputeResult, error)
	Quote(ctx context.Context, input QuoteInput) (*QuoteView, error)
	RecomputeAll(ctx context.Context, trigger string) (*RecomputeResult, error)
	PriceListing(ctx context.Context, price decimal.Decimal, hasWarranty bool) (decimal.Decimal, error)
}
