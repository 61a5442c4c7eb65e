package pricing

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a pricing repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindActiveConfig(ctx context.Context) (*models.DiscountConfig, error) {
	var cfg models.DiscountConfig
	err := r.db.WithContext(ctx).
		Preload("Tiers", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Order("version DESC").
		First(&cfg).Error
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *repository) DeleteAllConfigs(ctx context.Context) error {
	if err := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.DiscountTier{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.DiscountConfig{}).Error
}

func (r *repository) CreateConfig(ctx context.Context, cfg *models.DiscountConfig) error {
	return r.db.WithContext(ctx).Create(cfg).Error
}

func (r *repository) ListProductsAfter(ctx context.Context, afterID uuid.UUID, limit int) ([]models.Product, error) {
	var products []models.Product
	q := r.db.WithContext(ctx).Order("id ASC").Limit(limit)
	if afterID != uuid.Nil {
		q = q.Where("id > ?", afterID)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) CountProducts(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) UpdateDiscountedPriceIfUnchanged(ctx context.Context, productID uuid.UUID, expectedPrice, discounted decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND price = ?", productID, expectedPrice).
		Update("discounted_price", discounted)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
