package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an analytics repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountUsers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *repository) CountSellers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Seller{}).Count(&count).Error
	return count, err
}

func (r *repository) CountProducts(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Product{})
	if sellerID != uuid.Nil {
		q = q.Where("seller_id = ?", sellerID)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *repository) CountOrders(ctx context.Context, sellerID uuid.UUID, status *enums.OrderStatus) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&models.Order{})
	if sellerID != uuid.Nil {
		q = q.Where("seller_id = ?", sellerID)
	}
	if status != nil {
		q = q.Where("status = ?", *status)
	}
	err := q.Count(&count).Error
	return count, err
}

func (r *repository) CompletedRevenue(ctx context.Context, sellerID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	q := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS total").
		Where("status = ?", enums.OrderStatusCompleted)
	if sellerID != uuid.Nil {
		q = q.Where("seller_id = ?", sellerID)
	}
	if err := q.Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

func (r *repository) CountOpenEscalations(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Escalation{}).
		Where("resolved_at IS NULL").
		Count(&count).Error
	return count, err
}

func (r *repository) RecentOrders(ctx context.Context, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *repository) OrdersByStatus(ctx context.Context) ([]StatusCount, error) {
	var counts []StatusCount
	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status ASC").
		Scan(&counts).Error
	return counts, err
}

func (r *repository) UserSignupDates(ctx context.Context, since time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Pluck("created_at", &dates).Error
	return dates, err
}

func (r *repository) SellerSignupDates(ctx context.Context, since time.Time) ([]time.Time, error) {
	var dates []time.Time
	err := r.db.WithContext(ctx).Model(&models.Seller{}).
		Where("created_at >= ?", since).
		Order("created_at ASC").
		Pluck("created_at", &dates).Error
	return dates, err
}

func (r *repository) CompletedOrderTimeline(ctx context.Context, sellerID uuid.UUID, since time.Time) ([]models.Order, error) {
	var orders []models.Order
	q := r.db.WithContext(ctx).
		Where("status = ?", enums.OrderStatusCompleted).
		Where("created_at >= ?", since)
	if sellerID != uuid.Nil {
		q = q.Where("seller_id = ?", sellerID)
	}
	err := q.Order("created_at ASC").Find(&orders).Error
	return orders, err
}

func (r *repository) TopProducts(ctx context.Context, sellerID uuid.UUID, limit int) ([]TopProduct, error) {
	var products []TopProduct
	q := r.db.WithContext(ctx).
		Table("order_line_items").
		Select("order_line_items.product_id, order_line_items.product_name, SUM(order_line_items.quantity) AS quantity").
		Joins("JOIN orders ON orders.id = order_line_items.order_id").
		Where("orders.status = ?", enums.OrderStatusCompleted)
	if sellerID != uuid.Nil {
		q = q.Where("orders.seller_id = ?", sellerID)
	}
	err := q.Group("order_line_items.product_id, order_line_items.product_name").
		Order("quantity DESC").
		Limit(limit).
		Scan(&products).Error
	return products, err
}
