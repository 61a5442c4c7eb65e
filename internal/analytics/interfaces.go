package analytics

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
)

// Repository runs the read-side aggregation queries. A nil seller id widens
// the scope to the whole platform.
type Repository interface {
	CountUsers(ctx context.Context) (int64, error)
	CountSellers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context, sellerID uuid.UUID) (int64, error)
	CountOrders(ctx context.Context, sellerID uuid.UUID, status *enums.OrderStatus) (int64, error)
	CompletedRevenue(ctx context.Context, sellerID uuid.UUID) (decimal.Decimal, error)
	CountOpenEscalations(ctx context.Context) (int64, error)
	RecentOrders(ctx context.Context, limit int) ([]models.Order, error)
	OrdersByStatus(ctx context.Context) ([]StatusCount, error)
	UserSignupDates(ctx context.Context, since time.Time) ([]time.Time, error)
	SellerSignupDates(ctx context.Context, since time.Time) ([]time.Time, error)
	CompletedOrderTimeline(ctx context.Context, sellerID uuid.UUID, since time.Time) ([]models.Order, error)
	TopProducts(ctx context.Context, sellerID uuid.UUID, limit int) ([]TopProduct, error)
}

// Service exposes the admin and seller dashboards.
type Service interface {
	AdminDashboard(ctx context.Context) (*AdminDashboard, error)
	AdminAnalytics(ctx context.Context) (*AdminAnalytics, error)
	SellerDashboard(ctx context.Context, sellerID uuid.UUID) (*SellerDashboard, error)
	SellerAnalytics(ctx context.Context, sellerID uuid.UUID) (*SellerAnalytics, error)
}
