package analytics

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdminDashboard summarizes platform-wide totals for the admin landing page.
type AdminDashboard struct {
	Users            int64           `json:"users"`
	Sellers          int64           `json:"sellers"`
	Products         int64           `json:"products"`
	Orders           int64           `json:"orders"`
	PendingOrders    int64           `json:"pending_orders"`
	OpenEscalations  int64           `json:"open_escalations"`
	CompletedRevenue decimal.Decimal `json:"completed_revenue"`
	RecentOrders     []RecentOrder   `json:"recent_orders"`
}

// RecentOrder is a trimmed order row for dashboard display.
type RecentOrder struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   string          `json:"created_at"`
}

// MonthlyCount is one month's worth of signups or orders.
type MonthlyCount struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

// StatusCount is the number of orders in one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// AdminAnalytics covers growth and order-state breakdowns.
type AdminAnalytics struct {
	UserSignups   []MonthlyCount `json:"user_signups"`
	SellerSignups []MonthlyCount `json:"seller_signups"`
	OrdersByState []StatusCount  `json:"orders_by_state"`
}

// SellerDashboard summarizes one seller's trading position.
type SellerDashboard struct {
	Products         int64           `json:"products"`
	Orders           int64           `json:"orders"`
	PendingOrders    int64           `json:"pending_orders"`
	CompletedRevenue decimal.Decimal `json:"completed_revenue"`
}

// DailySale is one day's completed-order revenue.
type DailySale struct {
	Day     string          `json:"day"`
	Orders  int64           `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProduct ranks a product by quantity sold.
type TopProduct struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity"`
}

// SellerAnalytics covers a seller's sales trend and best sellers.
type SellerAnalytics struct {
	DailySales  []DailySale  `json:"daily_sales"`
	TopProducts []TopProduct `json:"top_products"`
}
