package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
)

const (
	recentOrderCount = 10
	topProductCount  = 5
	signupMonths     = 12
	salesDays        = 30
)

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService builds the analytics service with the required dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

func (s *service) AdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	dashboard := &AdminDashboard{}
	var err error

	if dashboard.Users, err = s.repo.CountUsers(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}
	if dashboard.Sellers, err = s.repo.CountSellers(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count sellers")
	}
	if dashboard.Products, err = s.repo.CountProducts(ctx, uuid.Nil); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	if dashboard.Orders, err = s.repo.CountOrders(ctx, uuid.Nil, nil); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}
	pending := enums.OrderStatusPending
	if dashboard.PendingOrders, err = s.repo.CountOrders(ctx, uuid.Nil, &pending); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending orders")
	}
	if dashboard.OpenEscalations, err = s.repo.CountOpenEscalations(ctx); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count open escalations")
	}
	if dashboard.CompletedRevenue, err = s.repo.CompletedRevenue(ctx, uuid.Nil); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum completed revenue")
	}

	recent, err := s.repo.RecentOrders(ctx, recentOrderCount)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recent orders")
	}
	dashboard.RecentOrders = make([]RecentOrder, 0, len(recent))
	for _, order := range recent {
		dashboard.RecentOrders = append(dashboard.RecentOrders, RecentOrder{
			ID:          order.ID,
			UserID:      order.UserID,
			Status:      order.Status.String(),
			TotalAmount: order.TotalAmount,
			CreatedAt:   order.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	return dashboard, nil
}

func (s *service) AdminAnalytics(ctx context.Context) (*AdminAnalytics, error) {
	since := s.now().UTC().AddDate(0, -signupMonths, 0)

	userDates, err := s.repo.UserSignupDates(ctx, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user signups")
	}
	sellerDates, err := s.repo.SellerSignupDates(ctx, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load seller signups")
	}
	byStatus, err := s.repo.OrdersByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order breakdown")
	}

	return &AdminAnalytics{
		UserSignups:   groupByMonth(userDates),
		SellerSignups: groupByMonth(sellerDates),
		OrdersByState: byStatus,
	}, nil
}

func (s *service) SellerDashboard(ctx context.Context, sellerID uuid.UUID) (*SellerDashboard, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "seller identity missing")
	}

	dashboard := &SellerDashboard{}
	var err error

	if dashboard.Products, err = s.repo.CountProducts(ctx, sellerID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count products")
	}
	if dashboard.Orders, err = s.repo.CountOrders(ctx, sellerID, nil); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}
	pending := enums.OrderStatusPending
	if dashboard.PendingOrders, err = s.repo.CountOrders(ctx, sellerID, &pending); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count pending orders")
	}
	if dashboard.CompletedRevenue, err = s.repo.CompletedRevenue(ctx, sellerID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum completed revenue")
	}
	return dashboard, nil
}

func (s *service) SellerAnalytics(ctx context.Context, sellerID uuid.UUID) (*SellerAnalytics, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "seller identity missing")
	}

	since := s.now().UTC().AddDate(0, 0, -salesDays)
	orders, err := s.repo.CompletedOrderTimeline(ctx, sellerID, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load sales timeline")
	}
	top, err := s.repo.TopProducts(ctx, sellerID, topProductCount)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load top products")
	}

	sales := make([]DailySale, 0)
	index := map[string]int{}
	for _, order := range orders {
		day := order.CreatedAt.UTC().Format("2006-01-02")
		i, ok := index[day]
		if !ok {
			index[day] = len(sales)
			sales = append(sales, DailySale{Day: day, Revenue: decimal.Zero})
			i = index[day]
		}
		sales[i].Orders++
		sales[i].Revenue = sales[i].Revenue.Add(order.TotalAmount)
	}

	return &SellerAnalytics{DailySales: sales, TopProducts: top}, nil
}

// groupByMonth buckets timestamps into ascending year-month counts. Input is
// already sorted by the repository.
func groupByMonth(dates []time.Time) []MonthlyCount {
	counts := make([]MonthlyCount, 0)
	index := map[string]int{}
	for _, date := range dates {
		month := date.UTC().Format("2006-01")
		i, ok := index[month]
		if !ok {
			index[month] = len(counts)
			counts = append(counts, MonthlyCount{Month: month})
			i = index[month]
		}
		counts[i].Count++
	}
	return counts
}
