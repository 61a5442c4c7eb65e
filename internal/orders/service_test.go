package orders

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{`
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  seller_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  discounted_price NUMERIC NOT NULL,
  stock INTEGER NOT NULL DEFAULT 0,
  warranty TEXT,
  verified INTEGER NOT NULL DEFAULT 1,
  images TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  seller_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  total_amount NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  unit_price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME
);`}

	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.WithContext(ctx).Transaction(fn)
}

func newOrdersService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "orders-test", Level: zerolog.ErrorLevel})
	svc, err := NewService(NewRepository(db), gormTxRunner{db: db}, logg)
	require.NoError(t, err)
	return svc
}

func seedOrderProduct(t *testing.T, db *gorm.DB, sellerID uuid.UUID, name, discounted string, stock int) models.Product {
	t.Helper()
	p := models.Product{
		ID:              uuid.New(),
		SellerID:        sellerID,
		Name:            name,
		Price:           decimal.RequireFromString(discounted),
		DiscountedPrice: decimal.RequireFromString(discounted),
		Stock:           stock,
		Verified:        true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestPlaceOrderTotalsFromDiscountedPrices(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db)
	ctx := context.Background()

	sellerID := uuid.New()
	panel := seedOrderProduct(t, db, sellerID, "Panel", "10800", 10)
	inverter := seedOrderProduct(t, db, sellerID, "Inverter", "900", 5)

	view, err := svc.PlaceOrder(ctx, uuid.New(), PlaceOrderInput{
		Items: []OrderItemInput{
			{ProductID: panel.ID, Quantity: 2},
			{ProductID: inverter.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, view.Status)
	assert.Equal(t, "22500", view.TotalAmount.String())
	require.Len(t, view.LineItems, 2)

	// Stock was reserved.
	var stored models.Product
	require.NoError(t, db.First(&stored, "id = ?", panel.ID).Error)
	assert.Equal(t, 8, stored.Stock)
}

func TestPlaceOrderInsufficientStockRollsBack(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db)
	ctx := context.Background()

	sellerID := uuid.New()
	panel := seedOrderProduct(t, db, sellerID, "Panel", "100", 5)
	battery := seedOrderProduct(t, db, sellerID, "Battery", "50", 1)

	_, err := svc.PlaceOrder(ctx, uuid.New(), PlaceOrderInput{
		Items: []OrderItemInput{
			{ProductID: panel.ID, Quantity: 2},
			{ProductID: battery.ID, Quantity: 3},
		},
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())

	// The first decrement was rolled back with the rest of the order.
	var stored models.Product
	require.NoError(t, db.First(&stored, "id = ?", panel.ID).Error)
	assert.Equal(t, 5, stored.Stock)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPlaceOrderRejectsMixedSellers(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db)
	ctx := context.Background()

	a := seedOrderProduct(t, db, uuid.New(), "Panel A", "100", 5)
	b := seedOrderProduct(t, db, uuid.New(), "Panel B", "100", 5)

	_, err := svc.PlaceOrder(ctx, uuid.New(), PlaceOrderInput{
		Items: []OrderItemInput{
			{ProductID: a.ID, Quantity: 1},
			{ProductID: b.ID, Quantity: 1},
		},
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestUpdateStatusAllowsAnyMemberTransition(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db)
	ctx := context.Background()

	sellerID := uuid.New()
	panel := seedOrderProduct(t, db, sellerID, "Panel", "100", 5)
	view, err := svc.PlaceOrder(ctx, uuid.New(), PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: panel.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// pending -> cancelled -> completed is allowed; membership is the only rule.
	updated, err := svc.UpdateStatus(ctx, view.ID, UpdateStatusInput{Status: "cancelled"})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCancelled, updated.Status)

	updated, err = svc.UpdateStatus(ctx, view.ID, UpdateStatusInput{Status: "completed"})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCompleted, updated.Status)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db)
	ctx := context.Background()

	sellerID := uuid.New()
	panel := seedOrderProduct(t, db, sellerID, "Panel", "100", 5)
	view, err := svc.PlaceOrder(ctx, uuid.New(), PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: panel.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, view.ID, UpdateStatusInput{Status: "shipped"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())

	// The stored status is untouched.
	got, err := svc.GetOrder(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, got.Status)
}

func TestInvoiceAndListFilters(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db)
	ctx := context.Background()

	sellerID := uuid.New()
	userID := uuid.New()
	panel := seedOrderProduct(t, db, sellerID, "Panel", "250", 10)

	view, err := svc.PlaceOrder(ctx, userID, PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: panel.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	invoice, err := svc.Invoice(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "500", invoice.TotalAmount.String())
	require.Len(t, invoice.LineItems, 1)
	assert.Equal(t, "500", invoice.LineItems[0].LineTotal.String())

	list, err := svc.ListOrders(ctx, pagination.Params{}, ListFilters{UserID: userID})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	list, err = svc.ListOrders(ctx, pagination.Params{}, ListFilters{UserID: uuid.New()})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
}

func TestDeleteOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	svc := newOrdersService(t, db)
	ctx := context.Background()

	sellerID := uuid.New()
	panel := seedOrderProduct(t, db, sellerID, "Panel", "100", 5)
	view, err := svc.PlaceOrder(ctx, uuid.New(), PlaceOrderInput{
		Items: []OrderItemInput{{ProductID: panel.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrder(ctx, view.ID))

	err = svc.DeleteOrder(ctx, view.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
