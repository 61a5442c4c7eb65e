package warehouses

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupWarehousesTestDB(t *testing.T) *gorm.DB {
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
CREATE TABLE IF NOT EXISTS warehouses (
  id TEXT PRIMARY KEY,
  seller_id TEXT NOT NULL,
  name TEXT NOT NULL,
  location TEXT NOT NULL,
  capacity INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS warehouse_stocks (
  id TEXT PRIMARY KEY,
  warehouse_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`}

	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func newWarehousesService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "warehouses-test", Level: zerolog.ErrorLevel})
	svc, err := NewService(NewRepository(db), logg)
	require.NoError(t, err)
	return svc
}

func seedWarehouseProduct(t *testing.T, db *gorm.DB, sellerID uuid.UUID) models.Product {
	t.Helper()
	p := models.Product{
		ID:              uuid.New(),
		SellerID:        sellerID,
		Name:            "Panel",
		Price:           decimal.RequireFromString("100"),
		DiscountedPrice: decimal.RequireFromString("100"),
		Stock:           10,
		Verified:        true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestWarehouseOwnership(t *testing.T) {
	db := setupWarehousesTestDB(t)
	svc := newWarehousesService(t, db)
	ctx := context.Background()

	sellerID := uuid.New()
	view, err := svc.Create(ctx, sellerID, CreateInput{Name: "North Depot", Location: "Pune", Capacity: 500})
	require.NoError(t, err)

	_, err = svc.Get(ctx, uuid.New(), view.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeForbidden, appErr.Code())

	got, err := svc.Get(ctx, sellerID, view.ID)
	require.NoError(t, err)
	assert.Equal(t, "North Depot", got.Name)
}

func TestSetStockUpsertsAndRemoves(t *testing.T) {
	db := setupWarehousesTestDB(t)
	svc := newWarehousesService(t, db)
	ctx := context.Background()

	sellerID := uuid.New()
	product := seedWarehouseProduct(t, db, sellerID)
	view, err := svc.Create(ctx, sellerID, CreateInput{Name: "North Depot", Location: "Pune", Capacity: 500})
	require.NoError(t, err)

	got, err := svc.SetStock(ctx, sellerID, view.ID, StockInput{ProductID: product.ID, Quantity: 40})
	require.NoError(t, err)
	require.Len(t, got.Stock, 1)
	assert.Equal(t, 40, got.Stock[0].Quantity)

	got, err = svc.SetStock(ctx, sellerID, view.ID, StockInput{ProductID: product.ID, Quantity: 15})
	require.NoError(t, err)
	require.Len(t, got.Stock, 1)
	assert.Equal(t, 15, got.Stock[0].Quantity)

	got, err = svc.SetStock(ctx, sellerID, view.ID, StockInput{ProductID: product.ID, Quantity: 0})
	require.NoError(t, err)
	assert.Empty(t, got.Stock)
}

func TestSetStockRejectsForeignProduct(t *testing.T) {
	db := setupWarehousesTestDB(t)
	svc := newWarehousesService(t, db)
	ctx := context.Background()

	sellerID := uuid.New()
	foreign := seedWarehouseProduct(t, db, uuid.New())
	view, err := svc.Create(ctx, sellerID, CreateInput{Name: "North Depot", Location: "Pune", Capacity: 500})
	require.NoError(t, err)

	_, err = svc.SetStock(ctx, sellerID, view.ID, StockInput{ProductID: foreign.ID, Quantity: 5})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeForbidden, appErr.Code())
}

func TestListWarehousesScopedToSeller(t *testing.T) {
	db := setupWarehousesTestDB(t)
	svc := newWarehousesService(t, db)
	ctx := context.Background()

	sellerID := uuid.New()
	_, err := svc.Create(ctx, sellerID, CreateInput{Name: "North Depot", Location: "Pune"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, uuid.New(), CreateInput{Name: "Other Depot", Location: "Delhi"})
	require.NoError(t, err)

	list, err := svc.List(ctx, sellerID, pagination.Params{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "North Depot", list.Items[0].Name)
}
