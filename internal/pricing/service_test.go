package pricing

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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPricingTestDB(t *testing.T) *gorm.DB {
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
CREATE TABLE IF NOT EXISTS discount_configs (
  id TEXT PRIMARY KEY,
  version INTEGER NOT NULL DEFAULT 1,
  warranty_discount_percent NUMERIC NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS discount_tiers (
  id TEXT PRIMARY KEY,
  config_id TEXT NOT NULL,
  position INTEGER NOT NULL,
  range_min NUMERIC NOT NULL,
  range_max NUMERIC,
  discount_percent NUMERIC NOT NULL,
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

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "pricing-test", Level: zerolog.ErrorLevel})
	svc, err := NewService(NewRepository(db), gormTxRunner{db: db}, nil, logg)
	require.NoError(t, err)
	return svc
}

func seedProduct(t *testing.T, db *gorm.DB, price string, warranty *string) models.Product {
	t.Helper()
	p := models.Product{
		ID:              uuid.New(),
		SellerID:        uuid.New(),
		Name:            "Panel " + price,
		Price:           decimal.RequireFromString(price),
		DiscountedPrice: decimal.RequireFromString(price),
		Stock:           5,
		Warranty:        warranty,
		Verified:        true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func strPtr(s string) *string { return &s }

func TestGetConfigNotFound(t *testing.T) {
	db := setupPricingTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.GetConfig(context.Background())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestReplaceConfigRejectsMalformedTier(t *testing.T) {
	db := setupPricingTestDB(t)
	svc := newTestService(t, db)

	_, _, err := svc.ReplaceConfig(context.Background(), ReplaceConfigInput{
		WarrantyDiscountPercent: decimal.RequireFromString("10"),
		Tiers: []TierInput{
			{Range: "not-a-range", DiscountPercent: decimal.RequireFromString("5")},
		},
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConfiguration, appErr.Code())

	// Nothing was persisted.
	var count int64
	require.NoError(t, db.Model(&models.DiscountConfig{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestReplaceConfigRecomputesEveryProduct(t *testing.T) {
	db := setupPricingTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	cheap := seedProduct(t, db, "5000", strPtr("10 year product warranty"))
	mid := seedProduct(t, db, "15000", nil)
	expensive := seedProduct(t, db, "40000", nil)

	view, result, err := svc.ReplaceConfig(ctx, ReplaceConfigInput{
		WarrantyDiscountPercent: decimal.RequireFromString("10"),
		Tiers: []TierInput{
			{Range: "0-10000", DiscountPercent: decimal.RequireFromString("5")},
			{Range: "10000-30000", DiscountPercent: decimal.RequireFromString("10")},
			{Range: "30000+", DiscountPercent: decimal.RequireFromString("20")},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, view)
	require.NotNil(t, result)

	assert.Equal(t, 1, view.Version)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Updated)
	assert.Zero(t, result.Failed)

	expect := map[uuid.UUID]string{
		cheap.ID:     "4500",  // warranty 10% beats the 5% band
		mid.ID:       "13500", // 10% band
		expensive.ID: "32000", // open-ended 20% band
	}
	for id, want := range expect {
		var p models.Product
		require.NoError(t, db.First(&p, "id = ?", id).Error)
		assert.Equal(t, want, p.DiscountedPrice.String(), "product %s", id)
	}
}

func TestReplaceConfigBumpsVersion(t *testing.T) {
	db := setupPricingTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	input := ReplaceConfigInput{
		WarrantyDiscountPercent: decimal.RequireFromString("10"),
		Tiers: []TierInput{
			{Range: "0-10000", DiscountPercent: decimal.RequireFromString("5")},
		},
	}

	view, _, err := svc.ReplaceConfig(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 1, view.Version)

	view, _, err = svc.ReplaceConfig(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Version)

	// Exactly one config row remains.
	var count int64
	require.NoError(t, db.Model(&models.DiscountConfig{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	got, err := svc.GetConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	require.Len(t, got.Tiers, 1)
	assert.Equal(t, "0-10000", got.Tiers[0].Range)
}

func TestQuoteEndToEnd(t *testing.T) {
	db := setupPricingTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	_, _, err := svc.ReplaceConfig(ctx, ReplaceConfigInput{
		WarrantyDiscountPercent: decimal.RequireFromString("10"),
		Tiers: []TierInput{
			{Range: "0-10000", DiscountPercent: decimal.RequireFromString("5")},
			{Range: "10000-30000", DiscountPercent: decimal.RequireFromString("10")},
		},
	})
	require.NoError(t, err)

	quote, err := svc.Quote(ctx, QuoteInput{
		Price:       decimal.RequireFromString("12000"),
		HasWarranty: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "10", quote.DiscountPercent.String())
	assert.Equal(t, "10800", quote.DiscountedPrice.String())
}

func TestQuoteWithoutConfigIsZeroDiscount(t *testing.T) {
	db := setupPricingTestDB(t)
	svc := newTestService(t, db)

	quote, err := svc.Quote(context.Background(), QuoteInput{
		Price: decimal.RequireFromString("9999.99"),
	})
	require.NoError(t, err)
	assert.True(t, quote.DiscountPercent.IsZero())
	assert.Equal(t, "9999.99", quote.DiscountedPrice.String())
}

func TestRecomputeAllWithoutProducts(t *testing.T) {
	db := setupPricingTestDB(t)
	svc := newTestService(t, db)

	result, err := svc.RecomputeAll(context.Background(), "manual")
	require.NoError(t, err)
	assert.Zero(t, result.Total)
	assert.Zero(t, result.Updated)
	assert.Zero(t, result.Failed)
}

func TestPriceListingUsesActiveConfig(t *testing.T) {
	db := setupPricingTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	_, _, err := svc.ReplaceConfig(ctx, ReplaceConfigInput{
		WarrantyDiscountPercent: decimal.RequireFromString("10"),
		Tiers: []TierInput{
			{Range: "0-20000", DiscountPercent: decimal.RequireFromString("10")},
			{Range: "10000-30000", DiscountPercent: decimal.RequireFromString("25")},
		},
	})
	require.NoError(t, err)

	// 15000 sits in both bands; the first one wins.
	got, err := svc.PriceListing(ctx, decimal.RequireFromString("15000"), false)
	require.NoError(t, err)
	assert.Equal(t, "13500", got.String())
}
