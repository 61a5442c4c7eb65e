package escalations

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/solbazaar/solbazaar-backend/internal/identity"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupEscalationsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{`
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  address TEXT,
  phone TEXT,
  verified INTEGER NOT NULL DEFAULT 0,
  survey_request_ids TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS sellers (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  company TEXT,
  address TEXT,
  phone TEXT,
  certifications TEXT,
  services TEXT,
  inventory_ids TEXT,
  survey_request_ids TEXT,
  verified INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`, `
CREATE TABLE IF NOT EXISTS escalations (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  seller_id TEXT NOT NULL,
  user_concerns TEXT,
  seller_concerns TEXT,
  admin_response TEXT,
  decision TEXT NOT NULL DEFAULT 'none',
  resolved_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
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

func newEscalationsService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "escalations-test", Level: zerolog.ErrorLevel})
	svc, err := NewService(NewRepository(db), identity.NewRepository(db), gormTxRunner{db: db}, logg)
	require.NoError(t, err)
	return svc
}

func seedDispute(t *testing.T, db *gorm.DB) (models.User, models.Seller) {
	t.Helper()
	user := models.User{
		ID:           uuid.New(),
		Name:         "Asha",
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()),
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	seller := models.Seller{
		ID:           uuid.New(),
		Name:         "Helio Solar",
		Email:        fmt.Sprintf("%s@example.com", uuid.NewString()),
		PasswordHash: "x",
	}
	require.NoError(t, db.Create(&seller).Error)
	return user, seller
}

func TestFileEscalationRequiresBothParties(t *testing.T) {
	db := setupEscalationsTestDB(t)
	svc := newEscalationsService(t, db)
	ctx := context.Background()

	user, seller := seedDispute(t, db)

	view, err := svc.File(ctx, FileInput{
		UserID:       user.ID,
		SellerID:     seller.ID,
		UserConcerns: []string{"panels never delivered"},
	})
	require.NoError(t, err)
	assert.Equal(t, enums.EscalationDecisionNone, view.Decision)
	assert.Nil(t, view.ResolvedAt)

	_, err = svc.File(ctx, FileInput{UserID: user.ID, SellerID: uuid.New()})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestResolveAgainstSellerDeletesAccount(t *testing.T) {
	db := setupEscalationsTestDB(t)
	svc := newEscalationsService(t, db)
	ctx := context.Background()

	user, seller := seedDispute(t, db)
	view, err := svc.File(ctx, FileInput{UserID: user.ID, SellerID: seller.ID})
	require.NoError(t, err)

	response := "seller failed to deliver"
	resolved, err := svc.Resolve(ctx, view.ID, ResolveInput{Decision: "seller", AdminResponse: &response})
	require.NoError(t, err)
	assert.Equal(t, enums.EscalationDecisionSeller, resolved.Decision)
	require.NotNil(t, resolved.ResolvedAt)
	require.NotNil(t, resolved.AdminResponse)
	assert.Equal(t, response, *resolved.AdminResponse)

	// The losing account is gone, the user stays.
	var count int64
	require.NoError(t, db.Model(&models.Seller{}).Where("id = ?", seller.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// The record still references the deleted seller.
	got, err := svc.Get(ctx, view.ID)
	require.NoError(t, err)
	assert.Equal(t, seller.ID, got.SellerID)
}

func TestResolveIsIdempotentForSameDecision(t *testing.T) {
	db := setupEscalationsTestDB(t)
	svc := newEscalationsService(t, db)
	ctx := context.Background()

	user, seller := seedDispute(t, db)
	view, err := svc.File(ctx, FileInput{UserID: user.ID, SellerID: seller.ID})
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, view.ID, ResolveInput{Decision: "user"})
	require.NoError(t, err)

	// Retrying the same ruling succeeds even though the account is gone.
	again, err := svc.Resolve(ctx, view.ID, ResolveInput{Decision: "user"})
	require.NoError(t, err)
	assert.Equal(t, enums.EscalationDecisionUser, again.Decision)

	// A conflicting ruling is rejected.
	_, err = svc.Resolve(ctx, view.ID, ResolveInput{Decision: "seller"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}

func TestResolveNoneKeepsBothAccounts(t *testing.T) {
	db := setupEscalationsTestDB(t)
	svc := newEscalationsService(t, db)
	ctx := context.Background()

	user, seller := seedDispute(t, db)
	view, err := svc.File(ctx, FileInput{UserID: user.ID, SellerID: seller.ID})
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, view.ID, ResolveInput{Decision: "none"})
	require.NoError(t, err)
	assert.Equal(t, enums.EscalationDecisionNone, resolved.Decision)
	require.NotNil(t, resolved.ResolvedAt)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	require.NoError(t, db.Model(&models.Seller{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestAddConcernAfterResolutionRejected(t *testing.T) {
	db := setupEscalationsTestDB(t)
	svc := newEscalationsService(t, db)
	ctx := context.Background()

	user, seller := seedDispute(t, db)
	view, err := svc.File(ctx, FileInput{UserID: user.ID, SellerID: seller.ID})
	require.NoError(t, err)

	updated, err := svc.AddConcern(ctx, view.ID, ConcernInput{Party: "seller", Concern: "user refused site access"})
	require.NoError(t, err)
	require.Len(t, updated.SellerConcerns, 1)

	_, err = svc.Resolve(ctx, view.ID, ResolveInput{Decision: "none"})
	require.NoError(t, err)

	_, err = svc.AddConcern(ctx, view.ID, ConcernInput{Party: "user", Concern: "too late"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}
