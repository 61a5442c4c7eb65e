package identity

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
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

func setupIdentityTestDB(t *testing.T) *gorm.DB {
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
CREATE TABLE IF NOT EXISTS admins (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`}

	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	return db
}

func newIdentityService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	logg := logger.New(logger.Options{ServiceName: "identity-test", Level: zerolog.ErrorLevel})
	svc, err := NewService(NewRepository(db), logg)
	require.NoError(t, err)
	return svc
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	u := models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: "hash",
	}
	require.NoError(t, db.Create(&u).Error)
	return u
}

func TestDeleteUserIsIdempotent(t *testing.T) {
	db := setupIdentityTestDB(t)
	svc := newIdentityService(t, db)
	ctx := context.Background()

	user := seedUser(t, db, "Asha", "asha@example.com")

	require.NoError(t, svc.DeleteUser(ctx, user.ID))

	// Second delete of the same account must also succeed.
	require.NoError(t, svc.DeleteUser(ctx, user.ID))

	_, err := svc.GetUser(ctx, user.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestSetUserVerified(t *testing.T) {
	db := setupIdentityTestDB(t)
	svc := newIdentityService(t, db)
	ctx := context.Background()

	user := seedUser(t, db, "Asha", "asha@example.com")

	view, err := svc.SetUserVerified(ctx, user.ID, true)
	require.NoError(t, err)
	assert.True(t, view.Verified)

	view, err = svc.SetUserVerified(ctx, user.ID, false)
	require.NoError(t, err)
	assert.False(t, view.Verified)
}

func TestListUsersSearch(t *testing.T) {
	db := setupIdentityTestDB(t)
	svc := newIdentityService(t, db)
	ctx := context.Background()

	seedUser(t, db, "Asha Kapoor", "asha@example.com")
	seedUser(t, db, "Bilal Shah", "bilal@example.com")

	list, err := svc.ListUsers(ctx, pagination.Params{}, ListFilters{Search: "asha"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Asha Kapoor", list.Items[0].Name)

	list, err = svc.ListUsers(ctx, pagination.Params{}, ListFilters{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
}

func TestUpdateSellerProfileArrays(t *testing.T) {
	db := setupIdentityTestDB(t)
	svc := newIdentityService(t, db)
	ctx := context.Background()

	seller := models.Seller{
		ID:           uuid.New(),
		Name:         "Solar One",
		Email:        "ops@solarone.example",
		PasswordHash: "hash",
	}
	require.NoError(t, db.Create(&seller).Error)

	certs := []string{"IEC 61215", "MNRE approved"}
	services := []string{"installation", "maintenance"}
	view, err := svc.UpdateSellerProfile(ctx, seller.ID, UpdateSellerInput{
		Certifications: &certs,
		Services:       &services,
	})
	require.NoError(t, err)
	assert.Equal(t, certs, view.Certifications)
	assert.Equal(t, services, view.Services)
}

func TestGetPrincipalDispatchesByRole(t *testing.T) {
	db := setupIdentityTestDB(t)
	svc := newIdentityService(t, db)
	ctx := context.Background()

	admin := models.Admin{
		ID:           uuid.New(),
		Name:         "Root",
		Email:        "root@solbazaar.example",
		PasswordHash: "hash",
	}
	require.NoError(t, db.Create(&admin).Error)

	principal, err := svc.GetPrincipal(ctx, admin.ID, enums.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, enums.RoleAdmin, principal.Role)
	assert.Equal(t, admin.Email, principal.Email)

	_, err = svc.GetPrincipal(ctx, admin.ID, enums.RoleUser)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
