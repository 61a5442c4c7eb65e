package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the three account tables.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	CreateUser(ctx context.Context, user *models.User) error
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListUsers(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) (bool, error)

	CreateSeller(ctx context.Context, seller *models.Seller) error
	FindSellerByID(ctx context.Context, id uuid.UUID) (*models.Seller, error)
	FindSellerByEmail(ctx context.Context, email string) (*models.Seller, error)
	UpdateSeller(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListSellers(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Seller, error)
	DeleteSeller(ctx context.Context, id uuid.UUID) (bool, error)

	CreateAdmin(ctx context.Context, admin *models.Admin) error
	FindAdminByID(ctx context.Context, id uuid.UUID) (*models.Admin, error)
	FindAdminByEmail(ctx context.Context, email string) (*models.Admin, error)
}

// Service exposes account management operations.
type Service interface {
	GetPrincipal(ctx context.Context, id uuid.UUID, role enums.Role) (*Principal, error)

	GetUser(ctx context.Context, id uuid.UUID) (*UserView, error)
	UpdateUserProfile(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*UserView, error)
	ListUsers(ctx context.Context, params pagination.Params, filters ListFilters) (*UserList, error)
	SetUserVerified(ctx context.Context, id uuid.UUID, verified bool) (*UserView, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error

	GetSeller(ctx context.Context, id uuid.UUID) (*SellerView, error)
	UpdateSellerProfile(ctx context.Context, id uuid.UUID, input UpdateSellerInput) (*SellerView, error)
	ListSellers(ctx context.Context, params pagination.Params, filters ListFilters) (*SellerList, error)
	SetSellerVerified(ctx context.Context, id uuid.UUID, verified bool) (*SellerView, error)
	DeleteSeller(ctx context.Context, id uuid.UUID) error

	GetAdmin(ctx context.Context, id uuid.UUID) (*AdminView, error)
}
