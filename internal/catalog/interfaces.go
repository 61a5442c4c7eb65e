package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository defines persistence operations for product listings.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateProduct(ctx context.Context, product *models.Product) error
	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteProduct(ctx context.Context, id uuid.UUID) (bool, error)
	ListProducts(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Product, error)
}

// Service exposes catalog operations for sellers, admins and the public list.
type Service interface {
	CreateProduct(ctx context.Context, sellerID uuid.UUID, input CreateProductInput) (*ProductView, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*ProductView, error)
	UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, input UpdateProductInput) (*ProductView, error)
	DeleteProduct(ctx context.Context, sellerID, productID uuid.UUID) error
	ListPublic(ctx context.Context, params pagination.Params, search string) (*ProductList, error)
	ListAll(ctx context.Context, params pagination.Params, search string) (*ProductList, error)
	ListSellerProducts(ctx context.Context, sellerID uuid.UUID, params pagination.Params) (*ProductList, error)
	SetProductVerified(ctx context.Context, productID uuid.UUID, verified bool) (*ProductView, error)
}
