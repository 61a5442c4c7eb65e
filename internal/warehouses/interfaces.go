package warehouses

import (
	"context"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
)

// Repository handles warehouse and stock persistence.
type Repository interface {
	CreateWarehouse(ctx context.Context, warehouse *models.Warehouse) error
	FindWarehouseByID(ctx context.Context, id uuid.UUID) (*models.Warehouse, error)
	UpdateWarehouse(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteWarehouse(ctx context.Context, id uuid.UUID) (bool, error)
	ListWarehouses(ctx context.Context, sellerID uuid.UUID, params pagination.Params) ([]models.Warehouse, error)

	FindStock(ctx context.Context, warehouseID, productID uuid.UUID) (*models.WarehouseStock, error)
	CreateStock(ctx context.Context, stock *models.WarehouseStock) error
	UpdateStockQuantity(ctx context.Context, id uuid.UUID, quantity int) error
	DeleteStock(ctx context.Context, id uuid.UUID) error

	FindProductByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Service exposes seller warehouse management.
type Service interface {
	Create(ctx context.Context, sellerID uuid.UUID, input CreateInput) (*WarehouseView, error)
	Get(ctx context.Context, sellerID, id uuid.UUID) (*WarehouseView, error)
	Update(ctx context.Context, sellerID, id uuid.UUID, input UpdateInput) (*WarehouseView, error)
	Delete(ctx context.Context, sellerID, id uuid.UUID) error
	List(ctx context.Context, sellerID uuid.UUID, params pagination.Params) (*WarehouseList, error)
	SetStock(ctx context.Context, sellerID, id uuid.UUID, input StockInput) (*WarehouseView, error)
}
