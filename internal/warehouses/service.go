package warehouses

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
	"gorm.io/gorm"
)

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the warehouses service with the required dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("warehouses repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, sellerID uuid.UUID, input CreateInput) (*WarehouseView, error) {
	if sellerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "seller identity missing")
	}

	warehouse := &models.Warehouse{
		ID:       uuid.New(),
		SellerID: sellerID,
		Name:     input.Name,
		Location: input.Location,
		Capacity: input.Capacity,
	}
	if err := s.repo.CreateWarehouse(ctx, warehouse); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create warehouse")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"warehouse_id": warehouse.ID.String(),
		"seller_id":    sellerID.String(),
	}), "warehouse created")

	view := warehouseView(warehouse)
	return &view, nil
}

func (s *service) Get(ctx context.Context, sellerID, id uuid.UUID) (*WarehouseView, error) {
	warehouse, err := s.ownedWarehouse(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}
	view := warehouseView(warehouse)
	return &view, nil
}

func (s *service) Update(ctx context.Context, sellerID, id uuid.UUID, input UpdateInput) (*WarehouseView, error) {
	if _, err := s.ownedWarehouse(ctx, sellerID, id); err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Location != nil {
		updates["location"] = *input.Location
	}
	if input.Capacity != nil {
		if *input.Capacity < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "capacity must be non-negative")
		}
		updates["capacity"] = *input.Capacity
	}
	if len(updates) == 0 {
		return s.Get(ctx, sellerID, id)
	}

	updates["updated_at"] = time.Now().UTC()
	if err := s.repo.UpdateWarehouse(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update warehouse")
	}
	return s.Get(ctx, sellerID, id)
}

func (s *service) Delete(ctx context.Context, sellerID, id uuid.UUID) error {
	if _, err := s.ownedWarehouse(ctx, sellerID, id); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteWarehouse(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete warehouse")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
	}
	return nil
}

func (s *service) List(ctx context.Context, sellerID uuid.UUID, params pagination.Params) (*WarehouseList, error) {
	warehouses, err := s.repo.ListWarehouses(ctx, sellerID, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list warehouses")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &WarehouseList{Items: make([]WarehouseView, 0, len(warehouses))}
	for i := range warehouses {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: warehouses[limit-1].CreatedAt,
				ID:        warehouses[limit-1].ID,
			})
			list.NextCursor = &cursor
			break
		}
		list.Items = append(list.Items, warehouseView(&warehouses[i]))
	}
	return list, nil
}

// SetStock upserts the quantity of a product at the warehouse. Quantity zero
// removes the row.
func (s *service) SetStock(ctx context.Context, sellerID, id uuid.UUID, input StockInput) (*WarehouseView, error) {
	warehouse, err := s.ownedWarehouse(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}

	product, err := s.repo.FindProductByID(ctx, input.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if product.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "product belongs to another seller")
	}

	existing, err := s.repo.FindStock(ctx, warehouse.ID, input.ProductID)
	switch {
	case err == nil:
		if input.Quantity == 0 {
			if err := s.repo.DeleteStock(ctx, existing.ID); err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove stock")
			}
		} else if err := s.repo.UpdateStockQuantity(ctx, existing.ID, input.Quantity); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update stock")
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		if input.Quantity == 0 {
			break
		}
		stock := &models.WarehouseStock{
			ID:          uuid.New(),
			WarehouseID: warehouse.ID,
			ProductID:   input.ProductID,
			Quantity:    input.Quantity,
		}
		if err := s.repo.CreateStock(ctx, stock); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create stock")
		}
	default:
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock")
	}

	return s.Get(ctx, sellerID, id)
}

func (s *service) ownedWarehouse(ctx context.Context, sellerID, id uuid.UUID) (*models.Warehouse, error) {
	warehouse, err := s.repo.FindWarehouseByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "warehouse not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load warehouse")
	}
	if warehouse.SellerID != sellerID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "warehouse belongs to another seller")
	}
	return warehouse, nil
}
