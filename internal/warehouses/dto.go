package warehouses

import (
	"time"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
)

// CreateInput registers a storage location for the seller.
type CreateInput struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location" validate:"required"`
	Capacity int    `json:"capacity" validate:"gte=0"`
}

// UpdateInput edits warehouse metadata. Nil fields keep their stored values.
type UpdateInput struct {
	Name     *string `json:"name,omitempty"`
	Location *string `json:"location,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
}

// StockInput sets the on-hand quantity of a product at a warehouse.
type StockInput struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"gte=0"`
}

type StockView struct {
	ID        uuid.UUID `json:"id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

type WarehouseView struct {
	ID        uuid.UUID   `json:"id"`
	SellerID  uuid.UUID   `json:"seller_id"`
	Name      string      `json:"name"`
	Location  string      `json:"location"`
	Capacity  int         `json:"capacity"`
	Stock     []StockView `json:"stock"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type WarehouseList struct {
	Items      []WarehouseView `json:"items"`
	NextCursor *string         `json:"next_cursor,omitempty"`
}

func warehouseView(warehouse *models.Warehouse) WarehouseView {
	view := WarehouseView{
		ID:        warehouse.ID,
		SellerID:  warehouse.SellerID,
		Name:      warehouse.Name,
		Location:  warehouse.Location,
		Capacity:  warehouse.Capacity,
		Stock:     make([]StockView, 0, len(warehouse.Stock)),
		CreatedAt: warehouse.CreatedAt,
		UpdatedAt: warehouse.UpdatedAt,
	}
	for _, stock := range warehouse.Stock {
		view.Stock = append(view.Stock, StockView{
			ID:        stock.ID,
			ProductID: stock.ProductID,
			Quantity:  stock.Quantity,
		})
	}
	return view
}
