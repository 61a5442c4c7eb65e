package models

import (
	"time"

	"github.com/google/uuid"
)

// Warehouse is a seller-owned storage location.
type Warehouse struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	SellerID  uuid.UUID        `gorm:"column:seller_id;type:uuid;not null;index"`
	Name      string           `gorm:"column:name;not null"`
	Location  string           `gorm:"column:location;not null"`
	Capacity  int              `gorm:"column:capacity;not null;default:0"`
	Stock     []WarehouseStock `gorm:"foreignKey:WarehouseID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// WarehouseStock holds the on-hand quantity of a product at a warehouse.
type WarehouseStock struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	WarehouseID uuid.UUID `gorm:"column:warehouse_id;type:uuid;not null;index"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	Quantity    int       `gorm:"column:quantity;not null;default:0"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
