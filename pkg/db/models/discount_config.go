package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiscountConfig is the admin-owned discount configuration. Exactly one row
// exists at a time; Version increments on every replacement so bulk
// recomputes can detect concurrent changes.
type DiscountConfig struct {
	ID                      uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	Version                 int             `gorm:"column:version;not null;default:1"`
	WarrantyDiscountPercent decimal.Decimal `gorm:"column:warranty_discount_percent;type:numeric(5,2);not null"`
	Tiers                   []DiscountTier  `gorm:"foreignKey:ConfigID;constraint:OnDelete:CASCADE"`
	CreatedAt               time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// DiscountTier is one price band of the discount configuration. Position
// preserves the admin-supplied ordering used for first-match selection.
type DiscountTier struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	ConfigID        uuid.UUID        `gorm:"column:config_id;type:uuid;not null;index"`
	Position        int              `gorm:"column:position;not null"`
	RangeMin        decimal.Decimal  `gorm:"column:range_min;type:numeric(12,2);not null"`
	RangeMax        *decimal.Decimal `gorm:"column:range_max;type:numeric(12,2)"`
	DiscountPercent decimal.Decimal  `gorm:"column:discount_percent;type:numeric(5,2);not null"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
}
