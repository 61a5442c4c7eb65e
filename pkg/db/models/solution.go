package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
)

// SolarSolution is an admin-curated turnkey system package, distinct from the
// individual products sellers list.
type SolarSolution struct {
	ID            uuid.UUID               `gorm:"column:id;type:uuid;primaryKey"`
	Name          string                  `gorm:"column:name;not null"`
	SystemSizeKW  decimal.Decimal         `gorm:"column:system_size_kw;type:numeric(6,2);not null"`
	Type          enums.SolutionType      `gorm:"column:type;type:text;not null"`
	NetMetering   bool                    `gorm:"column:net_metering;not null;default:false"`
	Description   *string                 `gorm:"column:description"`
	Price         decimal.Decimal         `gorm:"column:price;type:numeric(12,2);not null"`
	WarrantyYears int                     `gorm:"column:warranty_years;not null;default:0"`
	Panels        string                  `gorm:"column:panels;not null"`
	Inverter      string                  `gorm:"column:inverter;not null"`
	Battery       *string                 `gorm:"column:battery"`
	Structure     enums.MountingStructure `gorm:"column:structure;type:text;not null"`
	CreatedAt     time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
