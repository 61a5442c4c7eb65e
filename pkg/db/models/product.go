package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product represents a seller-owned catalog listing. DiscountedPrice is a
// cached derived value maintained by the pricing engine.
type Product struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	SellerID        uuid.UUID       `gorm:"column:seller_id;type:uuid;not null;index"`
	Name            string          `gorm:"column:name;not null"`
	Description     *string         `gorm:"column:description"`
	Price           decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	DiscountedPrice decimal.Decimal `gorm:"column:discounted_price;type:numeric(12,2);not null"`
	Stock           int             `gorm:"column:stock;not null;default:0"`
	Warranty        *string         `gorm:"column:warranty"`
	Verified        bool            `gorm:"column:verified;not null;default:true"`
	Images          pq.StringArray  `gorm:"type:text;column:images"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// HasWarranty reports whether the listing carries a non-empty warranty term.
func (p Product) HasWarranty() bool {
	return p.Warranty != nil && *p.Warranty != ""
}
