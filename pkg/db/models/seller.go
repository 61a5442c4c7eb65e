package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	dbtypes "github.com/solbazaar/solbazaar-backend/pkg/db/types"
)

// Seller represents a vendor account with its inventory and service catalog.
type Seller struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Name             string            `gorm:"column:name;not null"`
	Email            string            `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash     string            `gorm:"column:password_hash;not null"`
	Company          *string           `gorm:"column:company"`
	Address          *string           `gorm:"column:address"`
	Phone            *string           `gorm:"column:phone"`
	Certifications   pq.StringArray    `gorm:"type:text;column:certifications"`
	Services         pq.StringArray    `gorm:"type:text;column:services"`
	InventoryIDs     dbtypes.UUIDArray `gorm:"type:text;column:inventory_ids"`
	SurveyRequestIDs dbtypes.UUIDArray `gorm:"type:text;column:survey_request_ids"`
	Verified         bool              `gorm:"column:verified;not null;default:false"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
