package models

import (
	"time"

	"github.com/google/uuid"
	dbtypes "github.com/solbazaar/solbazaar-backend/pkg/db/types"
)

// User represents a customer account.
type User struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;primaryKey"`
	Name             string            `gorm:"column:name;not null"`
	Email            string            `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash     string            `gorm:"column:password_hash;not null"`
	Address          *string           `gorm:"column:address"`
	Phone            *string           `gorm:"column:phone"`
	Verified         bool              `gorm:"column:verified;not null;default:false"`
	SurveyRequestIDs dbtypes.UUIDArray `gorm:"type:text;column:survey_request_ids"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
