package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
)

// Installation tracks a scheduled on-site install of a solar solution.
type Installation struct {
	ID         uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	UserID     uuid.UUID                `gorm:"column:user_id;type:uuid;not null;index"`
	SolutionID uuid.UUID                `gorm:"column:solution_id;type:uuid;not null;index"`
	Company    string                   `gorm:"column:company;not null"`
	Status     enums.InstallationStatus `gorm:"column:status;type:text;not null;default:'scheduled'"`
	Date       time.Time                `gorm:"column:date;not null"`
	Technician string                   `gorm:"column:technician;not null"`
	Notes      *string                  `gorm:"column:notes"`
	CreatedAt  time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
