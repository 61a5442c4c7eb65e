package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
)

// Survey represents a scheduled physical inspection of a user's house or a
// seller's warehouse.
type Survey struct {
	ID         uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	TargetID   uuid.UUID          `gorm:"column:target_id;type:uuid;not null;index"`
	TargetType enums.SurveyTarget `gorm:"column:target_type;type:text;not null"`
	Type       enums.SurveyType   `gorm:"column:type;type:text;not null"`
	Status     enums.SurveyStatus `gorm:"column:status;type:text;not null;default:'requested'"`
	SurveyDate *time.Time         `gorm:"column:survey_date"`
	Surveyor   string             `gorm:"column:surveyor;not null"`
	Notes      *string            `gorm:"column:notes"`
	CreatedAt  time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
