package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Consultation is a question a user submitted to support staff, together
// with the replies staff have posted so far.
type Consultation struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID      `gorm:"column:user_id;type:uuid;not null;index"`
	Question  string         `gorm:"column:question;not null"`
	Replies   pq.StringArray `gorm:"type:text;column:replies"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
