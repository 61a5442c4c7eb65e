package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
)

// Escalation records a dispute between a user and a seller. The record is
// never deleted: after resolution it keeps referencing the losing party's id
// even though that account no longer exists (tombstone read path).
type Escalation struct {
	ID             uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	UserID         uuid.UUID                `gorm:"column:user_id;type:uuid;not null;index"`
	SellerID       uuid.UUID                `gorm:"column:seller_id;type:uuid;not null;index"`
	UserConcerns   pq.StringArray           `gorm:"type:text;column:user_concerns"`
	SellerConcerns pq.StringArray           `gorm:"type:text;column:seller_concerns"`
	AdminResponse  *string                  `gorm:"column:admin_response"`
	Decision       enums.EscalationDecision `gorm:"column:decision;type:text;not null;default:'none'"`
	ResolvedAt     *time.Time               `gorm:"column:resolved_at"`
	CreatedAt      time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
