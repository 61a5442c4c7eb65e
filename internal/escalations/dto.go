package escalations

import (
	"time"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
)

// FileInput opens a dispute between a user and a seller.
type FileInput struct {
	UserID         uuid.UUID `json:"user_id" validate:"required"`
	SellerID       uuid.UUID `json:"seller_id" validate:"required"`
	UserConcerns   []string  `json:"user_concerns,omitempty"`
	SellerConcerns []string  `json:"seller_concerns,omitempty"`
}

// ConcernInput appends one party's complaint to an open dispute.
type ConcernInput struct {
	Party   string `json:"party" validate:"required"`
	Concern string `json:"concern" validate:"required"`
}

// ResolveInput records the admin ruling. Decision "none" closes the dispute
// without penalizing either party.
type ResolveInput struct {
	Decision      string  `json:"decision" validate:"required"`
	AdminResponse *string `json:"admin_response,omitempty"`
}

type EscalationView struct {
	ID             uuid.UUID                `json:"id"`
	UserID         uuid.UUID                `json:"user_id"`
	SellerID       uuid.UUID                `json:"seller_id"`
	UserConcerns   []string                 `json:"user_concerns"`
	SellerConcerns []string                 `json:"seller_concerns"`
	AdminResponse  *string                  `json:"admin_response,omitempty"`
	Decision       enums.EscalationDecision `json:"decision"`
	ResolvedAt     *time.Time               `json:"resolved_at,omitempty"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

type EscalationList struct {
	Items      []EscalationView `json:"items"`
	NextCursor *string          `json:"next_cursor,omitempty"`
}

// ListFilters narrows escalation listings.
type ListFilters struct {
	UserID   uuid.UUID
	SellerID uuid.UUID
	Resolved *bool
}

func escalationView(escalation *models.Escalation) EscalationView {
	return EscalationView{
		ID:             escalation.ID,
		UserID:         escalation.UserID,
		SellerID:       escalation.SellerID,
		UserConcerns:   escalation.UserConcerns,
		SellerConcerns: escalation.SellerConcerns,
		AdminResponse:  escalation.AdminResponse,
		Decision:       escalation.Decision,
		ResolvedAt:     escalation.ResolvedAt,
		CreatedAt:      escalation.CreatedAt,
		UpdatedAt:      escalation.UpdatedAt,
	}
}
