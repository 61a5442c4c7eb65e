package consultations

import (
	"time"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
)

// AskInput submits a new support question.
type AskInput struct {
	Question string `json:"question" validate:"required"`
}

// ReplyInput appends a staff answer to a question.
type ReplyInput struct {
	Reply string `json:"reply" validate:"required"`
}

type ConsultationView struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	UserName  string    `json:"user_name,omitempty"`
	Question  string    `json:"question"`
	Replies   []string  `json:"replies"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ConsultationList struct {
	Items      []ConsultationView `json:"items"`
	NextCursor *string            `json:"next_cursor,omitempty"`
}

// ListFilters narrows consultation listings.
type ListFilters struct {
	UserID uuid.UUID
}

func consultationView(consultation *models.Consultation) ConsultationView {
	return ConsultationView{
		ID:        consultation.ID,
		UserID:    consultation.UserID,
		Question:  consultation.Question,
		Replies:   append([]string{}, consultation.Replies...),
		CreatedAt: consultation.CreatedAt,
		UpdatedAt: consultation.UpdatedAt,
	}
}
