package consultations

import (
	"context"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
)

// Repository handles consultation persistence.
type Repository interface {
	CreateConsultation(ctx context.Context, consultation *models.Consultation) error
	FindConsultationByID(ctx context.Context, id uuid.UUID) (*models.Consultation, error)
	UpdateConsultation(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteConsultation(ctx context.Context, id uuid.UUID) (bool, error)
	ListConsultations(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Consultation, error)
}

// Service exposes the support question and answer surface.
type Service interface {
	Ask(ctx context.Context, userID uuid.UUID, input AskInput) (*ConsultationView, error)
	Get(ctx context.Context, id uuid.UUID) (*ConsultationView, error)
	Reply(ctx context.Context, id uuid.UUID, input ReplyInput) (*ConsultationView, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*ConsultationList, error)
}
