package escalations

import (
	"context"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository handles escalation persistence. Account deletion for resolved
// disputes goes through the identity repository instead.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateEscalation(ctx context.Context, escalation *models.Escalation) error
	FindEscalationByID(ctx context.Context, id uuid.UUID) (*models.Escalation, error)
	UpdateEscalation(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListEscalations(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Escalation, error)
}

// Service exposes dispute filing and resolution.
type Service interface {
	File(ctx context.Context, input FileInput) (*EscalationView, error)
	Get(ctx context.Context, id uuid.UUID) (*EscalationView, error)
	AddConcern(ctx context.Context, id uuid.UUID, input ConcernInput) (*EscalationView, error)
	Resolve(ctx context.Context, id uuid.UUID, input ResolveInput) (*EscalationView, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*EscalationList, error)
}
