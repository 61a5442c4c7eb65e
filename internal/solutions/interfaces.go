package solutions

import (
	"context"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
)

// Repository handles curated solution persistence.
type Repository interface {
	CreateSolution(ctx context.Context, solution *models.SolarSolution) error
	FindSolutionByID(ctx context.Context, id uuid.UUID) (*models.SolarSolution, error)
	UpdateSolution(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteSolution(ctx context.Context, id uuid.UUID) (bool, error)
	ListSolutions(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.SolarSolution, error)
}

// Service exposes the curated solution catalog.
type Service interface {
	Create(ctx context.Context, input CreateInput) (*SolutionView, error)
	Get(ctx context.Context, id uuid.UUID) (*SolutionView, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*SolutionView, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*SolutionList, error)
}
