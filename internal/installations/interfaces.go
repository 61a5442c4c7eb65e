package installations

import (
	"context"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
)

// Repository handles installation persistence and the target lookups a
// booking depends on.
type Repository interface {
	CreateInstallation(ctx context.Context, installation *models.Installation) error
	FindInstallationByID(ctx context.Context, id uuid.UUID) (*models.Installation, error)
	UpdateInstallation(ctx context.Context, id uuid.UUID, updates map[string]any) error
	DeleteInstallation(ctx context.Context, id uuid.UUID) (bool, error)
	ListInstallations(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Installation, error)

	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindSolutionByID(ctx context.Context, id uuid.UUID) (*models.SolarSolution, error)
}

// Service exposes installation scheduling and lifecycle updates.
type Service interface {
	Schedule(ctx context.Context, input ScheduleInput) (*InstallationView, error)
	Get(ctx context.Context, id uuid.UUID) (*InstallationView, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*InstallationView, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*InstallationView, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*InstallationList, error)
}
