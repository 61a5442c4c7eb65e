package surveys

import (
	"context"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	dbtypes "github.com/solbazaar/solbazaar-backend/pkg/db/types"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Repository handles survey persistence plus the request-list bookkeeping on
// the surveyed account.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateSurvey(ctx context.Context, survey *models.Survey) error
	FindSurveyByID(ctx context.Context, id uuid.UUID) (*models.Survey, error)
	UpdateSurvey(ctx context.Context, id uuid.UUID, updates map[string]any) error
	ListSurveys(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Survey, error)

	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindSellerByID(ctx context.Context, id uuid.UUID) (*models.Seller, error)
	UpdateUserSurveyRequests(ctx context.Context, id uuid.UUID, ids dbtypes.UUIDArray) error
	UpdateSellerSurveyRequests(ctx context.Context, id uuid.UUID, ids dbtypes.UUIDArray) error
}

// Service exposes survey scheduling and completion.
type Service interface {
	Schedule(ctx context.Context, input ScheduleInput) (*SurveyView, error)
	Request(ctx context.Context, sellerID uuid.UUID, input RequestInput) (*SurveyView, error)
	Get(ctx context.Context, id uuid.UUID) (*SurveyView, error)
	Complete(ctx context.Context, id uuid.UUID, input CompleteInput) (*SurveyView, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*SurveyList, error)
}
