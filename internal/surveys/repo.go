package surveys

import (
	"context"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	dbtypes "github.com/solbazaar/solbazaar-backend/pkg/db/types"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a surveys repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateSurvey(ctx context.Context, survey *models.Survey) error {
	return r.db.WithContext(ctx).Create(survey).Error
}

func (r *repository) FindSurveyByID(ctx context.Context, id uuid.UUID) (*models.Survey, error) {
	var survey models.Survey
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&survey).Error; err != nil {
		return nil, err
	}
	return &survey, nil
}

func (r *repository) UpdateSurvey(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Survey{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListSurveys(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Survey, error) {
	var surveys []models.Survey
	q := r.db.WithContext(ctx)

	if filters.TargetID != uuid.Nil {
		q = q.Where("target_id = ?", filters.TargetID)
	}
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}
	if filters.Type != nil {
		q = q.Where("type = ?", *filters.Type)
	}

	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}
	if cursor != nil {
		q = q.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	err = q.Order("created_at DESC, id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&surveys).Error
	if err != nil {
		return nil, err
	}
	return surveys, nil
}

func (r *repository) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindSellerByID(ctx context.Context, id uuid.UUID) (*models.Seller, error) {
	var seller models.Seller
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&seller).Error; err != nil {
		return nil, err
	}
	return &seller, nil
}

func (r *repository) UpdateUserSurveyRequests(ctx context.Context, id uuid.UUID, ids dbtypes.UUIDArray) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("survey_request_ids", ids).Error
}

func (r *repository) UpdateSellerSurveyRequests(ctx context.Context, id uuid.UUID, ids dbtypes.UUIDArray) error {
	return r.db.WithContext(ctx).
		Model(&models.Seller{}).
		Where("id = ?", id).
		Update("survey_request_ids", ids).Error
}
