package installations

import (
	"context"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an installations repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateInstallation(ctx context.Context, installation *models.Installation) error {
	return r.db.WithContext(ctx).Create(installation).Error
}

func (r *repository) FindInstallationByID(ctx context.Context, id uuid.UUID) (*models.Installation, error) {
	var installation models.Installation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&installation).Error; err != nil {
		return nil, err
	}
	return &installation, nil
}

func (r *repository) UpdateInstallation(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Installation{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteInstallation(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Installation{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ListInstallations(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Installation, error) {
	var installations []models.Installation
	q := r.db.WithContext(ctx)

	if filters.UserID != uuid.Nil {
		q = q.Where("user_id = ?", filters.UserID)
	}
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
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
		Find(&installations).Error
	if err != nil {
		return nil, err
	}
	return installations, nil
}

func (r *repository) FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) FindSolutionByID(ctx context.Context, id uuid.UUID) (*models.SolarSolution, error) {
	var solution models.SolarSolution
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&solution).Error; err != nil {
		return nil, err
	}
	return &solution, nil
}
