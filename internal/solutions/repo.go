package solutions

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

// NewRepository builds a solutions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateSolution(ctx context.Context, solution *models.SolarSolution) error {
	return r.db.WithContext(ctx).Create(solution).Error
}

func (r *repository) FindSolutionByID(ctx context.Context, id uuid.UUID) (*models.SolarSolution, error) {
	var solution models.SolarSolution
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&solution).Error; err != nil {
		return nil, err
	}
	return &solution, nil
}

func (r *repository) UpdateSolution(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.SolarSolution{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteSolution(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.SolarSolution{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ListSolutions(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.SolarSolution, error) {
	var solutions []models.SolarSolution
	q := r.db.WithContext(ctx)

	if filters.Type != nil {
		q = q.Where("type = ?", *filters.Type)
	}
	if filters.NetMetering != nil {
		q = q.Where("net_metering = ?", *filters.NetMetering)
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
		Find(&solutions).Error
	if err != nil {
		return nil, err
	}
	return solutions, nil
}
