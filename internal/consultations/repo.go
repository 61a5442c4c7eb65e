package consultations

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

// NewRepository builds a consultations repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateConsultation(ctx context.Context, consultation *models.Consultation) error {
	return r.db.WithContext(ctx).Create(consultation).Error
}

func (r *repository) FindConsultationByID(ctx context.Context, id uuid.UUID) (*models.Consultation, error) {
	var consultation models.Consultation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&consultation).Error; err != nil {
		return nil, err
	}
	return &consultation, nil
}

func (r *repository) UpdateConsultation(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Consultation{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) DeleteConsultation(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Consultation{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *repository) ListConsultations(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Consultation, error) {
	var consultations []models.Consultation
	q := r.db.WithContext(ctx)

	if filters.UserID != uuid.Nil {
		q = q.Where("user_id = ?", filters.UserID)
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
		Find(&consultations).Error
	if err != nil {
		return nil, err
	}
	return consultations, nil
}
