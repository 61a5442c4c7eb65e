package escalations

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

// NewRepository builds an escalations repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateEscalation(ctx context.Context, escalation *models.Escalation) error {
	return r.db.WithContext(ctx).Create(escalation).Error
}

func (r *repository) FindEscalationByID(ctx context.Context, id uuid.UUID) (*models.Escalation, error) {
	var escalation models.Escalation
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&escalation).Error; err != nil {
		return nil, err
	}
	return &escalation, nil
}

func (r *repository) UpdateEscalation(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Escalation{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) ListEscalations(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.Escalation, error) {
	var escalations []models.Escalation
	q := r.db.WithContext(ctx)

	if filters.UserID != uuid.Nil {
		q = q.Where("user_id = ?", filters.UserID)
	}
	if filters.SellerID != uuid.Nil {
		q = q.Where("seller_id = ?", filters.SellerID)
	}
	if filters.Resolved != nil {
		if *filters.Resolved {
			q = q.Where("resolved_at IS NOT NULL")
		} else {
			q = q.Where("resolved_at IS NULL")
		}
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
		Find(&escalations).Error
	if err != nil {
		return nil, err
	}
	return escalations, nil
}
