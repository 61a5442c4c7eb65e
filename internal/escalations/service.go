package escalations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/solbazaar/solbazaar-backend/internal/identity"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo     Repository
	accounts identity.Repository
	tx       txRunner
	logg     *logger.Logger
}

// NewService builds the escalations service with the required dependencies.
func NewService(repo Repository, accounts identity.Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("escalations repository required")
	}
	if accounts == nil {
		return nil, fmt.Errorf("identity repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, accounts: accounts, tx: tx, logg: logg}, nil
}

func (s *service) File(ctx context.Context, input FileInput) (*EscalationView, error) {
	if _, err := s.accounts.FindUserByID(ctx, input.UserID); err != nil {
		return nil, accountError(err, "user")
	}
	if _, err := s.accounts.FindSellerByID(ctx, input.SellerID); err != nil {
		return nil, accountError(err, "seller")
	}

	escalation := &models.Escalation{
		ID:             uuid.New(),
		UserID:         input.UserID,
		SellerID:       input.SellerID,
		UserConcerns:   pq.StringArray(input.UserConcerns),
		SellerConcerns: pq.StringArray(input.SellerConcerns),
		Decision:       enums.EscalationDecisionNone,
	}
	if err := s.repo.CreateEscalation(ctx, escalation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create escalation")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"escalation_id": escalation.ID.String(),
		"user_id":       escalation.UserID.String(),
		"seller_id":     escalation.SellerID.String(),
	}), "escalation filed")

	view := escalationView(escalation)
	return &view, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*EscalationView, error) {
	escalation, err := s.loadEscalation(ctx, id)
	if err != nil {
		return nil, err
	}
	view := escalationView(escalation)
	return &view, nil
}

func (s *service) AddConcern(ctx context.Context, id uuid.UUID, input ConcernInput) (*EscalationView, error) {
	escalation, err := s.loadEscalation(ctx, id)
	if err != nil {
		return nil, err
	}
	if escalation.ResolvedAt != nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "escalation already resolved")
	}

	updates := map[string]any{}
	switch input.Party {
	case enums.EscalationDecisionUser.String():
		concerns := append(pq.StringArray{}, escalation.UserConcerns...)
		updates["user_concerns"] = append(concerns, input.Concern)
	case enums.EscalationDecisionSeller.String():
		concerns := append(pq.StringArray{}, escalation.SellerConcerns...)
		updates["seller_concerns"] = append(concerns, input.Concern)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown party %q", input.Party))
	}

	if err := s.repo.UpdateEscalation(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record concern")
	}
	return s.Get(ctx, id)
}

// Resolve records the admin ruling and, when a party loses, deletes that
// party's account in the same transaction. Resolving an already-resolved
// escalation with the same decision is a no-op, so a retried ruling cannot
// fail on the missing account; a different decision is rejected.
func (s *service) Resolve(ctx context.Context, id uuid.UUID, input ResolveInput) (*EscalationView, error) {
	decision, err := enums.ParseEscalationDecision(input.Decision)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown decision %q", input.Decision))
	}

	escalation, err := s.loadEscalation(ctx, id)
	if err != nil {
		return nil, err
	}
	if escalation.ResolvedAt != nil {
		if escalation.Decision == decision {
			view := escalationView(escalation)
			return &view, nil
		}
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("escalation already resolved against %q", escalation.Decision))
	}

	now := time.Now().UTC()
	updates := map[string]any{
		"decision":    decision,
		"resolved_at": now,
		"updated_at":  now,
	}
	if input.AdminResponse != nil {
		updates["admin_response"] = *input.AdminResponse
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		accounts := s.accounts.WithTx(tx)

		if err := repo.UpdateEscalation(ctx, id, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolve escalation")
		}

		switch decision {
		case enums.EscalationDecisionUser:
			deleted, err := accounts.DeleteUser(ctx, escalation.UserID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete user account")
			}
			if !deleted {
				s.logg.Info(s.logg.WithField(ctx, "user_id", escalation.UserID.String()),
					"user account already removed")
			}
		case enums.EscalationDecisionSeller:
			deleted, err := accounts.DeleteSeller(ctx, escalation.SellerID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete seller account")
			}
			if !deleted {
				s.logg.Info(s.logg.WithField(ctx, "seller_id", escalation.SellerID.String()),
					"seller account already removed")
			}
		case enums.EscalationDecisionNone:
			// Dispute dismissed, both accounts stay.
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"escalation_id": id.String(),
		"decision":      decision.String(),
	}), "escalation resolved")

	return s.Get(ctx, id)
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*EscalationList, error) {
	escalations, err := s.repo.ListEscalations(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list escalations")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &EscalationList{Items: make([]EscalationView, 0, len(escalations))}
	for i := range escalations {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: escalations[limit-1].CreatedAt,
				ID:        escalations[limit-1].ID,
			})
			list.NextCursor = &cursor
			break
		}
		list.Items = append(list.Items, escalationView(&escalations[i]))
	}
	return list, nil
}

func (s *service) loadEscalation(ctx context.Context, id uuid.UUID) (*models.Escalation, error) {
	escalation, err := s.repo.FindEscalationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "escalation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load escalation")
	}
	return escalation, nil
}

func accountError(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+entity)
}
