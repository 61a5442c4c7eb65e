package consultations

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/solbazaar/solbazaar-backend/internal/identity"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
	"gorm.io/gorm"
)

type service struct {
	repo     Repository
	accounts identity.Repository
	logg     *logger.Logger
}

// NewService builds the consultations service with the required dependencies.
func NewService(repo Repository, accounts identity.Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("consultations repository required")
	}
	if accounts == nil {
		return nil, fmt.Errorf("identity repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, accounts: accounts, logg: logg}, nil
}

func (s *service) Ask(ctx context.Context, userID uuid.UUID, input AskInput) (*ConsultationView, error) {
	user, err := s.accounts.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	consultation := &models.Consultation{
		ID:       uuid.New(),
		UserID:   userID,
		Question: input.Question,
	}
	if err := s.repo.CreateConsultation(ctx, consultation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create consultation")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"consultation_id": consultation.ID.String(),
		"user_id":         userID.String(),
	}), "consultation opened")

	view := consultationView(consultation)
	view.UserName = user.Name
	return &view, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*ConsultationView, error) {
	consultation, err := s.loadConsultation(ctx, id)
	if err != nil {
		return nil, err
	}
	view := consultationView(consultation)
	view.UserName = s.userName(ctx, consultation.UserID)
	return &view, nil
}

// Reply appends a staff answer. Earlier replies are kept, matching the
// running thread a user sees.
func (s *service) Reply(ctx context.Context, id uuid.UUID, input ReplyInput) (*ConsultationView, error) {
	consultation, err := s.loadConsultation(ctx, id)
	if err != nil {
		return nil, err
	}

	replies := append(pq.StringArray{}, consultation.Replies...)
	updates := map[string]any{"replies": append(replies, input.Reply)}
	if err := s.repo.UpdateConsultation(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record reply")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.DeleteConsultation(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete consultation")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "consultation not found")
	}
	return nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*ConsultationList, error) {
	consultations, err := s.repo.ListConsultations(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list consultations")
	}

	names := map[uuid.UUID]string{}
	limit := pagination.NormalizeLimit(params.Limit)
	list := &ConsultationList{Items: make([]ConsultationView, 0, len(consultations))}
	for i := range consultations {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: consultations[limit-1].CreatedAt,
				ID:        consultations[limit-1].ID,
			})
			list.NextCursor = &cursor
			break
		}
		view := consultationView(&consultations[i])
		name, ok := names[view.UserID]
		if !ok {
			name = s.userName(ctx, view.UserID)
			names[view.UserID] = name
		}
		view.UserName = name
		list.Items = append(list.Items, view)
	}
	return list, nil
}

// userName resolves the asking user's display name. A deleted account leaves
// the name empty rather than failing the read.
func (s *service) userName(ctx context.Context, userID uuid.UUID) string {
	user, err := s.accounts.FindUserByID(ctx, userID)
	if err != nil {
		return ""
	}
	return user.Name
}

func (s *service) loadConsultation(ctx context.Context, id uuid.UUID) (*models.Consultation, error) {
	consultation, err := s.repo.FindConsultationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "consultation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load consultation")
	}
	return consultation, nil
}
