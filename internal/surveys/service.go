package surveys

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	dbtypes "github.com/solbazaar/solbazaar-backend/pkg/db/types"
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
	repo Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds the surveys service with the required dependencies.
func NewService(repo Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("surveys repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

// Schedule creates the survey and appends its id to the target account's
// request list in a single transaction. A missing target aborts the whole
// write, so no survey row exists without a matching request-list entry.
func (s *service) Schedule(ctx context.Context, input ScheduleInput) (*SurveyView, error) {
	target, err := enums.ParseSurveyTarget(input.TargetType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown survey target %q", input.TargetType))
	}
	surveyType, err := enums.ParseSurveyType(input.Type)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown survey type %q", input.Type))
	}

	survey := &models.Survey{
		ID:         uuid.New(),
		TargetID:   input.TargetID,
		TargetType: target,
		Type:       surveyType,
		Status:     enums.SurveyStatusRequested,
		SurveyDate: input.SurveyDate,
		Surveyor:   input.Surveyor,
		Notes:      input.Notes,
	}

	if err := s.createWithRequestEntry(ctx, survey); err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"survey_id":   survey.ID.String(),
		"target_id":   survey.TargetID.String(),
		"target_type": survey.TargetType.String(),
	}), "survey scheduled")

	view := surveyView(survey)
	return &view, nil
}

// Request opens an unassigned warehouse survey on the seller's own premises.
func (s *service) Request(ctx context.Context, sellerID uuid.UUID, input RequestInput) (*SurveyView, error) {
	survey := &models.Survey{
		ID:         uuid.New(),
		TargetID:   sellerID,
		TargetType: enums.SurveyTargetSeller,
		Type:       enums.SurveyTypeWarehouse,
		Status:     enums.SurveyStatusRequested,
		Notes:      input.Notes,
	}

	if err := s.createWithRequestEntry(ctx, survey); err != nil {
		return nil, err
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"survey_id": survey.ID.String(),
		"seller_id": sellerID.String(),
	}), "survey requested")

	view := surveyView(survey)
	return &view, nil
}

// createWithRequestEntry inserts the survey and appends its id to the target
// account's request list in one transaction.
func (s *service) createWithRequestEntry(ctx context.Context, survey *models.Survey) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		switch survey.TargetType {
		case enums.SurveyTargetUser:
			user, err := repo.FindUserByID(ctx, survey.TargetID)
			if err != nil {
				return targetError(err, "user")
			}
			if err := repo.CreateSurvey(ctx, survey); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create survey")
			}
			requests := append(dbtypes.UUIDArray{}, user.SurveyRequestIDs...)
			requests = append(requests, survey.ID)
			if err := repo.UpdateUserSurveyRequests(ctx, user.ID, requests); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record survey request")
			}
		case enums.SurveyTargetSeller:
			seller, err := repo.FindSellerByID(ctx, survey.TargetID)
			if err != nil {
				return targetError(err, "seller")
			}
			if err := repo.CreateSurvey(ctx, survey); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create survey")
			}
			requests := append(dbtypes.UUIDArray{}, seller.SurveyRequestIDs...)
			requests = append(requests, survey.ID)
			if err := repo.UpdateSellerSurveyRequests(ctx, seller.ID, requests); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record survey request")
			}
		}
		return nil
	})
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*SurveyView, error) {
	survey, err := s.loadSurvey(ctx, id)
	if err != nil {
		return nil, err
	}
	view := surveyView(survey)
	return &view, nil
}

// Complete marks the survey carried out. Completing a survey that is already
// completed returns the stored record unchanged.
func (s *service) Complete(ctx context.Context, id uuid.UUID, input CompleteInput) (*SurveyView, error) {
	survey, err := s.loadSurvey(ctx, id)
	if err != nil {
		return nil, err
	}
	if survey.Status == enums.SurveyStatusCompleted {
		view := surveyView(survey)
		return &view, nil
	}

	updates := map[string]any{
		"status":     enums.SurveyStatusCompleted,
		"updated_at": time.Now().UTC(),
	}
	if input.SurveyDate != nil {
		updates["survey_date"] = *input.SurveyDate
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if err := s.repo.UpdateSurvey(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete survey")
	}
	return s.Get(ctx, id)
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*SurveyList, error) {
	surveys, err := s.repo.ListSurveys(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list surveys")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &SurveyList{Items: make([]SurveyView, 0, len(surveys))}
	for i := range surveys {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: surveys[limit-1].CreatedAt,
				ID:        surveys[limit-1].ID,
			})
			list.NextCursor = &cursor
			break
		}
		list.Items = append(list.Items, surveyView(&surveys[i]))
	}
	return list, nil
}

func (s *service) loadSurvey(ctx context.Context, id uuid.UUID) (*models.Survey, error) {
	survey, err := s.repo.FindSurveyByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "survey not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load survey")
	}
	return survey, nil
}

func targetError(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+entity)
}
