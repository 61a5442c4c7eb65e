package installations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
	"github.com/solbazaar/solbazaar-backend/pkg/pagination"
	"gorm.io/gorm"
)

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the installations service with the required dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("installations repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Schedule(ctx context.Context, input ScheduleInput) (*InstallationView, error) {
	if _, err := s.repo.FindUserByID(ctx, input.UserID); err != nil {
		return nil, lookupError(err, "user")
	}
	if _, err := s.repo.FindSolutionByID(ctx, input.SolutionID); err != nil {
		return nil, lookupError(err, "solution")
	}

	installation := &models.Installation{
		ID:         uuid.New(),
		UserID:     input.UserID,
		SolutionID: input.SolutionID,
		Company:    input.Company,
		Status:     enums.InstallationStatusScheduled,
		Date:       input.Date,
		Technician: input.Technician,
		Notes:      input.Notes,
	}
	if err := s.repo.CreateInstallation(ctx, installation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create installation")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"installation_id": installation.ID.String(),
		"user_id":         installation.UserID.String(),
	}), "installation scheduled")

	view := installationView(installation)
	return &view, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*InstallationView, error) {
	installation, err := s.loadInstallation(ctx, id)
	if err != nil {
		return nil, err
	}
	view := installationView(installation)
	return &view, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*InstallationView, error) {
	updates := map[string]any{}
	if input.Company != nil {
		updates["company"] = *input.Company
	}
	if input.Date != nil {
		updates["date"] = *input.Date
	}
	if input.Technician != nil {
		updates["technician"] = *input.Technician
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	if _, err := s.loadInstallation(ctx, id); err != nil {
		return nil, err
	}
	updates["updated_at"] = time.Now().UTC()
	if err := s.repo.UpdateInstallation(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update installation")
	}
	return s.Get(ctx, id)
}

// UpdateStatus accepts any known lifecycle stage. Stages can move backwards,
// an install that stalls goes from ongoing back to scheduled.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*InstallationView, error) {
	status, err := enums.ParseInstallationStatus(input.Status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("unknown installation status %q", input.Status))
	}

	if _, err := s.loadInstallation(ctx, id); err != nil {
		return nil, err
	}
	updates := map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if err := s.repo.UpdateInstallation(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update installation status")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.DeleteInstallation(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete installation")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "installation not found")
	}
	return nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*InstallationList, error) {
	installations, err := s.repo.ListInstallations(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list installations")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &InstallationList{Items: make([]InstallationView, 0, len(installations))}
	for i := range installations {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: installations[limit-1].CreatedAt,
				ID:        installations[limit-1].ID,
			})
			list.NextCursor = &cursor
			break
		}
		list.Items = append(list.Items, installationView(&installations[i]))
	}
	return list, nil
}

func (s *service) loadInstallation(ctx context.Context, id uuid.UUID) (*models.Installation, error) {
	installation, err := s.repo.FindInstallationByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "installation not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load installation")
	}
	return installation, nil
}

func lookupError(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load "+entity)
}
