package solutions

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

// NewService builds the solutions service with the required dependencies.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("solutions repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*SolutionView, error) {
	solutionType, err := enums.ParseSolutionType(input.Type)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown solution type %q", input.Type))
	}
	structure, err := enums.ParseMountingStructure(input.Structure)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown mounting structure %q", input.Structure))
	}
	if input.Price.IsNegative() || input.SystemSizeKW.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price and system size must be non-negative")
	}

	solution := &models.SolarSolution{
		ID:            uuid.New(),
		Name:          input.Name,
		SystemSizeKW:  input.SystemSizeKW,
		Type:          solutionType,
		NetMetering:   input.NetMetering,
		Description:   input.Description,
		Price:         input.Price.Round(2),
		WarrantyYears: input.WarrantyYears,
		Panels:        input.Panels,
		Inverter:      input.Inverter,
		Battery:       input.Battery,
		Structure:     structure,
	}
	if err := s.repo.CreateSolution(ctx, solution); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create solution")
	}

	s.logg.Info(s.logg.WithField(ctx, "solution_id", solution.ID.String()), "solution created")

	view := solutionView(solution)
	return &view, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*SolutionView, error) {
	solution, err := s.loadSolution(ctx, id)
	if err != nil {
		return nil, err
	}
	view := solutionView(solution)
	return &view, nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, input UpdateInput) (*SolutionView, error) {
	updates := map[string]any{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.SystemSizeKW != nil {
		updates["system_size_kw"] = *input.SystemSizeKW
	}
	if input.Type != nil {
		solutionType, err := enums.ParseSolutionType(*input.Type)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown solution type %q", *input.Type))
		}
		updates["type"] = solutionType
	}
	if input.NetMetering != nil {
		updates["net_metering"] = *input.NetMetering
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
		}
		updates["price"] = input.Price.Round(2)
	}
	if input.WarrantyYears != nil {
		updates["warranty_years"] = *input.WarrantyYears
	}
	if input.Panels != nil {
		updates["panels"] = *input.Panels
	}
	if input.Inverter != nil {
		updates["inverter"] = *input.Inverter
	}
	if input.Battery != nil {
		updates["battery"] = *input.Battery
	}
	if input.Structure != nil {
		structure, err := enums.ParseMountingStructure(*input.Structure)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown mounting structure %q", *input.Structure))
		}
		updates["structure"] = structure
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	if _, err := s.loadSolution(ctx, id); err != nil {
		return nil, err
	}
	updates["updated_at"] = time.Now().UTC()
	if err := s.repo.UpdateSolution(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update solution")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.DeleteSolution(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete solution")
	}
	if !deleted {
		return pkgerrors.New(pkgerrors.CodeNotFound, "solution not found")
	}
	return nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*SolutionList, error) {
	solutions, err := s.repo.ListSolutions(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list solutions")
	}

	limit := pagination.NormalizeLimit(params.Limit)
	list := &SolutionList{Items: make([]SolutionView, 0, len(solutions))}
	for i := range solutions {
		if i == limit {
			cursor := pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: solutions[limit-1].CreatedAt,
				ID:        solutions[limit-1].ID,
			})
			list.NextCursor = &cursor
			break
		}
		list.Items = append(list.Items, solutionView(&solutions[i]))
	}
	return list, nil
}

func (s *service) loadSolution(ctx context.Context, id uuid.UUID) (*models.SolarSolution, error) {
	solution, err := s.repo.FindSolutionByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "solution not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load solution")
	}
	return solution, nil
}
