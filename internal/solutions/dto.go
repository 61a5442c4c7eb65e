package solutions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
)

// CreateInput adds a turnkey system package to the curated catalog.
type CreateInput struct {
	Name          string          `json:"name" validate:"required"`
	SystemSizeKW  decimal.Decimal `json:"system_size_kw" validate:"required"`
	Type          string          `json:"type" validate:"required"`
	NetMetering   bool            `json:"net_metering"`
	Description   *string         `json:"description,omitempty"`
	Price         decimal.Decimal `json:"price" validate:"required"`
	WarrantyYears int             `json:"warranty_years" validate:"gte=0"`
	Panels        string          `json:"panels" validate:"required"`
	Inverter      string          `json:"inverter" validate:"required"`
	Battery       *string         `json:"battery,omitempty"`
	Structure     string          `json:"structure" validate:"required"`
}

// UpdateInput edits an existing package. Nil fields keep their stored values.
type UpdateInput struct {
	Name          *string          `json:"name,omitempty"`
	SystemSizeKW  *decimal.Decimal `json:"system_size_kw,omitempty"`
	Type          *string          `json:"type,omitempty"`
	NetMetering   *bool            `json:"net_metering,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	WarrantyYears *int             `json:"warranty_years,omitempty"`
	Panels        *string          `json:"panels,omitempty"`
	Inverter      *string          `json:"inverter,omitempty"`
	Battery       *string          `json:"battery,omitempty"`
	Structure     *string          `json:"structure,omitempty"`
}

type SolutionView struct {
	ID            uuid.UUID               `json:"id"`
	Name          string                  `json:"name"`
	SystemSizeKW  decimal.Decimal         `json:"system_size_kw"`
	Type          enums.SolutionType      `json:"type"`
	NetMetering   bool                    `json:"net_metering"`
	Description   *string                 `json:"description,omitempty"`
	Price         decimal.Decimal         `json:"price"`
	WarrantyYears int                     `json:"warranty_years"`
	Panels        string                  `json:"panels"`
	Inverter      string                  `json:"inverter"`
	Battery       *string                 `json:"battery,omitempty"`
	Structure     enums.MountingStructure `json:"structure"`
	CreatedAt     time.Time               `json:"created_at"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

type SolutionList struct {
	Items      []SolutionView `json:"items"`
	NextCursor *string        `json:"next_cursor,omitempty"`
}

// ListFilters narrows catalog listings.
type ListFilters struct {
	Type        *enums.SolutionType
	NetMetering *bool
}

func solutionView(solution *models.SolarSolution) SolutionView {
	return SolutionView{
		ID:            solution.ID,
		Name:          solution.Name,
		SystemSizeKW:  solution.SystemSizeKW,
		Type:          solution.Type,
		NetMetering:   solution.NetMetering,
		Description:   solution.Description,
		Price:         solution.Price,
		WarrantyYears: solution.WarrantyYears,
		Panels:        solution.Panels,
		Inverter:      solution.Inverter,
		Battery:       solution.Battery,
		Structure:     solution.Structure,
		CreatedAt:     solution.CreatedAt,
		UpdatedAt:     solution.UpdatedAt,
	}
}
