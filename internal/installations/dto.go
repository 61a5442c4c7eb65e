package installations

import (
	"time"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
)

// ScheduleInput books an on-site install of a solution for a user.
type ScheduleInput struct {
	UserID     uuid.UUID `json:"user_id" validate:"required"`
	SolutionID uuid.UUID `json:"solution_id" validate:"required"`
	Company    string    `json:"company" validate:"required"`
	Date       time.Time `json:"date" validate:"required"`
	Technician string    `json:"technician" validate:"required"`
	Notes      *string   `json:"notes,omitempty"`
}

// UpdateInput reschedules or annotates an installation.
type UpdateInput struct {
	Company    *string    `json:"company,omitempty"`
	Date       *time.Time `json:"date,omitempty"`
	Technician *string    `json:"technician,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

// UpdateStatusInput moves the installation to a new lifecycle stage.
type UpdateStatusInput struct {
	Status string `json:"status" validate:"required"`
}

type InstallationView struct {
	ID         uuid.UUID                `json:"id"`
	UserID     uuid.UUID                `json:"user_id"`
	SolutionID uuid.UUID                `json:"solution_id"`
	Company    string                   `json:"company"`
	Status     enums.InstallationStatus `json:"status"`
	Date       time.Time                `json:"date"`
	Technician string                   `json:"technician"`
	Notes      *string                  `json:"notes,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

type InstallationList struct {
	Items      []InstallationView `json:"items"`
	NextCursor *string            `json:"next_cursor,omitempty"`
}

// ListFilters narrows installation listings.
type ListFilters struct {
	UserID uuid.UUID
	Status *enums.InstallationStatus
}

func installationView(installation *models.Installation) InstallationView {
	return InstallationView{
		ID:         installation.ID,
		UserID:     installation.UserID,
		SolutionID: installation.SolutionID,
		Company:    installation.Company,
		Status:     installation.Status,
		Date:       installation.Date,
		Technician: installation.Technician,
		Notes:      installation.Notes,
		CreatedAt:  installation.CreatedAt,
		UpdatedAt:  installation.UpdatedAt,
	}
}
