package surveys

import (
	"time"

	"github.com/google/uuid"
	"github.com/solbazaar/solbazaar-backend/pkg/db/models"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
)

// ScheduleInput carries the request to schedule a physical inspection.
type ScheduleInput struct {
	TargetID   uuid.UUID  `json:"target_id" validate:"required"`
	TargetType string     `json:"target_type" validate:"required"`
	Type       string     `json:"type" validate:"required"`
	SurveyDate *time.Time `json:"survey_date,omitempty"`
	Surveyor   string     `json:"surveyor" validate:"required"`
	Notes      *string    `json:"notes,omitempty"`
}

// RequestInput is a seller asking for a warehouse inspection of their own
// premises. No surveyor is assigned until an admin picks the request up.
type RequestInput struct {
	Notes *string `json:"notes,omitempty"`
}

// CompleteInput records the outcome of a carried-out survey.
type CompleteInput struct {
	SurveyDate *time.Time `json:"survey_date,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

type SurveyView struct {
	ID         uuid.UUID          `json:"id"`
	TargetID   uuid.UUID          `json:"target_id"`
	TargetType enums.SurveyTarget `json:"target_type"`
	Type       enums.SurveyType   `json:"type"`
	Status     enums.SurveyStatus `json:"status"`
	SurveyDate *time.Time         `json:"survey_date,omitempty"`
	Surveyor   string             `json:"surveyor"`
	Notes      *string            `json:"notes,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type SurveyList struct {
	Items      []SurveyView `json:"items"`
	NextCursor *string      `json:"next_cursor,omitempty"`
}

// ListFilters narrows survey listings.
type ListFilters struct {
	TargetID uuid.UUID
	Status   *enums.SurveyStatus
	Type     *enums.SurveyType
}

func surveyView(survey *models.Survey) SurveyView {
	return SurveyView{
		ID:         survey.ID,
		TargetID:   survey.TargetID,
		TargetType: survey.TargetType,
		Type:       survey.Type,
		Status:     survey.Status,
		SurveyDate: survey.SurveyDate,
		Surveyor:   survey.Surveyor,
		Notes:      survey.Notes,
		CreatedAt:  survey.CreatedAt,
		UpdatedAt:  survey.UpdatedAt,
	}
}
