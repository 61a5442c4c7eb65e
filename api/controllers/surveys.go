package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/solbazaar/solbazaar-backend/api/responses"
	"github.com/solbazaar/solbazaar-backend/api/validators"
	"github.com/solbazaar/solbazaar-backend/internal/surveys"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
)

// AdminSurveySchedule books a site survey against a user or seller account.
func AdminSurveySchedule(svc surveys.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "surveys service unavailable"))
			return
		}

		var payload surveys.ScheduleInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		survey, err := svc.Schedule(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, survey)
	}
}

// SellerSurveyRequest opens an inspection request on the caller's own
// premises. The body is optional and only carries notes.
func SellerSurveyRequest(svc surveys.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "surveys service unavailable"))
			return
		}

		sellerID, err := principalID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload surveys.RequestInput
		if r.ContentLength != 0 {
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
		}

		survey, err := svc.Request(r.Context(), sellerID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, survey)
	}
}

type scheduleSurveyRequest struct {
	Type       string     `json:"type" validate:"required"`
	SurveyDate *time.Time `json:"survey_date,omitempty"`
	Surveyor   string     `json:"surveyor" validate:"required"`
	Notes      *string    `json:"notes,omitempty"`
}

// AdminUserScheduleSurvey books a survey against the user named in the path.
func AdminUserScheduleSurvey(svc surveys.Service, logg *logger.Logger) http.HandlerFunc {
	return scheduleForTarget(svc, logg, "userId", enums.SurveyTargetUser)
}

// AdminSellerScheduleSurvey books a survey against the seller named in the path.
func AdminSellerScheduleSurvey(svc surveys.Service, logg *logger.Logger) http.HandlerFunc {
	return scheduleForTarget(svc, logg, "sellerId", enums.SurveyTargetSeller)
}

func scheduleForTarget(svc surveys.Service, logg *logger.Logger, param string, target enums.SurveyTarget) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "surveys service unavailable"))
			return
		}

		targetID, err := pathUUID(r, param)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload scheduleSurveyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		survey, err := svc.Schedule(r.Context(), surveys.ScheduleInput{
			TargetID:   targetID,
			TargetType: target.String(),
			Type:       payload.Type,
			SurveyDate: payload.SurveyDate,
			Surveyor:   payload.Surveyor,
			Notes:      payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, survey)
	}
}

func AdminSurveyDetail(svc surveys.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "surveys service unavailable"))
			return
		}

		id, err := pathUUID(r, "surveyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		survey, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, survey)
	}
}

func AdminSurveyComplete(svc surveys.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "surveys service unavailable"))
			return
		}

		id, err := pathUUID(r, "surveyId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload surveys.CompleteInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		survey, err := svc.Complete(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, survey)
	}
}

func AdminSurveyList(svc surveys.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "surveys service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filters surveys.ListFilters
		targetID, err := validators.ParseQueryUUID(r, "target_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.TargetID = targetID

		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseSurveyStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filters.Status = &status
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("type")); raw != "" {
			surveyType, err := enums.ParseSurveyType(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid type filter"))
				return
			}
			filters.Type = &surveyType
		}

		list, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}
