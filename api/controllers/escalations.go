package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/solbazaar/solbazaar-backend/api/responses"
	"github.com/solbazaar/solbazaar-backend/api/validators"
	"github.com/solbazaar/solbazaar-backend/internal/escalations"
	"github.com/solbazaar/solbazaar-backend/pkg/enums"
	pkgerrors "github.com/solbazaar/solbazaar-backend/pkg/errors"
	"github.com/solbazaar/solbazaar-backend/pkg/logger"
)

type fileEscalationRequest struct {
	SellerID uuid.UUID `json:"seller_id" validate:"required"`
	Concerns []string  `json:"concerns" validate:"required,min=1,dive,required"`
}

// UserEscalationFile opens a dispute against a seller on behalf of the
// authenticated buyer.
func UserEscalationFile(svc escalations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "escalations service unavailable"))
			return
		}

		userID, err := principalID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload fileEscalationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		escalation, err := svc.File(r.Context(), escalations.FileInput{
			UserID:       userID,
			SellerID:     payload.SellerID,
			UserConcerns: payload.Concerns,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, escalation)
	}
}

type escalationConcernRequest struct {
	Concern string `json:"concern" validate:"required"`
}

// UserEscalationConcern appends a buyer complaint to their own dispute.
func UserEscalationConcern(svc escalations.Service, logg *logger.Logger) http.HandlerFunc {
	return escalationConcern(svc, logg, enums.EscalationDecisionUser.String(), func(view *escalations.EscalationView, principal uuid.UUID) bool {
		return view.UserID == principal
	})
}

// SellerEscalationConcern appends a seller rebuttal to a dispute naming them.
func SellerEscalationConcern(svc escalations.Service, logg *logger.Logger) http.HandlerFunc {
	return escalationConcern(svc, logg, enums.EscalationDecisionSeller.String(), func(view *escalations.EscalationView, principal uuid.UUID) bool {
		return view.SellerID == principal
	})
}

func escalationConcern(svc escalations.Service, logg *logger.Logger, party string, owns func(*escalations.EscalationView, uuid.UUID) bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "escalations service unavailable"))
			return
		}

		principal, err := principalID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		escalationID, err := pathUUID(r, "escalationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		existing, err := svc.Get(r.Context(), escalationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if !owns(existing, principal) {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "escalation not found"))
			return
		}

		var payload escalationConcernRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		escalation, err := svc.AddConcern(r.Context(), escalationID, escalations.ConcernInput{
			Party:   party,
			Concern: payload.Concern,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, escalation)
	}
}

// UserEscalationList shows the authenticated buyer's disputes.
func UserEscalationList(svc escalations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "escalations service unavailable"))
			return
		}

		userID, err := principalID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), params, escalations.ListFilters{UserID: userID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

func AdminEscalationList(svc escalations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "escalations service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var filters escalations.ListFilters
		userID, err := validators.ParseQueryUUID(r, "user_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.UserID = userID

		sellerID, err := validators.ParseQueryUUID(r, "seller_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.SellerID = sellerID

		resolved, err := validators.ParseQueryBool(r, "resolved")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters.Resolved = resolved

		list, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

func AdminEscalationDetail(svc escalations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "escalations service unavailable"))
			return
		}

		id, err := pathUUID(r, "escalationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		escalation, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, escalation)
	}
}

// AdminEscalationResolve records the ruling. A ruling against a party also
// removes that party's account.
func AdminEscalationResolve(svc escalations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "escalations service unavailable"))
			return
		}

		id, err := pathUUID(r, "escalationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload escalations.ResolveInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		escalation, err := svc.Resolve(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, escalation)
	}
}
