package controllers

import (
	"net/http"

	"github.com/fleetline/dispatch-backend/api/responses"
	"github.com/fleetline/dispatch-backend/api/validators"
	"github.com/fleetline/dispatch-backend/internal/cascade"
	pkgerrors "github.com/fleetline/dispatch-backend/pkg/errors"
	"github.com/fleetline/dispatch-backend/pkg/logger"
	"github.com/google/uuid"
)

type driverResponseRequest struct {
	Phone string     `json:"phone" validate:"required"`
	Text  string     `json:"text" validate:"required"`
	JobID *uuid.UUID `json:"job_id,omitempty"`
}

// DriverResponse accepts inbound replies relayed by the messaging
// provider and applies them to the agent's open offer.
func DriverResponse(svc cascade.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cascade service unavailable"))
			return
		}

		var req driverResponseRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.DriverResponse(r.Context(), cascade.DriverResponseInput{
			Phone: req.Phone,
			Text:  req.Text,
			JobID: req.JobID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
