package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/fleetline/dispatch-backend/api/responses"
	"github.com/fleetline/dispatch-backend/api/validators"
	internaljobs "github.com/fleetline/dispatch-backend/internal/jobs"
	internaloffers "github.com/fleetline/dispatch-backend/internal/offers"
	"github.com/fleetline/dispatch-backend/pkg/enums"
	pkgerrors "github.com/fleetline/dispatch-backend/pkg/errors"
	"github.com/fleetline/dispatch-backend/pkg/logger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type offerView struct {
	ID           uuid.UUID             `json:"id"`
	JobID        uuid.UUID             `json:"job_id"`
	AgentID      uuid.UUID             `json:"agent_id"`
	Status       enums.OfferStatus     `json:"status"`
	NotifyStatus enums.NotifyStatus    `json:"notify_status"`
	SentAt       time.Time             `json:"sent_at"`
	RespondedAt  *time.Time            `json:"responded_at,omitempty"`
	Job          *internaljobs.JobView `json:"job,omitempty"`
}

// GetOffer returns one offer with its job attached. Drivers land here
// from the link in their notification.
func GetOffer(offersRepo internaloffers.Repository, jobsRepo internaljobs.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if offersRepo == nil || jobsRepo == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "offer storage unavailable"))
			return
		}

		offerID, err := validators.UUIDParam(r, "offerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		offer, err := offersRepo.FindByID(r.Context(), offerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "offer not found"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load offer"))
			return
		}

		view := offerView{
			ID:           offer.ID,
			JobID:        offer.JobID,
			AgentID:      offer.AgentID,
			Status:       offer.Status,
			NotifyStatus: offer.NotifyStatus,
			SentAt:       offer.SentAt,
			RespondedAt:  offer.RespondedAt,
		}
		if job, jobErr := jobsRepo.FindByID(r.Context(), offer.JobID); jobErr == nil {
			view.Job = internaljobs.NewJobView(job)
		}
		responses.WriteSuccess(w, view)
	}
}
