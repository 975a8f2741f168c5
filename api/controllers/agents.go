package controllers

import (
	"net/http"

	"github.com/fleetline/dispatch-backend/api/responses"
	"github.com/fleetline/dispatch-backend/api/validators"
	internalagents "github.com/fleetline/dispatch-backend/internal/agents"
	pkgerrors "github.com/fleetline/dispatch-backend/pkg/errors"
	"github.com/fleetline/dispatch-backend/pkg/logger"
)

type agentSyncRequest struct {
	Agents []internalagents.AgentInput `json:"agents" validate:"required,min=1,dive"`
}

// SyncAgents replaces registry entries from the upstream roster.
func SyncAgents(svc internalagents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "agents service unavailable"))
			return
		}

		var req agentSyncRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Sync(r.Context(), req.Agents)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
