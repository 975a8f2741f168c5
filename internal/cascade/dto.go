package cascade

import (
	"github.com/fleetline/dispatch-backend/pkg/db/models"
	"github.com/fleetline/dispatch-backend/pkg/enums"
	"github.com/google/uuid"
)

// Outcome labels what the cascade did in response to a trigger.
type Outcome string

const (
	// OutcomeOfferSent means a fresh offer went out to the next agent.
	OutcomeOfferSent Outcome = "offer_sent"
	// OutcomeNoMoreAgents means every eligible agent has been tried and
	// the job is quiescent until the registry changes or a coordinator
	// intervenes.
	OutcomeNoMoreAgents Outcome = "no_more_agents"
)

// AgentSummary is the slim agent projection embedded in cascade results.
type AgentSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

func newAgentSummary(agent *models.Agent) *AgentSummary {
	if agent == nil {
		return nil
	}
	return &AgentSummary{ID: agent.ID, Name: agent.Name, Phone: agent.Phone}
}

// OfferResult reports one advance attempt: either the offer that went
// out, or the exhaustion of the agent pool.
type OfferResult struct {
	Outcome   Outcome         `json:"outcome"`
	JobID     uuid.UUID       `json:"job_id"`
	JobStatus enums.JobStatus `json:"job_status"`
	OfferID   *uuid.UUID      `json:"offer_id,omitempty"`
	Agent     *AgentSummary   `json:"agent,omitempty"`
}

// TickResult summarizes one timeout sweep.
type TickResult struct {
	TimedOut int `json:"timed_out"`
	Advanced int `json:"advanced"`
}

// DriverResponseInput is an inbound reply from a driver agent. JobID is
// optional; when present it scopes the offer lookup to one job.
type DriverResponseInput struct {
	Phone string
	Text  string
	JobID *uuid.UUID
}

// ResponseResult reports how an inbound reply was applied. Next is set
// after a decline and describes the follow-up advance.
type ResponseResult struct {
	Reply   enums.DriverReply `json:"reply"`
	JobID   uuid.UUID         `json:"job_id"`
	AgentID uuid.UUID         `json:"agent_id"`
	OfferID uuid.UUID         `json:"offer_id"`
	Next    *OfferResult      `json:"next,omitempty"`
}
