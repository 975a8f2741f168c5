package jobs

import (
	"time"

	"github.com/fleetline/dispatch-backend/pkg/db/models"
	"github.com/fleetline/dispatch-backend/pkg/enums"
	"github.com/google/uuid"
)

// CreateJobInput carries an intake row from the upstream sheet. Route
// attributes are optional pass-through strings.
type CreateJobInput struct {
	ExternalRef      string  `json:"external_ref" validate:"required"`
	PickupDate       *string `json:"pickup_date,omitempty"`
	PickupTime       *string `json:"pickup_time,omitempty"`
	Origin           *string `json:"origin,omitempty"`
	Destination      *string `json:"destination,omitempty"`
	VehicleType      *string `json:"vehicle_type,omitempty"`
	CoordinatorEmail string  `json:"coordinator_email,omitempty"`
}

// CreateJobResult reports an intake outcome. AlreadyExists marks a replay
// of a previously ingested external_ref.
type CreateJobResult struct {
	Job           *JobView `json:"job"`
	ApproveURL    string   `json:"approve_url"`
	AlreadyExists bool     `json:"already_exists"`
}

// JobView is the public projection of a job row.
type JobView struct {
	ID               uuid.UUID       `json:"id"`
	ExternalRef      string          `json:"external_ref"`
	PickupDate       *string         `json:"pickup_date,omitempty"`
	PickupTime       *string         `json:"pickup_time,omitempty"`
	Origin           *string         `json:"origin,omitempty"`
	Destination      *string         `json:"destination,omitempty"`
	VehicleType      *string         `json:"vehicle_type,omitempty"`
	CoordinatorEmail string          `json:"coordinator_email,omitempty"`
	Status           enums.JobStatus `json:"status"`
	AssignedAgentID  *uuid.UUID      `json:"assigned_agent_id,omitempty"`
	ApprovedAt       *time.Time      `json:"approved_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// NewJobView projects a job model into its API shape.
func NewJobView(job *models.Job) *JobView {
	if job == nil {
		return nil
	}
	return &JobView{
		ID:               job.ID,
		ExternalRef:      job.ExternalRef,
		PickupDate:       job.PickupDate,
		PickupTime:       job.PickupTime,
		Origin:           job.Origin,
		Destination:      job.Destination,
		VehicleType:      job.VehicleType,
		CoordinatorEmail: job.CoordinatorEmail,
		Status:           job.Status,
		AssignedAgentID:  job.AssignedAgentID,
		ApprovedAt:       job.ApprovedAt,
		CreatedAt:        job.CreatedAt,
	}
}
