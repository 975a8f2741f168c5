package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fleetline/dispatch-backend/pkg/enums"
)

// Job is a transport job moving through the approval and offer
// lifecycle. Route attributes are opaque pass-through strings owned by
// the upstream sheet.
type Job struct {
	ID               uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ExternalRef      string          `gorm:"column:external_ref;type:text;not null;uniqueIndex:idx_jobs_external_ref"`
	PickupDate       *string         `gorm:"column:pickup_date;type:text"`
	PickupTime       *string         `gorm:"column:pickup_time;type:text"`
	Origin           *string         `gorm:"column:origin;type:text"`
	Destination      *string         `gorm:"column:destination;type:text"`
	VehicleType      *string         `gorm:"column:vehicle_type;type:text"`
	CoordinatorEmail string          `gorm:"column:coordinator_email;type:text;not null;default:''"`
	ApprovalToken    string          `gorm:"column:approval_token;type:text;not null;uniqueIndex:idx_jobs_approval_token"`
	Status           enums.JobStatus `gorm:"column:status;type:job_status;not null;default:'needs_approval'"`
	AssignedAgentID  *uuid.UUID      `gorm:"column:assigned_agent_id;type:uuid"`
	ApprovedAt       *time.Time      `gorm:"column:approved_at"`
	CreatedAt        time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate mints the id app-side so inserts do not depend on a
// database default.
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
