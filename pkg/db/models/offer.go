package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fleetline/dispatch-backend/pkg/enums"
)

// Offer records a single proposal of a job to one agent. Rows are
// append-only: responses and timeouts mutate status, nothing deletes.
// Each (job, agent) pair is offered at most once; the partial unique
// index on (job_id) WHERE status = 'sent' enforces the single open
// offer per job at the storage layer.
type Offer struct {
	ID           uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	JobID        uuid.UUID          `gorm:"column:job_id;type:uuid;not null;uniqueIndex:idx_offers_job_agent"`
	AgentID      uuid.UUID          `gorm:"column:agent_id;type:uuid;not null;uniqueIndex:idx_offers_job_agent"`
	Status       enums.OfferStatus  `gorm:"column:status;type:offer_status;not null;default:'sent'"`
	NotifyStatus enums.NotifyStatus `gorm:"column:notify_status;type:notify_status;not null;default:'pending'"`
	SentAt       time.Time          `gorm:"column:sent_at;not null"`
	RespondedAt  *time.Time         `gorm:"column:responded_at"`
	CreatedAt    time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// BeforeCreate mints the id app-side so inserts do not depend on a
// database default.
func (o *Offer) BeforeCreate(tx *gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
