package offers

import (
	"context"
	"time"

	"github.com/fleetline/dispatch-backend/pkg/db/models"
	"github.com/fleetline/dispatch-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the offer ledger.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, offer *models.Offer) (*models.Offer, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Offer, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Offer, error)
	// OfferedAgentIDs returns every agent a job has ever been offered to,
	// regardless of outcome.
	OfferedAgentIDs(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error)
	// FindLatestOpenByAgent returns the agent's most recent offer still in
	// the sent state, optionally scoped to one job.
	FindLatestOpenByAgent(ctx context.Context, agentID uuid.UUID, jobID *uuid.UUID) (*models.Offer, error)
	// FindStaleSent returns open offers whose sent_at is at or before cutoff.
	FindStaleSent(ctx context.Context, cutoff time.Time) ([]models.Offer, error)
	// Resolve conditionally moves an offer out of the sent state. It reports
	// false when another writer already resolved the row, making timeout and
	// response handling race-safe without row locks.
	Resolve(ctx context.Context, id uuid.UUID, status enums.OfferStatus, respondedAt time.Time) (bool, error)
	SetNotifyStatus(ctx context.Context, id uuid.UUID, status enums.NotifyStatus) error
}
