package agents

import (
	"context"

	"github.com/fleetline/dispatch-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for the agent registry.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, agent *models.Agent) (*models.Agent, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Agent, error)
	FindByPhone(ctx context.Context, phone string) (*models.Agent, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	Count(ctx context.Context) (int64, error)
	// NextCandidate returns the highest-priority active agent whose id is
	// not in excluded, or gorm.ErrRecordNotFound when none remain. Ties on
	// priority resolve by created_at then id so ordering is deterministic.
	NextCandidate(ctx context.Context, excluded []uuid.UUID) (*models.Agent, error)
}
