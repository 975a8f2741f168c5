package jobs

import (
	"context"

	"github.com/fleetline/dispatch-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository defines persistence operations for jobs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, job *models.Job) (*models.Job, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error)
	FindByExternalRef(ctx context.Context, externalRef string) (*models.Job, error)
	FindByApprovalToken(ctx context.Context, token string) (*models.Job, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}
