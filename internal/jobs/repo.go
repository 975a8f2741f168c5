package jobs

import (
	"context"

	"github.com/fleetline/dispatch-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a jobs repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *repository) FindByExternalRef(ctx context.Context, externalRef string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Where("external_ref = ?", externalRef).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *repository) FindByApprovalToken(ctx context.Context, token string) (*models.Job, error) {
	var job models.Job
	err := r.db.WithContext(ctx).
		Where("approval_token = ?", token).
		First(&job).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		Updates(updates).Error
}
