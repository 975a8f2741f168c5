package agents

import (
	"context"

	"github.com/fleetline/dispatch-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an agents repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, agent *models.Agent) (*models.Agent, error) {
	if err := r.db.WithContext(ctx).Create(agent).Error; err != nil {
		return nil, err
	}
	return agent, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Agent, error) {
	var agent models.Agent
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&agent).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *repository) FindByPhone(ctx context.Context, phone string) (*models.Agent, error) {
	var agent models.Agent
	err := r.db.WithContext(ctx).
		Where("phone = ?", phone).
		First(&agent).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Agent{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Agent{}).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *repository) NextCandidate(ctx context.Context, excluded []uuid.UUID) (*models.Agent, error) {
	var agent models.Agent
	query := r.db.WithContext(ctx).
		Where("active = ?", true)
	if len(excluded) > 0 {
		query = query.Where("id NOT IN ?", excluded)
	}
	err := query.
		Order("priority ASC").
		Order("created_at ASC").
		Order("id ASC").
		First(&agent).Error
	if err != nil {
		return nil, err
	}
	return &agent, nil
}
