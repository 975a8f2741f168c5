package offers

import (
	"context"
	"time"

	"github.com/fleetline/dispatch-backend/pkg/db/models"
	"github.com/fleetline/dispatch-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an offer ledger repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, offer *models.Offer) (*models.Offer, error) {
	if err := r.db.WithContext(ctx).Create(offer).Error; err != nil {
		return nil, err
	}
	return offer, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&offer).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *repository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("sent_at ASC").
		Order("id ASC").
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *repository) OfferedAgentIDs(ctx context.Context, jobID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("job_id = ?", jobID).
		Pluck("agent_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) FindLatestOpenByAgent(ctx context.Context, agentID uuid.UUID, jobID *uuid.UUID) (*models.Offer, error) {
	var offer models.Offer
	query := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID).
		Where("status = ?", enums.OfferStatusSent)
	if jobID != nil {
		query = query.Where("job_id = ?", *jobID)
	}
	err := query.
		Order("sent_at DESC").
		Order("id DESC").
		First(&offer).Error
	if err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *repository) FindStaleSent(ctx context.Context, cutoff time.Time) ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.OfferStatusSent).
		Where("sent_at <= ?", cutoff).
		Order("sent_at ASC").
		Find(&offers).Error
	if err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *repository) Resolve(ctx context.Context, id uuid.UUID, status enums.OfferStatus, respondedAt time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("id = ?", id).
		Where("status = ?", enums.OfferStatusSent).
		Updates(map[string]any{
			"status":       status,
			"responded_at": respondedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) SetNotifyStatus(ctx context.Context, id uuid.UUID, status enums.NotifyStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Offer{}).
		Where("id = ?", id).
		Update("notify_status", status).Error
}
