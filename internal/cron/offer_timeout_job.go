package cron

import (
	"context"
	"fmt"

	"github.com/fleetline/dispatch-backend/internal/cascade"
	"github.com/fleetline/dispatch-backend/pkg/logger"
)

// OfferTimeoutJob expires stale offers and advances their jobs. It is
// the scheduled twin of the POST /api/v1/tick endpoint.
type OfferTimeoutJob struct {
	cascade cascade.Service
	logg    *logger.Logger
}

// NewOfferTimeoutJob builds the timeout sweep job.
func NewOfferTimeoutJob(cascadeSvc cascade.Service, logg *logger.Logger) (*OfferTimeoutJob, error) {
	if cascadeSvc == nil {
		return nil, fmt.Errorf("cascade service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &OfferTimeoutJob{cascade: cascadeSvc, logg: logg}, nil
}

// Name identifies the job in logs and metrics.
func (j *OfferTimeoutJob) Name() string {
	return "offer-timeout"
}

// Run performs one sweep.
func (j *OfferTimeoutJob) Run(ctx context.Context) error {
	result, err := j.cascade.Tick(ctx)
	if err != nil {
		return fmt.Errorf("offer timeout sweep: %w", err)
	}
	if result.TimedOut > 0 {
		ctx = j.logg.WithFields(ctx, map[string]any{
			"timed_out": result.TimedOut,
			"advanced":  result.Advanced,
		})
		j.logg.Info(ctx, "expired stale offers")
	}
	return nil
}
