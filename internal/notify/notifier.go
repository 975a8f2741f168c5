// Package notify delivers offer notifications to driver agents. The wire
// today is a fake that logs the message body; swapping in SMS or email
// means providing another Notifier implementation.
package notify

import (
	"context"
	"fmt"

	"github.com/fleetline/dispatch-backend/pkg/config"
	"github.com/fleetline/dispatch-backend/pkg/db/models"
	"github.com/fleetline/dispatch-backend/pkg/logger"
)

// OfferNotice carries everything a channel needs to notify one agent
// about one job offer.
type OfferNotice struct {
	Job      *models.Job
	Agent    *models.Agent
	OfferURL string
}

// Notifier sends an offer notice over some channel.
type Notifier interface {
	SendOffer(ctx context.Context, notice OfferNotice) error
}

// New selects a notifier implementation from configuration.
func New(cfg config.NotifierConfig, logg *logger.Logger) (Notifier, error) {
	switch cfg.Mode {
	case "fake", "":
		return NewLogNotifier(logg), nil
	default:
		return nil, fmt.Errorf("unknown notifier mode %q", cfg.Mode)
	}
}
