package notify

import (
	"context"
	"fmt"

	"github.com/fleetline/dispatch-backend/pkg/logger"
)

// LogNotifier writes the would-be message to the structured log. Used in
// development and in any environment without a real SMS/email channel.
type LogNotifier struct {
	logg *logger.Logger
}

// NewLogNotifier builds a notifier that only logs.
func NewLogNotifier(logg *logger.Logger) *LogNotifier {
	return &LogNotifier{logg: logg}
}

func (n *LogNotifier) SendOffer(ctx context.Context, notice OfferNotice) error {
	if notice.Job == nil || notice.Agent == nil {
		return fmt.Errorf("offer notice requires job and agent")
	}
	ctx = n.logg.WithFields(ctx, map[string]any{
		"job_id":      notice.Job.ID.String(),
		"agent_id":    notice.Agent.ID.String(),
		"agent_phone": notice.Agent.Phone,
		"offer_url":   notice.OfferURL,
		// "message" is zerolog's reserved event key; the driver-facing
		// text goes out as "body".
		"body": MessageBody(notice),
	})
	n.logg.Info(ctx, "offer notification")
	return nil
}

// MessageBody renders the driver-facing text for an offer notice.
func MessageBody(notice OfferNotice) string {
	route := "route unavailable"
	if notice.Job.Origin != nil && notice.Job.Destination != nil {
		route = fmt.Sprintf("%s -> %s", *notice.Job.Origin, *notice.Job.Destination)
	}
	when := ""
	if notice.Job.PickupDate != nil {
		when = *notice.Job.PickupDate
		if notice.Job.PickupTime != nil {
			when = fmt.Sprintf("%s %s", when, *notice.Job.PickupTime)
		}
	}
	body := fmt.Sprintf("New job %s: %s", notice.Job.ExternalRef, route)
	if when != "" {
		body = fmt.Sprintf("%s on %s", body, when)
	}
	return fmt.Sprintf("%s. Reply YES to accept or NO to decline. Details: %s", body, notice.OfferURL)
}
