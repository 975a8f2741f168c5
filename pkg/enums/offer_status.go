package enums

import "fmt"

// OfferStatus maps to the offer_status enum in Postgres.
type OfferStatus string

const (
	OfferStatusSent     OfferStatus = "sent"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusDeclined OfferStatus = "declined"
	OfferStatusTimedOut OfferStatus = "timed_out"
)

var validOfferStatuses = []OfferStatus{
	OfferStatusSent,
	OfferStatusAccepted,
	OfferStatusDeclined,
	OfferStatusTimedOut,
}

// IsValid checks whether the given status matches the canonical enum.
func (s OfferStatus) IsValid() bool {
	for _, candidate := range validOfferStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsOpen reports whether the offer is still awaiting a response.
func (s OfferStatus) IsOpen() bool {
	return s == OfferStatusSent
}

// CanTransitionTo reports whether moving from s to target is legal.
// Every response state is terminal; only sent offers may be resolved.
func (s OfferStatus) CanTransitionTo(target OfferStatus) bool {
	if s != OfferStatusSent {
		return false
	}
	switch target {
	case OfferStatusAccepted, OfferStatusDeclined, OfferStatusTimedOut:
		return true
	default:
		return false
	}
}

// ParseOfferStatus converts raw strings into OfferStatus.
func ParseOfferStatus(value string) (OfferStatus, error) {
	for _, candidate := range validOfferStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid offer status %q", value)
}
