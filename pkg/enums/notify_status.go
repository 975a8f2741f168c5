package enums

// NotifyStatus tracks the outcome of the outbound offer notification,
// recorded on the offer row after the cascade transaction commits.
type NotifyStatus string

const (
	NotifyStatusPending   NotifyStatus = "pending"
	NotifyStatusDelivered NotifyStatus = "delivered"
	NotifyStatusFailed    NotifyStatus = "failed"
)

// IsValid checks whether the given status matches the canonical enum.
func (s NotifyStatus) IsValid() bool {
	switch s {
	case NotifyStatusPending, NotifyStatusDelivered, NotifyStatusFailed:
		return true
	default:
		return false
	}
}
