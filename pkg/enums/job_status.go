package enums

import "fmt"

// JobStatus maps to the job_status enum in Postgres.
type JobStatus string

const (
	JobStatusNeedsApproval JobStatus = "needs_approval"
	JobStatusApproved      JobStatus = "approved"
	JobStatusOffering      JobStatus = "offering"
	JobStatusAssigned      JobStatus = "assigned"
)

var validJobStatuses = []JobStatus{
	JobStatusNeedsApproval,
	JobStatusApproved,
	JobStatusOffering,
	JobStatusAssigned,
}

// IsValid checks whether the given status matches the canonical enum.
func (s JobStatus) IsValid() bool {
	for _, candidate := range validJobStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether moving from s to target is a legal
// lifecycle step. Assigned is terminal; offering may re-enter itself
// while the cascade advances through agents.
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	switch s {
	case JobStatusNeedsApproval:
		return target == JobStatusApproved
	case JobStatusApproved:
		return target == JobStatusOffering
	case JobStatusOffering:
		return target == JobStatusOffering || target == JobStatusAssigned
	default:
		return false
	}
}

// ParseJobStatus converts raw strings into JobStatus.
func ParseJobStatus(value string) (JobStatus, error) {
	for _, candidate := range validJobStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid job status %q", value)
}
