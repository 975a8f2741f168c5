package enums

import "testing"

func TestJobStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to JobStatus
		ok       bool
	}{
		{JobStatusNeedsApproval, JobStatusApproved, true},
		{JobStatusNeedsApproval, JobStatusOffering, false},
		{JobStatusApproved, JobStatusOffering, true},
		{JobStatusApproved, JobStatusAssigned, false},
		{JobStatusOffering, JobStatusOffering, true},
		{JobStatusOffering, JobStatusAssigned, true},
		{JobStatusOffering, JobStatusApproved, false},
		{JobStatusAssigned, JobStatusOffering, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Fatalf("%s -> %s: expected %v got %v", tc.from, tc.to, tc.ok, got)
		}
	}
}

func TestOfferStatusTransitions(t *testing.T) {
	if !OfferStatusSent.CanTransitionTo(OfferStatusAccepted) {
		t.Fatal("sent offers must be acceptable")
	}
	if !OfferStatusSent.CanTransitionTo(OfferStatusTimedOut) {
		t.Fatal("sent offers must be expirable")
	}
	if OfferStatusAccepted.CanTransitionTo(OfferStatusDeclined) {
		t.Fatal("accepted is terminal")
	}
	if OfferStatusTimedOut.CanTransitionTo(OfferStatusAccepted) {
		t.Fatal("timed_out is terminal")
	}
	if !OfferStatusSent.IsOpen() || OfferStatusDeclined.IsOpen() {
		t.Fatal("only sent offers are open")
	}
}

func TestParseJobStatus(t *testing.T) {
	if got, err := ParseJobStatus("offering"); err != nil || got != JobStatusOffering {
		t.Fatalf("parse offering: got %v err %v", got, err)
	}
	if _, err := ParseJobStatus("paused"); err == nil {
		t.Fatal("expected error for unknown job status")
	}
}

func TestParseDriverReply(t *testing.T) {
	accepts := []string{"YES", "yes", " y ", "Y"}
	for _, raw := range accepts {
		if got, err := ParseDriverReply(raw); err != nil || got != DriverReplyAccept {
			t.Fatalf("%q: expected accept, got %v err %v", raw, got, err)
		}
	}
	declines := []string{"NO", "no", "n", " DECLINE "}
	for _, raw := range declines {
		if got, err := ParseDriverReply(raw); err != nil || got != DriverReplyDecline {
			t.Fatalf("%q: expected decline, got %v err %v", raw, got, err)
		}
	}
	for _, raw := range []string{"", "maybe", "yess", "ok"} {
		if _, err := ParseDriverReply(raw); err == nil {
			t.Fatalf("%q: expected parse failure", raw)
		}
	}
}
