package enums

import (
	"fmt"
	"strings"
)

// DriverReply is the normalized meaning of an inbound driver response.
type DriverReply string

const (
	DriverReplyAccept  DriverReply = "accept"
	DriverReplyDecline DriverReply = "decline"
)

// ExpectedDriverReplies lists the canonical tokens reported back to the
// caller when a response cannot be parsed.
var ExpectedDriverReplies = []string{"YES", "NO"}

var affirmativeTokens = map[string]struct{}{
	"YES": {},
	"Y":   {},
}

var negativeTokens = map[string]struct{}{
	"NO":      {},
	"N":       {},
	"DECLINE": {},
}

// ParseDriverReply normalizes raw response text (trim + case fold) and
// maps it onto a DriverReply.
func ParseDriverReply(text string) (DriverReply, error) {
	normalized := strings.ToUpper(strings.TrimSpace(text))
	if _, ok := affirmativeTokens[normalized]; ok {
		return DriverReplyAccept, nil
	}
	if _, ok := negativeTokens[normalized]; ok {
		return DriverReplyDecline, nil
	}
	return "", fmt.Errorf("unrecognized driver reply %q", text)
}
