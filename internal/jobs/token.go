package jobs

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// newApprovalToken returns a 128-bit random token in hex. Tokens land in
// approval links sent over email, so they must be unguessable.
func newApprovalToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate approval token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
