package session

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"
)

const (
	// Lifetime of an access session; refresh tokens live longer so a
	// client can recover an expired session without re-authenticating.
	SessionTTL = 24 * time.Hour
	RefreshTTL = 30 * 24 * time.Hour
)

// GenerateToken generates a cryptographically secure opaque token.
// 32 bytes = 256 bits of entropy.
func GenerateToken() (string, error) {

	const size = 32 // 256 bits

	b := make([]byte, size)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("session: failed to generate token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil

}
