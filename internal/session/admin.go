package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/hackforge/portal-server-go/internal/util"
)

const (
	// AdminSessionTTL bounds every issued admin token.
	AdminSessionTTL = 12 * time.Hour

	nonceBytes = 16
)

// ErrMissingSecret aborts startup rather than letting the admin surface run
// with an unsigned-token oracle.
var ErrMissingSecret = errors.New("admin session secret is not configured")

// AdminSessions issues and verifies stateless HMAC-signed admin tokens. There
// is no per-session server state: trust is rooted entirely in the secret, and
// logout is purely a transport concern. A stolen token therefore stays valid
// until its expiry; revoking earlier requires rotating the secret.
type AdminSessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAdminSessions(secret string) (*AdminSessions, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &AdminSessions{
		secret: []byte(secret),
		ttl:    AdminSessionTTL,
		now:    time.Now,
	}, nil
}

// Issue returns a freshly signed token expiring after the configured TTL.
func (s *AdminSessions) Issue() (string, error) {
	nonce := make([]byte, nonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	expiresAtMs := s.now().Add(s.ttl).UnixMilli()
	nonceHex := hex.EncodeToString(nonce)

	return Encode(Token{
		ExpiresAtMs: expiresAtMs,
		Nonce:       nonceHex,
		Signature:   Sign(s.secret, expiresAtMs, nonceHex),
	}), nil
}

// Verify fails closed: malformed structure, past expiry, and signature
// mismatch all yield false, indistinguishably.
func (s *AdminSessions) Verify(raw string) bool {
	token, err := Decode(raw)
	if err != nil {
		return false
	}

	if s.now().UnixMilli() > token.ExpiresAtMs {
		return false
	}

	expected := Sign(s.secret, token.ExpiresAtMs, token.Nonce)
	return util.ConstantTimeEqual(expected, token.Signature)
}
