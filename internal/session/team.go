package session

import (
	"context"
	"fmt"
	"time"

	"github.com/hackforge/portal-server-go/internal/model"
	"github.com/hackforge/portal-server-go/internal/repository"
	"github.com/hackforge/portal-server-go/internal/util"
)

// TeamSessionTTL matches the admin TTL: one hackathon working day.
const TeamSessionTTL = 12 * time.Hour

// TeamSessions issues opaque random tokens for team logins and validates them
// against their stored hashes. The raw token only ever travels in the cookie;
// the database sees the SHA-256 hash.
type TeamSessions struct {
	repo repository.TeamSessionRepository
	ttl  time.Duration
	now  func() time.Time
}

func NewTeamSessions(repo repository.TeamSessionRepository) *TeamSessions {
	return &TeamSessions{
		repo: repo,
		ttl:  TeamSessionTTL,
		now:  time.Now,
	}
}

// Issue creates a session row for teamID and returns the raw token.
func (s *TeamSessions) Issue(ctx context.Context, teamID string) (string, error) {
	token, err := util.GenerateToken()
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	_, err = s.repo.Upsert(ctx, model.CreateTeamSessionParams{
		TokenHash: util.HashToken(token),
		TeamID:    teamID,
		ExpiresAt: s.now().Add(s.ttl),
	})
	if err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	return token, nil
}

// Verify resolves a raw token to the owning team ID, or "" when the token is
// unknown or expired. Expired rows are reported invalid but never deleted
// here; verification stays a pure read. A non-nil error means the store could
// not be consulted, which is distinct from "not authenticated".
func (s *TeamSessions) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", nil
	}

	sess, err := s.repo.FindByTokenHash(ctx, util.HashToken(token))
	if err != nil {
		return "", fmt.Errorf("find session: %w", err)
	}
	if sess == nil {
		return "", nil
	}
	if s.now().After(sess.ExpiresAt) {
		return "", nil
	}

	return sess.TeamID, nil
}

// Revoke deletes the session row for token. Revoking an unknown or already
// revoked token is not an error.
func (s *TeamSessions) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.repo.DeleteByTokenHash(ctx, util.HashToken(token))
}
