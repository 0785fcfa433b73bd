package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hackforge/portal-server-go/internal/model"
	"github.com/hackforge/portal-server-go/internal/util"
)

// fakeTeamSessionRepo is an in-memory stand-in satisfying the same
// upsert/lookup/delete contract as the Postgres repository.
type fakeTeamSessionRepo struct {
	rows map[string]model.TeamSession
	err  error
}

func newFakeTeamSessionRepo() *fakeTeamSessionRepo {
	return &fakeTeamSessionRepo{rows: make(map[string]model.TeamSession)}
}

func (f *fakeTeamSessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.TeamSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[tokenHash]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (f *fakeTeamSessionRepo) Upsert(ctx context.Context, params model.CreateTeamSessionParams) (*model.TeamSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	row := model.TeamSession{
		TokenHash: params.TokenHash,
		TeamID:    params.TeamID,
		ExpiresAt: params.ExpiresAt,
		CreatedAt: time.Now(),
	}
	f.rows[params.TokenHash] = row
	return &row, nil
}

func (f *fakeTeamSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.rows, tokenHash)
	return nil
}

func (f *fakeTeamSessionRepo) DeleteByTeamID(ctx context.Context, teamID string) error {
	if f.err != nil {
		return f.err
	}
	for hash, row := range f.rows {
		if row.TeamID == teamID {
			delete(f.rows, hash)
		}
	}
	return nil
}

func (f *fakeTeamSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	var count int64
	for hash, row := range f.rows {
		if row.ExpiresAt.Before(time.Now()) {
			delete(f.rows, hash)
			count++
		}
	}
	return count, nil
}

func TestTeamSessionsIssue(t *testing.T) {
	ctx := context.Background()

	t.Run("issued token verifies to the owning team", func(t *testing.T) {
		repo := newFakeTeamSessionRepo()
		s := NewTeamSessions(repo)

		token, err := s.Issue(ctx, "team-alpha")
		require.NoError(t, err)

		teamID, err := s.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "team-alpha", teamID)
	})

	t.Run("raw token is high entropy hex and never stored", func(t *testing.T) {
		repo := newFakeTeamSessionRepo()
		s := NewTeamSessions(repo)

		token, err := s.Issue(ctx, "team-alpha")
		require.NoError(t, err)
		assert.Len(t, token, 64)

		_, rawStored := repo.rows[token]
		assert.False(t, rawStored)
		_, hashStored := repo.rows[util.HashToken(token)]
		assert.True(t, hashStored)
	})

	t.Run("store failure surfaces as an error", func(t *testing.T) {
		repo := newFakeTeamSessionRepo()
		repo.err = errors.New("connection refused")
		s := NewTeamSessions(repo)

		_, err := s.Issue(ctx, "team-alpha")
		assert.Error(t, err)
	})
}

func TestTeamSessionsVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("empty token fails closed without touching the store", func(t *testing.T) {
		repo := newFakeTeamSessionRepo()
		repo.err = errors.New("store should not be consulted")
		s := NewTeamSessions(repo)

		teamID, err := s.Verify(ctx, "")
		require.NoError(t, err)
		assert.Empty(t, teamID)
	})

	t.Run("unknown token resolves to no identity", func(t *testing.T) {
		repo := newFakeTeamSessionRepo()
		s := NewTeamSessions(repo)

		teamID, err := s.Verify(ctx, "never-issued")
		require.NoError(t, err)
		assert.Empty(t, teamID)
	})

	t.Run("expired row is invalid but not deleted", func(t *testing.T) {
		repo := newFakeTeamSessionRepo()
		s := NewTeamSessions(repo)
		issuedAt := time.Unix(1700000000, 0)
		s.now = func() time.Time { return issuedAt }

		token, err := s.Issue(ctx, "team-alpha")
		require.NoError(t, err)

		s.now = func() time.Time { return issuedAt.Add(TeamSessionTTL + time.Second) }

		teamID, err := s.Verify(ctx, token)
		require.NoError(t, err)
		assert.Empty(t, teamID)
		assert.Len(t, repo.rows, 1)
	})

	t.Run("valid just before expiry", func(t *testing.T) {
		repo := newFakeTeamSessionRepo()
		s := NewTeamSessions(repo)
		issuedAt := time.Unix(1700000000, 0)
		s.now = func() time.Time { return issuedAt }

		token, err := s.Issue(ctx, "team-alpha")
		require.NoError(t, err)

		s.now = func() time.Time { return issuedAt.Add(TeamSessionTTL - time.Second) }

		teamID, err := s.Verify(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "team-alpha", teamID)
	})

	t.Run("store failure is an error not a denial", func(t *testing.T) {
		repo := newFakeTeamSessionRepo()
		s := NewTeamSessions(repo)

		token, err := s.Issue(ctx, "team-alpha")
		require.NoError(t, err)

		repo.err = errors.New("connection refused")
		_, err = s.Verify(ctx, token)
		assert.Error(t, err)
	})

	t.Run("sessions are isolated between teams", func(t *testing.T) {
		repo := newFakeTeamSessionRepo()
		s := NewTeamSessions(repo)

		tokenA, err := s.Issue(ctx, "team-alpha")
		require.NoError(t, err)
		tokenB, err := s.Issue(ctx, "team-beta")
		require.NoError(t, err)

		teamID, err := s.Verify(ctx, tokenA)
		require.NoError(t, err)
		assert.Equal(t, "team-alpha", teamID)

		teamID, err = s.Verify(ctx, tokenB)
		require.NoError(t, err)
		assert.Equal(t, "team-beta", teamID)
	})
}

func TestTeamSessionsRevoke(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked token no longer verifies", func(t *testing.T) {
		repo := newFakeTeamSessionRepo()
		s := NewTeamSessions(repo)

		token, err := s.Issue(ctx, "team-alpha")
		require.NoError(t, err)

		require.NoError(t, s.Revoke(ctx, token))

		teamID, err := s.Verify(ctx, token)
		require.NoError(t, err)
		assert.Empty(t, teamID)
	})

	t.Run("revoking one team leaves the other intact", func(t *testing.T) {
		repo := newFakeTeamSessionRepo()
		s := NewTeamSessions(repo)

		tokenA, err := s.Issue(ctx, "team-alpha")
		require.NoError(t, err)
		tokenB, err := s.Issue(ctx, "team-beta")
		require.NoError(t, err)

		require.NoError(t, s.Revoke(ctx, tokenA))

		teamID, err := s.Verify(ctx, tokenB)
		require.NoError(t, err)
		assert.Equal(t, "team-beta", teamID)
	})

	t.Run("revoke is idempotent", func(t *testing.T) {
		repo := newFakeTeamSessionRepo()
		s := NewTeamSessions(repo)

		token, err := s.Issue(ctx, "team-alpha")
		require.NoError(t, err)

		require.NoError(t, s.Revoke(ctx, token))
		require.NoError(t, s.Revoke(ctx, token))
		require.NoError(t, s.Revoke(ctx, "never-issued"))
		require.NoError(t, s.Revoke(ctx, ""))
	})
}
