package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/hackforge/portal-server-go/internal/model"
)

type TeamSessionRepository interface {
	FindByTokenHash(ctx context.Context, tokenHash string) (*model.TeamSession, error)
	Upsert(ctx context.Context, params model.CreateTeamSessionParams) (*model.TeamSession, error)
	DeleteByTokenHash(ctx context.Context, tokenHash string) error
	DeleteByTeamID(ctx context.Context, teamID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type teamSessionRepo struct {
	db *sqlx.DB
}

func NewTeamSessionRepository(db *sqlx.DB) TeamSessionRepository {
	return &teamSessionRepo{db: db}
}

// FindByTokenHash returns the row regardless of expiry; the caller decides
// whether a stale row still authenticates.
func (r *teamSessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.TeamSession, error) {
	var session model.TeamSession
	err := r.db.GetContext(ctx, &session, `
		SELECT * FROM team_sessions WHERE token_hash = $1
	`, tokenHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *teamSessionRepo) Upsert(ctx context.Context, params model.CreateTeamSessionParams) (*model.TeamSession, error) {
	var session model.TeamSession
	err := r.db.GetContext(ctx, &session, `
		INSERT INTO team_sessions (token_hash, team_id, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (token_hash) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			expires_at = EXCLUDED.expires_at
		RETURNING *
	`, params.TokenHash, params.TeamID, params.ExpiresAt)
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *teamSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM team_sessions WHERE token_hash = $1`, tokenHash)
	return err
}

func (r *teamSessionRepo) DeleteByTeamID(ctx context.Context, teamID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM team_sessions WHERE team_id = $1`, teamID)
	return err
}

func (r *teamSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM team_sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
