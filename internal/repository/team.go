package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hackforge/portal-server-go/internal/model"
)

type TeamRepository interface {
	FindByID(ctx context.Context, id string) (*model.Team, error)
	FindByName(ctx context.Context, teamName string) (*model.Team, error)
	FindAll(ctx context.Context, limit, offset int) ([]model.Team, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, params model.CreateTeamParams) (*model.Team, error)
	UpdateProfile(ctx context.Context, id string, params model.UpdateTeamProfileParams) (*model.Team, error)
	Delete(ctx context.Context, id string) error
	// WithTx returns a new repository that uses the given transaction
	WithTx(tx *sqlx.Tx) TeamRepository
}

// teamDB is an interface satisfied by both *sqlx.DB and *sqlx.Tx
type teamDB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type teamRepo struct {
	db teamDB
}

func NewTeamRepository(db *sqlx.DB) TeamRepository {
	return &teamRepo{db: db}
}

func (r *teamRepo) WithTx(tx *sqlx.Tx) TeamRepository {
	return &teamRepo{db: tx}
}

func (r *teamRepo) FindByID(ctx context.Context, id string) (*model.Team, error) {
	var team model.Team
	err := r.db.GetContext(ctx, &team, `
		SELECT * FROM teams WHERE id = $1
	`, id)
	return HandleNotFound(&team, err)
}

func (r *teamRepo) FindByName(ctx context.Context, teamName string) (*model.Team, error) {
	var team model.Team
	err := r.db.GetContext(ctx, &team, `
		SELECT * FROM teams WHERE team_name = $1
	`, teamName)
	return HandleNotFound(&team, err)
}

func (r *teamRepo) FindAll(ctx context.Context, limit, offset int) ([]model.Team, error) {
	var teams []model.Team
	err := r.db.SelectContext(ctx, &teams, `
		SELECT * FROM teams
		ORDER BY team_name ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM teams`)
	return count, err
}

func (r *teamRepo) Create(ctx context.Context, params model.CreateTeamParams) (*model.Team, error) {
	var team model.Team
	err := r.db.GetContext(ctx, &team, `
		INSERT INTO teams (team_name, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING *
	`, params.TeamName, params.PasswordHash, params.DisplayName)
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepo) UpdateProfile(ctx context.Context, id string, params model.UpdateTeamProfileParams) (*model.Team, error) {
	var team model.Team
	err := r.db.GetContext(ctx, &team, `
		UPDATE teams SET
			display_name = COALESCE($2, display_name),
			members = COALESCE($3, members),
			repo_url = COALESCE($4, repo_url),
			devpost_url = COALESCE($5, devpost_url),
			updated_at = $6
		WHERE id = $1
		RETURNING *
	`, id, params.DisplayName, params.Members, params.RepoURL, params.DevpostURL, time.Now())
	return HandleNotFound(&team, err)
}

func (r *teamRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM teams WHERE id = $1`, id)
	return err
}
