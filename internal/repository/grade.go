package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/hackforge/portal-server-go/internal/model"
)

type GradeRepository interface {
	FindByTeamID(ctx context.Context, teamID string) ([]model.Grade, error)
	FindAll(ctx context.Context, limit, offset int) ([]model.Grade, error)
	Upsert(ctx context.Context, params model.UpsertGradeParams) (*model.Grade, error)
	DeleteByTeamID(ctx context.Context, teamID string) error
}

type gradeRepo struct {
	db *sqlx.DB
}

func NewGradeRepository(db *sqlx.DB) GradeRepository {
	return &gradeRepo{db: db}
}

func (r *gradeRepo) FindByTeamID(ctx context.Context, teamID string) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.SelectContext(ctx, &grades, `
		SELECT * FROM grades
		WHERE team_id = $1
		ORDER BY criterion ASC
	`, teamID)
	if err != nil {
		return nil, err
	}
	return grades, nil
}

func (r *gradeRepo) FindAll(ctx context.Context, limit, offset int) ([]model.Grade, error) {
	var grades []model.Grade
	err := r.db.SelectContext(ctx, &grades, `
		SELECT * FROM grades
		ORDER BY team_id, criterion ASC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return grades, nil
}

// Upsert stores one score per (team, criterion); re-grading overwrites.
func (r *gradeRepo) Upsert(ctx context.Context, params model.UpsertGradeParams) (*model.Grade, error) {
	var grade model.Grade
	err := r.db.GetContext(ctx, &grade, `
		INSERT INTO grades (team_id, criterion, score, notes)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (team_id, criterion) DO UPDATE SET
			score = EXCLUDED.score,
			notes = EXCLUDED.notes,
			updated_at = $5
		RETURNING *
	`, params.TeamID, params.Criterion, params.Score, params.Notes, time.Now())
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

func (r *gradeRepo) DeleteByTeamID(ctx context.Context, teamID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM grades WHERE team_id = $1`, teamID)
	return err
}
