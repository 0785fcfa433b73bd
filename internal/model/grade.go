package model

import (
	"time"
)

type Grade struct {
	ID        string    `db:"id" json:"id"`
	TeamID    string    `db:"team_id" json:"teamId"`
	Criterion string    `db:"criterion" json:"criterion"`
	Score     int       `db:"score" json:"score"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

type UpsertGradeParams struct {
	TeamID    string
	Criterion string
	Score     int
	Notes     *string
}
