package model

import (
	"time"
)

// TeamSession is the stored half of a team login: only the SHA-256 hash of the
// opaque token ever reaches the database, keyed uniquely by that hash.
type TeamSession struct {
	TokenHash string    `db:"token_hash" json:"-"`
	TeamID    string    `db:"team_id" json:"teamId"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

type CreateTeamSessionParams struct {
	TokenHash string
	TeamID    string
	ExpiresAt time.Time
}
