package model

import (
	"time"
)

type Team struct {
	ID           string    `db:"id" json:"id"`
	TeamName     string    `db:"team_name" json:"team_name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	DisplayName  *string   `db:"display_name" json:"displayName,omitempty"`
	Members      *string   `db:"members" json:"members,omitempty"`
	RepoURL      *string   `db:"repo_url" json:"repoUrl,omitempty"`
	DevpostURL   *string   `db:"devpost_url" json:"devpostUrl,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

type CreateTeamParams struct {
	TeamName     string
	PasswordHash string
	DisplayName  *string
}

type UpdateTeamProfileParams struct {
	DisplayName *string
	Members     *string
	RepoURL     *string
	DevpostURL  *string
}
