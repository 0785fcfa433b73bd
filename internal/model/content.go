package model

import (
	"time"
)

type Announcement struct {
	ID       string    `db:"id" json:"id"`
	Title    string    `db:"title" json:"title"`
	Body     string    `db:"body" json:"body"`
	PostedAt time.Time `db:"posted_at" json:"postedAt"`
}

type CreateAnnouncementParams struct {
	Title string
	Body  string
}

type Sponsor struct {
	ID       string  `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Tier     string  `db:"tier" json:"tier"`
	URL      *string `db:"url" json:"url,omitempty"`
	LogoURL  *string `db:"logo_url" json:"logoUrl,omitempty"`
	Position int     `db:"position" json:"position"`
}

type Track struct {
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Prize       *string `db:"prize" json:"prize,omitempty"`
	Position    int     `db:"position" json:"position"`
}

type FAQItem struct {
	ID       string `db:"id" json:"id"`
	Question string `db:"question" json:"question"`
	Answer   string `db:"answer" json:"answer"`
	Position int    `db:"position" json:"position"`
}
