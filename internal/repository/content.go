package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/hackforge/portal-server-go/internal/model"
)

type AnnouncementRepository interface {
	FindAll(ctx context.Context, limit, offset int) ([]model.Announcement, error)
	Create(ctx context.Context, params model.CreateAnnouncementParams) (*model.Announcement, error)
	Delete(ctx context.Context, id string) error
}

type announcementRepo struct {
	db *sqlx.DB
}

func NewAnnouncementRepository(db *sqlx.DB) AnnouncementRepository {
	return &announcementRepo{db: db}
}

func (r *announcementRepo) FindAll(ctx context.Context, limit, offset int) ([]model.Announcement, error) {
	var items []model.Announcement
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM announcements
		ORDER BY posted_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *announcementRepo) Create(ctx context.Context, params model.CreateAnnouncementParams) (*model.Announcement, error) {
	var item model.Announcement
	err := r.db.GetContext(ctx, &item, `
		INSERT INTO announcements (title, body)
		VALUES ($1, $2)
		RETURNING *
	`, params.Title, params.Body)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *announcementRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	return err
}

// ContentRepository serves the read-only marketing collections.
type ContentRepository interface {
	Sponsors(ctx context.Context) ([]model.Sponsor, error)
	Tracks(ctx context.Context) ([]model.Track, error)
	FAQ(ctx context.Context) ([]model.FAQItem, error)
}

type contentRepo struct {
	db *sqlx.DB
}

func NewContentRepository(db *sqlx.DB) ContentRepository {
	return &contentRepo{db: db}
}

func (r *contentRepo) Sponsors(ctx context.Context) ([]model.Sponsor, error) {
	var items []model.Sponsor
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM sponsors ORDER BY position ASC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *contentRepo) Tracks(ctx context.Context) ([]model.Track, error) {
	var items []model.Track
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM tracks ORDER BY position ASC, name ASC
	`)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *contentRepo) FAQ(ctx context.Context) ([]model.FAQItem, error) {
	var items []model.FAQItem
	err := r.db.SelectContext(ctx, &items, `
		SELECT * FROM faq_items ORDER BY position ASC
	`)
	if err != nil {
		return nil, err
	}
	return items, nil
}
