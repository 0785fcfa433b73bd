package service

import (
	"context"
	"fmt"

	"github.com/hackforge/portal-server-go/internal/model"
	"github.com/hackforge/portal-server-go/internal/repository"
)

// ContentService backs the public marketing pages.
type ContentService struct {
	announcementRepo repository.AnnouncementRepository
	contentRepo      repository.ContentRepository
}

func NewContentService(
	announcementRepo repository.AnnouncementRepository,
	contentRepo repository.ContentRepository,
) *ContentService {
	return &ContentService{
		announcementRepo: announcementRepo,
		contentRepo:      contentRepo,
	}
}

func (s *ContentService) Announcements(ctx context.Context, limit, offset int) ([]model.Announcement, error) {
	items, err := s.announcementRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	return items, nil
}

func (s *ContentService) Sponsors(ctx context.Context) ([]model.Sponsor, error) {
	return s.contentRepo.Sponsors(ctx)
}

func (s *ContentService) Tracks(ctx context.Context) ([]model.Track, error) {
	return s.contentRepo.Tracks(ctx)
}

func (s *ContentService) FAQ(ctx context.Context) ([]model.FAQItem, error) {
	return s.contentRepo.FAQ(ctx)
}
