package service

import (
	"context"
	"fmt"

	apperrors "github.com/hackforge/portal-server-go/internal/errors"
	"github.com/hackforge/portal-server-go/internal/model"
	"github.com/hackforge/portal-server-go/internal/repository"
	"github.com/hackforge/portal-server-go/internal/session"
	"github.com/hackforge/portal-server-go/internal/util"
)

// AdminService drives the judging surface: one password-protected admin actor
// with a stateless signed session.
type AdminService struct {
	sessions         *session.AdminSessions
	teamRepo         repository.TeamRepository
	gradeRepo        repository.GradeRepository
	announcementRepo repository.AnnouncementRepository
	passwordHash     string
}

func NewAdminService(
	sessions *session.AdminSessions,
	teamRepo repository.TeamRepository,
	gradeRepo repository.GradeRepository,
	announcementRepo repository.AnnouncementRepository,
	passwordHash string,
) *AdminService {
	return &AdminService{
		sessions:         sessions,
		teamRepo:         teamRepo,
		gradeRepo:        gradeRepo,
		announcementRepo: announcementRepo,
		passwordHash:     passwordHash,
	}
}

// Login returns a signed session token, or "" when the password is wrong.
// With no password hash configured the admin surface is closed entirely.
func (s *AdminService) Login(password string) (string, error) {
	if s.passwordHash == "" {
		return "", apperrors.Internal("Admin not configured")
	}
	if !util.CheckPasswordHash(password, s.passwordHash) {
		return "", nil
	}
	return s.sessions.Issue()
}

// VerifySession reports whether token is a currently valid admin session.
// Logout is transport-only: there is no server-side state to revoke.
func (s *AdminService) VerifySession(token string) bool {
	return s.sessions.Verify(token)
}

func (s *AdminService) ListTeams(ctx context.Context, limit, offset int) ([]model.Team, int, error) {
	teams, err := s.teamRepo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list teams: %w", err)
	}
	total, err := s.teamRepo.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count teams: %w", err)
	}
	return teams, total, nil
}

func (s *AdminService) GetTeamGrades(ctx context.Context, teamID string) ([]model.Grade, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("find team: %w", err)
	}
	if team == nil {
		return nil, apperrors.NotFound("Team")
	}
	return s.gradeRepo.FindByTeamID(ctx, teamID)
}

func (s *AdminService) SaveGrade(ctx context.Context, params model.UpsertGradeParams) (*model.Grade, error) {
	team, err := s.teamRepo.FindByID(ctx, params.TeamID)
	if err != nil {
		return nil, fmt.Errorf("find team: %w", err)
	}
	if team == nil {
		return nil, apperrors.NotFound("Team")
	}

	grade, err := s.gradeRepo.Upsert(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("save grade: %w", err)
	}
	return grade, nil
}

func (s *AdminService) ListGrades(ctx context.Context, limit, offset int) ([]model.Grade, error) {
	return s.gradeRepo.FindAll(ctx, limit, offset)
}

func (s *AdminService) PostAnnouncement(ctx context.Context, params model.CreateAnnouncementParams) (*model.Announcement, error) {
	item, err := s.announcementRepo.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create announcement: %w", err)
	}
	return item, nil
}

func (s *AdminService) DeleteAnnouncement(ctx context.Context, id string) error {
	return s.announcementRepo.Delete(ctx, id)
}
