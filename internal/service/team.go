package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	apperrors "github.com/hackforge/portal-server-go/internal/errors"
	"github.com/hackforge/portal-server-go/internal/model"
	"github.com/hackforge/portal-server-go/internal/repository"
	"github.com/hackforge/portal-server-go/internal/session"
	"github.com/hackforge/portal-server-go/internal/util"
)

// TeamService handles team-leader logins and the profile behind them.
type TeamService struct {
	teamRepo repository.TeamRepository
	sessions *session.TeamSessions
}

func NewTeamService(teamRepo repository.TeamRepository, sessions *session.TeamSessions) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		sessions: sessions,
	}
}

// Login checks credentials and issues an opaque session token. Unknown team
// and wrong password produce the same error so team names cannot be
// enumerated; a bcrypt comparison against a fixed hash keeps the two paths
// from diverging in timing.
func (s *TeamService) Login(ctx context.Context, teamName, password string) (string, *model.Team, error) {
	team, err := s.teamRepo.FindByName(ctx, teamName)
	if err != nil {
		return "", nil, fmt.Errorf("find team: %w", err)
	}

	hash := dummyPasswordHash
	if team != nil {
		hash = team.PasswordHash
	}
	if !util.CheckPasswordHash(password, hash) || team == nil {
		return "", nil, apperrors.InvalidCredentials()
	}

	token, err := s.sessions.Issue(ctx, team.ID)
	if err != nil {
		return "", nil, err
	}

	log.Info().Str("teamId", team.ID).Msg("team logged in")
	return token, team, nil
}

// Logout revokes the session row; unknown tokens are ignored.
func (s *TeamService) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

// ValidateSession resolves a raw cookie token to its team, or nil when the
// session is unknown or expired.
func (s *TeamService) ValidateSession(ctx context.Context, token string) (*model.Team, error) {
	teamID, err := s.sessions.Verify(ctx, token)
	if err != nil {
		return nil, err
	}
	if teamID == "" {
		return nil, nil
	}
	return s.teamRepo.FindByID(ctx, teamID)
}

// UpdateProfile writes the mutable public fields of the verified team. The id
// comes from the session, never from the request body.
func (s *TeamService) UpdateProfile(ctx context.Context, teamID string, params model.UpdateTeamProfileParams) (*model.Team, error) {
	team, err := s.teamRepo.UpdateProfile(ctx, teamID, params)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	if team == nil {
		return nil, apperrors.NotFound("Team")
	}
	return team, nil
}

// dummyPasswordHash is a valid bcrypt hash of a random throwaway value,
// compared against when the team does not exist.
const dummyPasswordHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"
