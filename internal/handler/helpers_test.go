package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"

	"github.com/hackforge/portal-server-go/internal/model"
	"github.com/hackforge/portal-server-go/internal/repository"
)

func hashForTest(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

// passthrough stands in for the login rate limiter.
func passthrough(next http.Handler) http.Handler { return next }

type fakeTeamRepo struct {
	teams map[string]*model.Team
	err   error
}

func newFakeTeamRepo(teams ...*model.Team) *fakeTeamRepo {
	repo := &fakeTeamRepo{teams: make(map[string]*model.Team)}
	for _, team := range teams {
		repo.teams[team.ID] = team
	}
	return repo
}

func (f *fakeTeamRepo) FindByID(ctx context.Context, id string) (*model.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.teams[id], nil
}

func (f *fakeTeamRepo) FindByName(ctx context.Context, teamName string) (*model.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, team := range f.teams {
		if team.TeamName == teamName {
			return team, nil
		}
	}
	return nil, nil
}

func (f *fakeTeamRepo) FindAll(ctx context.Context, limit, offset int) ([]model.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	teams := make([]model.Team, 0, len(f.teams))
	for _, team := range f.teams {
		teams = append(teams, *team)
	}
	return teams, nil
}

func (f *fakeTeamRepo) Count(ctx context.Context) (int, error) {
	return len(f.teams), f.err
}

func (f *fakeTeamRepo) Create(ctx context.Context, params model.CreateTeamParams) (*model.Team, error) {
	return nil, f.err
}

func (f *fakeTeamRepo) UpdateProfile(ctx context.Context, id string, params model.UpdateTeamProfileParams) (*model.Team, error) {
	if f.err != nil {
		return nil, f.err
	}
	team, ok := f.teams[id]
	if !ok {
		return nil, nil
	}
	if params.DisplayName != nil {
		team.DisplayName = params.DisplayName
	}
	if params.Members != nil {
		team.Members = params.Members
	}
	if params.RepoURL != nil {
		team.RepoURL = params.RepoURL
	}
	if params.DevpostURL != nil {
		team.DevpostURL = params.DevpostURL
	}
	team.UpdatedAt = time.Now()
	return team, nil
}

func (f *fakeTeamRepo) Delete(ctx context.Context, id string) error {
	delete(f.teams, id)
	return f.err
}

func (f *fakeTeamRepo) WithTx(tx *sqlx.Tx) repository.TeamRepository { return f }

type fakeSessionRepo struct {
	rows map[string]model.TeamSession
	err  error
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{rows: make(map[string]model.TeamSession)}
}

func (f *fakeSessionRepo) FindByTokenHash(ctx context.Context, tokenHash string) (*model.TeamSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	row, ok := f.rows[tokenHash]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (f *fakeSessionRepo) Upsert(ctx context.Context, params model.CreateTeamSessionParams) (*model.TeamSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	row := model.TeamSession{
		TokenHash: params.TokenHash,
		TeamID:    params.TeamID,
		ExpiresAt: params.ExpiresAt,
		CreatedAt: time.Now(),
	}
	f.rows[params.TokenHash] = row
	return &row, nil
}

func (f *fakeSessionRepo) DeleteByTokenHash(ctx context.Context, tokenHash string) error {
	delete(f.rows, tokenHash)
	return f.err
}

func (f *fakeSessionRepo) DeleteByTeamID(ctx context.Context, teamID string) error {
	return f.err
}

func (f *fakeSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, f.err
}

type fakeGradeRepo struct {
	grades map[string][]model.Grade
	err    error
}

func newFakeGradeRepo() *fakeGradeRepo {
	return &fakeGradeRepo{grades: make(map[string][]model.Grade)}
}

func (f *fakeGradeRepo) FindByTeamID(ctx context.Context, teamID string) ([]model.Grade, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.grades[teamID], nil
}

func (f *fakeGradeRepo) FindAll(ctx context.Context, limit, offset int) ([]model.Grade, error) {
	if f.err != nil {
		return nil, f.err
	}
	var all []model.Grade
	for _, gs := range f.grades {
		all = append(all, gs...)
	}
	return all, nil
}

func (f *fakeGradeRepo) Upsert(ctx context.Context, params model.UpsertGradeParams) (*model.Grade, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i, g := range f.grades[params.TeamID] {
		if g.Criterion == params.Criterion {
			f.grades[params.TeamID][i].Score = params.Score
			f.grades[params.TeamID][i].Notes = params.Notes
			f.grades[params.TeamID][i].UpdatedAt = time.Now()
			return &f.grades[params.TeamID][i], nil
		}
	}
	grade := model.Grade{
		ID:        "grade-" + params.Criterion,
		TeamID:    params.TeamID,
		Criterion: params.Criterion,
		Score:     params.Score,
		Notes:     params.Notes,
		UpdatedAt: time.Now(),
	}
	f.grades[params.TeamID] = append(f.grades[params.TeamID], grade)
	return &grade, nil
}

func (f *fakeGradeRepo) DeleteByTeamID(ctx context.Context, teamID string) error {
	delete(f.grades, teamID)
	return f.err
}

type fakeAnnouncementRepo struct {
	items []model.Announcement
	err   error
}

func (f *fakeAnnouncementRepo) FindAll(ctx context.Context, limit, offset int) ([]model.Announcement, error) {
	return f.items, f.err
}

func (f *fakeAnnouncementRepo) Create(ctx context.Context, params model.CreateAnnouncementParams) (*model.Announcement, error) {
	if f.err != nil {
		return nil, f.err
	}
	item := model.Announcement{
		ID:       "ann-1",
		Title:    params.Title,
		Body:     params.Body,
		PostedAt: time.Now(),
	}
	f.items = append(f.items, item)
	return &item, nil
}

func (f *fakeAnnouncementRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	for i, item := range f.items {
		if item.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return nil
}
