package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/hackforge/portal-server-go/internal/model"
	"github.com/hackforge/portal-server-go/internal/repository"
	"github.com/hackforge/portal-server-go/internal/session"
)

// Two independent cookie namespaces. An admin cookie never grants team access
// and vice versa: each gate reads only its own cookie and consults only its
// own verifier.
const (
	AdminSessionCookie = "admin_session"
	TeamSessionCookie  = "team_session"
)

type contextKey string

const (
	adminAuthedContextKey contextKey = "adminAuthed"
	teamContextKey        contextKey = "team"
)

// GetTeam returns the team placed in the context by TeamSessionMiddleware.
// Protected endpoints must scope every read and write to this identity and
// never to a team id from the request payload.
func GetTeam(ctx context.Context) *model.Team {
	if team, ok := ctx.Value(teamContextKey).(*model.Team); ok {
		return team
	}
	return nil
}

// IsAdmin reports whether AdminSessionMiddleware verified this request.
func IsAdmin(ctx context.Context) bool {
	authed, ok := ctx.Value(adminAuthedContextKey).(bool)
	return ok && authed
}

// Admin gate: stateless verification against the HMAC-signed cookie token.

type AdminSessionMiddleware struct {
	sessions *session.AdminSessions
}

func NewAdminSessionMiddleware(sessions *session.AdminSessions) *AdminSessionMiddleware {
	return &AdminSessionMiddleware{sessions: sessions}
}

func (m *AdminSessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(AdminSessionCookie)
		if err != nil || cookie.Value == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Unauthorized",
			})
			return
		}

		// Parse failures, expiry, and signature mismatch are deliberately
		// indistinguishable here.
		if !m.sessions.Verify(cookie.Value) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Unauthorized",
			})
			return
		}

		ctx := context.WithValue(r.Context(), adminAuthedContextKey, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Team gate: stored-hash verification plus a team profile load.

type TeamSessionMiddleware struct {
	sessions *session.TeamSessions
	teamRepo repository.TeamRepository
}

func NewTeamSessionMiddleware(sessions *session.TeamSessions, teamRepo repository.TeamRepository) *TeamSessionMiddleware {
	return &TeamSessionMiddleware{sessions: sessions, teamRepo: teamRepo}
}

func (m *TeamSessionMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(TeamSessionCookie)
		if err != nil || cookie.Value == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Unauthorized",
			})
			return
		}

		teamID, err := m.sessions.Verify(r.Context(), cookie.Value)
		if err != nil {
			// Store unreachable: this is "cannot verify", not "verified false".
			log.Error().Err(err).Msg("team session middleware: database error")
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Session validation failed",
			})
			return
		}
		if teamID == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Unauthorized",
			})
			return
		}

		team, err := m.teamRepo.FindByID(r.Context(), teamID)
		if err != nil {
			log.Error().Err(err).Msg("team session middleware: database error")
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"error": "Session validation failed",
			})
			return
		}
		if team == nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{
				"error": "Unauthorized",
			})
			return
		}

		ctx := context.WithValue(r.Context(), teamContextKey, team)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SetSessionCookie binds a session token to its cookie with the uniform
// policy: HttpOnly, Secure in production, SameSite=Lax, Path=/.
func SetSessionCookie(w http.ResponseWriter, name, token string, maxAgeSeconds int, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie emits the empty-value, Max-Age=0 clear idiom.
func ClearSessionCookie(w http.ResponseWriter, name string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}
