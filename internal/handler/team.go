package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/hackforge/portal-server-go/internal/audit"
	apperrors "github.com/hackforge/portal-server-go/internal/errors"
	"github.com/hackforge/portal-server-go/internal/middleware"
	"github.com/hackforge/portal-server-go/internal/model"
	"github.com/hackforge/portal-server-go/internal/service"
	"github.com/hackforge/portal-server-go/internal/util"
)

// teamSessionMaxAge is the cookie Max-Age on login, in seconds (12h).
const teamSessionMaxAge = 43200

type TeamHandler struct {
	teamService       *service.TeamService
	sessionMiddleware func(http.Handler) http.Handler
	loginLimiter      func(http.Handler) http.Handler
	isProduction      bool
}

func NewTeamHandler(
	teamService *service.TeamService,
	sessionMiddleware func(http.Handler) http.Handler,
	loginLimiter func(http.Handler) http.Handler,
	isProduction bool,
) *TeamHandler {
	return &TeamHandler{
		teamService:       teamService,
		sessionMiddleware: sessionMiddleware,
		loginLimiter:      loginLimiter,
		isProduction:      isProduction,
	}
}

func (h *TeamHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(h.loginLimiter).Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/session", h.Session)

	r.Group(func(r chi.Router) {
		r.Use(h.sessionMiddleware)
		r.Get("/profile", h.GetProfile)
		r.Put("/profile", h.UpdateProfile)
	})

	return r
}

func (h *TeamHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TeamName string `json:"teamName"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TeamName == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "teamName and password are required"})
		return
	}
	if !util.IsValidTeamName(req.TeamName) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid team name"})
		return
	}

	token, team, err := h.teamService.Login(r.Context(), req.TeamName, req.Password)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrCodeInvalidCredentials {
			audit.LogFromRequest(r, audit.Event{Type: audit.EventTeamLoginFailure})
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": appErr.Message})
			return
		}
		log.Error().Err(err).Msg("team login error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Login failed"})
		return
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventTeamLoginSuccess, TeamID: team.ID})
	middleware.SetSessionCookie(w, middleware.TeamSessionCookie, token, teamSessionMaxAge, h.isProduction)
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":   true,
		"team": formatTeam(team),
	})
}

func (h *TeamHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.TeamSessionCookie)
	if err == nil && cookie.Value != "" {
		if err := h.teamService.Logout(r.Context(), cookie.Value); err != nil {
			log.Error().Err(err).Msg("team logout error")
		}
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventTeamLogout})
	middleware.ClearSessionCookie(w, middleware.TeamSessionCookie, h.isProduction)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Session reports authentication state; it answers 200 either way.
func (h *TeamHandler) Session(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.TeamSessionCookie)
	if err != nil || cookie.Value == "" {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": false})
		return
	}

	team, err := h.teamService.ValidateSession(r.Context(), cookie.Value)
	if err != nil {
		log.Error().Err(err).Msg("team session check error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Session validation failed"})
		return
	}
	if team == nil {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": false})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"ok": true,
		"team": map[string]any{
			"id":        team.ID,
			"team_name": team.TeamName,
		},
	})
}

func (h *TeamHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	team := middleware.GetTeam(r.Context())
	if team == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"team": formatTeam(team)})
}

func (h *TeamHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	team := middleware.GetTeam(r.Context())
	if team == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		return
	}

	var req struct {
		DisplayName *string `json:"displayName"`
		Members     *string `json:"members"`
		RepoURL     *string `json:"repoUrl"`
		DevpostURL  *string `json:"devpostUrl"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
		return
	}

	updated, err := h.teamService.UpdateProfile(r.Context(), team.ID, model.UpdateTeamProfileParams{
		DisplayName: req.DisplayName,
		Members:     req.Members,
		RepoURL:     req.RepoURL,
		DevpostURL:  req.DevpostURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update team profile")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventProfileUpdate, TeamID: team.ID})
	writeJSON(w, http.StatusOK, map[string]any{"team": formatTeam(updated)})
}
