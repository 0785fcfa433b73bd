package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/hackforge/portal-server-go/internal/audit"
	apperrors "github.com/hackforge/portal-server-go/internal/errors"
	"github.com/hackforge/portal-server-go/internal/httputil"
	"github.com/hackforge/portal-server-go/internal/middleware"
	"github.com/hackforge/portal-server-go/internal/model"
	"github.com/hackforge/portal-server-go/internal/service"
	"github.com/hackforge/portal-server-go/internal/util"
)

// adminSessionMaxAge is the cookie Max-Age on login, in seconds (12h).
const adminSessionMaxAge = 43200

type AdminHandler struct {
	adminService      *service.AdminService
	sessionMiddleware func(http.Handler) http.Handler
	loginRateLimiter  *middleware.LoginRateLimiter
	isProduction      bool
}

func NewAdminHandler(
	adminService *service.AdminService,
	sessionMiddleware func(http.Handler) http.Handler,
	isProduction bool,
) *AdminHandler {
	return &AdminHandler{
		adminService:      adminService,
		sessionMiddleware: sessionMiddleware,
		loginRateLimiter:  middleware.NewLoginRateLimiter(),
		isProduction:      isProduction,
	}
}

func (h *AdminHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(h.loginRateLimiter.Handler).Post("/login", h.Login)
	r.Post("/logout", h.Logout)
	r.Get("/session", h.Session)

	r.Group(func(r chi.Router) {
		r.Use(h.sessionMiddleware)

		// Judging
		r.Get("/teams", h.ListTeams)
		r.Get("/teams/{id}/grades", h.GetTeamGrades)
		r.Put("/teams/{id}/grades", h.SaveGrade)
		r.Get("/grades", h.ListGrades)

		// Announcements
		r.Post("/announcements", h.PostAnnouncement)
		r.Delete("/announcements/{id}", h.DeleteAnnouncement)
	})

	return r
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "password is required"})
		return
	}

	token, err := h.adminService.Login(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("admin login error")
		httputil.WriteError(w, err)
		return
	}

	if token == "" {
		audit.LogFromRequest(r, audit.Event{Type: audit.EventAdminLoginFailure})
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid password"})
		return
	}

	audit.LogFromRequest(r, audit.Event{Type: audit.EventAdminLoginSuccess})
	middleware.SetSessionCookie(w, middleware.AdminSessionCookie, token, adminSessionMaxAge, h.isProduction)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Logout clears the cookie. The token itself stays valid until its expiry;
// the stateless design has nothing server-side to revoke.
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	audit.LogFromRequest(r, audit.Event{Type: audit.EventAdminLogout})
	middleware.ClearSessionCookie(w, middleware.AdminSessionCookie, h.isProduction)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Session reports authentication state without ever failing the request.
func (h *AdminHandler) Session(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(middleware.AdminSessionCookie)
	ok := err == nil && cookie.Value != "" && h.adminService.VerifySession(cookie.Value)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": ok})
}

func (h *AdminHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	teams, total, err := h.adminService.ListTeams(r.Context(), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list teams")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	items := make([]map[string]any, len(teams))
	for i := range teams {
		items[i] = formatTeam(&teams[i])
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": total,
	})
}

func (h *AdminHandler) GetTeamGrades(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !util.IsValidUUID(id) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid team id"})
		return
	}

	grades, err := h.adminService.GetTeamGrades(r.Context(), id)
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrCodeNotFound {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Team not found"})
			return
		}
		log.Error().Err(err).Msg("failed to get team grades")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": grades})
}

func (h *AdminHandler) SaveGrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !util.IsValidUUID(id) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid team id"})
		return
	}

	var req struct {
		Criterion string  `json:"criterion"`
		Score     int     `json:"score"`
		Notes     *string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Criterion == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "criterion is required"})
		return
	}
	if req.Score < 0 || req.Score > 100 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "score must be between 0 and 100"})
		return
	}

	grade, err := h.adminService.SaveGrade(r.Context(), model.UpsertGradeParams{
		TeamID:    id,
		Criterion: req.Criterion,
		Score:     req.Score,
		Notes:     req.Notes,
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code == apperrors.ErrCodeNotFound {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "Team not found"})
			return
		}
		log.Error().Err(err).Msg("failed to save grade")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	audit.LogFromRequest(r, audit.Event{
		Type:   audit.EventGradeWrite,
		TeamID: id,
		Details: map[string]interface{}{
			"criterion": grade.Criterion,
			"score":     grade.Score,
		},
	})

	writeJSON(w, http.StatusOK, grade)
}

func (h *AdminHandler) ListGrades(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	grades, err := h.adminService.ListGrades(r.Context(), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list grades")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": grades})
}

func (h *AdminHandler) PostAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" || req.Body == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title and body are required"})
		return
	}

	item, err := h.adminService.PostAnnouncement(r.Context(), model.CreateAnnouncementParams{
		Title: req.Title,
		Body:  req.Body,
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create announcement")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (h *AdminHandler) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !util.IsValidUUID(id) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid announcement id"})
		return
	}

	if err := h.adminService.DeleteAnnouncement(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("failed to delete announcement")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
