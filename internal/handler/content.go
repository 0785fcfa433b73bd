package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/hackforge/portal-server-go/internal/service"
)

// ContentHandler serves the unauthenticated marketing endpoints.
type ContentHandler struct {
	contentService *service.ContentService
}

func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

func (h *ContentHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/announcements", h.ListAnnouncements)
	r.Get("/sponsors", h.ListSponsors)
	r.Get("/tracks", h.ListTracks)
	r.Get("/faq", h.ListFAQ)

	return r
}

func (h *ContentHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	items, err := h.contentService.Announcements(r.Context(), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list announcements")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": items,
		"total": len(items),
	})
}

func (h *ContentHandler) ListSponsors(w http.ResponseWriter, r *http.Request) {
	items, err := h.contentService.Sponsors(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list sponsors")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *ContentHandler) ListTracks(w http.ResponseWriter, r *http.Request) {
	items, err := h.contentService.Tracks(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list tracks")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *ContentHandler) ListFAQ(w http.ResponseWriter, r *http.Request) {
	items, err := h.contentService.FAQ(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list faq")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}
