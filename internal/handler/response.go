package handler

import (
	"net/http"
	"time"

	"github.com/hackforge/portal-server-go/internal/httputil"
	"github.com/hackforge/portal-server-go/internal/model"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

func formatTeam(team *model.Team) map[string]any {
	return map[string]any{
		"id":          team.ID,
		"team_name":   team.TeamName,
		"displayName": team.DisplayName,
		"members":     team.Members,
		"repoUrl":     team.RepoURL,
		"devpostUrl":  team.DevpostURL,
		"createdAt":   team.CreatedAt.Format(time.RFC3339),
	}
}
