package web

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/portfolio/internal/feed"
	"github.com/JonMunkholm/portfolio/internal/logging"
	"github.com/JonMunkholm/portfolio/internal/projects"
	"github.com/JonMunkholm/portfolio/internal/web/templates"
)

// ProjectsResponse is the body of GET /api/projects.
type ProjectsResponse struct {
	Projects      []projects.Project `json:"projects"`
	Stacks        []string           `json:"stacks"` // every stack in the set, without "All"
	SelectedStack string             `json:"selectedStack"`
	TotalHours    float64            `json:"totalHours"` // over Projects only
}

// ProjectDetail is the body of GET /api/projects/{id}.
type ProjectDetail struct {
	projects.Project
	ProgressPercent     float64 `json:"progressPercent"`
	PlannedFeatureCount float64 `json:"plannedFeatureCount"`
}

// RefreshResponse is the body of a successful POST /api/refresh.
type RefreshResponse struct {
	Outcome string      `json:"outcome"`
	Records int         `json:"records"`
	Status  feed.Status `json:"status"`
}

// selectedStack reads ?stack=, treating empty as "All".
func selectedStack(r *http.Request) string {
	stack := strings.TrimSpace(r.URL.Query().Get("stack"))
	if stack == "" {
		return projects.AllStacks
	}
	return stack
}

// handleHome renders the Recent Activity page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	all := s.service.Projects()
	stack := selectedStack(r)
	filtered := projects.FilterByStack(all, stack)

	view := templates.ActivityView{
		Projects:   filtered,
		Stacks:     projects.Stacks(all),
		Selected:   stack,
		TotalHours: projects.TotalHours(filtered),
		Expanded:   r.URL.Query().Get("project"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	page := templates.Page("Recent Activity", templates.RecentActivity(view))
	if err := page.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render home page", "error", err)
	}
}

// handleListProjects returns the (optionally filtered) project list.
func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	all := s.service.Projects()
	stack := selectedStack(r)
	filtered := projects.FilterByStack(all, stack)

	writeJSON(w, http.StatusOK, ProjectsResponse{
		Projects:      filtered,
		Stacks:        projects.Stacks(all),
		SelectedStack: stack,
		TotalHours:    projects.TotalHours(filtered),
	})
}

// handleGetProject returns one project with its derived progress figures.
func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, ok := projects.Find(s.service.Projects(), id)
	if !ok {
		s.respondError(w, r, errProjectNotFound, http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, ProjectDetail{
		Project:             p,
		ProgressPercent:     p.ProgressPercent(),
		PlannedFeatureCount: p.PlannedFeatureCount(),
	})
}

// handleListStacks returns the sorted distinct stacks.
func (s *Server) handleListStacks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{
		"stacks": projects.Stacks(s.service.Projects()),
	})
}

// handleStatus reports where the served records came from and how the last load went.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Status())
}

// handleRefresh runs one load cycle now. It is not under the request timeout;
// PROJECTS_FETCH_TIMEOUT bounds the cycle instead.
//
//	200 - loaded and applied
//	409 - a load is already running
//	502 - the source failed; previous records are still served
//	503 - the request went away before the result could be applied
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	outcome, err := s.service.Refresh(r.Context())
	switch {
	case errors.Is(err, feed.ErrLoadInFlight):
		s.respondError(w, r, err, http.StatusConflict)
		return
	case err != nil:
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}

	switch o := outcome.(type) {
	case feed.Loaded:
		writeJSON(w, http.StatusOK, RefreshResponse{
			Outcome: feed.OutcomeLabel(o),
			Records: len(o.Records),
			Status:  s.service.Status(),
		})
	case feed.Failed:
		s.respondError(w, r, o.Err, http.StatusBadGateway)
	}
}

// handleHealth is a liveness check. The site always has records to serve,
// so it is healthy even while the source is failing.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.service.Status()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"origin":  st.Origin,
		"records": st.Records,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// handleBundledCSV serves the document embedded in the binary.
func (s *Server) handleBundledCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := io.WriteString(w, projects.BundledCSV()); err != nil {
		logging.FromContext(r.Context()).Warn("write bundled csv", "error", err)
	}
}
