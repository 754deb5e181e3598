package web

import (
	"net/http"
	"strconv"

	"github.com/phamtheduy/portfolio/internal/models"
)

func (h *Handler) adminProjects(w http.ResponseWriter, r *http.Request) {
	page := pageNumber(r.URL.Query().Get("page"))
	projects, pagination, err := h.projects.List(r.Context(), models.ProjectFilter{}, models.Page{Number: page, Limit: 20})
	if err != nil {
		h.internalError(w, err)
		return
	}

	h.renderPage(w, "admin_projects", pageData{
		Title:      "Manage Projects",
		Projects:   projects,
		Pagination: pagination,
	})
}

func (h *Handler) adminProjectForm(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "New Project"}

	if rawID := r.PathValue("id"); rawID != "" {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || id < 1 {
			http.NotFound(w, r)
			return
		}

		project, err := h.projects.GetByID(r.Context(), id, false)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		data.Title = "Edit Project"
		data.Project = &project
	}

	h.renderPage(w, "admin_project_form", data)
}

func (h *Handler) adminAchievements(w http.ResponseWriter, r *http.Request) {
	page := pageNumber(r.URL.Query().Get("page"))
	achievements, pagination, err := h.achievements.List(r.Context(), models.AchievementFilter{IncludeProject: true}, models.Page{Number: page, Limit: 20})
	if err != nil {
		h.internalError(w, err)
		return
	}

	h.renderPage(w, "admin_achievements", pageData{
		Title:        "Manage Achievements",
		Achievements: achievements,
		Pagination:   pagination,
	})
}

func (h *Handler) adminAchievementForm(w http.ResponseWriter, r *http.Request) {
	data := pageData{Title: "New Achievement"}

	if rawID := r.PathValue("id"); rawID != "" {
		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || id < 1 {
			http.NotFound(w, r)
			return
		}

		achievement, err := h.achievements.GetByID(r.Context(), id, false)
		if err != nil {
			http.NotFound(w, r)
			return
		}

		data.Title = "Edit Achievement"
		data.Achievement = &achievement
	}

	// Projects populate the linked project dropdown.
	projects, _, err := h.projects.List(r.Context(), models.ProjectFilter{}, models.Page{Number: 1, Limit: 100})
	if err != nil {
		h.internalError(w, err)
		return
	}
	data.Projects = projects

	h.renderPage(w, "admin_achievement_form", data)
}
