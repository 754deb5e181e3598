package web

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/phamtheduy/portfolio/internal/logger"
	"github.com/phamtheduy/portfolio/internal/models"
)

//go:embed templates/*.html static/*
var assets embed.FS

type projectService interface {
	List(ctx context.Context, filter models.ProjectFilter, page models.Page) ([]models.Project, models.Pagination, error)
	GetByID(ctx context.Context, id int64, includeAchievements bool) (models.Project, error)
}

type achievementService interface {
	List(ctx context.Context, filter models.AchievementFilter, page models.Page) ([]models.Achievement, models.Pagination, error)
	GetByID(ctx context.Context, id int64, includeProject bool) (models.Achievement, error)
}

// Handler serves the public site and the admin pages.
// Admin pages themselves are public shells: mutations go through the
// JSON API with a bearer token the login page stores client side.
type Handler struct {
	templates    *template.Template
	projects     projectService
	achievements achievementService
	logger       logger.Logger
}

func NewHandler(projects projectService, achievements achievementService, l logger.Logger) (*Handler, error) {
	templates, err := template.New("pages").Funcs(template.FuncMap{
		"joinStrings": func(values []string) string { return strings.Join(values, ", ") },
		"deref":       func(id *int64) int64 { return *id },
	}).ParseFS(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error while parsing page templates. Err: %w", err)
	}

	return &Handler{
		templates:    templates,
		projects:     projects,
		achievements: achievements,
		logger:       l,
	}, nil
}

func (h *Handler) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /static/", http.FileServerFS(assets))

	mux.HandleFunc("GET /{$}", h.home)
	mux.HandleFunc("GET /projects", h.projectsPage)
	mux.HandleFunc("GET /achievements", h.achievementsPage)
	mux.HandleFunc("GET /skills", h.staticPage("skills", "Skills"))
	mux.HandleFunc("GET /experience", h.staticPage("experience", "Experience"))

	mux.HandleFunc("GET /admin/login", h.staticPage("admin_login", "Admin Login"))
	mux.HandleFunc("GET /admin/projects", h.adminProjects)
	mux.HandleFunc("GET /admin/projects/create", h.adminProjectForm)
	mux.HandleFunc("GET /admin/projects/{id}/edit", h.adminProjectForm)
	mux.HandleFunc("GET /admin/achievements", h.adminAchievements)
	mux.HandleFunc("GET /admin/achievements/create", h.adminAchievementForm)
	mux.HandleFunc("GET /admin/achievements/{id}/edit", h.adminAchievementForm)

	return mux
}

type pageData struct {
	Title        string
	Projects     []models.Project
	Achievements []models.Achievement
	Project      *models.Project
	Achievement  *models.Achievement
	Pagination   models.Pagination
	Filters      map[string]string
}

func (h *Handler) renderPage(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name+".html", data); err != nil {
		h.logger.Error("error while rendering page", "page", name, "error", err.Error())
	}
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	recentProjects, _, err := h.projects.List(r.Context(), models.ProjectFilter{}, models.Page{Number: 1, Limit: 3})
	if err != nil {
		h.internalError(w, err)
		return
	}

	recentAchievements, _, err := h.achievements.List(r.Context(), models.AchievementFilter{}, models.Page{Number: 1, Limit: 3})
	if err != nil {
		h.internalError(w, err)
		return
	}

	h.renderPage(w, "home", pageData{
		Title:        "Home",
		Projects:     recentProjects,
		Achievements: recentAchievements,
	})
}

func (h *Handler) projectsPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ProjectFilter{
		Search:     q.Get("search"),
		Company:    q.Get("company"),
		Technology: q.Get("technology"),
	}

	page := pageNumber(q.Get("page"))
	projects, pagination, err := h.projects.List(r.Context(), filter, models.Page{Number: page, Limit: 9})
	if err != nil {
		h.internalError(w, err)
		return
	}

	h.renderPage(w, "projects", pageData{
		Title:      "Projects",
		Projects:   projects,
		Pagination: pagination,
		Filters: map[string]string{
			"search":     filter.Search,
			"company":    filter.Company,
			"technology": filter.Technology,
		},
	})
}

func (h *Handler) achievementsPage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.AchievementFilter{
		Search:         q.Get("search"),
		Category:       q.Get("category"),
		IncludeProject: true,
	}

	page := pageNumber(q.Get("page"))
	achievements, pagination, err := h.achievements.List(r.Context(), filter, models.Page{Number: page, Limit: 12})
	if err != nil {
		h.internalError(w, err)
		return
	}

	h.renderPage(w, "achievements", pageData{
		Title:        "Achievements",
		Achievements: achievements,
		Pagination:   pagination,
		Filters: map[string]string{
			"search":   filter.Search,
			"category": filter.Category,
		},
	})
}

func (h *Handler) staticPage(name string, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.renderPage(w, name, pageData{Title: title})
	}
}

func (h *Handler) internalError(w http.ResponseWriter, err error) {
	h.logger.Error("error while rendering page", "error", err.Error())
	http.Error(w, "Something went wrong", http.StatusInternalServerError)
}

func pageNumber(value string) int {
	n := 0
	for _, c := range value {
		if c < '0' || c > '9' {
			return 1
		}
		n = n*10 + int(c-'0')
	}
	if n < 1 {
		return 1
	}
	return n
}
