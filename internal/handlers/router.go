package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/phamtheduy/portfolio/internal/apperrors"
	"github.com/phamtheduy/portfolio/internal/handlers/middleware"
	"github.com/phamtheduy/portfolio/internal/handlers/render"
	"github.com/phamtheduy/portfolio/internal/logger"
	"github.com/phamtheduy/portfolio/internal/models"
	"github.com/phamtheduy/portfolio/internal/service/achievement"
	"github.com/phamtheduy/portfolio/internal/service/auth"
	"github.com/phamtheduy/portfolio/internal/service/auth/tokenmanager"
	"github.com/phamtheduy/portfolio/internal/service/project"
)

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

type authService interface {
	// Login user with username and password
	// Has to return apperrors.ErrInvalidCredentials on unknown username
	// or wrong password and apperrors.ErrAccountDisabled for inactive users
	Login(ctx context.Context, username string, password string) (auth.LoginResult, error)

	// Revoke a refresh token, idempotent
	Logout(ctx context.Context, refresh string) error

	// Get request and return the verified token payload or error
	AuthenticateRequest(ctx context.Context, r *http.Request) (tokenmanager.Payload, error)
}

type projectService interface {
	Create(ctx context.Context, p models.Project) (models.Project, error)
	List(ctx context.Context, filter models.ProjectFilter, page models.Page) ([]models.Project, models.Pagination, error)
	GetByID(ctx context.Context, id int64, includeAchievements bool) (models.Project, error)
	Update(ctx context.Context, id int64, update project.Update) (models.Project, error)
	Delete(ctx context.Context, id int64) error
	GetAchievements(ctx context.Context, id int64) ([]models.Achievement, error)
}

type achievementService interface {
	Create(ctx context.Context, a models.Achievement) (models.Achievement, error)
	List(ctx context.Context, filter models.AchievementFilter, page models.Page) ([]models.Achievement, models.Pagination, error)
	GetByID(ctx context.Context, id int64, includeProject bool) (models.Achievement, error)
	Update(ctx context.Context, id int64, update achievement.Update) (models.Achievement, error)
	Delete(ctx context.Context, id int64) error
}

func NewRouter(
	authSvc authService,
	projects projectService,
	achievements achievementService,
	pages http.Handler,
	l logger.Logger,
) http.Handler {
	withAuth := middleware.AuthMiddleware(authSvc, l)

	api := http.NewServeMux()

	api.Handle("POST /auth/login", handleLogin(authSvc, l))
	api.Handle("POST /auth/logout", handleLogout(authSvc, l))

	api.Handle("GET /projects", handleListProjects(projects, l))
	api.Handle("GET /projects/{id}", handleGetProject(projects, l))
	api.Handle("GET /projects/{id}/achievements", handleProjectAchievements(projects, l))
	api.Handle("POST /projects", withAuth(handleCreateProject(projects, l)))
	api.Handle("PUT /projects/{id}", withAuth(handleUpdateProject(projects, l)))
	api.Handle("DELETE /projects/{id}", withAuth(handleDeleteProject(projects, l)))

	api.Handle("GET /achievements", handleListAchievements(achievements, l))
	api.Handle("GET /achievements/{id}", handleGetAchievement(achievements, l))
	api.Handle("POST /achievements", withAuth(handleCreateAchievement(achievements, l)))
	api.Handle("PUT /achievements/{id}", withAuth(handleUpdateAchievement(achievements, l)))
	api.Handle("DELETE /achievements/{id}", withAuth(handleDeleteAchievement(achievements, l)))

	// Unknown API routes still answer with the uniform envelope
	api.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		render.Error(w, render.CodeNotFound, "Resource not found", http.StatusNotFound)
	}))

	root := http.NewServeMux()
	root.Handle("/api/", http.StripPrefix("/api", api))
	if pages != nil {
		root.Handle("/", pages)
	}

	return chain(root,
		middleware.LoggerMiddleware(l),
	)
}

// serviceError maps domain errors to the uniform error envelope.
// Anything unexpected is logged in full and surfaced as a bare 500.
func serviceError(w http.ResponseWriter, l logger.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrProjectNotFound):
		render.Error(w, render.CodeProjectNotFound, "Project not found", http.StatusNotFound)
	case errors.Is(err, apperrors.ErrAchievementNotFound):
		render.Error(w, render.CodeAchievementNotFound, "Achievement not found", http.StatusNotFound)
	default:
		l.Error("unexpected service error", "error", err.Error())
		render.Error(w, render.CodeInternalError, "An unexpected error occurred", http.StatusInternalServerError)
	}
}
