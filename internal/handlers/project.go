package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/phamtheduy/portfolio/internal/handlers/render"
	"github.com/phamtheduy/portfolio/internal/logger"
	"github.com/phamtheduy/portfolio/internal/models"
	"github.com/phamtheduy/portfolio/internal/service/project"
)

func handleListProjects(projects projectService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := models.ProjectFilter{
			Search:              q.Get("search"),
			Company:             q.Get("company"),
			Technology:          q.Get("technology"),
			SortBy:              q.Get("sortBy"),
			SortOrder:           q.Get("sortOrder"),
			IncludeAchievements: parseBool(q.Get("includeAchievements")),
		}
		if v := q.Get("startDate"); v != "" {
			filter.StartDate = parseDate(v)
		}
		if v := q.Get("endDate"); v != "" {
			filter.EndDate = parseDate(v)
		}

		list, pagination, err := projects.List(r.Context(), filter, parsePage(r))
		if err != nil {
			serviceError(w, l, err)
			return
		}

		render.Paginated(w, toProjectListJSON(list), pagination)
	})
}

func handleGetProject(projects projectService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			render.Error(w, render.CodeValidationError, "Invalid project id", http.StatusBadRequest)
			return
		}

		p, err := projects.GetByID(r.Context(), id, parseBool(r.URL.Query().Get("includeAchievements")))
		if err != nil {
			serviceError(w, l, err)
			return
		}

		render.Success(w, toProjectJSON(p))
	})
}

func handleProjectAchievements(projects projectService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			render.Error(w, render.CodeValidationError, "Invalid project id", http.StatusBadRequest)
			return
		}

		achievements, err := projects.GetAchievements(r.Context(), id)
		if err != nil {
			serviceError(w, l, err)
			return
		}

		render.Success(w, toAchievementListJSON(achievements))
	})
}

func handleCreateProject(projects projectService, l logger.Logger) http.Handler {
	type request struct {
		Title            string   `json:"title" validate:"required,min=3,max=200"`
		Company          *string  `json:"company" validate:"omitempty,max=100"`
		Description      *string  `json:"description"`
		StartDate        *string  `json:"startDate"`
		EndDate          *string  `json:"endDate"`
		TeamSize         *int32   `json:"teamSize" validate:"omitempty,min=1"`
		Role             *string  `json:"role" validate:"omitempty,max=100"`
		Responsibilities []string `json:"responsibilities"`
		Technologies     []string `json:"technologies"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		startDate, endDate, err := parseProjectDates(data.StartDate, data.EndDate)
		if err != nil {
			render.Error(w, render.CodeValidationError, err.Error(), http.StatusBadRequest)
			return
		}

		created, err := projects.Create(r.Context(), models.Project{
			Title:            data.Title,
			Company:          data.Company,
			Description:      data.Description,
			StartDate:        startDate,
			EndDate:          endDate,
			TeamSize:         data.TeamSize,
			Role:             data.Role,
			Responsibilities: data.Responsibilities,
			Technologies:     data.Technologies,
		})
		if err != nil {
			serviceError(w, l, err)
			return
		}

		render.Created(w, toProjectJSON(created))
	})
}

func handleUpdateProject(projects projectService, l logger.Logger) http.Handler {
	type request struct {
		Title            *string   `json:"title" validate:"omitempty,min=3,max=200"`
		Company          *string   `json:"company" validate:"omitempty,max=100"`
		Description      *string   `json:"description"`
		StartDate        *string   `json:"startDate"`
		EndDate          *string   `json:"endDate"`
		TeamSize         *int32    `json:"teamSize" validate:"omitempty,min=1"`
		Role             *string   `json:"role" validate:"omitempty,max=100"`
		Responsibilities *[]string `json:"responsibilities"`
		Technologies     *[]string `json:"technologies"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			render.Error(w, render.CodeValidationError, "Invalid project id", http.StatusBadRequest)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		startDate, endDate, err := parseProjectDates(data.StartDate, data.EndDate)
		if err != nil {
			render.Error(w, render.CodeValidationError, err.Error(), http.StatusBadRequest)
			return
		}

		updated, err := projects.Update(r.Context(), id, project.Update{
			Title:            data.Title,
			Company:          data.Company,
			Description:      data.Description,
			StartDate:        startDate,
			EndDate:          endDate,
			TeamSize:         data.TeamSize,
			Role:             data.Role,
			Responsibilities: data.Responsibilities,
			Technologies:     data.Technologies,
		})
		if err != nil {
			serviceError(w, l, err)
			return
		}

		render.Success(w, toProjectJSON(updated))
	})
}

// parseProjectDates turns the optional date strings into timestamps and
// rejects ranges that end before they start
func parseProjectDates(start *string, end *string) (*time.Time, *time.Time, error) {
	var startDate, endDate *time.Time

	if start != nil && *start != "" {
		if startDate = parseDate(*start); startDate == nil {
			return nil, nil, errors.New("Start date must be a valid date")
		}
	}
	if end != nil && *end != "" {
		if endDate = parseDate(*end); endDate == nil {
			return nil, nil, errors.New("End date must be a valid date")
		}
	}
	if startDate != nil && endDate != nil && endDate.Before(*startDate) {
		return nil, nil, errors.New("End date cannot be before start date")
	}

	return startDate, endDate, nil
}

func handleDeleteProject(projects projectService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			render.Error(w, render.CodeValidationError, "Invalid project id", http.StatusBadRequest)
			return
		}

		if err := projects.Delete(r.Context(), id); err != nil {
			serviceError(w, l, err)
			return
		}

		render.SuccessMessage(w, nil, "Project deleted successfully")
	})
}
