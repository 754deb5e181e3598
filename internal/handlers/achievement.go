package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/phamtheduy/portfolio/internal/handlers/render"
	"github.com/phamtheduy/portfolio/internal/logger"
	"github.com/phamtheduy/portfolio/internal/models"
	"github.com/phamtheduy/portfolio/internal/service/achievement"
)

func handleListAchievements(achievements achievementService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		filter := models.AchievementFilter{
			Search:         q.Get("search"),
			Category:       q.Get("category"),
			SortBy:         q.Get("sortBy"),
			SortOrder:      q.Get("sortOrder"),
			IncludeProject: parseBool(q.Get("includeProject")),
		}
		if id, err := strconv.ParseInt(q.Get("projectId"), 10, 64); err == nil && id > 0 {
			filter.ProjectID = &id
		}
		if v := q.Get("startDate"); v != "" {
			filter.StartDate = parseDate(v)
		}
		if v := q.Get("endDate"); v != "" {
			filter.EndDate = parseDate(v)
		}

		list, pagination, err := achievements.List(r.Context(), filter, parsePage(r))
		if err != nil {
			serviceError(w, l, err)
			return
		}

		render.Paginated(w, toAchievementListJSON(list), pagination)
	})
}

func handleGetAchievement(achievements achievementService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			render.Error(w, render.CodeValidationError, "Invalid achievement id", http.StatusBadRequest)
			return
		}

		a, err := achievements.GetByID(r.Context(), id, parseBool(r.URL.Query().Get("includeProject")))
		if err != nil {
			serviceError(w, l, err)
			return
		}

		render.Success(w, toAchievementJSON(a))
	})
}

func handleCreateAchievement(achievements achievementService, l logger.Logger) http.Handler {
	type request struct {
		Title             string   `json:"title" validate:"required,min=5,max=200"`
		Description       string   `json:"description" validate:"required,min=10,max=2000"`
		DateAchieved      string   `json:"dateAchieved" validate:"required"`
		TimeOfAchievement string   `json:"timeOfAchievement" validate:"omitempty,min=3,max=50"`
		Category          *string  `json:"category" validate:"omitempty,max=50"`
		Tags              []string `json:"tags"`
		ProjectID         *int64   `json:"projectId" validate:"omitempty,min=1"`
		ProofURL          *string  `json:"proofUrl" validate:"omitempty,url,max=500"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		dateAchieved := parseDate(data.DateAchieved)
		if dateAchieved == nil {
			render.Error(w, render.CodeValidationError, "Date achieved must be a valid date", http.StatusBadRequest)
			return
		}
		if dateAchieved.After(time.Now()) {
			render.Error(w, render.CodeValidationError, "Date achieved cannot be in the future", http.StatusBadRequest)
			return
		}

		// Human readable fallback like "May 2024" when not supplied
		timeOfAchievement := data.TimeOfAchievement
		if timeOfAchievement == "" {
			timeOfAchievement = dateAchieved.Format("January 2006")
		}

		created, err := achievements.Create(r.Context(), models.Achievement{
			Title:             data.Title,
			Description:       data.Description,
			DateAchieved:      *dateAchieved,
			TimeOfAchievement: timeOfAchievement,
			Category:          data.Category,
			Tags:              data.Tags,
			ProjectID:         data.ProjectID,
			ProofURL:          data.ProofURL,
		})
		if err != nil {
			serviceError(w, l, err)
			return
		}

		render.Created(w, toAchievementJSON(created))
	})
}

func handleUpdateAchievement(achievements achievementService, l logger.Logger) http.Handler {
	type request struct {
		Title             *string   `json:"title" validate:"omitempty,min=5,max=200"`
		Description       *string   `json:"description" validate:"omitempty,min=10,max=2000"`
		DateAchieved      *string   `json:"dateAchieved"`
		TimeOfAchievement *string   `json:"timeOfAchievement" validate:"omitempty,min=3,max=50"`
		Category          *string   `json:"category" validate:"omitempty,max=50"`
		Tags              *[]string `json:"tags"`
		ProjectID         *int64    `json:"projectId" validate:"omitempty,min=1"`
		ProofURL          *string   `json:"proofUrl" validate:"omitempty,url,max=500"`
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			render.Error(w, render.CodeValidationError, "Invalid achievement id", http.StatusBadRequest)
			return
		}

		data, err := render.BindAndValidate[request](w, r)
		if err != nil {
			return
		}

		var dateAchieved *time.Time
		if data.DateAchieved != nil {
			dateAchieved = parseDate(*data.DateAchieved)
			if dateAchieved == nil {
				render.Error(w, render.CodeValidationError, "Date achieved must be a valid date", http.StatusBadRequest)
				return
			}
			if dateAchieved.After(time.Now()) {
				render.Error(w, render.CodeValidationError, "Date achieved cannot be in the future", http.StatusBadRequest)
				return
			}
		}

		updated, err := achievements.Update(r.Context(), id, achievement.Update{
			Title:             data.Title,
			Description:       data.Description,
			DateAchieved:      dateAchieved,
			TimeOfAchievement: data.TimeOfAchievement,
			Category:          data.Category,
			Tags:              data.Tags,
			ProjectID:         data.ProjectID,
			ProofURL:          data.ProofURL,
		})
		if err != nil {
			serviceError(w, l, err)
			return
		}

		render.Success(w, toAchievementJSON(updated))
	})
}

func handleDeleteAchievement(achievements achievementService, l logger.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(r)
		if err != nil {
			render.Error(w, render.CodeValidationError, "Invalid achievement id", http.StatusBadRequest)
			return
		}

		if err := achievements.Delete(r.Context(), id); err != nil {
			serviceError(w, l, err)
			return
		}

		render.SuccessMessage(w, nil, "Achievement deleted successfully")
	})
}
