package handlers

import (
	"time"

	"github.com/phamtheduy/portfolio/internal/models"
)

// JSON views of the domain models. Password hashes never appear here.

type projectJSON struct {
	ID               int64             `json:"id"`
	Title            string            `json:"title"`
	Company          *string           `json:"company"`
	Description      *string           `json:"description"`
	StartDate        *time.Time        `json:"startDate"`
	EndDate          *time.Time        `json:"endDate"`
	TeamSize         *int32            `json:"teamSize"`
	Role             *string           `json:"role"`
	Responsibilities []string          `json:"responsibilities"`
	Technologies     []string          `json:"technologies"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
	Achievements     []achievementJSON `json:"achievements,omitempty"`
}

type achievementJSON struct {
	ID                int64        `json:"id"`
	Title             string       `json:"title"`
	Description       string       `json:"description"`
	DateAchieved      time.Time    `json:"dateAchieved"`
	TimeOfAchievement string       `json:"timeOfAchievement"`
	Category          *string      `json:"category"`
	Tags              []string     `json:"tags"`
	ProjectID         *int64       `json:"projectId"`
	ProofURL          *string      `json:"proofUrl"`
	CreatedAt         time.Time    `json:"createdAt"`
	UpdatedAt         time.Time    `json:"updatedAt"`
	Project           *projectJSON `json:"project,omitempty"`
}

func toProjectJSON(p models.Project) projectJSON {
	out := projectJSON{
		ID:               p.ID,
		Title:            p.Title,
		Company:          p.Company,
		Description:      p.Description,
		StartDate:        p.StartDate,
		EndDate:          p.EndDate,
		TeamSize:         p.TeamSize,
		Role:             p.Role,
		Responsibilities: p.Responsibilities,
		Technologies:     p.Technologies,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}

	for _, a := range p.Achievements {
		out.Achievements = append(out.Achievements, toAchievementJSON(a))
	}

	return out
}

func toProjectListJSON(projects []models.Project) []projectJSON {
	out := make([]projectJSON, 0, len(projects))
	for _, p := range projects {
		out = append(out, toProjectJSON(p))
	}
	return out
}

func toAchievementJSON(a models.Achievement) achievementJSON {
	out := achievementJSON{
		ID:                a.ID,
		Title:             a.Title,
		Description:       a.Description,
		DateAchieved:      a.DateAchieved,
		TimeOfAchievement: a.TimeOfAchievement,
		Category:          a.Category,
		Tags:              a.Tags,
		ProjectID:         a.ProjectID,
		ProofURL:          a.ProofURL,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}

	if a.Project != nil {
		project := toProjectJSON(*a.Project)
		out.Project = &project
	}

	return out
}

func toAchievementListJSON(achievements []models.Achievement) []achievementJSON {
	out := make([]achievementJSON, 0, len(achievements))
	for _, a := range achievements {
		out = append(out, toAchievementJSON(a))
	}
	return out
}
