package project

import (
	"context"
	"time"

	"github.com/phamtheduy/portfolio/internal/models"
	"github.com/phamtheduy/portfolio/internal/repository"
)

type ProjectService struct {
	// Repository to access long term data
	projectRepo repository.ProjectRepo
}

func NewService(projectRepo repository.ProjectRepo) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

func (s *ProjectService) Create(ctx context.Context, project models.Project) (models.Project, error) {
	return s.projectRepo.Create(ctx, project)
}

func (s *ProjectService) List(ctx context.Context, filter models.ProjectFilter, page models.Page) ([]models.Project, models.Pagination, error) {
	projects, total, err := s.projectRepo.List(ctx, filter, page)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return projects, models.NewPagination(page, total), nil
}

func (s *ProjectService) GetByID(ctx context.Context, id int64, includeAchievements bool) (models.Project, error) {
	return s.projectRepo.GetByID(ctx, id, includeAchievements)
}

// Update applies only the fields the caller provided (non-nil pointers)
// on top of the stored project. Optional fields set to an empty value
// are cleared, matching partial updates over JSON.
type Update struct {
	Title            *string
	Company          *string
	Description      *string
	StartDate        *time.Time
	EndDate          *time.Time
	TeamSize         *int32
	Role             *string
	Responsibilities *[]string
	Technologies     *[]string
}

func (s *ProjectService) Update(ctx context.Context, id int64, update Update) (models.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id, false)
	if err != nil {
		return project, err
	}

	if update.Title != nil {
		project.Title = *update.Title
	}
	if update.Company != nil {
		project.Company = emptyToNil(update.Company)
	}
	if update.Description != nil {
		project.Description = emptyToNil(update.Description)
	}
	if update.StartDate != nil {
		project.StartDate = update.StartDate
	}
	if update.EndDate != nil {
		project.EndDate = update.EndDate
	}
	if update.TeamSize != nil {
		project.TeamSize = update.TeamSize
	}
	if update.Role != nil {
		project.Role = emptyToNil(update.Role)
	}
	if update.Responsibilities != nil {
		project.Responsibilities = *update.Responsibilities
	}
	if update.Technologies != nil {
		project.Technologies = *update.Technologies
	}

	return s.projectRepo.Update(ctx, project)
}

func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	return s.projectRepo.Delete(ctx, id)
}

// Achievements of a single project, most recent first
func (s *ProjectService) GetAchievements(ctx context.Context, id int64) ([]models.Achievement, error) {
	project, err := s.projectRepo.GetByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	return project.Achievements, nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
