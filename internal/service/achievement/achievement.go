package achievement

import (
	"context"
	"time"

	"github.com/phamtheduy/portfolio/internal/models"
	"github.com/phamtheduy/portfolio/internal/repository"
)

type AchievementService struct {
	achievementRepo repository.AchievementRepo
	projectRepo     repository.ProjectRepo
}

func NewService(achievementRepo repository.AchievementRepo, projectRepo repository.ProjectRepo) *AchievementService {
	return &AchievementService{
		achievementRepo: achievementRepo,
		projectRepo:     projectRepo,
	}
}

// Create stores an achievement, first checking that a referenced
// project exists (apperrors.ErrProjectNotFound otherwise)
func (s *AchievementService) Create(ctx context.Context, achievement models.Achievement) (models.Achievement, error) {
	if achievement.ProjectID != nil {
		if _, err := s.projectRepo.GetByID(ctx, *achievement.ProjectID, false); err != nil {
			return models.Achievement{}, err
		}
	}

	return s.achievementRepo.Create(ctx, achievement)
}

func (s *AchievementService) List(ctx context.Context, filter models.AchievementFilter, page models.Page) ([]models.Achievement, models.Pagination, error) {
	achievements, total, err := s.achievementRepo.List(ctx, filter, page)
	if err != nil {
		return nil, models.Pagination{}, err
	}

	return achievements, models.NewPagination(page, total), nil
}

func (s *AchievementService) GetByID(ctx context.Context, id int64, includeProject bool) (models.Achievement, error) {
	return s.achievementRepo.GetByID(ctx, id, includeProject)
}

// Update applies only the fields the caller provided (non-nil pointers)
// on top of the stored achievement
type Update struct {
	Title             *string
	Description       *string
	DateAchieved      *time.Time
	TimeOfAchievement *string
	Category          *string
	Tags              *[]string
	ProjectID         *int64
	ProofURL          *string
}

func (s *AchievementService) Update(ctx context.Context, id int64, update Update) (models.Achievement, error) {
	achievement, err := s.achievementRepo.GetByID(ctx, id, false)
	if err != nil {
		return achievement, err
	}

	if update.ProjectID != nil {
		if _, err := s.projectRepo.GetByID(ctx, *update.ProjectID, false); err != nil {
			return models.Achievement{}, err
		}
		achievement.ProjectID = update.ProjectID
	}

	if update.Title != nil {
		achievement.Title = *update.Title
	}
	if update.Description != nil {
		achievement.Description = *update.Description
	}
	if update.DateAchieved != nil {
		achievement.DateAchieved = *update.DateAchieved
	}
	if update.TimeOfAchievement != nil {
		achievement.TimeOfAchievement = *update.TimeOfAchievement
	}
	if update.Category != nil {
		achievement.Category = emptyToNil(update.Category)
	}
	if update.Tags != nil {
		achievement.Tags = *update.Tags
	}
	if update.ProofURL != nil {
		achievement.ProofURL = emptyToNil(update.ProofURL)
	}

	return s.achievementRepo.Update(ctx, achievement)
}

func (s *AchievementService) Delete(ctx context.Context, id int64) error {
	return s.achievementRepo.Delete(ctx, id)
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
