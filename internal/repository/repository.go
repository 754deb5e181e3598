package repository

import (
	"context"
	"time"

	"github.com/phamtheduy/portfolio/internal/models"
)

// User repository interface
type UserRepo interface {
	// Create user
	// If user with username exists already has to return error apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, username string, passwordHash string) (models.User, error)

	// Get user by it's id or username
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, userID int64) (models.User, error)
	GetUserByUsername(ctx context.Context, username string) (models.User, error)

	// Record the moment of a successful login
	SetLastLogin(ctx context.Context, userID int64, at time.Time) error
}

// RefreshToken repository interface
type RefreshTokenRepo interface {
	// Persist an issued refresh token
	Save(ctx context.Context, token models.RefreshToken) (models.RefreshToken, error)

	// Return the token row if it exists, even if expired
	// If not found must return apperrors.ErrRefreshTokenNotFound
	Get(ctx context.Context, tokenString string) (models.RefreshToken, error)

	// Delete every row matching the token string
	// Idempotent: deleting zero rows is not an error
	Delete(ctx context.Context, tokenString string) error

	// Delete every token belonging to the user
	// Used when the owning user goes away
	DeleteForUser(ctx context.Context, userID int64) error
}

// Project repository interface
type ProjectRepo interface {
	Create(ctx context.Context, project models.Project) (models.Project, error)

	// List one page of projects matching the filter and the total match count
	List(ctx context.Context, filter models.ProjectFilter, page models.Page) ([]models.Project, int, error)

	// If not found must return apperrors.ErrProjectNotFound
	GetByID(ctx context.Context, id int64, includeAchievements bool) (models.Project, error)

	// Full row update
	// If not found must return apperrors.ErrProjectNotFound
	Update(ctx context.Context, project models.Project) (models.Project, error)

	// If not found must return apperrors.ErrProjectNotFound
	Delete(ctx context.Context, id int64) error
}

// Achievement repository interface
type AchievementRepo interface {
	Create(ctx context.Context, achievement models.Achievement) (models.Achievement, error)

	// List one page of achievements matching the filter and the total match count
	List(ctx context.Context, filter models.AchievementFilter, page models.Page) ([]models.Achievement, int, error)

	// If not found must return apperrors.ErrAchievementNotFound
	GetByID(ctx context.Context, id int64, includeProject bool) (models.Achievement, error)

	// Full row update
	// If not found must return apperrors.ErrAchievementNotFound
	Update(ctx context.Context, achievement models.Achievement) (models.Achievement, error)

	// If not found must return apperrors.ErrAchievementNotFound
	Delete(ctx context.Context, id int64) error
}

// Storage aggregates the repositories over a single connection or transaction
type Storage interface {
	User() UserRepo
	Refresh() RefreshTokenRepo
	Project() ProjectRepo
	Achievement() AchievementRepo

	// Run fn inside a db transaction
	InTx(ctx context.Context, fn func(Storage) error) error
}
