package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/phamtheduy/portfolio/internal/apperrors"
	"github.com/phamtheduy/portfolio/internal/models"
)

type AchievementRepo struct {
	DB DBTX
}

const achievementColumns = `id, created_at, updated_at, title, description, date_achieved,
	time_of_achievement, category, tags, project_id, proof_url`

const createAchievement = `-- name: CreateAchievement
INSERT INTO achievements (title, description, date_achieved, time_of_achievement, category, tags, project_id, proof_url)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + achievementColumns

func (r *AchievementRepo) Create(ctx context.Context, achievement models.Achievement) (models.Achievement, error) {
	rows, _ := r.DB.Query(ctx, createAchievement,
		achievement.Title, achievement.Description, achievement.DateAchieved,
		achievement.TimeOfAchievement, achievement.Category, achievement.Tags,
		achievement.ProjectID, achievement.ProofURL,
	)
	created, err := pgx.CollectOneRow(rows, rowToAchievement)
	if err != nil {
		return created, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

// Columns the API may sort achievements by
var achievementSortColumns = map[string]string{
	"createdAt":    "created_at",
	"title":        "title",
	"category":     "category",
	"dateAchieved": "date_achieved",
}

func (r *AchievementRepo) List(ctx context.Context, filter models.AchievementFilter, page models.Page) ([]models.Achievement, int, error) {
	where, args := buildAchievementWhere(filter)

	var total int
	err := r.DB.QueryRow(ctx, "SELECT count(*) FROM achievements"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM achievements%s ORDER BY %s LIMIT $%d OFFSET $%d",
		achievementColumns,
		where,
		orderClause(achievementSortColumns, filter.SortBy, "date_achieved", filter.SortOrder),
		len(args)+1, len(args)+2,
	)
	args = append(args, page.Limit, page.Offset())

	rows, _ := r.DB.Query(ctx, query, args...)
	achievements, err := pgx.CollectRows(rows, rowToAchievement)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	if filter.IncludeProject {
		if err := r.attachProjects(ctx, achievements); err != nil {
			return nil, 0, err
		}
	}

	return achievements, total, nil
}

const getAchievementByID = `-- name: GetAchievementByID
SELECT ` + achievementColumns + `
FROM achievements
WHERE id = $1
`

func (r *AchievementRepo) GetByID(ctx context.Context, id int64, includeProject bool) (models.Achievement, error) {
	rows, _ := r.DB.Query(ctx, getAchievementByID, id)
	achievement, err := pgx.CollectOneRow(rows, rowToAchievement)

	switch {
	case err == nil:
	case errors.Is(err, pgx.ErrNoRows):
		return achievement, apperrors.ErrAchievementNotFound
	default:
		return achievement, fmt.Errorf("db error: %w", err)
	}

	if includeProject {
		achievements := []models.Achievement{achievement}
		if err := r.attachProjects(ctx, achievements); err != nil {
			return achievement, err
		}
		achievement = achievements[0]
	}

	return achievement, nil
}

const updateAchievement = `-- name: UpdateAchievement
UPDATE achievements
SET updated_at = now(), title = $2, description = $3, date_achieved = $4,
	time_of_achievement = $5, category = $6, tags = $7, project_id = $8, proof_url = $9
WHERE id = $1
RETURNING ` + achievementColumns

func (r *AchievementRepo) Update(ctx context.Context, achievement models.Achievement) (models.Achievement, error) {
	rows, _ := r.DB.Query(ctx, updateAchievement,
		achievement.ID, achievement.Title, achievement.Description, achievement.DateAchieved,
		achievement.TimeOfAchievement, achievement.Category, achievement.Tags,
		achievement.ProjectID, achievement.ProofURL,
	)
	updated, err := pgx.CollectOneRow(rows, rowToAchievement)

	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, pgx.ErrNoRows):
		return updated, apperrors.ErrAchievementNotFound
	default:
		return updated, fmt.Errorf("db error: %w", err)
	}
}

const deleteAchievement = `-- name: DeleteAchievement
DELETE FROM achievements
WHERE id = $1
`

func (r *AchievementRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, deleteAchievement, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAchievementNotFound
	}
	return nil
}

const projectsForAchievements = `-- name: ProjectsForAchievements
SELECT ` + projectColumns + `
FROM projects
WHERE id = ANY($1)
`

func (r *AchievementRepo) attachProjects(ctx context.Context, achievements []models.Achievement) error {
	var ids []int64
	for _, a := range achievements {
		if a.ProjectID != nil {
			ids = append(ids, *a.ProjectID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	rows, _ := r.DB.Query(ctx, projectsForAchievements, ids)
	projects, err := pgx.CollectRows(rows, rowToProject)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	byID := make(map[int64]models.Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}
	for i := range achievements {
		if achievements[i].ProjectID == nil {
			continue
		}
		if p, ok := byID[*achievements[i].ProjectID]; ok {
			achievements[i].Project = &p
		}
	}

	return nil
}

func buildAchievementWhere(filter models.AchievementFilter) (string, []any) {
	var conds []string
	var args []any

	arg := func(v any) int {
		args = append(args, v)
		return len(args)
	}

	if filter.Search != "" {
		n := arg("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
	}
	if filter.Category != "" {
		conds = append(conds, fmt.Sprintf("category ILIKE $%d", arg("%"+filter.Category+"%")))
	}
	if filter.ProjectID != nil {
		conds = append(conds, fmt.Sprintf("project_id = $%d", arg(*filter.ProjectID)))
	}
	if filter.StartDate != nil {
		conds = append(conds, fmt.Sprintf("date_achieved >= $%d", arg(*filter.StartDate)))
	}
	if filter.EndDate != nil {
		conds = append(conds, fmt.Sprintf("date_achieved <= $%d", arg(*filter.EndDate)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func rowToAchievement(row pgx.CollectableRow) (models.Achievement, error) {
	var a models.Achievement
	err := row.Scan(
		&a.ID, &a.CreatedAt, &a.UpdatedAt, &a.Title, &a.Description, &a.DateAchieved,
		&a.TimeOfAchievement, &a.Category, &a.Tags, &a.ProjectID, &a.ProofURL,
	)
	return a, err
}
