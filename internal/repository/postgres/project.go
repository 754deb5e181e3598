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

type ProjectRepo struct {
	DB DBTX
}

const projectColumns = `id, created_at, updated_at, title, company, description,
	start_date, end_date, team_size, role, responsibilities, technologies`

const createProject = `-- name: CreateProject
INSERT INTO projects (title, company, description, start_date, end_date, team_size, role, responsibilities, technologies)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + projectColumns

func (r *ProjectRepo) Create(ctx context.Context, project models.Project) (models.Project, error) {
	rows, _ := r.DB.Query(ctx, createProject,
		project.Title, project.Company, project.Description,
		project.StartDate, project.EndDate, project.TeamSize, project.Role,
		project.Responsibilities, project.Technologies,
	)
	created, err := pgx.CollectOneRow(rows, rowToProject)
	if err != nil {
		return created, fmt.Errorf("db error: %w", err)
	}
	return created, nil
}

// Columns the API may sort projects by
var projectSortColumns = map[string]string{
	"createdAt": "created_at",
	"title":     "title",
	"company":   "company",
	"startDate": "start_date",
	"endDate":   "end_date",
}

func (r *ProjectRepo) List(ctx context.Context, filter models.ProjectFilter, page models.Page) ([]models.Project, int, error) {
	where, args := buildProjectWhere(filter)

	var total int
	err := r.DB.QueryRow(ctx, "SELECT count(*) FROM projects"+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM projects%s ORDER BY %s LIMIT $%d OFFSET $%d",
		projectColumns,
		where,
		orderClause(projectSortColumns, filter.SortBy, "created_at", filter.SortOrder),
		len(args)+1, len(args)+2,
	)
	args = append(args, page.Limit, page.Offset())

	rows, _ := r.DB.Query(ctx, query, args...)
	projects, err := pgx.CollectRows(rows, rowToProject)
	if err != nil {
		return nil, 0, fmt.Errorf("db error: %w", err)
	}

	if filter.IncludeAchievements {
		if err := r.attachAchievements(ctx, projects); err != nil {
			return nil, 0, err
		}
	}

	return projects, total, nil
}

const getProjectByID = `-- name: GetProjectByID
SELECT ` + projectColumns + `
FROM projects
WHERE id = $1
`

func (r *ProjectRepo) GetByID(ctx context.Context, id int64, includeAchievements bool) (models.Project, error) {
	rows, _ := r.DB.Query(ctx, getProjectByID, id)
	project, err := pgx.CollectOneRow(rows, rowToProject)

	switch {
	case err == nil:
	case errors.Is(err, pgx.ErrNoRows):
		return project, apperrors.ErrProjectNotFound
	default:
		return project, fmt.Errorf("db error: %w", err)
	}

	if includeAchievements {
		projects := []models.Project{project}
		if err := r.attachAchievements(ctx, projects); err != nil {
			return project, err
		}
		project = projects[0]
	}

	return project, nil
}

const updateProject = `-- name: UpdateProject
UPDATE projects
SET updated_at = now(), title = $2, company = $3, description = $4,
	start_date = $5, end_date = $6, team_size = $7, role = $8,
	responsibilities = $9, technologies = $10
WHERE id = $1
RETURNING ` + projectColumns

func (r *ProjectRepo) Update(ctx context.Context, project models.Project) (models.Project, error) {
	rows, _ := r.DB.Query(ctx, updateProject,
		project.ID, project.Title, project.Company, project.Description,
		project.StartDate, project.EndDate, project.TeamSize, project.Role,
		project.Responsibilities, project.Technologies,
	)
	updated, err := pgx.CollectOneRow(rows, rowToProject)

	switch {
	case err == nil:
		return updated, nil
	case errors.Is(err, pgx.ErrNoRows):
		return updated, apperrors.ErrProjectNotFound
	default:
		return updated, fmt.Errorf("db error: %w", err)
	}
}

const deleteProject = `-- name: DeleteProject
DELETE FROM projects
WHERE id = $1
`

func (r *ProjectRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.DB.Exec(ctx, deleteProject, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

const achievementsForProjects = `-- name: AchievementsForProjects
SELECT ` + achievementColumns + `
FROM achievements
WHERE project_id = ANY($1)
ORDER BY date_achieved DESC
`

func (r *ProjectRepo) attachAchievements(ctx context.Context, projects []models.Project) error {
	if len(projects) == 0 {
		return nil
	}

	ids := make([]int64, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}

	rows, _ := r.DB.Query(ctx, achievementsForProjects, ids)
	achievements, err := pgx.CollectRows(rows, rowToAchievement)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	byProject := make(map[int64][]models.Achievement, len(projects))
	for _, a := range achievements {
		byProject[*a.ProjectID] = append(byProject[*a.ProjectID], a)
	}
	for i := range projects {
		projects[i].Achievements = byProject[projects[i].ID]
	}

	return nil
}

func buildProjectWhere(filter models.ProjectFilter) (string, []any) {
	var conds []string
	var args []any

	arg := func(v any) int {
		args = append(args, v)
		return len(args)
	}

	if filter.Search != "" {
		n := arg("%" + filter.Search + "%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR company ILIKE $%d)", n, n, n))
	}
	if filter.Company != "" {
		conds = append(conds, fmt.Sprintf("company ILIKE $%d", arg("%"+filter.Company+"%")))
	}
	if filter.Technology != "" {
		conds = append(conds, fmt.Sprintf("technologies::text ILIKE $%d", arg("%"+filter.Technology+"%")))
	}
	if filter.StartDate != nil {
		conds = append(conds, fmt.Sprintf("start_date >= $%d", arg(*filter.StartDate)))
	}
	if filter.EndDate != nil {
		conds = append(conds, fmt.Sprintf("end_date <= $%d", arg(*filter.EndDate)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// orderClause resolves a user supplied sort key against the column whitelist.
// Unknown keys fall back to the default column, anything but ASC sorts DESC.
func orderClause(columns map[string]string, sortBy string, defaultColumn string, sortOrder string) string {
	column, ok := columns[sortBy]
	if !ok {
		column = defaultColumn
	}

	order := "DESC"
	if strings.EqualFold(sortOrder, "ASC") {
		order = "ASC"
	}

	return column + " " + order
}

func rowToProject(row pgx.CollectableRow) (models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.CreatedAt, &p.UpdatedAt, &p.Title, &p.Company, &p.Description,
		&p.StartDate, &p.EndDate, &p.TeamSize, &p.Role, &p.Responsibilities, &p.Technologies,
	)
	return p, err
}
