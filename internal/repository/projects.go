package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bintangginanjar/Personal-Portfolio-API/internal/models"
)

var ErrProjectNotFound = errors.New("project not found")

type Projects interface {
	Create(ctx context.Context, project *models.Project) error
	FindByID(ctx context.Context, userID, id int64) (models.Project, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Project, error)
	Update(ctx context.Context, project models.Project) error
	Delete(ctx context.Context, userID, id int64) error
}

type PostgresProjects struct {
	pool *pgxpool.Pool
}

func NewPostgresProjects(pool *pgxpool.Pool) *PostgresProjects {
	return &PostgresProjects{pool: pool}
}

func (r *PostgresProjects) Create(ctx context.Context, project *models.Project) error {
	const query = `
		INSERT INTO projects (
			user_id, name, image_url, url, description, hashtag, is_published, is_open,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		project.UserID,
		project.Name,
		project.ImageURL,
		project.URL,
		project.Description,
		project.Hashtag,
		project.IsPublished,
		project.IsOpen,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
}

// FindByID is ownership scoped: an id owned by another user reads as not
// found.
func (r *PostgresProjects) FindByID(ctx context.Context, userID, id int64) (models.Project, error) {
	const query = `
		SELECT id, user_id, name, image_url, url, description, hashtag, is_published, is_open,
		       created_at, updated_at
		FROM projects WHERE id = $1 AND user_id = $2
	`
	row := r.pool.QueryRow(ctx, query, id, userID)

	project, err := scanProject(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Project{}, ErrProjectNotFound
		}
		return models.Project{}, err
	}
	return project, nil
}

func (r *PostgresProjects) ListByUser(ctx context.Context, userID int64) ([]models.Project, error) {
	const query = `
		SELECT id, user_id, name, image_url, url, description, hashtag, is_published, is_open,
		       created_at, updated_at
		FROM projects WHERE user_id = $1 ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := make([]models.Project, 0)
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}

func (r *PostgresProjects) Update(ctx context.Context, project models.Project) error {
	const query = `
		UPDATE projects
		SET name = $3, image_url = $4, url = $5, description = $6, hashtag = $7,
		    is_published = $8, is_open = $9, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	cmd, err := r.pool.Exec(ctx, query,
		project.ID,
		project.UserID,
		project.Name,
		project.ImageURL,
		project.URL,
		project.Description,
		project.Hashtag,
		project.IsPublished,
		project.IsOpen,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// Delete removes the project's images and then the project, atomically.
func (r *PostgresProjects) Delete(ctx context.Context, userID, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM project_images WHERE project_id = $1
		   AND EXISTS (SELECT 1 FROM projects WHERE id = $1 AND user_id = $2)`,
		id, userID,
	); err != nil {
		return err
	}

	cmd, err := tx.Exec(ctx, `DELETE FROM projects WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrProjectNotFound
	}

	return tx.Commit(ctx)
}

func scanProject(row pgx.Row) (models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.UserID,
		&project.Name,
		&project.ImageURL,
		&project.URL,
		&project.Description,
		&project.Hashtag,
		&project.IsPublished,
		&project.IsOpen,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	return project, err
}
