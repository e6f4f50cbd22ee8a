package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bintangginanjar/Personal-Portfolio-API/internal/models"
)

var ErrImageNotFound = errors.New("image not found")

// ProjectImages are always addressed through their parent project, which the
// caller must have already resolved with an ownership-scoped lookup.
type ProjectImages interface {
	Create(ctx context.Context, image *models.ProjectImage) error
	FindByID(ctx context.Context, projectID, id int64) (models.ProjectImage, error)
	ListByUser(ctx context.Context, userID int64) ([]models.ProjectImage, error)
	Update(ctx context.Context, image models.ProjectImage) error
	Delete(ctx context.Context, projectID, id int64) error
}

type PostgresProjectImages struct {
	pool *pgxpool.Pool
}

func NewPostgresProjectImages(pool *pgxpool.Pool) *PostgresProjectImages {
	return &PostgresProjectImages{pool: pool}
}

func (r *PostgresProjectImages) Create(ctx context.Context, image *models.ProjectImage) error {
	const query = `
		INSERT INTO project_images (project_id, name, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		image.ProjectID,
		image.Name,
		image.ImageURL,
	).Scan(&image.ID, &image.CreatedAt, &image.UpdatedAt)
}

func (r *PostgresProjectImages) FindByID(ctx context.Context, projectID, id int64) (models.ProjectImage, error) {
	const query = `
		SELECT id, project_id, name, image_url, created_at, updated_at
		FROM project_images WHERE id = $1 AND project_id = $2
	`
	row := r.pool.QueryRow(ctx, query, id, projectID)

	var image models.ProjectImage
	if err := row.Scan(
		&image.ID,
		&image.ProjectID,
		&image.Name,
		&image.ImageURL,
		&image.CreatedAt,
		&image.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.ProjectImage{}, ErrImageNotFound
		}
		return models.ProjectImage{}, err
	}
	return image, nil
}

// ListByUser returns the images across every project the user owns.
func (r *PostgresProjectImages) ListByUser(ctx context.Context, userID int64) ([]models.ProjectImage, error) {
	const query = `
		SELECT i.id, i.project_id, i.name, i.image_url, i.created_at, i.updated_at
		FROM project_images i
		JOIN projects p ON p.id = i.project_id
		WHERE p.user_id = $1
		ORDER BY i.id
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := make([]models.ProjectImage, 0)
	for rows.Next() {
		var image models.ProjectImage
		if err := rows.Scan(
			&image.ID,
			&image.ProjectID,
			&image.Name,
			&image.ImageURL,
			&image.CreatedAt,
			&image.UpdatedAt,
		); err != nil {
			return nil, err
		}
		images = append(images, image)
	}
	return images, rows.Err()
}

func (r *PostgresProjectImages) Update(ctx context.Context, image models.ProjectImage) error {
	const query = `
		UPDATE project_images SET name = $3, image_url = $4, updated_at = NOW()
		WHERE id = $1 AND project_id = $2
	`
	cmd, err := r.pool.Exec(ctx, query, image.ID, image.ProjectID, image.Name, image.ImageURL)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrImageNotFound
	}
	return nil
}

func (r *PostgresProjectImages) Delete(ctx context.Context, projectID, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM project_images WHERE id = $1 AND project_id = $2`, id, projectID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrImageNotFound
	}
	return nil
}
