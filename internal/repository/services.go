package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bintangginanjar/Personal-Portfolio-API/internal/models"
)

var ErrServiceNotFound = errors.New("service not found")

type Services interface {
	Create(ctx context.Context, service *models.Service) error
	FindByID(ctx context.Context, userID, id int64) (models.Service, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Service, error)
	Update(ctx context.Context, service models.Service) error
	Delete(ctx context.Context, userID, id int64) error
}

type PostgresServices struct {
	pool *pgxpool.Pool
}

func NewPostgresServices(pool *pgxpool.Pool) *PostgresServices {
	return &PostgresServices{pool: pool}
}

func (r *PostgresServices) Create(ctx context.Context, service *models.Service) error {
	const query = `
		INSERT INTO services (user_id, name, image_url, description, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		service.UserID,
		service.Name,
		service.ImageURL,
		service.Description,
		service.IsPublished,
	).Scan(&service.ID, &service.CreatedAt, &service.UpdatedAt)
}

func (r *PostgresServices) FindByID(ctx context.Context, userID, id int64) (models.Service, error) {
	const query = `
		SELECT id, user_id, name, image_url, description, is_published, created_at, updated_at
		FROM services WHERE id = $1 AND user_id = $2
	`
	row := r.pool.QueryRow(ctx, query, id, userID)

	var service models.Service
	if err := row.Scan(
		&service.ID,
		&service.UserID,
		&service.Name,
		&service.ImageURL,
		&service.Description,
		&service.IsPublished,
		&service.CreatedAt,
		&service.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Service{}, ErrServiceNotFound
		}
		return models.Service{}, err
	}
	return service, nil
}

func (r *PostgresServices) ListByUser(ctx context.Context, userID int64) ([]models.Service, error) {
	const query = `
		SELECT id, user_id, name, image_url, description, is_published, created_at, updated_at
		FROM services WHERE user_id = $1 ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]models.Service, 0)
	for rows.Next() {
		var service models.Service
		if err := rows.Scan(
			&service.ID,
			&service.UserID,
			&service.Name,
			&service.ImageURL,
			&service.Description,
			&service.IsPublished,
			&service.CreatedAt,
			&service.UpdatedAt,
		); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	return services, rows.Err()
}

func (r *PostgresServices) Update(ctx context.Context, service models.Service) error {
	const query = `
		UPDATE services
		SET name = $3, image_url = $4, description = $5, is_published = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	cmd, err := r.pool.Exec(ctx, query,
		service.ID,
		service.UserID,
		service.Name,
		service.ImageURL,
		service.Description,
		service.IsPublished,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *PostgresServices) Delete(ctx context.Context, userID, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}
