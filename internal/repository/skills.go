package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bintangginanjar/Personal-Portfolio-API/internal/models"
)

var ErrSkillNotFound = errors.New("skill not found")

type Skills interface {
	Create(ctx context.Context, skill *models.Skill) error
	FindByID(ctx context.Context, userID, id int64) (models.Skill, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Skill, error)
	Update(ctx context.Context, skill models.Skill) error
	Delete(ctx context.Context, userID, id int64) error
}

type PostgresSkills struct {
	pool *pgxpool.Pool
}

func NewPostgresSkills(pool *pgxpool.Pool) *PostgresSkills {
	return &PostgresSkills{pool: pool}
}

func (r *PostgresSkills) Create(ctx context.Context, skill *models.Skill) error {
	const query = `
		INSERT INTO skills (user_id, name, image_url, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		skill.UserID,
		skill.Name,
		skill.ImageURL,
		skill.IsPublished,
	).Scan(&skill.ID, &skill.CreatedAt, &skill.UpdatedAt)
}

func (r *PostgresSkills) FindByID(ctx context.Context, userID, id int64) (models.Skill, error) {
	const query = `
		SELECT id, user_id, name, image_url, is_published, created_at, updated_at
		FROM skills WHERE id = $1 AND user_id = $2
	`
	row := r.pool.QueryRow(ctx, query, id, userID)

	var skill models.Skill
	if err := row.Scan(
		&skill.ID,
		&skill.UserID,
		&skill.Name,
		&skill.ImageURL,
		&skill.IsPublished,
		&skill.CreatedAt,
		&skill.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Skill{}, ErrSkillNotFound
		}
		return models.Skill{}, err
	}
	return skill, nil
}

func (r *PostgresSkills) ListByUser(ctx context.Context, userID int64) ([]models.Skill, error) {
	const query = `
		SELECT id, user_id, name, image_url, is_published, created_at, updated_at
		FROM skills WHERE user_id = $1 ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	skills := make([]models.Skill, 0)
	for rows.Next() {
		var skill models.Skill
		if err := rows.Scan(
			&skill.ID,
			&skill.UserID,
			&skill.Name,
			&skill.ImageURL,
			&skill.IsPublished,
			&skill.CreatedAt,
			&skill.UpdatedAt,
		); err != nil {
			return nil, err
		}
		skills = append(skills, skill)
	}
	return skills, rows.Err()
}

func (r *PostgresSkills) Update(ctx context.Context, skill models.Skill) error {
	const query = `
		UPDATE skills SET name = $3, image_url = $4, is_published = $5, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	cmd, err := r.pool.Exec(ctx, query, skill.ID, skill.UserID, skill.Name, skill.ImageURL, skill.IsPublished)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (r *PostgresSkills) Delete(ctx context.Context, userID, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM skills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSkillNotFound
	}
	return nil
}
