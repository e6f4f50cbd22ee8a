package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bintangginanjar/Personal-Portfolio-API/internal/models"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrProfileExists   = errors.New("profile already registered")
)

// Profiles is the one-per-user profile record; all lookups are keyed by the
// owning user, never by profile id.
type Profiles interface {
	Create(ctx context.Context, profile *models.Profile) error
	FindByUser(ctx context.Context, userID int64) (models.Profile, error)
	Update(ctx context.Context, profile models.Profile) error
	Delete(ctx context.Context, userID int64) error
}

type PostgresProfiles struct {
	pool *pgxpool.Pool
}

func NewPostgresProfiles(pool *pgxpool.Pool) *PostgresProfiles {
	return &PostgresProfiles{pool: pool}
}

func (r *PostgresProfiles) Create(ctx context.Context, profile *models.Profile) error {
	const query = `
		INSERT INTO profiles (user_id, firstname, lastname, about, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query,
		profile.UserID,
		profile.Firstname,
		profile.Lastname,
		profile.About,
	).Scan(&profile.ID, &profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrProfileExists
		}
		return err
	}
	return nil
}

func (r *PostgresProfiles) FindByUser(ctx context.Context, userID int64) (models.Profile, error) {
	const query = `
		SELECT id, user_id, firstname, lastname, about, created_at, updated_at
		FROM profiles WHERE user_id = $1
	`
	row := r.pool.QueryRow(ctx, query, userID)

	var profile models.Profile
	if err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Firstname,
		&profile.Lastname,
		&profile.About,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Profile{}, ErrProfileNotFound
		}
		return models.Profile{}, err
	}
	return profile, nil
}

func (r *PostgresProfiles) Update(ctx context.Context, profile models.Profile) error {
	const query = `
		UPDATE profiles SET firstname = $2, lastname = $3, about = $4, updated_at = NOW()
		WHERE user_id = $1
	`
	cmd, err := r.pool.Exec(ctx, query,
		profile.UserID,
		profile.Firstname,
		profile.Lastname,
		profile.About,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *PostgresProfiles) Delete(ctx context.Context, userID int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}
