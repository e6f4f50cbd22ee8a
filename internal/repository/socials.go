package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bintangginanjar/Personal-Portfolio-API/internal/models"
)

var ErrSocialAccountNotFound = errors.New("social account not found")

type SocialAccounts interface {
	Create(ctx context.Context, account *models.SocialAccount) error
	FindByID(ctx context.Context, userID, id int64) (models.SocialAccount, error)
	ListByUser(ctx context.Context, userID int64) ([]models.SocialAccount, error)
	Update(ctx context.Context, account models.SocialAccount) error
	Delete(ctx context.Context, userID, id int64) error
}

type PostgresSocialAccounts struct {
	pool *pgxpool.Pool
}

func NewPostgresSocialAccounts(pool *pgxpool.Pool) *PostgresSocialAccounts {
	return &PostgresSocialAccounts{pool: pool}
}

func (r *PostgresSocialAccounts) Create(ctx context.Context, account *models.SocialAccount) error {
	const query = `
		INSERT INTO social_accounts (user_id, name, url, image_url, is_published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		account.UserID,
		account.Name,
		account.URL,
		account.ImageURL,
		account.IsPublished,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *PostgresSocialAccounts) FindByID(ctx context.Context, userID, id int64) (models.SocialAccount, error) {
	const query = `
		SELECT id, user_id, name, url, image_url, is_published, created_at, updated_at
		FROM social_accounts WHERE id = $1 AND user_id = $2
	`
	row := r.pool.QueryRow(ctx, query, id, userID)

	var account models.SocialAccount
	if err := row.Scan(
		&account.ID,
		&account.UserID,
		&account.Name,
		&account.URL,
		&account.ImageURL,
		&account.IsPublished,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SocialAccount{}, ErrSocialAccountNotFound
		}
		return models.SocialAccount{}, err
	}
	return account, nil
}

func (r *PostgresSocialAccounts) ListByUser(ctx context.Context, userID int64) ([]models.SocialAccount, error) {
	const query = `
		SELECT id, user_id, name, url, image_url, is_published, created_at, updated_at
		FROM social_accounts WHERE user_id = $1 ORDER BY id
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	accounts := make([]models.SocialAccount, 0)
	for rows.Next() {
		var account models.SocialAccount
		if err := rows.Scan(
			&account.ID,
			&account.UserID,
			&account.Name,
			&account.URL,
			&account.ImageURL,
			&account.IsPublished,
			&account.CreatedAt,
			&account.UpdatedAt,
		); err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	return accounts, rows.Err()
}

func (r *PostgresSocialAccounts) Update(ctx context.Context, account models.SocialAccount) error {
	const query = `
		UPDATE social_accounts
		SET name = $3, url = $4, image_url = $5, is_published = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	cmd, err := r.pool.Exec(ctx, query,
		account.ID,
		account.UserID,
		account.Name,
		account.URL,
		account.ImageURL,
		account.IsPublished,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSocialAccountNotFound
	}
	return nil
}

func (r *PostgresSocialAccounts) Delete(ctx context.Context, userID, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM social_accounts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrSocialAccountNotFound
	}
	return nil
}
