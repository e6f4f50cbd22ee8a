package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bintangginanjar/Personal-Portfolio-API/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already registered")
	ErrRoleNotFound      = errors.New("role not found")
)

const uniqueViolation = "23505"

type Users interface {
	Create(ctx context.Context, user *models.User, role string) error
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByToken(ctx context.Context, token string) (models.User, error)
	UpdateToken(ctx context.Context, id int64, token *string, expiresAt *time.Time) error
	UpdatePassword(ctx context.Context, id int64, passwordHash []byte) error
}

type PostgresUsers struct {
	pool *pgxpool.Pool
}

func NewPostgresUsers(pool *pgxpool.Pool) *PostgresUsers {
	return &PostgresUsers{pool: pool}
}

// Create inserts the user and assigns the named role inside one transaction.
func (r *PostgresUsers) Create(ctx context.Context, user *models.User, role string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	var roleID int64
	if err := tx.QueryRow(ctx, `SELECT id FROM roles WHERE name = $1`, role).Scan(&roleID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrRoleNotFound
		}
		return err
	}

	const insertUser = `
		INSERT INTO users (username, password_hash, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	if err := tx.QueryRow(ctx, insertUser, user.Username, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateUsername
		}
		return err
	}

	if _, err := tx.Exec(ctx, `INSERT INTO users_roles (user_id, role_id) VALUES ($1, $2)`, user.ID, roleID); err != nil {
		return err
	}

	user.Roles = []string{role}
	return tx.Commit(ctx)
}

const selectUser = `
	SELECT u.id, u.username, u.password_hash, u.token, u.token_expires_at,
	       u.created_at, u.updated_at,
	       COALESCE(array_agg(r.name) FILTER (WHERE r.name IS NOT NULL), '{}')
	FROM users u
	LEFT JOIN users_roles ur ON ur.user_id = u.id
	LEFT JOIN roles r ON r.id = ur.role_id
`

func (r *PostgresUsers) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, selectUser+` WHERE u.username = $1 GROUP BY u.id`, username)
}

// FindByToken matches the exact token string currently stored for a user.
// At most one row can match since tokens carry a unique jti.
func (r *PostgresUsers) FindByToken(ctx context.Context, token string) (models.User, error) {
	return r.findOne(ctx, selectUser+` WHERE u.token = $1 GROUP BY u.id`, token)
}

func (r *PostgresUsers) findOne(ctx context.Context, query string, arg any) (models.User, error) {
	row := r.pool.QueryRow(ctx, query, arg)

	var user models.User
	if err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Token,
		&user.TokenExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.Roles,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateToken overwrites the stored token and its server-side expiry. Passing
// nils clears the session state. Concurrent logins race on this row; last
// write wins.
func (r *PostgresUsers) UpdateToken(ctx context.Context, id int64, token *string, expiresAt *time.Time) error {
	const query = `
		UPDATE users SET token = $2, token_expires_at = $3, updated_at = NOW() WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, token, expiresAt)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *PostgresUsers) UpdatePassword(ctx context.Context, id int64, passwordHash []byte) error {
	const query = `
		UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1
	`
	cmd, err := r.pool.Exec(ctx, query, id, passwordHash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
