package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/campdir/campdir/internal/common"
	"github.com/campdir/campdir/internal/dbx"
	"github.com/campdir/campdir/internal/server/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, name, email, role, password_hash, created_at`

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (name, email, role, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Name, user.Email, user.Role, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorEmailTaken
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) UpdateDetails(ctx context.Context, id, name, email string) (*models.User, error) {
	query :=
		`UPDATE users SET name = $2, email = $3
		 WHERE id = $1
		 RETURNING ` + userColumns

	user, err := r.scanUser(r.db.QueryRowContext(ctx, query, id, name, email))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, common.ErrorEmailTaken
		}
		return nil, err
	}
	return user, nil
}

func (r *PostgresRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query :=
		`UPDATE users
		 SET password_hash = $2, reset_password_token = NULL, reset_password_expire = NULL
		 WHERE id = $1
		 `
	return r.execOnUser(ctx, query, id, passwordHash)
}

func (r *PostgresRepository) SetResetToken(ctx context.Context, id, tokenDigest string, expire time.Time) error {
	query :=
		`UPDATE users
		 SET reset_password_token = $2, reset_password_expire = $3
		 WHERE id = $1
		 `
	return r.execOnUser(ctx, query, id, tokenDigest, expire)
}

func (r *PostgresRepository) ClearResetToken(ctx context.Context, id string) error {
	query :=
		`UPDATE users
		 SET reset_password_token = NULL, reset_password_expire = NULL
		 WHERE id = $1
		 `
	return r.execOnUser(ctx, query, id)
}

func (r *PostgresRepository) GetByValidResetToken(ctx context.Context, tokenDigest string, now time.Time) (*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE reset_password_token = $1 AND reset_password_expire > $2
		 `
	return r.scanUser(r.db.QueryRowContext(ctx, query, tokenDigest, now))
}

func (r *PostgresRepository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Role, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		if isUniqueViolation(err) {
			return nil, err
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

// execOnUser runs a single-row UPDATE keyed by user id and maps "no row
// touched" to common.ErrorNotFound.
func (r *PostgresRepository) execOnUser(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
