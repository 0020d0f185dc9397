// Package users persists credential-store records. The store guarantees
// email uniqueness and per-record atomicity; cross-record transactions are
// composed by callers via dbx.WithTx.
package users

import (
	"context"
	"time"

	"github.com/campdir/campdir/internal/server/models"
)

// Repository is the credential-store contract used by the auth service.
//
// Lookup methods return common.ErrorNotFound when no row matches; writes that
// hit the email unique index return common.ErrorEmailTaken.
type Repository interface {
	// Create inserts a new user and fills in the store-assigned ID and
	// creation timestamp.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByID fetches a user by identity, password hash included. Callers
	// rely on the model's JSON projection to keep the hash out of responses.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail fetches a user by email, password hash included.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdateDetails overwrites the mutable profile fields. Role and secret
	// are not reachable through this method.
	UpdateDetails(ctx context.Context, id, name, email string) (*models.User, error)

	// UpdatePassword stores a new password hash and clears any open reset
	// window in the same statement, so a consumed reset token can never
	// resolve again.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// SetResetToken opens a recovery window: stores the token digest and its
	// expiry on the user row.
	SetResetToken(ctx context.Context, id, tokenDigest string, expire time.Time) error

	// ClearResetToken closes the recovery window without changing the secret.
	ClearResetToken(ctx context.Context, id string) error

	// GetByValidResetToken resolves a token digest to its user, but only
	// while the stored expiry is still after now. An expired digest behaves
	// exactly like an unknown one.
	GetByValidResetToken(ctx context.Context, tokenDigest string, now time.Time) (*models.User, error)
}
