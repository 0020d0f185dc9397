// Package services contains server-side business logic. This file implements
// AuthService, which orchestrates the credential store, password hasher,
// session token issuer, reset token manager and mailer into the
// request-level auth operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/campdir/campdir/internal/common"
	"github.com/campdir/campdir/internal/cryptox"
	"github.com/campdir/campdir/internal/dbx"
	"github.com/campdir/campdir/internal/server/auth"
	"github.com/campdir/campdir/internal/server/config"
	"github.com/campdir/campdir/internal/server/mailer"
	"github.com/campdir/campdir/internal/server/models"
	"github.com/campdir/campdir/internal/server/repositories/repomanager"
)

// ResetTokenValidity is the recovery window opened by a forgot-password
// request.
const ResetTokenValidity = 10 * time.Minute

// MinPasswordLength applies to registration, password update and reset.
const MinPasswordLength = 6

// AuthService provides the authentication and credential-lifecycle
// operations:
//   - Register / Login: create users, verify credentials, mint session tokens
//   - CurrentUser / UpdateDetails: profile reads and mutable-field updates
//   - UpdatePassword: re-key a secret for an authenticated user
//   - ForgotPassword / ResetPassword: out-of-band recovery via mailed tokens
type AuthService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	sender        mailer.Sender
	jwtSecret     []byte
	tokenValidity time.Duration
	publicBaseURL string

	// now is the single wall-clock read point, swappable in tests.
	now func() time.Time
}

// NewAuthService constructs an AuthService using repositories, the mail
// sender and server config.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, sender mailer.Sender, cfg *config.Config) *AuthService {
	return &AuthService{
		db:            db,
		repomanager:   m,
		sender:        sender,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.TokenValidityDuration,
		publicBaseURL: cfg.PublicBaseURL,
		now:           time.Now,
	}
}

// Register creates a user with a hashed secret and returns it together with
// a fresh session token. An already-registered email yields
// common.ErrorEmailTaken.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*models.User, string, error) {
	if name == "" || email == "" {
		return nil, "", fmt.Errorf("%w: name and email are required", common.ErrorValidation)
	}
	if len(password) < MinPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, MinPasswordLength)
	}
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, "", fmt.Errorf("%w: unknown role %q", common.ErrorValidation, role)
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.Create(ctx, &models.User{Name: name, Email: email, Role: role, PasswordHash: hash})
	if err != nil {
		if errors.Is(err, common.ErrorEmailTaken) {
			return nil, "", err
		}
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies the email/password pair and mints a session token. Unknown
// email and wrong password both return common.ErrorUnauthorized so callers
// cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	if email == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password are required", common.ErrorValidation)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if !cryptox.CheckPassword(password, user.PasswordHash) {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// CurrentUser fetches the user record behind an authenticated identity.
func (s *AuthService) CurrentUser(ctx context.Context, id string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, id)
}

// UpdateDetails changes name and/or email; an empty argument keeps the
// stored value. Role and secret are not reachable here.
func (s *AuthService) UpdateDetails(ctx context.Context, id, name, email string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)

	current, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = current.Name
	}
	if email == "" {
		email = current.Email
	}

	return repo.UpdateDetails(ctx, id, name, email)
}

// UpdatePassword verifies the current secret, re-hashes the new one and
// returns a fresh session token.
func (s *AuthService) UpdatePassword(ctx context.Context, id, currentPassword, newPassword string) (string, error) {
	if len(newPassword) < MinPasswordLength {
		return "", fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, MinPasswordLength)
	}

	repo := s.repomanager.Users(s.db)
	user, err := repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	if !cryptox.CheckPassword(currentPassword, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return "", common.ErrorInternal
	}
	if err := repo.UpdatePassword(ctx, id, hash); err != nil {
		return "", fmt.Errorf("error updating password: %w", err)
	}

	return s.issueToken(id)
}

// ForgotPassword opens a recovery window for the account behind email and
// mails a reset link carrying the plaintext token. The token digest must be
// persisted before the mail goes out; if dispatch fails the window is closed
// again before the error is returned, so no valid token survives a failed
// notification.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	plain, digest, err := cryptox.NewResetToken()
	if err != nil {
		return common.ErrorInternal
	}

	expire := s.now().Add(ResetTokenValidity)
	if err := repo.SetResetToken(ctx, user.ID, digest, expire); err != nil {
		return fmt.Errorf("error storing reset token: %w", err)
	}

	msg := mailer.Message{
		To:      user.Email,
		Subject: "Password reset token",
		Body: fmt.Sprintf(
			"You are receiving this email because you (or someone else) has requested the reset of a password. "+
				"Please make a PUT request to:\n\n%s/api/v1/auth/reset-password/%s",
			s.publicBaseURL, plain),
	}
	if err := s.sender.Send(ctx, msg); err != nil {
		// Roll back before surfacing the failure; a token nobody received
		// must not stay valid.
		_ = repo.ClearResetToken(ctx, user.ID)
		return common.ErrorMailNotSent
	}

	return nil
}

// ResetPassword consumes a mailed token: it resolves the digest, stores the
// re-hashed new secret, clears the recovery window and mints a session
// token. Unknown and expired tokens are indistinguishable
// (common.ErrorInvalidResetToken).
func (s *AuthService) ResetPassword(ctx context.Context, plainToken, newPassword string) (*models.User, string, error) {
	if len(newPassword) < MinPasswordLength {
		return nil, "", fmt.Errorf("%w: password must be at least %d characters", common.ErrorValidation, MinPasswordLength)
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	digest := cryptox.HashResetToken(plainToken)

	var user *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		u, err := repo.GetByValidResetToken(ctx, digest, s.now())
		if err != nil {
			return err
		}
		// UpdatePassword also clears the token, making it single-use.
		if err := repo.UpdatePassword(ctx, u.ID, hash); err != nil {
			return err
		}
		user = u
		return nil
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorInvalidResetToken
		}
		return nil, "", fmt.Errorf("error resetting password: %w", err)
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) issueToken(userID string) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}
