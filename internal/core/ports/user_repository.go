package ports

import (
	"context"

	"github.com/siteflow/quoting-api/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// SetCredentials stores the password hash and display name for an account
	// that has not completed setup, flipping it to active. The update is
	// atomic and conditional on the account still awaiting setup; it fails
	// with domain.ErrUserNotFound when no such account matches, so a second
	// call for the same email can never overwrite credentials.
	SetCredentials(ctx context.Context, email, passwordHash, displayName string) (*domain.User, error)

	// UpdatePayoutLink replaces the payout link on the given user's record.
	UpdatePayoutLink(ctx context.Context, userID, link string) (*domain.User, error)

	// EnsureAdmin provisions an administrator account awaiting first-login
	// setup. Existing accounts are left untouched.
	EnsureAdmin(ctx context.Context, email, displayName string) error
}
