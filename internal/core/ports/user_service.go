package ports

import (
	"context"

	"github.com/siteflow/quoting-api/internal/core/domain"
)

// UserService covers profile operations outside the auth flow.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)

	// SetPayoutLink updates the calling administrator's own payout link.
	SetPayoutLink(ctx context.Context, userID string, role domain.Role, link string) (*domain.User, error)
}
