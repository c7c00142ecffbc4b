package ports

import (
	"context"

	"github.com/siteflow/quoting-api/internal/core/domain"
)

// LoginResult is returned by the auth use-cases. Exactly one of Token or
// MustSetPassword is meaningful: a provisioned account that has never set a
// password gets MustSetPassword=true and no token.
type LoginResult struct {
	Token           string
	User            *domain.User
	MustSetPassword bool
	Email           string
}

// AuthService establishes caller identity.
type AuthService interface {
	// Login authenticates an active account, or signals that a provisioned
	// account must complete setup first. Unknown emails and wrong passwords
	// are indistinguishable: both fail with domain.ErrInvalidCredentials.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// CompleteSetup sets the password on an account awaiting setup and
	// returns a fresh session. Calling it on an active account fails with
	// domain.ErrInvalidCredentials.
	CompleteSetup(ctx context.Context, email, password string) (*LoginResult, error)
}
