package ports

import (
	"context"

	"github.com/siteflow/quoting-api/internal/core/domain"
)

// SubmitInput carries all data needed to create a new request.
type SubmitInput struct {
	UserID      string
	Type        string
	Description string
	Budget      *float64 // optional
}

// QuoteInput carries the parameters of an administrator quoting a request.
type QuoteInput struct {
	AdminID   string
	Role      domain.Role
	RequestID string
	Price     float64
}

// RequestService defines use-case operations on the request lifecycle. It is
// the only place request state is mutated.
type RequestService interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Request, error)
	ListMine(ctx context.Context, userID string) ([]*domain.Request, error)
	ListAll(ctx context.Context, role domain.Role) ([]*domain.RequestWithOwner, error)
	Quote(ctx context.Context, input QuoteInput) (*domain.Request, error)

	// UpdateStatus advances a request along the monotonic lifecycle. Driven
	// by external collaborators (payment confirmation, fulfillment) through
	// an administrator credential.
	UpdateStatus(ctx context.Context, role domain.Role, requestID string, next domain.RequestStatus) (*domain.Request, error)
}
