package ports

import (
	"context"

	"github.com/siteflow/quoting-api/internal/core/domain"
)

// RequestRepository defines persistence operations for service requests.
type RequestRepository interface {
	Create(ctx context.Context, r *domain.Request) (*domain.Request, error)
	FindByID(ctx context.Context, id string) (*domain.Request, error)

	// ListByUser returns the given user's requests, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Request, error)

	// ListAllWithOwner returns every request joined with its owner's email,
	// newest first.
	ListAllWithOwner(ctx context.Context) ([]*domain.RequestWithOwner, error)

	// Quote atomically sets price, payout link, and status=quoted on a single
	// document, conditional on the request still being pending. A request in
	// any other state fails with domain.ErrInvalidTransition; an unknown id
	// fails with domain.ErrRequestNotFound.
	Quote(ctx context.Context, id string, price float64, payoutLink string) (*domain.Request, error)

	// UpdateStatus advances a request from the expected current status to
	// next in one conditional update. A request no longer in the expected
	// status fails with domain.ErrInvalidTransition.
	UpdateStatus(ctx context.Context, id string, current, next domain.RequestStatus) (*domain.Request, error)
}
