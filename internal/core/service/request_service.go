package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/siteflow/quoting-api/internal/core/domain"
	"github.com/siteflow/quoting-api/internal/core/ports"
)

// RequestService enforces the request lifecycle: submission bounds, the
// quoting preconditions, and monotonic status transitions.
type RequestService struct {
	requests  ports.RequestRepository
	users     ports.UserRepository
	maxAmount float64
	logger    zerolog.Logger
}

func NewRequestService(requests ports.RequestRepository, users ports.UserRepository, maxAmount float64, logger zerolog.Logger) *RequestService {
	if maxAmount <= 0 {
		maxAmount = domain.DefaultMaxAmount
	}
	return &RequestService{requests: requests, users: users, maxAmount: maxAmount, logger: logger}
}

// Submit creates a pending request owned by the caller. Out-of-bounds fields
// are rejected outright, never truncated.
func (s *RequestService) Submit(ctx context.Context, input ports.SubmitInput) (*domain.Request, error) {
	reqType := strings.TrimSpace(input.Type)
	description := strings.TrimSpace(input.Description)

	if reqType == "" || len(reqType) > domain.MaxTypeLen {
		return nil, fmt.Errorf("%w: type must be 1-%d characters", domain.ErrInvalidInput, domain.MaxTypeLen)
	}
	if description == "" || len(description) > domain.MaxDescriptionLen {
		return nil, fmt.Errorf("%w: description must be 1-%d characters", domain.ErrInvalidInput, domain.MaxDescriptionLen)
	}
	if input.Budget != nil && !s.amountInRange(*input.Budget) {
		return nil, fmt.Errorf("%w: budget must be greater than 0 and at most %.0f", domain.ErrInvalidInput, s.maxAmount)
	}

	now := time.Now().UTC()
	request := &domain.Request{
		UserID:      input.UserID,
		Type:        reqType,
		Description: description,
		Budget:      input.Budget,
		Status:      domain.StatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.requests.Create(ctx, request)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", input.UserID).Msg("failed to create request")
		return nil, err
	}

	s.logger.Info().Str("request_id", created.ID).Str("user_id", created.UserID).Str("type", created.Type).Msg("request submitted")
	return created, nil
}

// ListMine returns the caller's own requests, newest first.
func (s *RequestService) ListMine(ctx context.Context, userID string) ([]*domain.Request, error) {
	return s.requests.ListByUser(ctx, userID)
}

// ListAll returns every request with the owner's email joined in. Admin only.
func (s *RequestService) ListAll(ctx context.Context, role domain.Role) ([]*domain.RequestWithOwner, error) {
	if role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return s.requests.ListAllWithOwner(ctx)
}

// Quote attaches a price and the administrator's current payout link to a
// pending request, advancing it to quoted. Quoting is blocked until the
// administrator has configured a payout link, and a request that is no
// longer pending cannot be re-quoted.
func (s *RequestService) Quote(ctx context.Context, input ports.QuoteInput) (*domain.Request, error) {
	if input.Role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !s.amountInRange(input.Price) {
		return nil, fmt.Errorf("%w: price must be greater than 0 and at most %.0f", domain.ErrInvalidInput, s.maxAmount)
	}

	admin, err := s.users.FindByID(ctx, input.AdminID)
	if err != nil {
		return nil, err
	}
	if admin.PayoutLink == "" {
		return nil, domain.ErrPayoutLinkMissing
	}

	quoted, err := s.requests.Quote(ctx, input.RequestID, input.Price, admin.PayoutLink)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("request_id", quoted.ID).
		Str("admin_id", input.AdminID).
		Float64("price", input.Price).
		Msg("request quoted")
	return quoted, nil
}

// UpdateStatus advances a request to next along the monotonic lifecycle.
// The paid and completed states are driven by external collaborators
// (payment confirmation, fulfillment) through an administrator credential.
func (s *RequestService) UpdateStatus(ctx context.Context, role domain.Role, requestID string, next domain.RequestStatus) (*domain.Request, error) {
	if role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, next)
	}
	// quoted is only reachable through Quote, which stamps price and payout
	// link in the same update; this path must never mint a bare quoted state.
	if next == domain.StatusQuoted {
		return nil, fmt.Errorf("%w: quoted status is set by quoting", domain.ErrInvalidInput)
	}

	current, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, current.Status, next)
	}

	updated, err := s.requests.UpdateStatus(ctx, requestID, current.Status, next)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("request_id", requestID).
		Str("from", string(current.Status)).
		Str("to", string(next)).
		Msg("request status updated")
	return updated, nil
}

func (s *RequestService) amountInRange(v float64) bool {
	return v > 0 && v <= s.maxAmount
}
