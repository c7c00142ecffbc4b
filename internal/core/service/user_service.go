package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/siteflow/quoting-api/internal/core/domain"
	"github.com/siteflow/quoting-api/internal/core/ports"
)

// UserService handles profile operations.
type UserService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, logger: logger}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// SetPayoutLink updates the calling administrator's own payout link. The
// link must point at the supported payout provider.
func (s *UserService) SetPayoutLink(ctx context.Context, userID string, role domain.Role, link string) (*domain.User, error) {
	if role != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if !domain.ValidPayoutLink(link) {
		return nil, fmt.Errorf("%w: payout link must start with %s", domain.ErrInvalidInput, domain.PayoutLinkPrefix)
	}

	user, err := s.repo.UpdatePayoutLink(ctx, userID, link)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", userID).Msg("payout link updated")
	return user, nil
}
