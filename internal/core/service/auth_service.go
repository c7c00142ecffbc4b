package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/siteflow/quoting-api/internal/core/domain"
	"github.com/siteflow/quoting-api/internal/core/ports"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// dummyHash is compared against when no account matches, so unknown emails
// cost the same as wrong passwords and response timing reveals neither.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("timing equalizer"), bcrypt.DefaultCost)

// AuthService implements login and first-time password setup.
type AuthService struct {
	repo      ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

// Login authenticates a user. A provisioned account that has not completed
// setup gets a MustSetPassword result instead of a session. Unknown emails
// and wrong passwords both come back as ErrInvalidCredentials so callers
// cannot probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsSetup {
		return &ports.LoginResult{MustSetPassword: true, Email: user.Email}, nil
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{Token: token, User: user}, nil
}

// CompleteSetup sets the password hash exactly once, activating the account
// and returning a fresh session. The repository update is conditional on the
// account still awaiting setup, so a repeat call can never silently
// overwrite an existing password: it fails with ErrInvalidCredentials, the
// same answer an unknown email gets.
func (s *AuthService) CompleteSetup(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if len(password) < 6 {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.repo.SetCredentials(ctx, email, string(hash), emailLocalPart(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{Token: token, User: user}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// emailLocalPart derives a default display name from the part before the @.
func emailLocalPart(email string) string {
	if i := strings.IndexByte(email, '@'); i > 0 {
		return email[:i]
	}
	return email
}
