package domain

import (
	"strings"
	"time"
)

// Role is the closed set of access levels in the system.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// PayoutLinkPrefix is the only accepted scheme+host for payout links.
const PayoutLinkPrefix = "https://buymeacoffee.com/"

// ValidPayoutLink reports whether link points at the supported payout provider.
func ValidPayoutLink(link string) bool {
	return strings.HasPrefix(link, PayoutLinkPrefix) && len(link) > len(PayoutLinkPrefix)
}

// User models an account. PasswordHash is empty exactly while IsSetup is
// false: accounts are provisioned without credentials and activate on first
// login.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	DisplayName  string    `json:"display_name,omitempty"`
	PayoutLink   string    `json:"payout_link,omitempty"`
	IsSetup      bool      `json:"is_setup"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
