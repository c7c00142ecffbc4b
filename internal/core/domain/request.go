package domain

import (
	"errors"
	"time"
)

// RequestStatus represents the lifecycle state of a service request.
type RequestStatus string

const (
	StatusPending   RequestStatus = "pending"
	StatusQuoted    RequestStatus = "quoted"
	StatusPaid      RequestStatus = "paid"
	StatusCompleted RequestStatus = "completed"
)

// validTransitions defines the allowed state machine transitions. The
// lifecycle is strictly monotonic: pending → quoted → paid → completed.
var validTransitions = map[RequestStatus][]RequestStatus{
	StatusPending: {StatusQuoted},
	StatusQuoted:  {StatusPaid},
	StatusPaid:    {StatusCompleted},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Valid reports whether s is a known status.
func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusQuoted, StatusPaid, StatusCompleted:
		return true
	}
	return false
}

// Field bounds enforced on submission and quoting. Amounts above the
// configured ceiling are rejected, never clamped.
const (
	MaxTypeLen        = 100
	MaxDescriptionLen = 2000
	DefaultMaxAmount  = 10000
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("access forbidden")
	ErrRequestNotFound    = errors.New("request not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrPayoutLinkMissing  = errors.New("payout link not configured")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// Request is a unit of work submitted by a user. Price and PayoutLink are
// set together by the quoting administrator while the request is still
// pending, and never change afterwards.
type Request struct {
	ID          string        `json:"id"`
	UserID      string        `json:"user_id"`
	Type        string        `json:"type"`
	Description string        `json:"description"`
	Budget      *float64      `json:"budget,omitempty"`
	Price       *float64      `json:"price,omitempty"`
	PayoutLink  string        `json:"bmac_link,omitempty"`
	Status      RequestStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// RequestWithOwner joins a request with its owner's email for admin listings.
type RequestWithOwner struct {
	Request
	OwnerEmail string `json:"owner_email"`
}
