package handler

import "github.com/siteflow/quoting-api/internal/core/domain"

// Request payloads carry validate tags; bounds mirror the domain limits so
// obviously bad input never reaches a service.

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type setupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// authResponse either carries a session token or routes the caller to the
// one-time password-set flow.
type authResponse struct {
	Token           string       `json:"token,omitempty"`
	MustSetPassword bool         `json:"must_set_password,omitempty"`
	Email           string       `json:"email,omitempty"`
	User            *domain.User `json:"user,omitempty"`
}

type submitRequest struct {
	Type        string   `json:"type"        validate:"required,max=100"`
	Description string   `json:"description" validate:"required,max=2000"`
	Budget      *float64 `json:"budget"      validate:"omitempty,gt=0"`
}

type quoteRequest struct {
	Price float64 `json:"price" validate:"required,gt=0"`
}

// statusRequest only accepts the externally driven states: quoted is
// reachable solely through the quote endpoint.
type statusRequest struct {
	Status string `json:"status" validate:"required,oneof=paid completed"`
}

type payoutLinkRequest struct {
	Link string `json:"bmac_link" validate:"required,url"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}
