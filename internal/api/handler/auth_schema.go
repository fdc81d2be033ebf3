package handler

import (
	"time"

	"github.com/vetcare/central/internal/core/domain"
)

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=128"`
}

type loginResponse struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
	User      *domain.Identity `json:"user"`
}

type sessionResponse struct {
	Authenticated bool             `json:"authenticated"`
	Loading       bool             `json:"loading"`
	User          *domain.Identity `json:"user,omitempty"`
}

func toSessionResponse(s domain.Session) sessionResponse {
	return sessionResponse{
		Authenticated: s.Authenticated(),
		Loading:       s.Loading,
		User:          s.Identity,
	}
}
