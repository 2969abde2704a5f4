package service

import (
	"context"

	"github.com/platefront/backoffice-backend/internal/identity"
	"github.com/platefront/backoffice-backend/internal/user/repository"
	"github.com/platefront/backoffice-backend/pkg/actor"
	"github.com/platefront/backoffice-backend/pkg/errors"
	"github.com/platefront/backoffice-backend/pkg/logger"
)

// Provider is the slice of the identity provider API the auth service needs.
type Provider interface {
	Authenticate(ctx context.Context, email, password string) (*identity.Session, error)
	ResolveSession(token string) (string, error)
}

// AuthService resolves sessions into caller contexts and handles login.
type AuthService struct {
	provider Provider
	profiles *repository.ProfileRepository
	logger   *logger.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(provider Provider, profiles *repository.ProfileRepository, log *logger.Logger) *AuthService {
	return &AuthService{
		provider: provider,
		profiles: profiles,
		logger:   log,
	}
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the provider token back to the client unmodified.
type LoginResponse struct {
	CompanyCode string `json:"companyCode"`
	Token       string `json:"token"`
}

// Login exchanges credentials for a provider session token.
func (s *AuthService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	session, err := s.provider.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByIdentityID(ctx, session.IdentityID)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		CompanyCode: profile.CompanyCode,
		Token:       session.Token,
	}, nil
}

// Authorize resolves a session credential into a caller context. When
// requiredRole is non-empty the caller's role must match exactly. The check
// is read-only.
func (s *AuthService) Authorize(ctx context.Context, token, requiredRole string) (*actor.Caller, error) {
	if token == "" {
		return nil, errors.Unauthorized("missing session")
	}

	identityID, err := s.provider.ResolveSession(token)
	if err != nil {
		return nil, errors.Unauthorized("invalid session")
	}

	profile, err := s.profiles.GetByIdentityID(ctx, identityID)
	if err != nil {
		return nil, err
	}

	if requiredRole != "" && profile.Role != requiredRole {
		return nil, errors.Forbidden("insufficient role")
	}

	return profile.Caller(), nil
}
