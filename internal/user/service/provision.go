package service

import (
	"context"
	"strings"

	"github.com/platefront/backoffice-backend/internal/identity"
	"github.com/platefront/backoffice-backend/internal/user/domain"
	"github.com/platefront/backoffice-backend/internal/user/repository"
	"github.com/platefront/backoffice-backend/pkg/actor"
	"github.com/platefront/backoffice-backend/pkg/errors"
	"github.com/platefront/backoffice-backend/pkg/logger"
)

// IdentityProvider is the slice of the identity provider API the
// provisioning workflow needs.
type IdentityProvider interface {
	Create(ctx context.Context, email, password string, meta identity.Metadata) (string, error)
	Update(ctx context.Context, id string, patch identity.Patch) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher publishes user lifecycle events. Publish failures never fail
// the request; implementations log and move on.
type EventPublisher interface {
	UserCreated(ctx context.Context, profile *domain.Profile)
	UserUpdated(ctx context.Context, profile *domain.Profile, changes map[string]any)
	UserDeleted(ctx context.Context, profile *domain.Profile)
}

// UserService orchestrates the provisioning workflow. An identity and its
// profile are a pair: no operation may leave an identity without a profile.
// The identity provider and the relational store share no transaction, so the
// pairing is protected procedurally (see createUser's compensation step).
type UserService struct {
	profiles    *repository.ProfileRepository
	provider    IdentityProvider
	events      EventPublisher
	loginDomain string
	logger      *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(
	profiles *repository.ProfileRepository,
	provider IdentityProvider,
	events EventPublisher,
	loginDomain string,
	log *logger.Logger,
) *UserService {
	return &UserService{
		profiles:    profiles,
		provider:    provider,
		events:      events,
		loginDomain: loginDomain,
		logger:      log,
	}
}

// CreateUserRequest represents a create user request
type CreateUserRequest struct {
	CompanyCode string  `json:"companyCode" validate:"required"`
	Password    string  `json:"password" validate:"required,min=6"`
	Role        string  `json:"role" validate:"required,oneof=admin store"`
	StoreName   *string `json:"storeName"`
	Group       *string `json:"group"`
}

// UpdateUserRequest represents an update user request
type UpdateUserRequest struct {
	CompanyCode *string `json:"company_code"`
	Password    *string `json:"password" validate:"omitempty,min=6"`
	Role        *string `json:"role" validate:"omitempty,oneof=admin store"`
	StoreName   *string `json:"store_name"`
	Group       *string `json:"group"`
}

// provisionState is a step of the create-user workflow.
type provisionState int

const (
	stateValidating provisionState = iota
	stateCreatingIdentity
	stateCreatingProfile
	stateCommitted
	stateDeletingIdentity
	stateFailed
)

func (s provisionState) String() string {
	switch s {
	case stateValidating:
		return "validating"
	case stateCreatingIdentity:
		return "creating_identity"
	case stateCreatingProfile:
		return "creating_profile"
	case stateCommitted:
		return "committed"
	case stateDeletingIdentity:
		return "deleting_identity"
	case stateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// provisionSaga tracks the create-user workflow. A profile-insert failure is
// compensated by deleting the identity created one step earlier, so the
// caller never observes a half-created user.
type provisionSaga struct {
	state      provisionState
	identityID string
	logger     *logger.Logger
}

func (s *provisionSaga) transition(to provisionState) {
	s.logger.Debug().
		Str("from", s.state.String()).
		Str("to", to.String()).
		Str("identity_id", s.identityID).
		Msg("provisioning transition")
	s.state = to
}

// CreateUser provisions an identity/profile pair and returns the new profile.
func (s *UserService) CreateUser(ctx context.Context, req *CreateUserRequest) (*domain.Profile, error) {
	saga := &provisionSaga{state: stateValidating, logger: s.logger}

	if req.CompanyCode == "" || req.Password == "" || req.Role == "" {
		saga.transition(stateFailed)
		return nil, errors.BadRequest("companyCode, password and role are required")
	}
	if req.Role != actor.RoleAdmin && req.Role != actor.RoleStore {
		saga.transition(stateFailed)
		return nil, errors.BadRequest("role must be admin or store")
	}

	saga.transition(stateCreatingIdentity)
	identityID, err := s.provider.Create(ctx, s.loginHandle(req.CompanyCode), req.Password, identity.Metadata{
		CompanyCode: req.CompanyCode,
		Role:        req.Role,
	})
	if err != nil {
		saga.transition(stateFailed)
		return nil, errors.ProvisioningFailed(err)
	}
	saga.identityID = identityID

	profile := &domain.Profile{
		IdentityID:  identityID,
		CompanyCode: req.CompanyCode,
		Role:        req.Role,
		Group:       req.Group,
	}
	// store_name only carries meaning for store accounts
	if req.Role == actor.RoleStore {
		profile.StoreName = req.StoreName
	}

	saga.transition(stateCreatingProfile)
	if err := s.profiles.Create(ctx, profile); err != nil {
		// Compensate: the identity must not outlive the failed profile insert.
		saga.transition(stateDeletingIdentity)
		if delErr := s.provider.Delete(ctx, identityID); delErr != nil {
			s.logger.Error().Err(delErr).
				Str("identity_id", identityID).
				Msg("compensation failed, orphan identity left at provider")
		}
		saga.transition(stateFailed)
		return nil, errors.ProvisioningFailed(err)
	}

	saga.transition(stateCommitted)
	s.events.UserCreated(ctx, profile)

	return profile, nil
}

// UpdateUser applies a partial update to an identity/profile pair. Credential
// material goes to the identity provider first; the profile row is only
// touched once that step succeeded.
func (s *UserService) UpdateUser(ctx context.Context, identityID string, req *UpdateUserRequest) (*domain.Profile, error) {
	profile, err := s.profiles.GetByIdentityID(ctx, identityID)
	if err != nil {
		return nil, err
	}

	changes := make(map[string]any)

	// New credentials material → identity first, profile untouched on failure.
	if req.Password != nil || req.CompanyCode != nil {
		patch := identity.Patch{Password: req.Password}
		if req.CompanyCode != nil {
			handle := s.loginHandle(*req.CompanyCode)
			patch.Email = &handle
		}
		if err := s.provider.Update(ctx, identityID, patch); err != nil {
			return nil, errors.UpdateFailed(err)
		}
		if req.Password != nil {
			changes["password"] = "changed"
		}
	}

	if req.CompanyCode != nil && *req.CompanyCode != profile.CompanyCode {
		changes["company_code"] = map[string]string{"from": profile.CompanyCode, "to": *req.CompanyCode}
		profile.CompanyCode = *req.CompanyCode
	}

	if req.Role != nil && *req.Role != profile.Role {
		changes["role"] = map[string]string{"from": profile.Role, "to": *req.Role}
		profile.Role = *req.Role
	}

	// The effective role decides whether a store name may persist.
	if profile.Role == actor.RoleStore {
		if req.StoreName != nil {
			changes["store_name"] = *req.StoreName
			profile.StoreName = req.StoreName
		}
	} else {
		if profile.StoreName != nil {
			changes["store_name"] = nil
		}
		profile.StoreName = nil
	}

	if req.Group != nil {
		profile.Group = req.Group
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, err
		}
		return nil, errors.UpdateFailed(err)
	}

	s.events.UserUpdated(ctx, profile, changes)

	return profile, nil
}

// DeleteUser removes an identity/profile pair. Admin profiles are never
// deletable through this workflow. The identity goes first; if the profile
// delete then fails, the inconsistency is reported rather than hidden.
func (s *UserService) DeleteUser(ctx context.Context, identityID string) error {
	profile, err := s.profiles.GetByIdentityID(ctx, identityID)
	if err != nil {
		return err
	}

	if profile.IsAdmin() {
		return errors.Forbidden("admin users cannot be deleted")
	}

	if err := s.provider.Delete(ctx, identityID); err != nil {
		return errors.DeleteFailed(err)
	}

	if err := s.profiles.Delete(ctx, identityID); err != nil {
		s.logger.Error().Err(err).
			Str("identity_id", identityID).
			Msg("identity deleted but profile removal failed")
		return errors.DeleteFailed(err)
	}

	s.events.UserDeleted(ctx, profile)

	return nil
}

// ListUsers lists all profiles.
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.Profile, error) {
	return s.profiles.List(ctx)
}

// loginHandle synthesizes the provider login for a company account.
func (s *UserService) loginHandle(companyCode string) string {
	return strings.ToLower(companyCode) + "@" + s.loginDomain
}
