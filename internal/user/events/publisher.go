package events

import (
	"context"

	"github.com/platefront/backoffice-backend/internal/user/domain"
	"github.com/platefront/backoffice-backend/pkg/logger"
	"github.com/platefront/backoffice-backend/pkg/messaging"
)

// publisher is the slice of messaging.Publisher this package uses.
type publisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// UserEventPublisher publishes user lifecycle events
type UserEventPublisher struct {
	publisher publisher
	logger    *logger.Logger
}

// NewUserEventPublisher creates a new user event publisher
func NewUserEventPublisher(rmq *messaging.RabbitMQ, log *logger.Logger) (*UserEventPublisher, error) {
	pub, err := messaging.NewPublisher(rmq, messaging.ExchangeUserEvents, "backoffice", log)
	if err != nil {
		return nil, err
	}

	return &UserEventPublisher{
		publisher: pub,
		logger:    log,
	}, nil
}

// UserCreated publishes a user created event
func (p *UserEventPublisher) UserCreated(ctx context.Context, profile *domain.Profile) {
	data := messaging.UserCreatedEvent{
		IdentityID:  profile.IdentityID,
		CompanyCode: profile.CompanyCode,
		Role:        profile.Role,
	}
	if profile.StoreName != nil {
		data.StoreName = *profile.StoreName
	}

	if err := p.publisher.Publish(ctx, messaging.EventUserCreated, data); err != nil {
		p.logger.Error().Err(err).Str("identity_id", profile.IdentityID).Msg("failed to publish user created event")
	}
}

// UserUpdated publishes a user updated event
func (p *UserEventPublisher) UserUpdated(ctx context.Context, profile *domain.Profile, changes map[string]any) {
	data := messaging.UserUpdatedEvent{
		IdentityID: profile.IdentityID,
		Fields:     changes,
	}

	if err := p.publisher.Publish(ctx, messaging.EventUserUpdated, data); err != nil {
		p.logger.Error().Err(err).Str("identity_id", profile.IdentityID).Msg("failed to publish user updated event")
	}
}

// UserDeleted publishes a user deleted event
func (p *UserEventPublisher) UserDeleted(ctx context.Context, profile *domain.Profile) {
	data := messaging.UserDeletedEvent{
		IdentityID:  profile.IdentityID,
		CompanyCode: profile.CompanyCode,
	}

	if err := p.publisher.Publish(ctx, messaging.EventUserDeleted, data); err != nil {
		p.logger.Error().Err(err).Str("identity_id", profile.IdentityID).Msg("failed to publish user deleted event")
	}
}
