package messaging

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	EventUserCreated = "user.created"
	EventUserUpdated = "user.updated"
	EventUserDeleted = "user.deleted"
)

// Exchange names
const (
	ExchangeUserEvents = "user.events"
)

// Event is the base event structure
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	Timestamp     time.Time       `json:"timestamp"`
	CorrelationID string          `json:"correlation_id"`
	Data          json.RawMessage `json:"data"`
}

// NewEvent creates a new event with the given type and data
func NewEvent(eventType, source, correlationID string, data interface{}) (*Event, error) {
	dataBytes, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Source:        source,
		Timestamp:     time.Now().UTC(),
		CorrelationID: correlationID,
		Data:          dataBytes,
	}, nil
}

// UnmarshalData unmarshals the event data into the provided struct
func (e *Event) UnmarshalData(v interface{}) error {
	return json.Unmarshal(e.Data, v)
}

// UserCreatedEvent is published when a user is provisioned
type UserCreatedEvent struct {
	IdentityID  string `json:"identity_id"`
	CompanyCode string `json:"company_code"`
	Role        string `json:"role"`
	StoreName   string `json:"store_name,omitempty"`
}

// UserUpdatedEvent is published when a user is updated
type UserUpdatedEvent struct {
	IdentityID string         `json:"identity_id"`
	Fields     map[string]any `json:"fields"` // Changed fields
}

// UserDeletedEvent is published when a user is deprovisioned
type UserDeletedEvent struct {
	IdentityID  string `json:"identity_id"`
	CompanyCode string `json:"company_code"`
}
