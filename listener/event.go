package listener

import (
	"context"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type EventType string

func (et EventType) String() string {
	return string(et)
}

const (
	TenureCreatedEvent           = EventType("TenureCreatedEvent")
	TenureUpdatedEvent           = EventType("TenureUpdatedEvent")
	PersonAddedToTenureEvent     = EventType("PersonAddedToTenureEvent")
	PersonRemovedFromTenureEvent = EventType("PersonRemovedFromTenureEvent")
	AccountCreatedEvent          = EventType("AccountCreatedEvent")
)

// HouseholdMembersKey is the key under which both images of a tenure event carry the member list.
const HouseholdMembersKey = "householdMembers"

type User struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// EventEnvelope is the entity event as published by the tenure and account services.
type EventEnvelope struct {
	ID            uuid.UUID `json:"id"`
	EventType     EventType `json:"eventType"`
	SourceDomain  string    `json:"sourceDomain,omitempty"`
	SourceSystem  string    `json:"sourceSystem,omitempty"`
	Version       string    `json:"version,omitempty"`
	CorrelationID uuid.UUID `json:"correlationId"`
	DateTime      string    `json:"dateTime,omitempty"`
	User          *User     `json:"user,omitempty"`
	EntityID      uuid.UUID `json:"entityId"`
	EventData     EventData `json:"eventData"`
}

// EventData holds the before and after images of the changed aggregate.
type EventData struct {
	OldData map[string]any `json:"oldData"`
	NewData map[string]any `json:"newData"`
}

// DecodeEnvelope reads an entity event from its JSON form.
func DecodeEnvelope(ctx context.Context, body []byte) (*EventEnvelope, error) {
	var envelope EventEnvelope
	if err := json.UnmarshalContext(ctx, body, &envelope); err != nil {
		return nil, errors.Wrap(err, "failed to decode event envelope")
	}

	if envelope.EventType == "" {
		return nil, InvalidArgument("eventType")
	}

	return &envelope, nil
}
