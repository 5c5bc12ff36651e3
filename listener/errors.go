package listener

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// VersionConflict is returned by a PersonStore when the stored version no longer matches the expected one.
var VersionConflict = errors.New("version-conflict")

type EntityKind string

func (k EntityKind) String() string {
	return string(k)
}

const (
	TenureEntity  = EntityKind("Tenure")
	AccountEntity = EntityKind("Account")
	PersonEntity  = EntityKind("Person")
)

func InvalidArgument(name string) InvalidArgumentError {
	return InvalidArgumentError{Name: name}
}

type InvalidArgumentError struct {
	Name string
}

func (e InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument: %s must not be nil", e.Name)
}

func NotFound(kind EntityKind, id uuid.UUID) NotFoundError {
	return NotFoundError{Kind: kind, ID: id}
}

type NotFoundError struct {
	Kind EntityKind
	ID   uuid.UUID
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %s not found", e.Kind, e.ID)
}

func HouseholdMembersNotChanged(tenureID uuid.UUID, correlationID uuid.UUID) HouseholdMembersNotChangedError {
	return HouseholdMembersNotChangedError{TenureID: tenureID, CorrelationID: correlationID}
}

type HouseholdMembersNotChangedError struct {
	TenureID      uuid.UUID
	CorrelationID uuid.UUID
}

func (e HouseholdMembersNotChangedError) Error() string {
	return fmt.Sprintf(
		"there are no new or changed household member records on the tenure (id: %s) for the event with correlation id %s",
		e.TenureID,
		e.CorrelationID,
	)
}

func PersonMissingTenure(personID uuid.UUID, tenureID uuid.UUID) PersonMissingTenureError {
	return PersonMissingTenureError{PersonID: personID, TenureID: tenureID}
}

type PersonMissingTenureError struct {
	PersonID uuid.UUID
	TenureID uuid.UUID
}

func (e PersonMissingTenureError) Error() string {
	return fmt.Sprintf("person record with id %s does not have any tenure info for id %s", e.PersonID, e.TenureID)
}

func UnknownEventType(eventType EventType) UnknownEventTypeError {
	return UnknownEventTypeError{EventType: eventType}
}

type UnknownEventTypeError struct {
	EventType EventType
}

func (e UnknownEventTypeError) Error() string {
	return fmt.Sprintf("unknown event type: %s", e.EventType)
}
