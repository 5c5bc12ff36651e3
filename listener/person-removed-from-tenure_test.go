package listener

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonRemovedFromTenure(t *testing.T) {
	ctx := context.Background()

	t.Run("drops the tenure and recomputes roles from the remaining tenures", func(t *testing.T) {
		x := makeMember("Tenant")
		other := makeMember("Tenant")

		asOccupant := x
		asOccupant.RoleTypeCode = "Occupant"
		asLeaseholder := x
		asLeaseholder.RoleTypeCode = "Leaseholder"

		first, second := makeTenure(asOccupant), makeTenure(other, asLeaseholder)
		removedFrom := uuid.New()

		person := makePerson(x.ID, first.ID, removedFrom, second.ID)
		person.RoleTypes = []RoleType{Tenant, HouseholdMemberRole}

		tenures := newFakeTenures(first, second)
		persons := newFakePersons(person)

		envelope := makeEnvelope(PersonRemovedFromTenureEvent, removedFrom, []HouseholdMember{other, x}, []HouseholdMember{other})
		require.NoError(t, NewPersonRemovedFromTenure(persons, tenures, DefaultFanOutLimit).ProcessMessage(ctx, envelope))

		calls := tenures.Calls()
		assert.Len(t, calls, 2)
		assert.ElementsMatch(t, []uuid.UUID{first.ID, second.ID}, []uuid.UUID{calls[0].ID, calls[1].ID})
		for _, call := range calls {
			assert.Equal(t, envelope.CorrelationID, call.CorrelationID)
		}

		saved := persons.Stored(x.ID)
		require.NotNil(t, saved)
		assert.Nil(t, saved.Tenure(removedFrom))
		assert.Len(t, saved.TenureSummaries, 2)
		assert.Equal(t, []RoleType{Occupant, Leaseholder}, saved.RoleTypes)
		assert.Equal(t, 4, saved.VersionNumber)
	})

	t.Run("leaves no roles when the last tenure is removed", func(t *testing.T) {
		x := makeMember("Tenant")
		tenureID := uuid.New()
		tenures := newFakeTenures()
		persons := newFakePersons(makePerson(x.ID, tenureID))

		envelope := makeEnvelope(PersonRemovedFromTenureEvent, tenureID, []HouseholdMember{x}, nil)
		require.NoError(t, NewPersonRemovedFromTenure(persons, tenures, DefaultFanOutLimit).ProcessMessage(ctx, envelope))

		assert.Empty(t, tenures.Calls())
		saved := persons.Stored(x.ID)
		assert.Empty(t, saved.TenureSummaries)
		assert.Empty(t, saved.RoleTypes)
	})

	t.Run("skips a remaining tenure that no longer lists the person", func(t *testing.T) {
		x := makeMember("Tenant")
		stale := makeTenure(makeMember("Tenant"))
		removedFrom := uuid.New()
		persons := newFakePersons(makePerson(x.ID, stale.ID, removedFrom))

		envelope := makeEnvelope(PersonRemovedFromTenureEvent, removedFrom, []HouseholdMember{x}, nil)
		require.NoError(t, NewPersonRemovedFromTenure(persons, newFakeTenures(stale), 1).ProcessMessage(ctx, envelope))

		saved := persons.Stored(x.ID)
		assert.Len(t, saved.TenureSummaries, 1)
		assert.Empty(t, saved.RoleTypes)
	})

	t.Run("fails without saving when a remaining tenure cannot be loaded", func(t *testing.T) {
		x := makeMember("Tenant")
		ok, broken, removedFrom := makeTenure(x), uuid.New(), uuid.New()
		failure := errors.New("tenure api unavailable")

		tenures := newFakeTenures(ok)
		tenures.errors[broken] = failure
		persons := newFakePersons(makePerson(x.ID, ok.ID, broken, removedFrom))

		envelope := makeEnvelope(PersonRemovedFromTenureEvent, removedFrom, []HouseholdMember{x}, nil)
		err := NewPersonRemovedFromTenure(persons, tenures, DefaultFanOutLimit).ProcessMessage(ctx, envelope)

		assert.ErrorIs(t, err, failure)
		assert.Empty(t, persons.Saves())
	})

	t.Run("fails when a remaining tenure is missing", func(t *testing.T) {
		x := makeMember("Tenant")
		missing, removedFrom := uuid.New(), uuid.New()
		persons := newFakePersons(makePerson(x.ID, missing, removedFrom))

		envelope := makeEnvelope(PersonRemovedFromTenureEvent, removedFrom, []HouseholdMember{x}, nil)
		err := NewPersonRemovedFromTenure(persons, newFakeTenures(), DefaultFanOutLimit).ProcessMessage(ctx, envelope)

		var notFound NotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, TenureEntity, notFound.Kind)
		assert.Equal(t, missing, notFound.ID)
	})

	t.Run("fails when the members did not change", func(t *testing.T) {
		x := makeMember("Tenant")
		persons := newFakePersons(makePerson(x.ID))
		envelope := makeEnvelope(PersonRemovedFromTenureEvent, uuid.New(), []HouseholdMember{x}, []HouseholdMember{x})

		err := NewPersonRemovedFromTenure(persons, newFakeTenures(), DefaultFanOutLimit).ProcessMessage(ctx, envelope)

		assert.Equal(t, HouseholdMembersNotChanged(envelope.EntityID, envelope.CorrelationID), err)
		assert.Empty(t, persons.Gets())
	})

	t.Run("fails when the person is missing", func(t *testing.T) {
		x := makeMember("Tenant")
		envelope := makeEnvelope(PersonRemovedFromTenureEvent, uuid.New(), []HouseholdMember{x}, nil)

		err := NewPersonRemovedFromTenure(newFakePersons(), newFakeTenures(), DefaultFanOutLimit).ProcessMessage(ctx, envelope)
		assert.Equal(t, NotFound(PersonEntity, x.ID), err)
	})
}
