package listener

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestTenureUpdated(t *testing.T) {
	ctx := context.Background()

	t.Run("refreshes the summary on every member", func(t *testing.T) {
		members := []HouseholdMember{makeMember("Tenant"), makeMember("HouseholdMember"), makeMember("HouseholdMember")}
		tenure := makeTenure(members...)
		persons := newFakePersons(
			makePerson(members[0].ID, tenure.ID),
			makePerson(members[1].ID, uuid.New(), tenure.ID),
			makePerson(members[2].ID, tenure.ID),
		)

		envelope := makeEnvelope(TenureUpdatedEvent, tenure.ID, nil, nil)
		require.NoError(t, NewTenureUpdated(persons, newFakeTenures(tenure), DefaultFanOutLimit).ProcessMessage(ctx, envelope))

		assert.Len(t, persons.Gets(), 3)
		assert.Len(t, persons.Saves(), 3)
		for _, member := range members {
			saved := persons.Stored(member.ID)
			summary := saved.Tenure(tenure.ID)
			require.NotNil(t, summary)
			assert.Equal(t, tenure.PaymentReference, summary.PaymentReference)
			assert.Equal(t, tenure.TenuredAsset.FullAddress, summary.AssetFullAddress)
			assert.Equal(t, 4, saved.VersionNumber)
			assert.Equal(t, []RoleType{HouseholdMemberRole}, saved.RoleTypes)
		}
		assert.Equal(t, "placeholder", persons.Stored(members[1].ID).TenureSummaries[0].PaymentReference)
	})

	t.Run("is idempotent", func(t *testing.T) {
		member := makeMember("Tenant")
		tenure := makeTenure(member)
		persons := newFakePersons(makePerson(member.ID, tenure.ID))
		processor := NewTenureUpdated(persons, newFakeTenures(tenure), DefaultFanOutLimit)

		envelope := makeEnvelope(TenureUpdatedEvent, tenure.ID, nil, nil)
		require.NoError(t, processor.ProcessMessage(ctx, envelope))
		once := persons.Stored(member.ID)

		require.NoError(t, processor.ProcessMessage(ctx, envelope))
		twice := persons.Stored(member.ID)

		assert.Equal(t, once.TenureSummaries, twice.TenureSummaries)
		assert.Equal(t, once.RoleTypes, twice.RoleTypes)
	})

	t.Run("does nothing for a tenure without members", func(t *testing.T) {
		for _, members := range [][]HouseholdMember{nil, {}} {
			tenure := makeTenure(members...)
			persons := newFakePersons()

			envelope := makeEnvelope(TenureUpdatedEvent, tenure.ID, nil, nil)
			require.NoError(t, NewTenureUpdated(persons, newFakeTenures(tenure), DefaultFanOutLimit).ProcessMessage(ctx, envelope))

			assert.Empty(t, persons.Gets())
			assert.Empty(t, persons.Saves())
		}
	})

	t.Run("keeps the other saves when one fails", func(t *testing.T) {
		members := []HouseholdMember{makeMember("Tenant"), makeMember("HouseholdMember"), makeMember("HouseholdMember")}
		tenure := makeTenure(members...)
		persons := newFakePersons(
			makePerson(members[0].ID, tenure.ID),
			makePerson(members[1].ID, tenure.ID),
			makePerson(members[2].ID, tenure.ID),
		)
		failure := errors.New("write throttled")
		persons.saveErrors[members[1].ID] = failure

		envelope := makeEnvelope(TenureUpdatedEvent, tenure.ID, nil, nil)
		err := NewTenureUpdated(persons, newFakeTenures(tenure), DefaultFanOutLimit).ProcessMessage(ctx, envelope)

		assert.ErrorIs(t, err, failure)
		assert.Len(t, persons.Gets(), 3)
		assert.Len(t, persons.Saves(), 3)

		assert.Equal(t, tenure.PaymentReference, persons.Stored(members[0].ID).TenureSummaries[0].PaymentReference)
		assert.Equal(t, tenure.PaymentReference, persons.Stored(members[2].ID).TenureSummaries[0].PaymentReference)
		assert.Equal(t, "placeholder", persons.Stored(members[1].ID).TenureSummaries[0].PaymentReference)
	})

	t.Run("saves nothing when a member does not hold the tenure", func(t *testing.T) {
		members := []HouseholdMember{makeMember("Tenant"), makeMember("HouseholdMember")}
		tenure := makeTenure(members...)
		persons := newFakePersons(makePerson(members[0].ID, tenure.ID), makePerson(members[1].ID))

		envelope := makeEnvelope(TenureUpdatedEvent, tenure.ID, nil, nil)
		err := NewTenureUpdated(persons, newFakeTenures(tenure), DefaultFanOutLimit).ProcessMessage(ctx, envelope)

		var missing PersonMissingTenureError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, PersonMissingTenure(members[1].ID, tenure.ID), missing)
		assert.Empty(t, persons.Saves())
	})

	t.Run("reports every missing person", func(t *testing.T) {
		members := []HouseholdMember{makeMember("Tenant"), makeMember("HouseholdMember")}
		tenure := makeTenure(members...)
		persons := newFakePersons()

		envelope := makeEnvelope(TenureUpdatedEvent, tenure.ID, nil, nil)
		err := NewTenureUpdated(persons, newFakeTenures(tenure), 1).ProcessMessage(ctx, envelope)

		failures := multierr.Errors(err)
		assert.ElementsMatch(t, []error{NotFound(PersonEntity, members[0].ID), NotFound(PersonEntity, members[1].ID)}, failures)
		assert.Empty(t, persons.Saves())
	})

	t.Run("fails when the tenure is missing", func(t *testing.T) {
		persons := newFakePersons()
		envelope := makeEnvelope(TenureUpdatedEvent, uuid.New(), nil, nil)

		err := NewTenureUpdated(persons, newFakeTenures(), DefaultFanOutLimit).ProcessMessage(ctx, envelope)

		assert.Equal(t, NotFound(TenureEntity, envelope.EntityID), err)
		assert.Empty(t, persons.Gets())
	})
}
