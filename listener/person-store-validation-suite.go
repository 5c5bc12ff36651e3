package listener

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jaswdr/faker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func NewPersonStoreValidationSuite(ctx context.Context, store PersonStore) *PersonStoreValidationSuite {
	return &PersonStoreValidationSuite{
		store: store,
		ctx:   ctx,
		faker: faker.New(),
	}
}

// PersonStoreValidationSuite checks the behaviour every PersonStore implementation must share.
type PersonStoreValidationSuite struct {
	store PersonStore
	ctx   context.Context
	faker faker.Faker
}

func (s *PersonStoreValidationSuite) Run(t *testing.T) {
	t.Run("returns nil for a missing person", s.LoadMissing)
	t.Run("creates a person at version zero", s.CreatesPerson)
	t.Run("round trips tenure summaries and role types", s.RoundTrips)
	t.Run("increments the version on each save", s.IncrementsVersion)
	t.Run("returns a version conflict for a stale version", s.ConflictOnStaleVersion)
	t.Run("returns a version conflict when creating an existing person", s.ConflictOnExistingPerson)
}

func (s *PersonStoreValidationSuite) MakeTestTenureSummary() TenureSummary {
	end := FormatDate(MaxDate)
	return TenureSummary{
		TenureID:            uuid.New(),
		AssetFullAddress:    s.faker.Address().Address(),
		AssetID:             uuid.NewString(),
		PaymentReference:    s.faker.Numerify("##########"),
		PropertyReference:   s.faker.Numerify("########"),
		StartDate:           FormatDate(MinDate),
		EndDate:             &end,
		RoleTypeDescription: s.faker.Lorem().Word(),
		Uprn:                s.faker.Numerify("############"),
	}
}

func (s *PersonStoreValidationSuite) MakeTestPerson() *Person {
	open := s.MakeTestTenureSummary()
	open.EndDate = nil

	return &Person{
		ID:              uuid.New(),
		RoleTypes:       []RoleType{Tenant, Leaseholder},
		TenureSummaries: []TenureSummary{s.MakeTestTenureSummary(), open},
	}
}

func (s *PersonStoreValidationSuite) seed(t *testing.T) *Person {
	person := s.MakeTestPerson()
	require.NoError(t, s.store.SavePerson(s.ctx, person, 0))

	return person
}

func (s *PersonStoreValidationSuite) LoadMissing(t *testing.T) {
	person, err := s.store.GetPerson(s.ctx, uuid.New())

	assert.Nil(t, err)
	assert.Nil(t, person)
}

func (s *PersonStoreValidationSuite) CreatesPerson(t *testing.T) {
	before := time.Now().Add(-time.Second)
	person := s.seed(t)

	assert.Equal(t, 1, person.VersionNumber)
	assert.True(t, person.LastModified.After(before))

	loaded, err := s.store.GetPerson(s.ctx, person.ID)
	if !assert.Nil(t, err) || !assert.NotNil(t, loaded) {
		return
	}

	assert.Equal(t, person.ID, loaded.ID)
	assert.Equal(t, 1, loaded.VersionNumber)
}

func (s *PersonStoreValidationSuite) RoundTrips(t *testing.T) {
	person := s.seed(t)

	loaded, err := s.store.GetPerson(s.ctx, person.ID)
	if !assert.Nil(t, err) || !assert.NotNil(t, loaded) {
		return
	}

	assert.Equal(t, person.RoleTypes, loaded.RoleTypes)
	assert.Equal(t, person.TenureSummaries, loaded.TenureSummaries)
	assert.WithinDuration(t, person.LastModified, loaded.LastModified, time.Second)
}

func (s *PersonStoreValidationSuite) IncrementsVersion(t *testing.T) {
	person := s.seed(t)

	for expected := 1; expected <= 3; expected++ {
		person.AddRoleType(Occupant)
		require.NoError(t, s.store.SavePerson(s.ctx, person, expected))
		assert.Equal(t, expected+1, person.VersionNumber)
	}

	loaded, err := s.store.GetPerson(s.ctx, person.ID)
	if !assert.Nil(t, err) || !assert.NotNil(t, loaded) {
		return
	}

	assert.Equal(t, 4, loaded.VersionNumber)
	assert.Equal(t, []RoleType{Tenant, Leaseholder, Occupant}, loaded.RoleTypes)
}

func (s *PersonStoreValidationSuite) ConflictOnStaleVersion(t *testing.T) {
	person := s.seed(t)

	first, err := s.store.GetPerson(s.ctx, person.ID)
	require.NoError(t, err)
	second, err := s.store.GetPerson(s.ctx, person.ID)
	require.NoError(t, err)

	first.AddRoleType(Freeholder)
	require.NoError(t, s.store.SavePerson(s.ctx, first, first.VersionNumber))

	second.AddRoleType(Occupant)
	err = s.store.SavePerson(s.ctx, second, second.VersionNumber)
	assert.ErrorIs(t, err, VersionConflict)
	assert.Equal(t, 1, second.VersionNumber)

	loaded, err := s.store.GetPerson(s.ctx, person.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.VersionNumber)
	assert.True(t, loaded.HasRoleType(Freeholder))
	assert.False(t, loaded.HasRoleType(Occupant))
}

func (s *PersonStoreValidationSuite) ConflictOnExistingPerson(t *testing.T) {
	person := s.seed(t)

	duplicate := person.Clone()
	err := s.store.SavePerson(s.ctx, duplicate, 0)
	assert.ErrorIs(t, err, VersionConflict)
}
