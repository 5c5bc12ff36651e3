package listener

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jaswdr/faker"
)

var fake = faker.New()

type tenureCall struct {
	ID            uuid.UUID
	CorrelationID uuid.UUID
}

type fakeTenures struct {
	lk      sync.Mutex
	tenures map[uuid.UUID]*Tenure
	errors  map[uuid.UUID]error
	calls   []tenureCall
}

func newFakeTenures(tenures ...*Tenure) *fakeTenures {
	f := &fakeTenures{tenures: map[uuid.UUID]*Tenure{}, errors: map[uuid.UUID]error{}}
	for _, tenure := range tenures {
		f.tenures[tenure.ID] = tenure
	}

	return f
}

func (f *fakeTenures) GetTenure(_ context.Context, id uuid.UUID, correlationID uuid.UUID) (*Tenure, error) {
	f.lk.Lock()
	defer f.lk.Unlock()

	f.calls = append(f.calls, tenureCall{ID: id, CorrelationID: correlationID})
	if err := f.errors[id]; err != nil {
		return nil, err
	}

	return f.tenures[id], nil
}

func (f *fakeTenures) Calls() []tenureCall {
	f.lk.Lock()
	defer f.lk.Unlock()

	return append([]tenureCall(nil), f.calls...)
}

type fakeAccounts struct {
	accounts map[uuid.UUID]*Account
	err      error
	calls    int
}

func (f *fakeAccounts) GetAccount(_ context.Context, id uuid.UUID, _ uuid.UUID) (*Account, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	return f.accounts[id], nil
}

type fakePersons struct {
	lk         sync.Mutex
	persons    map[uuid.UUID]*Person
	getErrors  map[uuid.UUID]error
	saveErrors map[uuid.UUID]error
	gets       []uuid.UUID
	saves      []uuid.UUID
	saved      map[uuid.UUID]*Person
}

func newFakePersons(persons ...*Person) *fakePersons {
	f := &fakePersons{
		persons:    map[uuid.UUID]*Person{},
		getErrors:  map[uuid.UUID]error{},
		saveErrors: map[uuid.UUID]error{},
		saved:      map[uuid.UUID]*Person{},
	}
	for _, person := range persons {
		f.persons[person.ID] = person.Clone()
	}

	return f
}

func (f *fakePersons) GetPerson(_ context.Context, id uuid.UUID) (*Person, error) {
	f.lk.Lock()
	defer f.lk.Unlock()

	f.gets = append(f.gets, id)
	if err := f.getErrors[id]; err != nil {
		return nil, err
	}

	person, ok := f.persons[id]
	if !ok {
		return nil, nil
	}

	return person.Clone(), nil
}

func (f *fakePersons) SavePerson(_ context.Context, person *Person, expectedVersion int) error {
	f.lk.Lock()
	defer f.lk.Unlock()

	f.saves = append(f.saves, person.ID)
	if err := f.saveErrors[person.ID]; err != nil {
		return err
	}

	if stored, ok := f.persons[person.ID]; ok && stored.VersionNumber != expectedVersion {
		return VersionConflict
	}

	person.VersionNumber = expectedVersion + 1
	person.LastModified = time.Now().UTC()
	f.persons[person.ID] = person.Clone()
	f.saved[person.ID] = person.Clone()

	return nil
}

func (f *fakePersons) Gets() []uuid.UUID {
	f.lk.Lock()
	defer f.lk.Unlock()

	return append([]uuid.UUID(nil), f.gets...)
}

func (f *fakePersons) Saves() []uuid.UUID {
	f.lk.Lock()
	defer f.lk.Unlock()

	return append([]uuid.UUID(nil), f.saves...)
}

func (f *fakePersons) Stored(id uuid.UUID) *Person {
	f.lk.Lock()
	defer f.lk.Unlock()

	if person, ok := f.persons[id]; ok {
		return person.Clone()
	}

	return nil
}

func makeMember(roleTypeCode string) HouseholdMember {
	return HouseholdMember{
		ID:            uuid.New(),
		Type:          "person",
		FullName:      fake.Person().Name(),
		IsResponsible: true,
		DateOfBirth:   time.Date(1980, time.June, 15, 0, 0, 0, 0, time.UTC),
		RoleTypeCode:  roleTypeCode,
	}
}

func makeTenure(members ...HouseholdMember) *Tenure {
	end := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &Tenure{
		ID:               uuid.New(),
		PaymentReference: fake.Numerify("##########"),
		TenuredAsset: TenuredAsset{
			ID:                uuid.New(),
			FullAddress:       fake.Address().Address(),
			Uprn:              fake.Numerify("############"),
			PropertyReference: fake.Numerify("########"),
		},
		TenureType:       TenureType{Code: "SEC", Description: "Secure"},
		StartDate:        time.Date(2015, time.April, 1, 0, 0, 0, 0, time.UTC),
		EndDate:          &end,
		HouseholdMembers: members,
	}
}

func makePerson(id uuid.UUID, tenureIDs ...uuid.UUID) *Person {
	summaries := make([]TenureSummary, len(tenureIDs))
	for i, tenureID := range tenureIDs {
		summaries[i] = TenureSummary{
			TenureID:         tenureID,
			AssetFullAddress: "placeholder",
			PaymentReference: "placeholder",
			StartDate:        FormatDate(MinDate),
		}
	}

	return &Person{
		ID:              id,
		RoleTypes:       []RoleType{HouseholdMemberRole},
		TenureSummaries: summaries,
		VersionNumber:   3,
	}
}

func makeEnvelope(eventType EventType, entityID uuid.UUID, previous, current []HouseholdMember) *EventEnvelope {
	return &EventEnvelope{
		ID:            uuid.New(),
		EventType:     eventType,
		EntityID:      entityID,
		CorrelationID: uuid.New(),
		EventData: EventData{
			OldData: map[string]any{HouseholdMembersKey: previous},
			NewData: map[string]any{HouseholdMembersKey: current},
		},
	}
}
