package plsqs

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jaswdr/faker"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weegigs/person-listener-go/listener"
	"github.com/weegigs/person-listener-go/memory"
)

var fake = faker.New()

type tenures map[uuid.UUID]*listener.Tenure

func (t tenures) GetTenure(_ context.Context, id uuid.UUID, _ uuid.UUID) (*listener.Tenure, error) {
	return t[id], nil
}

type noAccounts struct{}

func (noAccounts) GetAccount(context.Context, uuid.UUID, uuid.UUID) (*listener.Account, error) {
	return nil, nil
}

func body(t *testing.T, envelope listener.EventEnvelope) string {
	encoded, err := json.Marshal(envelope)
	require.NoError(t, err)
	return string(encoded)
}

func TestHandler(t *testing.T) {
	ctx := context.Background()

	member := listener.HouseholdMember{
		ID:            uuid.New(),
		Type:          "Person",
		FullName:      fake.Person().Name(),
		IsResponsible: true,
		DateOfBirth:   time.Date(1975, time.February, 3, 0, 0, 0, 0, time.UTC),
		RoleTypeCode:  "Tenant",
	}
	tenure := &listener.Tenure{
		ID:               uuid.New(),
		PaymentReference: fake.Numerify("##########"),
		TenuredAsset:     listener.TenuredAsset{ID: uuid.New(), FullAddress: fake.Address().Address()},
		TenureType:       listener.TenureType{Code: "SEC", Description: "Secure"},
		StartDate:        time.Date(2015, time.April, 1, 0, 0, 0, 0, time.UTC),
		HouseholdMembers: []listener.HouseholdMember{member},
	}

	store := memory.NewPersonStore()
	require.NoError(t, store.SavePerson(ctx, &listener.Person{
		ID:              member.ID,
		TenureSummaries: []listener.TenureSummary{{TenureID: tenure.ID}},
	}, 0))

	l, err := listener.NewPersonListener(listener.Dependencies{
		Persons:     store,
		Tenures:     tenures{tenure.ID: tenure},
		Accounts:    noAccounts{},
		FanOutLimit: listener.DefaultFanOutLimit,
	})
	require.NoError(t, err)

	nop := zerolog.Nop()
	handler := NewHandler(l, Logger(&nop))

	added := listener.EventEnvelope{
		ID:            uuid.New(),
		EventType:     listener.PersonAddedToTenureEvent,
		SourceDomain:  "Tenure",
		SourceSystem:  "TenureAPI",
		Version:       "v1",
		CorrelationID: uuid.New(),
		DateTime:      "2022-01-05T10:00:00Z",
		User:          &listener.User{Name: "Tester", Email: "tester@example.test"},
		EntityID:      tenure.ID,
		EventData: listener.EventData{
			OldData: map[string]any{listener.HouseholdMembersKey: []listener.HouseholdMember{}},
			NewData: map[string]any{listener.HouseholdMembersKey: []listener.HouseholdMember{member}},
		},
	}

	t.Run("processes a raw message", func(t *testing.T) {
		response, err := handler(ctx, events.SQSEvent{Records: []events.SQSMessage{
			{MessageId: "raw", Body: body(t, added)},
		}})
		require.NoError(t, err)
		assert.Empty(t, response.BatchItemFailures)

		person, err := store.GetPerson(ctx, member.ID)
		require.NoError(t, err)
		require.NotNil(t, person.Tenure(tenure.ID))
		assert.Equal(t, []listener.RoleType{listener.Tenant}, person.RoleTypes)
	})

	t.Run("unwraps sns notifications", func(t *testing.T) {
		updated := added
		updated.EventType = listener.TenureUpdatedEvent

		notification, err := json.Marshal(map[string]string{"Type": "Notification", "Message": body(t, updated)})
		require.NoError(t, err)

		response, err := handler(ctx, events.SQSEvent{Records: []events.SQSMessage{
			{MessageId: "sns", Body: string(notification)},
		}})
		require.NoError(t, err)
		assert.Empty(t, response.BatchItemFailures)
	})

	t.Run("reports only the failed records", func(t *testing.T) {
		missing := added
		missing.EntityID = uuid.New()

		ignored := added
		ignored.EventType = listener.TenureCreatedEvent

		unknown := added
		unknown.EventType = "ContactDetailAddedEvent"

		response, err := handler(ctx, events.SQSEvent{Records: []events.SQSMessage{
			{MessageId: "missing-tenure", Body: body(t, missing)},
			{MessageId: "ignored", Body: body(t, ignored)},
			{MessageId: "garbage", Body: "{not json"},
			{MessageId: "unknown", Body: body(t, unknown)},
		}})
		require.NoError(t, err)

		var failed []string
		for _, failure := range response.BatchItemFailures {
			failed = append(failed, failure.ItemIdentifier)
		}
		assert.Equal(t, []string{"missing-tenure", "garbage", "unknown"}, failed)
	})
}
