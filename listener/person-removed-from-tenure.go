package listener

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// PersonRemovedFromTenure drops a tenure from the person who left it and recomputes their role types from the
// tenures they still hold.
type PersonRemovedFromTenure struct {
	persons     PersonStore
	tenures     TenureLookup
	fanOutLimit int
}

func NewPersonRemovedFromTenure(persons PersonStore, tenures TenureLookup, fanOutLimit int) *PersonRemovedFromTenure {
	return &PersonRemovedFromTenure{persons: persons, tenures: tenures, fanOutLimit: fanOutLimit}
}

func (uc *PersonRemovedFromTenure) ProcessMessage(ctx context.Context, envelope *EventEnvelope) (err error) {
	if envelope == nil {
		return InvalidArgument("envelope")
	}

	ctx, span := tracer().Start(ctx, "person removed from tenure")
	defer span.End()
	defer func() { recordError(span, err) }()

	log := zerolog.Ctx(ctx)

	removed, err := RemovedMember(envelope.EventData)
	if err != nil {
		return err
	}
	if removed == nil {
		return HouseholdMembersNotChanged(envelope.EntityID, envelope.CorrelationID)
	}

	person, err := uc.persons.GetPerson(ctx, removed.ID)
	if err != nil {
		return err
	}
	if person == nil {
		return NotFound(PersonEntity, removed.ID)
	}

	if !person.RemoveTenure(envelope.EntityID) {
		log.Debug().Str("personId", person.ID.String()).Msg("person did not hold the tenure")
	}

	roles, err := uc.remainingRoles(ctx, person, envelope.CorrelationID)
	if err != nil {
		return err
	}
	person.SetRoleTypes(roles)

	if err := uc.persons.SavePerson(ctx, person, person.VersionNumber); err != nil {
		return err
	}

	log.Info().Str("personId", person.ID.String()).Str("tenureId", envelope.EntityID.String()).Msg("person removed from tenure")
	return nil
}

func (uc *PersonRemovedFromTenure) remainingRoles(ctx context.Context, person *Person, correlationID uuid.UUID) ([]RoleType, error) {
	ids := make([]uuid.UUID, len(person.TenureSummaries))
	for i, summary := range person.TenureSummaries {
		ids[i] = summary.TenureID
	}

	log := zerolog.Ctx(ctx)
	lookups, err := fanOut(ctx, uc.fanOutLimit, ids, func(ctx context.Context, id uuid.UUID) (*RoleType, error) {
		tenure, err := uc.tenures.GetTenure(ctx, id, correlationID)
		if err != nil {
			return nil, err
		}
		if tenure == nil {
			return nil, NotFound(TenureEntity, id)
		}

		member, ok := findMember(tenure.HouseholdMembers, person.ID)
		if !ok {
			log.Warn().Str("personId", person.ID.String()).Str("tenureId", id.String()).Msg("tenure does not list person")
			return nil, nil
		}

		rt := RoleTypeFor(tenure.TenureType, member)
		return &rt, nil
	})
	if err != nil {
		return nil, err
	}

	roles := make([]RoleType, 0, len(lookups))
	for _, rt := range lookups {
		if rt != nil {
			roles = append(roles, *rt)
		}
	}

	return roles, nil
}
