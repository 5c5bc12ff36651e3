package listener

import (
	"context"

	"github.com/rs/zerolog"
)

// PersonAddedToTenure copies a tenure onto the person who joined it.
type PersonAddedToTenure struct {
	persons PersonStore
	tenures TenureLookup
}

func NewPersonAddedToTenure(persons PersonStore, tenures TenureLookup) *PersonAddedToTenure {
	return &PersonAddedToTenure{persons: persons, tenures: tenures}
}

func (uc *PersonAddedToTenure) ProcessMessage(ctx context.Context, envelope *EventEnvelope) (err error) {
	if envelope == nil {
		return InvalidArgument("envelope")
	}

	ctx, span := tracer().Start(ctx, "person added to tenure")
	defer span.End()
	defer func() { recordError(span, err) }()

	log := zerolog.Ctx(ctx)

	tenure, err := uc.tenures.GetTenure(ctx, envelope.EntityID, envelope.CorrelationID)
	if err != nil {
		return err
	}
	if tenure == nil {
		return NotFound(TenureEntity, envelope.EntityID)
	}

	added, err := AddedMember(envelope.EventData)
	if err != nil {
		return err
	}
	if added == nil {
		return HouseholdMembersNotChanged(envelope.EntityID, envelope.CorrelationID)
	}

	person, err := uc.persons.GetPerson(ctx, added.ID)
	if err != nil {
		return err
	}
	if person == nil {
		return NotFound(PersonEntity, added.ID)
	}

	member := *added
	if current, ok := findMember(tenure.HouseholdMembers, added.ID); ok {
		member = current
	}

	person.EnsureTenure(tenure.ID).ApplyTenure(tenure)
	person.AddRoleType(RoleTypeFor(tenure.TenureType, member))

	log.Debug().Str("personId", person.ID.String()).Int("version", person.VersionNumber).Msg("saving person")
	if err := uc.persons.SavePerson(ctx, person, person.VersionNumber); err != nil {
		return err
	}

	log.Info().Str("personId", person.ID.String()).Str("tenureId", tenure.ID.String()).Msg("person added to tenure")
	return nil
}
