package listener

import (
	"context"

	"github.com/rs/zerolog"
)

type summaryUpdate func(summary *TenureSummary)

// updateMembers loads every member of the tenure and applies update to the member's summary for it. Loads run
// concurrently and must all succeed before anything is saved. Saves are then issued concurrently and each one
// commits independently, so a failed save leaves the others in place.
func updateMembers(ctx context.Context, persons PersonStore, tenure *Tenure, limit int, update summaryUpdate) error {
	updated, err := fanOut(ctx, limit, tenure.HouseholdMembers, func(ctx context.Context, member HouseholdMember) (*Person, error) {
		person, err := persons.GetPerson(ctx, member.ID)
		if err != nil {
			return nil, err
		}
		if person == nil {
			return nil, NotFound(PersonEntity, member.ID)
		}

		summary := person.Tenure(tenure.ID)
		if summary == nil {
			return nil, PersonMissingTenure(person.ID, tenure.ID)
		}

		update(summary)
		return person, nil
	})
	if err != nil {
		return err
	}

	_, err = fanOut(ctx, limit, updated, func(ctx context.Context, person *Person) (struct{}, error) {
		return struct{}{}, persons.SavePerson(ctx, person, person.VersionNumber)
	})
	if err != nil {
		return err
	}

	zerolog.Ctx(ctx).Debug().Int("persons", len(updated)).Str("tenureId", tenure.ID.String()).Msg("saved tenure members")
	return nil
}
