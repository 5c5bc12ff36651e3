package listener

import (
	"context"

	"github.com/rs/zerolog"
)

// TenureUpdated refreshes the tenure summary held by every member of the tenure.
type TenureUpdated struct {
	persons     PersonStore
	tenures     TenureLookup
	fanOutLimit int
}

func NewTenureUpdated(persons PersonStore, tenures TenureLookup, fanOutLimit int) *TenureUpdated {
	return &TenureUpdated{persons: persons, tenures: tenures, fanOutLimit: fanOutLimit}
}

func (uc *TenureUpdated) ProcessMessage(ctx context.Context, envelope *EventEnvelope) (err error) {
	if envelope == nil {
		return InvalidArgument("envelope")
	}

	ctx, span := tracer().Start(ctx, "tenure updated")
	defer span.End()
	defer func() { recordError(span, err) }()

	tenure, err := uc.tenures.GetTenure(ctx, envelope.EntityID, envelope.CorrelationID)
	if err != nil {
		return err
	}
	if tenure == nil {
		return NotFound(TenureEntity, envelope.EntityID)
	}

	log := zerolog.Ctx(ctx)
	if len(tenure.HouseholdMembers) == 0 {
		log.Info().Str("tenureId", tenure.ID.String()).Msg("tenure has no household members")
		return nil
	}

	err = updateMembers(ctx, uc.persons, tenure, uc.fanOutLimit, func(summary *TenureSummary) {
		summary.ApplyTenure(tenure)
	})
	if err != nil {
		return err
	}

	log.Info().Str("tenureId", tenure.ID.String()).Int("members", len(tenure.HouseholdMembers)).Msg("tenure updated on persons")
	return nil
}
