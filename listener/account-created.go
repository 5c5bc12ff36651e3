package listener

import (
	"context"

	"github.com/rs/zerolog"
)

// AccountCreated copies a new account's payment reference onto the tenure summary of every tenure member.
type AccountCreated struct {
	persons     PersonStore
	tenures     TenureLookup
	accounts    AccountLookup
	fanOutLimit int
}

func NewAccountCreated(persons PersonStore, tenures TenureLookup, accounts AccountLookup, fanOutLimit int) *AccountCreated {
	return &AccountCreated{persons: persons, tenures: tenures, accounts: accounts, fanOutLimit: fanOutLimit}
}

func (uc *AccountCreated) ProcessMessage(ctx context.Context, envelope *EventEnvelope) (err error) {
	if envelope == nil {
		return InvalidArgument("envelope")
	}

	ctx, span := tracer().Start(ctx, "account created")
	defer span.End()
	defer func() { recordError(span, err) }()

	account, err := uc.accounts.GetAccount(ctx, envelope.EntityID, envelope.CorrelationID)
	if err != nil {
		return err
	}
	if account == nil {
		return NotFound(AccountEntity, envelope.EntityID)
	}

	tenure, err := uc.tenures.GetTenure(ctx, account.TenureID, envelope.CorrelationID)
	if err != nil {
		return err
	}
	if tenure == nil {
		return NotFound(TenureEntity, account.TenureID)
	}

	log := zerolog.Ctx(ctx)
	if len(tenure.HouseholdMembers) == 0 {
		log.Info().Str("tenureId", tenure.ID.String()).Msg("tenure has no household members")
		return nil
	}

	err = updateMembers(ctx, uc.persons, tenure, uc.fanOutLimit, func(summary *TenureSummary) {
		summary.ApplyAccount(account)
	})
	if err != nil {
		return err
	}

	log.Info().
		Str("accountId", account.ID.String()).
		Str("tenureId", tenure.ID.String()).
		Msg("account payment reference updated on persons")
	return nil
}
