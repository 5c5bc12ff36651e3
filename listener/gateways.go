package listener

import (
	"context"

	"github.com/google/uuid"
)

// TenureLookup reads tenures from the tenure service. A missing tenure is reported as (nil, nil).
type TenureLookup interface {
	GetTenure(ctx context.Context, id uuid.UUID, correlationID uuid.UUID) (*Tenure, error)
}

// AccountLookup reads accounts from the account service. A missing account is reported as (nil, nil).
type AccountLookup interface {
	GetAccount(ctx context.Context, id uuid.UUID, correlationID uuid.UUID) (*Account, error)
}

// PersonStore loads and saves person records.
//
// Save succeeds only when the stored version equals expectedVersion. On success the store sets the person's
// VersionNumber to expectedVersion+1 and LastModified to the save time. A mismatch returns VersionConflict.
type PersonStore interface {
	GetPerson(ctx context.Context, id uuid.UUID) (*Person, error)
	SavePerson(ctx context.Context, person *Person, expectedVersion int) error
}
