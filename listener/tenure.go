package listener

import (
	"time"

	"github.com/google/uuid"
)

type TenuredAsset struct {
	ID                uuid.UUID
	FullAddress       string
	Uprn              string
	PropertyReference string
}

type TenureType struct {
	Code        string
	Description string
}

// Tenure is the authoritative tenure record, read from the tenure service.
type Tenure struct {
	ID               uuid.UUID
	PaymentReference string
	TenuredAsset     TenuredAsset
	TenureType       TenureType
	StartDate        time.Time
	EndDate          *time.Time
	HouseholdMembers []HouseholdMember
}

// Account is the authoritative account record, read from the account service.
type Account struct {
	ID               uuid.UUID
	PaymentReference string
	TenureID         uuid.UUID
	StartDate        time.Time
	EndDate          *time.Time
}
