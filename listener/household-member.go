package listener

import (
	"time"

	"github.com/google/uuid"
)

// HouseholdMember is a snapshot of a person's standing within a tenure.
type HouseholdMember struct {
	ID            uuid.UUID `json:"id" mapstructure:"id"`
	Type          string    `json:"type" mapstructure:"type"`
	FullName      string    `json:"fullName" mapstructure:"fullName"`
	IsResponsible bool      `json:"isResponsible" mapstructure:"isResponsible"`
	DateOfBirth   time.Time `json:"dateOfBirth" mapstructure:"dateOfBirth"`
	RoleTypeCode  string    `json:"personTenureType" mapstructure:"personTenureType"`
}

// Equal compares every field. Strings are compared case-sensitively and dates by instant.
func (hm HouseholdMember) Equal(other HouseholdMember) bool {
	return hm.ID == other.ID &&
		hm.Type == other.Type &&
		hm.FullName == other.FullName &&
		hm.IsResponsible == other.IsResponsible &&
		hm.DateOfBirth.Equal(other.DateOfBirth) &&
		hm.RoleTypeCode == other.RoleTypeCode
}

func findMember(members []HouseholdMember, id uuid.UUID) (HouseholdMember, bool) {
	for _, member := range members {
		if member.ID == id {
			return member, true
		}
	}

	return HouseholdMember{}, false
}
