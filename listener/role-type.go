package listener

import (
	"strings"

	"github.com/iancoleman/strcase"
)

type RoleType string

func (rt RoleType) String() string {
	return string(rt)
}

const (
	Tenant              = RoleType("Tenant")
	HouseholdMemberRole = RoleType("HouseholdMember")
	Leaseholder         = RoleType("Leaseholder")
	Freeholder          = RoleType("Freeholder")
	Occupant            = RoleType("Occupant")
)

var roleTypes = map[string]RoleType{
	Tenant.String():              Tenant,
	HouseholdMemberRole.String(): HouseholdMemberRole,
	Leaseholder.String():         Leaseholder,
	Freeholder.String():          Freeholder,
	Occupant.String():            Occupant,
}

var (
	freeholdCodes  = map[string]bool{"FRE": true, "FRS": true}
	leaseholdCodes = map[string]bool{"LEA": true, "LHS": true, "SHO": true, "SPS": true}
)

// ParseRoleType accepts role codes regardless of case or separators, so "household_member",
// "household-member" and "HouseholdMember" all resolve to HouseholdMemberRole.
func ParseRoleType(code string) (RoleType, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}

	if rt, ok := roleTypes[code]; ok {
		return rt, true
	}

	if rt, ok := roleTypes[strcase.ToCamel(code)]; ok {
		return rt, true
	}

	// upper case codes such as "TENANT"
	rt, ok := roleTypes[strcase.ToCamel(strings.ToLower(code))]
	return rt, ok
}

// RoleTypeFor derives the role a household member holds on a tenure. The member's own role code wins when it
// names a known role; otherwise the role follows from the tenure type and whether the member is responsible.
func RoleTypeFor(tenureType TenureType, member HouseholdMember) RoleType {
	if rt, ok := ParseRoleType(member.RoleTypeCode); ok {
		return rt
	}

	code := strings.ToUpper(strings.TrimSpace(tenureType.Code))
	owned := freeholdCodes[code] || leaseholdCodes[code]

	if !member.IsResponsible {
		if owned {
			return Occupant
		}
		return HouseholdMemberRole
	}

	switch {
	case freeholdCodes[code]:
		return Freeholder
	case leaseholdCodes[code]:
		return Leaseholder
	default:
		return Tenant
	}
}
