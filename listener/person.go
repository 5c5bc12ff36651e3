package listener

import (
	"time"

	"github.com/google/uuid"
)

// TenureSummary is the copy of a tenure's details held on a person record.
type TenureSummary struct {
	TenureID            uuid.UUID `json:"id"`
	AssetFullAddress    string    `json:"assetFullAddress"`
	AssetID             string    `json:"assetId"`
	PaymentReference    string    `json:"paymentReference"`
	PropertyReference   string    `json:"propertyReference"`
	StartDate           string    `json:"startDate"`
	EndDate             *string   `json:"endDate"`
	RoleTypeDescription string    `json:"type"`
	Uprn                string    `json:"uprn"`
}

// Person holds the parts of a person record this service reconciles.
type Person struct {
	ID              uuid.UUID       `json:"id"`
	RoleTypes       []RoleType      `json:"personTypes"`
	TenureSummaries []TenureSummary `json:"tenures"`
	VersionNumber   int             `json:"versionNumber"`
	LastModified    time.Time       `json:"lastModified"`
}

// Tenure returns the summary for the tenure, or nil when the person is not party to it.
func (p *Person) Tenure(tenureID uuid.UUID) *TenureSummary {
	for i := range p.TenureSummaries {
		if p.TenureSummaries[i].TenureID == tenureID {
			return &p.TenureSummaries[i]
		}
	}

	return nil
}

// EnsureTenure returns the summary for the tenure, appending an empty one when it is missing.
func (p *Person) EnsureTenure(tenureID uuid.UUID) *TenureSummary {
	if summary := p.Tenure(tenureID); summary != nil {
		return summary
	}

	p.TenureSummaries = append(p.TenureSummaries, TenureSummary{TenureID: tenureID})
	return &p.TenureSummaries[len(p.TenureSummaries)-1]
}

// RemoveTenure drops the summary for the tenure and reports whether one was present.
func (p *Person) RemoveTenure(tenureID uuid.UUID) bool {
	for i := range p.TenureSummaries {
		if p.TenureSummaries[i].TenureID == tenureID {
			p.TenureSummaries = append(p.TenureSummaries[:i], p.TenureSummaries[i+1:]...)
			return true
		}
	}

	return false
}

func (p *Person) HasRoleType(rt RoleType) bool {
	for _, existing := range p.RoleTypes {
		if existing == rt {
			return true
		}
	}

	return false
}

func (p *Person) AddRoleType(rt RoleType) {
	if !p.HasRoleType(rt) {
		p.RoleTypes = append(p.RoleTypes, rt)
	}
}

// SetRoleTypes replaces the role types, dropping duplicates while keeping first occurrences in order.
func (p *Person) SetRoleTypes(roles []RoleType) {
	p.RoleTypes = make([]RoleType, 0, len(roles))
	for _, rt := range roles {
		p.AddRoleType(rt)
	}
}

// ApplyTenure overwrites the summary with the tenure's current values.
func (s *TenureSummary) ApplyTenure(tenure *Tenure) {
	s.AssetFullAddress = tenure.TenuredAsset.FullAddress
	s.AssetID = tenure.TenuredAsset.ID.String()
	s.Uprn = tenure.TenuredAsset.Uprn
	s.PropertyReference = tenure.TenuredAsset.PropertyReference
	s.PaymentReference = tenure.PaymentReference
	s.StartDate = FormatDate(tenure.StartDate)
	s.EndDate = FormatOptionalDate(tenure.EndDate)
	s.RoleTypeDescription = tenure.TenureType.Description
}

func (s *TenureSummary) ApplyAccount(account *Account) {
	s.PaymentReference = account.PaymentReference
}

// Clone returns a deep copy so stores never share slices with callers.
func (p *Person) Clone() *Person {
	clone := *p
	if p.RoleTypes != nil {
		clone.RoleTypes = make([]RoleType, len(p.RoleTypes))
		copy(clone.RoleTypes, p.RoleTypes)
	}

	if p.TenureSummaries == nil {
		return &clone
	}

	clone.TenureSummaries = make([]TenureSummary, len(p.TenureSummaries))
	for i, summary := range p.TenureSummaries {
		clone.TenureSummaries[i] = summary
		if summary.EndDate != nil {
			end := *summary.EndDate
			clone.TenureSummaries[i].EndDate = &end
		}
	}

	return &clone
}
