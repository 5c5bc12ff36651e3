package dynamo

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/weegigs/person-listener-go/listener"
)

type personKey struct {
	ID string `dynamodbav:"id"`
}

type tenureRecord struct {
	ID                string  `dynamodbav:"id"`
	AssetFullAddress  string  `dynamodbav:"assetFullAddress"`
	AssetID           string  `dynamodbav:"assetId"`
	PaymentReference  string  `dynamodbav:"paymentReference"`
	PropertyReference string  `dynamodbav:"propertyReference"`
	StartDate         string  `dynamodbav:"startDate"`
	EndDate           *string `dynamodbav:"endDate"`
	Type              string  `dynamodbav:"type"`
	Uprn              string  `dynamodbav:"uprn"`
}

// personRecord holds only the attributes this service owns. Everything else on the item is left untouched.
type personRecord struct {
	ID            string         `dynamodbav:"id"`
	PersonTypes   []string       `dynamodbav:"personTypes"`
	Tenures       []tenureRecord `dynamodbav:"tenures"`
	VersionNumber int            `dynamodbav:"versionNumber"`
	LastModified  string         `dynamodbav:"lastModified"`
}

var recordAttributes = []string{"id", "personTypes", "tenures", "versionNumber", "lastModified"}

func tenureRecordsFrom(summaries []listener.TenureSummary) []tenureRecord {
	if summaries == nil {
		return nil
	}

	records := make([]tenureRecord, len(summaries))
	for i, s := range summaries {
		records[i] = tenureRecord{
			ID:                s.TenureID.String(),
			AssetFullAddress:  s.AssetFullAddress,
			AssetID:           s.AssetID,
			PaymentReference:  s.PaymentReference,
			PropertyReference: s.PropertyReference,
			StartDate:         s.StartDate,
			EndDate:           s.EndDate,
			Type:              s.RoleTypeDescription,
			Uprn:              s.Uprn,
		}
	}

	return records
}

func personTypesFrom(roles []listener.RoleType) []string {
	if roles == nil {
		return nil
	}

	types := make([]string, len(roles))
	for i, rt := range roles {
		types[i] = rt.String()
	}

	return types
}

func (r *personRecord) person() (*listener.Person, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return nil, errors.Wrapf(err, "person record has invalid id %q", r.ID)
	}

	person := &listener.Person{ID: id, VersionNumber: r.VersionNumber}

	if r.LastModified != "" {
		person.LastModified, err = time.Parse(time.RFC3339Nano, r.LastModified)
		if err != nil {
			return nil, errors.Wrapf(err, "person %s has invalid lastModified", r.ID)
		}
	}

	if r.PersonTypes != nil {
		person.RoleTypes = make([]listener.RoleType, len(r.PersonTypes))
		for i, t := range r.PersonTypes {
			person.RoleTypes[i] = listener.RoleType(t)
		}
	}

	if r.Tenures != nil {
		person.TenureSummaries = make([]listener.TenureSummary, len(r.Tenures))
		for i, t := range r.Tenures {
			tenureID, err := uuid.Parse(t.ID)
			if err != nil {
				return nil, errors.Wrapf(err, "person %s has a tenure with invalid id %q", r.ID, t.ID)
			}

			person.TenureSummaries[i] = listener.TenureSummary{
				TenureID:            tenureID,
				AssetFullAddress:    t.AssetFullAddress,
				AssetID:             t.AssetID,
				PaymentReference:    t.PaymentReference,
				PropertyReference:   t.PropertyReference,
				StartDate:           t.StartDate,
				EndDate:             t.EndDate,
				RoleTypeDescription: t.Type,
				Uprn:                t.Uprn,
			}
		}
	}

	return person, nil
}
