package apis

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/weegigs/person-listener-go/listener"
)

const TenureApiName = "Tenure"

type TenureEndpoint Endpoint

// TenureApi reads tenures from the tenure information API.
type TenureApi struct {
	client *Client
}

func NewTenureApi(endpoint TenureEndpoint, options ...ClientOption) *TenureApi {
	return &TenureApi{client: NewClient(TenureApiName, Endpoint(endpoint), options...)}
}

func (a *TenureApi) GetTenure(ctx context.Context, id uuid.UUID, correlationID uuid.UUID) (*listener.Tenure, error) {
	var response tenureResponse
	found, err := a.client.getByID(ctx, "tenures", id, correlationID, &response)
	if err != nil || !found {
		return nil, err
	}

	return response.tenure(), nil
}

// upstreamTime accepts the zoned and unzoned timestamps the APIs emit.
type upstreamTime struct {
	time.Time
}

func (t *upstreamTime) UnmarshalJSON(data []byte) error {
	var value *string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	if value == nil || *value == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := listener.ParseUpstreamTime(*value)
	if err != nil {
		return err
	}

	t.Time = parsed
	return nil
}

func (t *upstreamTime) optional() *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}

	value := t.Time
	return &value
}

type householdMemberResponse struct {
	ID               uuid.UUID    `json:"id"`
	Type             string       `json:"type"`
	FullName         string       `json:"fullName"`
	IsResponsible    bool         `json:"isResponsible"`
	DateOfBirth      upstreamTime `json:"dateOfBirth"`
	PersonTenureType string       `json:"personTenureType"`
}

type tenureResponse struct {
	ID               uuid.UUID `json:"id"`
	PaymentReference string    `json:"paymentReference"`
	TenuredAsset     struct {
		ID                uuid.UUID `json:"id"`
		FullAddress       string    `json:"fullAddress"`
		Uprn              string    `json:"uprn"`
		PropertyReference string    `json:"propertyReference"`
	} `json:"tenuredAsset"`
	StartOfTenureDate upstreamTime  `json:"startOfTenureDate"`
	EndOfTenureDate   *upstreamTime `json:"endOfTenureDate"`
	TenureType        struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"tenureType"`
	HouseholdMembers []householdMemberResponse `json:"householdMembers"`
}

func (r *tenureResponse) tenure() *listener.Tenure {
	tenure := &listener.Tenure{
		ID:               r.ID,
		PaymentReference: r.PaymentReference,
		TenuredAsset: listener.TenuredAsset{
			ID:                r.TenuredAsset.ID,
			FullAddress:       r.TenuredAsset.FullAddress,
			Uprn:              r.TenuredAsset.Uprn,
			PropertyReference: r.TenuredAsset.PropertyReference,
		},
		TenureType: listener.TenureType{
			Code:        r.TenureType.Code,
			Description: r.TenureType.Description,
		},
		StartDate: r.StartOfTenureDate.Time,
		EndDate:   r.EndOfTenureDate.optional(),
	}

	if r.HouseholdMembers != nil {
		tenure.HouseholdMembers = make([]listener.HouseholdMember, len(r.HouseholdMembers))
		for i, m := range r.HouseholdMembers {
			tenure.HouseholdMembers[i] = listener.HouseholdMember{
				ID:            m.ID,
				Type:          m.Type,
				FullName:      m.FullName,
				IsResponsible: m.IsResponsible,
				DateOfBirth:   m.DateOfBirth.Time,
				RoleTypeCode:  m.PersonTenureType,
			}
		}
	}

	return tenure
}
