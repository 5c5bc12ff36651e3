package apis

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/weegigs/person-listener-go/listener"
)

const AccountApiName = "Account"

type AccountEndpoint Endpoint

// AccountApi reads accounts from the account API.
type AccountApi struct {
	client *Client
}

func NewAccountApi(endpoint AccountEndpoint, options ...ClientOption) *AccountApi {
	return &AccountApi{client: NewClient(AccountApiName, Endpoint(endpoint), options...)}
}

type accountResponse struct {
	ID               uuid.UUID     `json:"id"`
	PaymentReference string        `json:"paymentReference"`
	StartDate        upstreamTime  `json:"startDate"`
	EndDate          *upstreamTime `json:"endDate"`
	Tenure           *struct {
		TenureID string `json:"tenureId"`
	} `json:"tenure"`
}

func (a *AccountApi) GetAccount(ctx context.Context, id uuid.UUID, correlationID uuid.UUID) (*listener.Account, error) {
	var response accountResponse
	found, err := a.client.getByID(ctx, "accounts", id, correlationID, &response)
	if err != nil || !found {
		return nil, err
	}

	if response.Tenure == nil {
		return nil, errors.Errorf("account %s has no tenure", id)
	}

	tenureID, err := uuid.Parse(response.Tenure.TenureID)
	if err != nil {
		return nil, errors.Wrapf(err, "account %s has an invalid tenure id", id)
	}

	return &listener.Account{
		ID:               response.ID,
		PaymentReference: response.PaymentReference,
		TenureID:         tenureID,
		StartDate:        response.StartDate.Time,
		EndDate:          response.EndDate.optional(),
	}, nil
}
