package support

import (
	"errors"

	"github.com/google/wire"

	"github.com/weegigs/person-listener-go/apis"
	"github.com/weegigs/person-listener-go/dynamo"
	"github.com/weegigs/person-listener-go/listener"
)

var Persons = wire.NewSet(
	AWSConfig,
	PersonsTableName,
	dynamo.Live,
)

var Apis = wire.NewSet(
	TenureEndpoint,
	AccountEndpoint,
	ApiClientOptions,
	apis.Live,
)

func PersonsTableName(settings Settings) (dynamo.PersonsTableName, error) {
	if settings.PersonsTableName == "" {
		return "", errors.New("DYNAMODB_PERSONS_TABLE_NAME is not set")
	}

	return dynamo.PersonsTableName(settings.PersonsTableName), nil
}

func TenureEndpoint(settings Settings) apis.TenureEndpoint {
	return apis.TenureEndpoint{URL: settings.TenureApiURL, Token: settings.TenureApiToken}
}

func AccountEndpoint(settings Settings) apis.AccountEndpoint {
	return apis.AccountEndpoint{URL: settings.AccountApiURL, Token: settings.AccountApiToken}
}

func ApiClientOptions(settings Settings) []apis.ClientOption {
	return []apis.ClientOption{
		apis.WithTimeout(settings.ApiTimeout),
		apis.WithRetryAttempts(settings.ApiRetryAttempts),
	}
}

func ListenerDependencies(settings Settings, persons listener.PersonStore, tenures listener.TenureLookup, accounts listener.AccountLookup) listener.Dependencies {
	return listener.Dependencies{
		Persons:     persons,
		Tenures:     tenures,
		Accounts:    accounts,
		FanOutLimit: settings.FanOutLimit,
	}
}
