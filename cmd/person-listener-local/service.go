package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"github.com/weegigs/person-listener-go/connectors/plhttp"
	"github.com/weegigs/person-listener-go/dynamo"
	"github.com/weegigs/person-listener-go/listener"
	"github.com/weegigs/person-listener-go/memory"
	"github.com/weegigs/person-listener-go/support"
)

// PersonStore selects the in-memory store or DynamoDB Local from PERSON_STORE.
func PersonStore(ctx context.Context, settings support.Settings) (listener.PersonStore, error) {
	switch settings.PersonStore {
	case support.PersonStoreMemory:
		return memory.NewPersonStore(), nil
	case support.PersonStoreDynamo:
		return dynamo.LocalDynamoStore(ctx, dynamo.LocalEndpoint(settings.DynamoEndpoint), dynamo.PersonsTableName(settings.PersonsTableName))
	default:
		return nil, fmt.Errorf("unknown person store %q", settings.PersonStore)
	}
}

func NewHTTPHandler(l *listener.Listener, persons listener.PersonStore, log *zerolog.Logger) http.Handler {
	return withLogging(plhttp.NewHandler(l, persons, plhttp.Logger(log)), log)
}

var Local = wire.NewSet(
	support.NewLogger,
	support.Apis,
	support.ListenerDependencies,
	listener.NewPersonListener,
	PersonStore,
	NewHTTPHandler,
)
