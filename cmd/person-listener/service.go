package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/sdk/trace"

	"github.com/weegigs/person-listener-go/connectors/plsqs"
	"github.com/weegigs/person-listener-go/listener"
	"github.com/weegigs/person-listener-go/support"
)

func NewSQSHandler(l *listener.Listener, log *zerolog.Logger, provider *trace.TracerProvider) plsqs.Handler {
	return plsqs.NewHandler(l, plsqs.Logger(log), plsqs.TracerProvider(provider))
}

func TracerProvider(ctx context.Context, settings support.Settings) (*trace.TracerProvider, func(), error) {
	return support.TracerProvider(ctx, settings)
}

var Live = wire.NewSet(
	support.LoadSettings,
	support.NewLogger,
	TracerProvider,
	support.Apis,
	support.ListenerDependencies,
	listener.NewPersonListener,
	support.Persons,
	NewSQSHandler,
)
