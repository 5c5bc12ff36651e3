//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/weegigs/person-listener-go/connectors/plsqs"
)

func live(ctx context.Context) (plsqs.Handler, func(), error) {
	panic(wire.Build(Live))
}
