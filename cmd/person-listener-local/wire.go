//go:build wireinject
// +build wireinject

package main

import (
	"context"
	"net/http"

	"github.com/google/wire"

	"github.com/weegigs/person-listener-go/support"
)

func local(ctx context.Context, settings support.Settings) (http.Handler, func(), error) {
	panic(wire.Build(Local))
}
