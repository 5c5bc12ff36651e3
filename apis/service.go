package apis

import (
	"github.com/google/wire"

	"github.com/weegigs/person-listener-go/listener"
)

var Live = wire.NewSet(
	NewTenureApi,
	NewAccountApi,
	wire.Bind(new(listener.TenureLookup), new(*TenureApi)),
	wire.Bind(new(listener.AccountLookup), new(*AccountApi)),
)
