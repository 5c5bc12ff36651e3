package dynamo

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"

	"github.com/google/wire"
	"github.com/weegigs/person-listener-go/listener"
)

// Live builds the DynamoDB person store. Callers provide the aws.Config and PersonsTableName.
var Live = wire.NewSet(
	Client,
	LivePersonStoreOptions,
	NewPersonStore,
	wire.Bind(new(listener.PersonStore), new(*DynamoPersonStore)),
)

func LivePersonStoreOptions() []PersonStoreOption {
	return nil
}

func LocalPersonsTableName() PersonsTableName {
	return PersonsTableName("persons")
}

func Client(cfg aws.Config) *dynamodb.Client {
	otelaws.AppendMiddlewares(&cfg.APIOptions)
	return dynamodb.NewFromConfig(cfg)
}
