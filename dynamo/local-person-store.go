package dynamo

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	log "github.com/sirupsen/logrus"
)

const localEndpoint = "http://localhost:8000"

// LocalDynamoStore connects to dynamodb-local, creating the table on first use. An empty table name selects
// "persons".
func LocalDynamoStore(ctx context.Context, endpoint LocalEndpoint, table PersonsTableName) (*DynamoPersonStore, error) {
	if table == "" {
		table = LocalPersonsTableName()
	}

	cfg, err := localConfig(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	client := Client(cfg)

	exists, err := tableExists(ctx, client, table.String())
	if err != nil {
		return nil, err
	}

	if !exists {
		if err := createTable(ctx, client, table.String()); err != nil {
			return nil, err
		}
	}

	return NewPersonStore(client, table), nil
}

// LocalEndpoint is the dynamodb-local url. Empty selects http://localhost:8000.
type LocalEndpoint string

func localConfig(ctx context.Context, endpoint LocalEndpoint) (aws.Config, error) {
	url := string(endpoint)
	if url == "" {
		url = localEndpoint
	}

	return config.LoadDefaultConfig(ctx,
		config.WithRegion("eu-west-2"),
		config.WithEndpointResolverWithOptions(aws.EndpointResolverWithOptionsFunc(
			func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: url}, nil
			})),
		config.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{
				AccessKeyID: "dummy", SecretAccessKey: "dummy", SessionToken: "dummy",
				Source: "Hard-coded credentials; values are irrelevant for local DynamoDB",
			},
		}))
}

func tableExists(ctx context.Context, client *dynamodb.Client, name string) (bool, error) {
	required := &dynamodb.DescribeTableInput{TableName: aws.String(name)}
	description, err := client.DescribeTable(ctx, required)
	if err != nil {
		var errorType *types.ResourceNotFoundException
		if errors.As(err, &errorType) {
			return false, nil
		}
		return false, err
	}

	if description.Table.TableStatus != types.TableStatusActive {
		return false, errors.New("persons table exists but is not active")
	}

	return true, nil
}

func createTable(ctx context.Context, client *dynamodb.Client, table string) error {
	log.WithField("table", table).Info("creating persons table")

	_, err := client.CreateTable(ctx, personsTableInput(table))
	if err != nil {
		return err
	}

	return waitForTable(ctx, client, table)
}

func personsTableInput(table string) *dynamodb.CreateTableInput {
	return &dynamodb.CreateTableInput{
		TableName: aws.String(table),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	}
}

func waitForTable(ctx context.Context, client *dynamodb.Client, name string) error {
	required := &dynamodb.DescribeTableInput{TableName: aws.String(name)}
	return dynamodb.NewTableExistsWaiter(client).Wait(ctx, required, 2*time.Minute)
}
