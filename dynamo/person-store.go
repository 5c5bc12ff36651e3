package dynamo

import (
	"context"
	"errors"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"

	"github.com/weegigs/person-listener-go/listener"
)

type PersonsTableName string

func (name PersonsTableName) String() string {
	return string(name)
}

type Clock func() time.Time

type PersonStoreOption func(*DynamoPersonStore)

func WithClock(clock Clock) PersonStoreOption {
	return func(store *DynamoPersonStore) {
		store.now = clock
	}
}

// DynamoPersonStore reads and writes person records in the persons table. Saves are conditional updates on
// versionNumber and only touch the attributes the listener owns.
type DynamoPersonStore struct {
	db    *dynamodb.Client
	table string
	now   Clock
}

func NewPersonStore(db *dynamodb.Client, table PersonsTableName, options ...PersonStoreOption) *DynamoPersonStore {
	store := &DynamoPersonStore{db: db, table: string(table), now: time.Now}
	for _, option := range options {
		option(store)
	}

	return store
}

func (ds *DynamoPersonStore) GetPerson(ctx context.Context, id uuid.UUID) (*listener.Person, error) {
	key, err := attributevalue.MarshalMap(personKey{ID: id.String()})
	if err != nil {
		return nil, err
	}

	names := make([]expression.NameBuilder, len(recordAttributes))
	for i, attribute := range recordAttributes {
		names[i] = expression.Name(attribute)
	}
	projection := expression.NamesList(names[0], names[1:]...)

	expr, err := expression.NewBuilder().WithProjection(projection).Build()
	if err != nil {
		return nil, err
	}

	out, err := ds.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:                aws.String(ds.table),
		Key:                      key,
		ConsistentRead:           aws.Bool(true),
		ExpressionAttributeNames: expr.Names(),
		ProjectionExpression:     expr.Projection(),
	})
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to load person %s", id)
	}

	if len(out.Item) == 0 {
		return nil, nil
	}

	var record personRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to decode person %s", id)
	}

	return record.person()
}

func (ds *DynamoPersonStore) SavePerson(ctx context.Context, person *listener.Person, expectedVersion int) error {
	if person == nil {
		return listener.InvalidArgument("person")
	}

	key, err := attributevalue.MarshalMap(personKey{ID: person.ID.String()})
	if err != nil {
		return err
	}

	version := expectedVersion + 1
	modified := ds.now().UTC()

	update := expression.
		Set(expression.Name("personTypes"), expression.Value(personTypesFrom(person.RoleTypes))).
		Set(expression.Name("tenures"), expression.Value(tenureRecordsFrom(person.TenureSummaries))).
		Set(expression.Name("versionNumber"), expression.Value(version)).
		Set(expression.Name("lastModified"), expression.Value(modified.Format(time.RFC3339Nano)))

	expr, err := expression.NewBuilder().
		WithUpdate(update).
		WithCondition(versionCondition(expectedVersion)).
		Build()
	if err != nil {
		return err
	}

	_, err = ds.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(ds.table),
		Key:                       key,
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ReturnValues:              types.ReturnValueNone,
	})
	if err != nil {
		if isVersionConflict(err) {
			return listener.VersionConflict
		}
		return pkgerrors.Wrapf(err, "failed to save person %s", person.ID)
	}

	person.VersionNumber = version
	person.LastModified = modified

	return nil
}

// versionCondition treats a person without a stored version, or with a NULL one, as version zero.
func versionCondition(expectedVersion int) expression.ConditionBuilder {
	current := expression.Name("versionNumber")
	if expectedVersion == 0 {
		return expression.AttributeNotExists(current).Or(
			expression.AttributeType(current, expression.Null),
			current.Equal(expression.Value(0)),
		)
	}

	return current.Equal(expression.Value(expectedVersion))
}

func isVersionConflict(err error) bool {
	var failed *types.ConditionalCheckFailedException
	if errors.As(err, &failed) {
		return true
	}

	var ae smithy.APIError
	return errors.As(err, &ae) && ae.ErrorCode() == "ConditionalCheckFailedException"
}
