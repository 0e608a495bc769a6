package repository

import (
	"context"
	"fmt"
	"strconv"

	"propserv/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultCountersTableName = "counters"

// CounterDynamoRepository allocates year-scoped invoice sequence numbers.
//
// Table requirements:
//   - PK: id (string), one row per counter, e.g. "invoice_number#2026"
//
// A single UpdateItem with ADD is atomic in DynamoDB, so concurrent
// conversions each receive a distinct sequence value. Numbers abandoned by
// a failed conversion leave gaps; uniqueness is the guarantee, not
// contiguity.

type CounterDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICounterRepository = (*CounterDynamoRepository)(nil)

func NewCounterDynamoRepository(ddb *dynamodb.Client) *CounterDynamoRepository {
	return &CounterDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("COUNTERS_TABLE", defaultCountersTableName),
	}
}

func (r *CounterDynamoRepository) NextInvoiceNumber(ctx context.Context, year int) (int64, error) {
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: fmt.Sprintf("invoice_number#%d", year)},
		},
		UpdateExpression: aws.String("ADD #seq :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": &types.AttributeValueMemberN{Value: "1"},
		},
		ExpressionAttributeNames: map[string]string{
			"#seq": "seq",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		return 0, err
	}

	attr, ok := out.Attributes["seq"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("counter %d returned no seq attribute", year)
	}
	return strconv.ParseInt(attr.Value, 10, 64)
}
