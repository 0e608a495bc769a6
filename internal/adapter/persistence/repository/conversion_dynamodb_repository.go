package repository

import (
	"context"
	"errors"

	"propserv/internal/domain/entities"
	"propserv/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// ConversionDynamoRepository commits estimate conversions with
// TransactWriteItems: the new work order/invoice Put and the estimate
// rewrite land together or not at all.
//
// The estimate write carries a condition on the PERSISTED document — it
// must still be approved with the cross-reference unset — so two racing
// conversions cannot both succeed even when both read the same snapshot.

type ConversionDynamoRepository struct {
	ddb             *dynamodb.Client
	estimatesTable  string
	workOrdersTable string
	invoicesTable   string
}

var _ interfaces.IConversionRepository = (*ConversionDynamoRepository)(nil)

func NewConversionDynamoRepository(ddb *dynamodb.Client) *ConversionDynamoRepository {
	return &ConversionDynamoRepository{
		ddb:             ddb,
		estimatesTable:  getenvDefault("ESTIMATES_TABLE", defaultEstimatesTableName),
		workOrdersTable: getenvDefault("WORK_ORDERS_TABLE", defaultWorkOrdersTableName),
		invoicesTable:   getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
	}
}

func (r *ConversionDynamoRepository) CreateWorkOrderAndLink(ctx context.Context, e entities.Estimate, wo entities.WorkOrder) error {
	woAV, err := attributevalue.MarshalMap(toWorkOrderItem(wo))
	if err != nil {
		return err
	}
	return r.commit(ctx, e, r.workOrdersTable, woAV, "work_order_id")
}

func (r *ConversionDynamoRepository) CreateInvoiceAndLink(ctx context.Context, e entities.Estimate, inv entities.Invoice) error {
	invAV, err := attributevalue.MarshalMap(toInvoiceItem(inv))
	if err != nil {
		return err
	}
	return r.commit(ctx, e, r.invoicesTable, invAV, "invoice_id")
}

func (r *ConversionDynamoRepository) commit(
	ctx context.Context,
	e entities.Estimate,
	recordTable string,
	recordAV map[string]types.AttributeValue,
	refAttr string,
) error {
	estAV, err := attributevalue.MarshalMap(toEstimateItem(e))
	if err != nil {
		return err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(recordTable),
					Item:                recordAV,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
			{
				Put: &types.Put{
					TableName:           aws.String(r.estimatesTable),
					Item:                estAV,
					ConditionExpression: aws.String("#status = :approved AND attribute_not_exists(#ref)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":approved": &types.AttributeValueMemberS{Value: string(entities.EstimateStatusApproved)},
					},
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
						"#ref":    refAttr,
					},
				},
			},
		},
	})
	if err != nil {
		if isConditionCancellation(err) {
			return interfaces.ErrConversionConflict
		}
		return err
	}
	return nil
}

func isConditionCancellation(err error) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return false
	}
	for _, reason := range tce.CancellationReasons {
		if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
			return true
		}
	}
	return false
}
