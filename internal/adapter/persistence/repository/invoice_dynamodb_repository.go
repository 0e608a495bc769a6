package repository

import (
	"context"
	"errors"
	"time"

	"propserv/internal/domain/entities"
	"propserv/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultInvoicesTableName = "invoices"
	invoicesEstimateIDIndex  = "estimate_id-index"
)

type invoiceLineItemItem struct {
	Description string `dynamodbav:"description"`
	Quantity    string `dynamodbav:"quantity"`
	UnitPrice   string `dynamodbav:"unit_price"`
	Amount      string `dynamodbav:"amount"`
}

type invoiceItem struct {
	ID              string                `dynamodbav:"id"`
	InvoiceNumber   string                `dynamodbav:"invoice_number"`
	EstimateID      string                `dynamodbav:"estimate_id"`
	Building        string                `dynamodbav:"building"`
	ApartmentNumber string                `dynamodbav:"apartment_number,omitempty"`
	LineItems       []invoiceLineItemItem `dynamodbav:"line_items,omitempty"`
	IssueDate       string                `dynamodbav:"issue_date"`
	DueDate         string                `dynamodbav:"due_date"`
	Notes           string                `dynamodbav:"notes,omitempty"`
	Status          string                `dynamodbav:"status"`
	CreatedBy       string                `dynamodbav:"created_by,omitempty"`
	CreatedAt       string                `dynamodbav:"created_at"`
	UpdatedAt       string                `dynamodbav:"updated_at"`
}

// InvoiceDynamoRepository reads Invoice documents from DynamoDB. Creation
// happens inside the conversion transaction; UpdateLineItems serves the
// reconciliation pass.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: estimate_id-index (PK: estimate_id)

type InvoiceDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IInvoiceRepository = (*InvoiceDynamoRepository)(nil)

func NewInvoiceDynamoRepository(ddb *dynamodb.Client) *InvoiceDynamoRepository {
	return &InvoiceDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("INVOICES_TABLE", defaultInvoicesTableName),
	}
}

func (r *InvoiceDynamoRepository) GetByID(ctx context.Context, id string) (entities.Invoice, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Item) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func (r *InvoiceDynamoRepository) GetByEstimateID(ctx context.Context, estimateID string) (entities.Invoice, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(invoicesEstimateIDIndex),
		KeyConditionExpression: aws.String("estimate_id = :eid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eid": &types.AttributeValueMemberS{Value: estimateID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Invoice{}, err
	}
	if len(out.Items) == 0 {
		return entities.Invoice{}, nil
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

// ListAll scans the whole table for the reconciliation pass.
func (r *InvoiceDynamoRepository) ListAll(ctx context.Context) ([]entities.Invoice, error) {
	items := make([]entities.Invoice, 0)
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			var it invoiceItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromInvoiceItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func (r *InvoiceDynamoRepository) UpdateLineItems(ctx context.Context, id string, lineItems []entities.InvoiceLineItem) (entities.Invoice, error) {
	items := toInvoiceLineItemItems(lineItems)
	av, err := attributevalue.Marshal(items)
	if err != nil {
		return entities.Invoice{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		UpdateExpression:    aws.String("SET #line_items = :line_items, #updated_at = :updated_at"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":line_items": av,
			":updated_at": &types.AttributeValueMemberS{Value: formatTime(time.Now())},
		},
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#line_items": "line_items",
			"#updated_at": "updated_at",
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Invoice{}, nil
		}
		return entities.Invoice{}, err
	}

	var it invoiceItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Invoice{}, err
	}
	return fromInvoiceItem(it), nil
}

func toInvoiceLineItemItems(lineItems []entities.InvoiceLineItem) []invoiceLineItemItem {
	items := make([]invoiceLineItemItem, 0, len(lineItems))
	for _, li := range lineItems {
		items = append(items, invoiceLineItemItem{
			Description: li.Description,
			Quantity:    floatToString(li.Quantity),
			UnitPrice:   floatToString(li.UnitPrice),
			Amount:      floatToString(li.Amount),
		})
	}
	return items
}

func toInvoiceItem(inv entities.Invoice) invoiceItem {
	return invoiceItem{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		EstimateID:      inv.EstimateID,
		Building:        inv.Building,
		ApartmentNumber: inv.ApartmentNumber,
		LineItems:       toInvoiceLineItemItems(inv.LineItems),
		IssueDate:       formatTime(inv.IssueDate),
		DueDate:         formatTime(inv.DueDate),
		Notes:           inv.Notes,
		Status:          string(inv.Status),
		CreatedBy:       inv.CreatedBy,
		CreatedAt:       formatTime(inv.CreatedAt),
		UpdatedAt:       formatTime(inv.UpdatedAt),
	}
}

func fromInvoiceItem(it invoiceItem) entities.Invoice {
	items := make([]entities.InvoiceLineItem, 0, len(it.LineItems))
	for _, li := range it.LineItems {
		items = append(items, entities.InvoiceLineItem{
			Description: li.Description,
			Quantity:    stringToFloat(li.Quantity),
			UnitPrice:   stringToFloat(li.UnitPrice),
			Amount:      stringToFloat(li.Amount),
		})
	}
	if len(items) == 0 {
		items = nil
	}
	return entities.Invoice{
		ID:              it.ID,
		InvoiceNumber:   it.InvoiceNumber,
		EstimateID:      it.EstimateID,
		Building:        it.Building,
		ApartmentNumber: it.ApartmentNumber,
		LineItems:       items,
		IssueDate:       parseTime(it.IssueDate),
		DueDate:         parseTime(it.DueDate),
		Notes:           it.Notes,
		Status:          entities.InvoiceStatus(it.Status),
		CreatedBy:       it.CreatedBy,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}
