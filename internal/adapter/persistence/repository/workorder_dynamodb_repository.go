package repository

import (
	"context"

	"propserv/internal/domain/entities"
	"propserv/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultWorkOrdersTableName = "work_orders"
	workOrdersEstimateIDIndex  = "estimate_id-index"
)

type workOrderItem struct {
	ID              string   `dynamodbav:"id"`
	EstimateID      string   `dynamodbav:"estimate_id"`
	Title           string   `dynamodbav:"title"`
	Description     string   `dynamodbav:"description,omitempty"`
	Building        string   `dynamodbav:"building"`
	ApartmentNumber string   `dynamodbav:"apartment_number,omitempty"`
	EstimatedCost   string   `dynamodbav:"estimated_cost"`
	Price           string   `dynamodbav:"price"`
	ScheduledDate   string   `dynamodbav:"scheduled_date"`
	Photos          []string `dynamodbav:"photos,omitempty"`
	Notes           string   `dynamodbav:"notes,omitempty"`
	Status          string   `dynamodbav:"status"`
	CreatedBy       string   `dynamodbav:"created_by,omitempty"`
	CreatedAt       string   `dynamodbav:"created_at"`
	UpdatedAt       string   `dynamodbav:"updated_at"`
}

// WorkOrderDynamoRepository reads WorkOrder documents from DynamoDB.
// Writes happen inside the conversion transaction only.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: estimate_id-index (PK: estimate_id)

type WorkOrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IWorkOrderRepository = (*WorkOrderDynamoRepository)(nil)

func NewWorkOrderDynamoRepository(ddb *dynamodb.Client) *WorkOrderDynamoRepository {
	return &WorkOrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("WORK_ORDERS_TABLE", defaultWorkOrdersTableName),
	}
}

func (r *WorkOrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.WorkOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.WorkOrder{}, nil
	}

	var it workOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.WorkOrder{}, err
	}
	return fromWorkOrderItem(it), nil
}

func (r *WorkOrderDynamoRepository) GetByEstimateID(ctx context.Context, estimateID string) (entities.WorkOrder, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(workOrdersEstimateIDIndex),
		KeyConditionExpression: aws.String("estimate_id = :eid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":eid": &types.AttributeValueMemberS{Value: estimateID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if len(out.Items) == 0 {
		return entities.WorkOrder{}, nil
	}

	var it workOrderItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.WorkOrder{}, err
	}
	return fromWorkOrderItem(it), nil
}

// ListAll scans the whole table; it backs the reconciliation pass, which
// runs off-peak, not a request path.
func (r *WorkOrderDynamoRepository) ListAll(ctx context.Context) ([]entities.WorkOrder, error) {
	items := make([]entities.WorkOrder, 0)
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
			var it workOrderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			items = append(items, fromWorkOrderItem(it))
		}
		if len(out.LastEvaluatedKey) == 0 {
			return items, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func toWorkOrderItem(wo entities.WorkOrder) workOrderItem {
	return workOrderItem{
		ID:              wo.ID,
		EstimateID:      wo.EstimateID,
		Title:           wo.Title,
		Description:     wo.Description,
		Building:        wo.Building,
		ApartmentNumber: wo.ApartmentNumber,
		EstimatedCost:   floatToString(wo.EstimatedCost),
		Price:           floatToString(wo.Price),
		ScheduledDate:   formatTime(wo.ScheduledDate),
		Photos:          wo.Photos,
		Notes:           wo.Notes,
		Status:          string(wo.Status),
		CreatedBy:       wo.CreatedBy,
		CreatedAt:       formatTime(wo.CreatedAt),
		UpdatedAt:       formatTime(wo.UpdatedAt),
	}
}

func fromWorkOrderItem(it workOrderItem) entities.WorkOrder {
	return entities.WorkOrder{
		ID:              it.ID,
		EstimateID:      it.EstimateID,
		Title:           it.Title,
		Description:     it.Description,
		Building:        it.Building,
		ApartmentNumber: it.ApartmentNumber,
		EstimatedCost:   stringToFloat(it.EstimatedCost),
		Price:           stringToFloat(it.Price),
		ScheduledDate:   parseTime(it.ScheduledDate),
		Photos:          it.Photos,
		Notes:           it.Notes,
		Status:          entities.WorkOrderStatus(it.Status),
		CreatedBy:       it.CreatedBy,
		CreatedAt:       parseTime(it.CreatedAt),
		UpdatedAt:       parseTime(it.UpdatedAt),
	}
}
