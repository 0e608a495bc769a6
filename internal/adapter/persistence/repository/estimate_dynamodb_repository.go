package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"

	"propserv/internal/domain/entities"
	"propserv/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultEstimatesTableName = "estimates"
	estimatesStatusIndex      = "status-index"
)

type lineItemItem struct {
	ServiceDate    string `dynamodbav:"service_date,omitempty"`
	ProductService string `dynamodbav:"product_service"`
	Description    string `dynamodbav:"description,omitempty"`
	Qty            string `dynamodbav:"qty"`
	Rate           string `dynamodbav:"rate"`
	Amount         string `dynamodbav:"amount"`
	Tax            string `dynamodbav:"tax"`
	TaxType        string `dynamodbav:"tax_type,omitempty"`
	EstimatedCost  string `dynamodbav:"estimated_cost"`
	Notes          string `dynamodbav:"notes,omitempty"`
	Class          string `dynamodbav:"class,omitempty"`
}

type clientInteractionItem struct {
	SentToClient    bool   `dynamodbav:"sent_to_client"`
	SentAt          string `dynamodbav:"sent_at,omitempty"`
	ClientViewed    bool   `dynamodbav:"client_viewed"`
	ViewedAt        string `dynamodbav:"viewed_at,omitempty"`
	ClientAccepted  bool   `dynamodbav:"client_accepted"`
	AcceptedAt      string `dynamodbav:"accepted_at,omitempty"`
	ClientRejected  bool   `dynamodbav:"client_rejected"`
	RejectedAt      string `dynamodbav:"rejected_at,omitempty"`
	AcceptedBy      string `dynamodbav:"accepted_by,omitempty"`
	ClientSignature string `dynamodbav:"client_signature,omitempty"`
	IPAddress       string `dynamodbav:"ip_address,omitempty"`
}

type estimateItem struct {
	ID                string                `dynamodbav:"id"`
	Title             string                `dynamodbav:"title"`
	Description       string                `dynamodbav:"description,omitempty"`
	Building          string                `dynamodbav:"building"`
	ApartmentNumber   string                `dynamodbav:"apartment_number,omitempty"`
	EstimatedCost     string                `dynamodbav:"estimated_cost"`
	EstimatedPrice    string                `dynamodbav:"estimated_price"`
	EstimatedDuration int                   `dynamodbav:"estimated_duration,omitempty"`
	VisitDate         string                `dynamodbav:"visit_date,omitempty"`
	ProposedStartDate string                `dynamodbav:"proposed_start_date,omitempty"`
	TargetYear        int                   `dynamodbav:"target_year,omitempty"`
	Status            string                `dynamodbav:"status"`
	Priority          string                `dynamodbav:"priority"`
	Photos            []string              `dynamodbav:"photos,omitempty"`
	Notes             string                `dynamodbav:"notes,omitempty"`
	ClientNotes       string                `dynamodbav:"client_notes,omitempty"`
	ClientEmail       string                `dynamodbav:"client_email,omitempty"`
	RejectionReason   string                `dynamodbav:"rejection_reason,omitempty"`
	WorkOrderID       string                `dynamodbav:"work_order_id,omitempty"`
	InvoiceID         string                `dynamodbav:"invoice_id,omitempty"`
	LineItems         []lineItemItem        `dynamodbav:"line_items,omitempty"`
	ClientInteraction clientInteractionItem `dynamodbav:"client_interaction"`
	CreatedBy         string                `dynamodbav:"created_by"`
	ApprovedBy        string                `dynamodbav:"approved_by,omitempty"`
	ApprovedAt        string                `dynamodbav:"approved_at,omitempty"`
	SubmittedAt       string                `dynamodbav:"submitted_at,omitempty"`
	CreatedAt         string                `dynamodbav:"created_at"`
	UpdatedAt         string                `dynamodbav:"updated_at"`
}

// EstimateDynamoRepository persists Estimate documents in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-index (PK: status, SK: submitted_at)
//
// Writes replace the whole document. The status-index sort key gives the
// approval queue its oldest-first order without a client-side sort.

type EstimateDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IEstimateRepository = (*EstimateDynamoRepository)(nil)

func NewEstimateDynamoRepository(ddb *dynamodb.Client) *EstimateDynamoRepository {
	return &EstimateDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("ESTIMATES_TABLE", defaultEstimatesTableName),
	}
}

func (r *EstimateDynamoRepository) Create(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	av, err := attributevalue.MarshalMap(toEstimateItem(e))
	if err != nil {
		return entities.Estimate{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateDynamoRepository) GetByID(ctx context.Context, id string) (entities.Estimate, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Estimate{}, err
	}
	if len(out.Item) == 0 {
		return entities.Estimate{}, nil
	}

	var it estimateItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Estimate{}, err
	}
	return fromEstimateItem(it), nil
}

func (r *EstimateDynamoRepository) Update(ctx context.Context, e entities.Estimate) (entities.Estimate, error) {
	av, err := attributevalue.MarshalMap(toEstimateItem(e))
	if err != nil {
		return entities.Estimate{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Estimate{}, nil
		}
		return entities.Estimate{}, err
	}
	return e, nil
}

func (r *EstimateDynamoRepository) Delete(ctx context.Context, id string) (bool, error) {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// List pages through estimates. A status filter queries the status-index;
// otherwise we scan. Priority and building narrow either path via a filter
// expression.
func (r *EstimateDynamoRepository) List(ctx context.Context, filter interfaces.EstimateFilter) (interfaces.EstimatePage, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 25
	}

	startKey, err := decodeCursor(filter.Cursor)
	if err != nil {
		return interfaces.EstimatePage{}, err
	}

	filterExpr, vals, names := buildListFilter(filter)

	var items []map[string]types.AttributeValue
	var lastKey map[string]types.AttributeValue

	if filter.Status != "" {
		vals[":status"] = &types.AttributeValueMemberS{Value: string(filter.Status)}
		names["#status"] = "status"
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(estimatesStatusIndex),
			KeyConditionExpression:    aws.String("#status = :status"),
			FilterExpression:          filterExpr,
			ExpressionAttributeValues: vals,
			ExpressionAttributeNames:  names,
			Limit:                     aws.Int32(limit),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return interfaces.EstimatePage{}, err
		}
		items, lastKey = out.Items, out.LastEvaluatedKey
	} else {
		in := &dynamodb.ScanInput{
			TableName:         aws.String(r.tableName),
			FilterExpression:  filterExpr,
			Limit:             aws.Int32(limit),
			ExclusiveStartKey: startKey,
		}
		if len(vals) > 0 {
			in.ExpressionAttributeValues = vals
			in.ExpressionAttributeNames = names
		}
		out, err := r.ddb.Scan(ctx, in)
		if err != nil {
			return interfaces.EstimatePage{}, err
		}
		items, lastKey = out.Items, out.LastEvaluatedKey
	}

	page := interfaces.EstimatePage{Items: make([]entities.Estimate, 0, len(items))}
	for _, raw := range items {
		var it estimateItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return interfaces.EstimatePage{}, err
		}
		page.Items = append(page.Items, fromEstimateItem(it))
	}
	page.NextCursor, err = encodeCursor(lastKey)
	if err != nil {
		return interfaces.EstimatePage{}, err
	}
	return page, nil
}

// ListPendingApprovals returns pending estimates oldest submission first,
// straight off the status-index sort order.
func (r *EstimateDynamoRepository) ListPendingApprovals(ctx context.Context) ([]entities.Estimate, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(estimatesStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(entities.EstimateStatusPending)},
		},
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ScanIndexForward: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.Estimate, 0, len(out.Items))
	for _, raw := range out.Items {
		var it estimateItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromEstimateItem(it))
	}
	return items, nil
}

func buildListFilter(filter interfaces.EstimateFilter) (*string, map[string]types.AttributeValue, map[string]string) {
	expr := ""
	vals := map[string]types.AttributeValue{}
	names := map[string]string{}

	if filter.Priority != "" {
		expr = "#priority = :priority"
		vals[":priority"] = &types.AttributeValueMemberS{Value: string(filter.Priority)}
		names["#priority"] = "priority"
	}
	if filter.Building != "" {
		if expr != "" {
			expr += " AND "
		}
		expr += "#building = :building"
		vals[":building"] = &types.AttributeValueMemberS{Value: filter.Building}
		names["#building"] = "building"
	}
	if expr == "" {
		return nil, vals, names
	}
	return aws.String(expr), vals, names
}

// Cursors are the LastEvaluatedKey round-tripped through JSON+base64 so the
// transport never sees attribute structure.
func encodeCursor(key map[string]types.AttributeValue) (string, error) {
	if len(key) == 0 {
		return "", nil
	}
	flat := make(map[string]string, len(key))
	for k, v := range key {
		s, ok := v.(*types.AttributeValueMemberS)
		if !ok {
			continue
		}
		flat[k] = s.Value
	}
	b, err := json.Marshal(flat)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func decodeCursor(cursor string) (map[string]types.AttributeValue, error) {
	if cursor == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, errors.New("invalid pagination cursor")
	}
	var flat map[string]string
	if err := json.Unmarshal(b, &flat); err != nil {
		return nil, errors.New("invalid pagination cursor")
	}
	key := make(map[string]types.AttributeValue, len(flat))
	for k, v := range flat {
		key[k] = &types.AttributeValueMemberS{Value: v}
	}
	return key, nil
}

func toEstimateItem(e entities.Estimate) estimateItem {
	items := make([]lineItemItem, 0, len(e.LineItems))
	for _, li := range e.LineItems {
		items = append(items, lineItemItem{
			ServiceDate:    formatTimePtr(li.ServiceDate),
			ProductService: li.ProductService,
			Description:    li.Description,
			Qty:            floatToString(li.Qty),
			Rate:           floatToString(li.Rate),
			Amount:         floatToString(li.Amount),
			Tax:            floatToString(li.Tax),
			TaxType:        string(li.TaxType),
			EstimatedCost:  floatToString(li.EstimatedCost),
			Notes:          li.Notes,
			Class:          li.Class,
		})
	}

	ci := e.ClientInteraction
	return estimateItem{
		ID:                e.ID,
		Title:             e.Title,
		Description:       e.Description,
		Building:          e.Building,
		ApartmentNumber:   e.ApartmentNumber,
		EstimatedCost:     floatToString(e.EstimatedCost),
		EstimatedPrice:    floatToString(e.EstimatedPrice),
		EstimatedDuration: e.EstimatedDuration,
		VisitDate:         formatTimePtr(e.VisitDate),
		ProposedStartDate: formatTimePtr(e.ProposedStartDate),
		TargetYear:        e.TargetYear,
		Status:            string(e.Status),
		Priority:          string(e.Priority),
		Photos:            e.Photos,
		Notes:             e.Notes,
		ClientNotes:       e.ClientNotes,
		ClientEmail:       e.ClientEmail,
		RejectionReason:   e.RejectionReason,
		WorkOrderID:       e.WorkOrderID,
		InvoiceID:         e.InvoiceID,
		LineItems:         items,
		ClientInteraction: clientInteractionItem{
			SentToClient:    ci.SentToClient,
			SentAt:          formatTimePtr(ci.SentAt),
			ClientViewed:    ci.ClientViewed,
			ViewedAt:        formatTimePtr(ci.ViewedAt),
			ClientAccepted:  ci.ClientAccepted,
			AcceptedAt:      formatTimePtr(ci.AcceptedAt),
			ClientRejected:  ci.ClientRejected,
			RejectedAt:      formatTimePtr(ci.RejectedAt),
			AcceptedBy:      ci.AcceptedBy,
			ClientSignature: ci.ClientSignature,
			IPAddress:       ci.IPAddress,
		},
		CreatedBy:   e.CreatedBy,
		ApprovedBy:  e.ApprovedBy,
		ApprovedAt:  formatTimePtr(e.ApprovedAt),
		SubmittedAt: formatTimePtr(e.SubmittedAt),
		CreatedAt:   formatTime(e.CreatedAt),
		UpdatedAt:   formatTime(e.UpdatedAt),
	}
}

func fromEstimateItem(it estimateItem) entities.Estimate {
	items := make([]entities.LineItem, 0, len(it.LineItems))
	for _, li := range it.LineItems {
		items = append(items, entities.LineItem{
			ServiceDate:    parseTimePtr(li.ServiceDate),
			ProductService: li.ProductService,
			Description:    li.Description,
			Qty:            stringToFloat(li.Qty),
			Rate:           stringToFloat(li.Rate),
			Amount:         stringToFloat(li.Amount),
			Tax:            stringToFloat(li.Tax),
			TaxType:        entities.TaxType(li.TaxType),
			EstimatedCost:  stringToFloat(li.EstimatedCost),
			Notes:          li.Notes,
			Class:          li.Class,
		})
	}
	if len(items) == 0 {
		items = nil
	}

	ci := it.ClientInteraction
	return entities.Estimate{
		ID:                it.ID,
		Title:             it.Title,
		Description:       it.Description,
		Building:          it.Building,
		ApartmentNumber:   it.ApartmentNumber,
		EstimatedCost:     stringToFloat(it.EstimatedCost),
		EstimatedPrice:    stringToFloat(it.EstimatedPrice),
		EstimatedDuration: it.EstimatedDuration,
		VisitDate:         parseTimePtr(it.VisitDate),
		ProposedStartDate: parseTimePtr(it.ProposedStartDate),
		TargetYear:        it.TargetYear,
		Status:            entities.EstimateStatus(it.Status),
		Priority:          entities.EstimatePriority(it.Priority),
		Photos:            it.Photos,
		Notes:             it.Notes,
		ClientNotes:       it.ClientNotes,
		ClientEmail:       it.ClientEmail,
		RejectionReason:   it.RejectionReason,
		WorkOrderID:       it.WorkOrderID,
		InvoiceID:         it.InvoiceID,
		LineItems:         items,
		ClientInteraction: entities.ClientInteraction{
			SentToClient:    ci.SentToClient,
			SentAt:          parseTimePtr(ci.SentAt),
			ClientViewed:    ci.ClientViewed,
			ViewedAt:        parseTimePtr(ci.ViewedAt),
			ClientAccepted:  ci.ClientAccepted,
			AcceptedAt:      parseTimePtr(ci.AcceptedAt),
			ClientRejected:  ci.ClientRejected,
			RejectedAt:      parseTimePtr(ci.RejectedAt),
			AcceptedBy:      ci.AcceptedBy,
			ClientSignature: ci.ClientSignature,
			IPAddress:       ci.IPAddress,
		},
		CreatedBy:   it.CreatedBy,
		ApprovedBy:  it.ApprovedBy,
		ApprovedAt:  parseTimePtr(it.ApprovedAt),
		SubmittedAt: parseTimePtr(it.SubmittedAt),
		CreatedAt:   parseTime(it.CreatedAt),
		UpdatedAt:   parseTime(it.UpdatedAt),
	}
}
