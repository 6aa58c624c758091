package bookshelf

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// DefaultScanLimit is the maximum number of books a single list call returns.
const DefaultScanLimit = 100

// Table contains the book table configuration.
type Table struct {
	TableName string // DynamoDB table name
	ScanLimit int    // Upper bound for MarshalScan. Default is DefaultScanLimit.
}

// NewTable creates a new Table with default configuration.
func NewTable(tableName string) *Table {
	return &Table{
		TableName: tableName,
		ScanLimit: DefaultScanLimit,
	}
}

// MarshalCreate marshals b into a put request that fails with a
// ConditionalCheckFailedException when the id is already taken.
func (t *Table) MarshalCreate(b Book) (*dynamodb.PutItemInput, error) {
	return t.marshalPut(b, expression.AttributeNotExists(expression.Name(AttributeNameID)))
}

// MarshalReplace marshals b into a full-item overwrite that fails with a
// ConditionalCheckFailedException when the book no longer exists.
func (t *Table) MarshalReplace(b Book) (*dynamodb.PutItemInput, error) {
	return t.marshalPut(b, expression.AttributeExists(expression.Name(AttributeNameID)))
}

func (t *Table) marshalPut(b Book, cond expression.ConditionBuilder) (*dynamodb.PutItemInput, error) {
	item, err := MarshalBook(b)
	if err != nil {
		return nil, err
	}

	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	return &dynamodb.PutItemInput{
		TableName:                aws.String(t.TableName),
		Item:                     item,
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	}, nil
}

// MarshalGet marshals id into a get item request.
func (t *Table) MarshalGet(id string) *dynamodb.GetItemInput {
	return &dynamodb.GetItemInput{
		TableName: aws.String(t.TableName),
		Key:       t.key(id),
	}
}

// MarshalDelete marshals id into a delete item request that fails with a
// ConditionalCheckFailedException when the book does not exist.
func (t *Table) MarshalDelete(id string) (*dynamodb.DeleteItemInput, error) {
	cond := expression.AttributeExists(expression.Name(AttributeNameID))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	return &dynamodb.DeleteItemInput{
		TableName:                aws.String(t.TableName),
		Key:                      t.key(id),
		ConditionExpression:      expr.Condition(),
		ExpressionAttributeNames: expr.Names(),
	}, nil
}

// MarshalScan marshals a bounded scan over the book attributes. A limit of
// zero, or one above the table's ScanLimit, is clamped to the ScanLimit.
func (t *Table) MarshalScan(limit int) (*dynamodb.ScanInput, error) {
	maxLimit := t.ScanLimit
	if maxLimit <= 0 {
		maxLimit = DefaultScanLimit
	}
	if limit <= 0 || limit > maxLimit {
		limit = maxLimit
	}

	proj := expression.NamesList(
		expression.Name(AttributeNameID),
		expression.Name(AttributeNameTitle),
		expression.Name(AttributeNameAuthor),
		expression.Name(AttributeNameStatus),
		expression.Name(AttributeNamePublishedDate),
	)

	expr, err := expression.NewBuilder().WithProjection(proj).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build expression: %w", err)
	}

	return &dynamodb.ScanInput{
		TableName:                aws.String(t.TableName),
		ProjectionExpression:     expr.Projection(),
		ExpressionAttributeNames: expr.Names(),
		Limit:                    aws.Int32(int32(limit)),
	}, nil
}

func (t *Table) key(id string) Item {
	return Item{
		AttributeNameID: &types.AttributeValueMemberS{Value: id},
	}
}
