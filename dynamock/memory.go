package dynamock

import (
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/nisimpson/bookshelf"
)

// conditionPattern matches the key existence checks the store issues.
var conditionPattern = regexp.MustCompile(`^attribute_(not_)?exists\s*\(\s*(#\w+)\s*\)$`)

// MemoryClient is an in-memory DynamoDB table with a single string hash key.
// It understands attribute_exists / attribute_not_exists conditions on the
// key, scan limits and exclusive start keys. Projection expressions are
// ignored. MemoryClient is safe for concurrent use.
type MemoryClient struct {
	KeyName string // Hash key attribute. Default is bookshelf.AttributeNameID.

	mu       sync.Mutex
	items    map[string]bookshelf.Item
	order    []string // insertion order, used as scan order
	failures map[string]error
	calls    map[string]int
}

var _ bookshelf.DynamoDBClient = (*MemoryClient)(nil)

// NewMemoryClient creates an empty in-memory table keyed by BookId.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{
		KeyName:  bookshelf.AttributeNameID,
		items:    make(map[string]bookshelf.Item),
		failures: make(map[string]error),
		calls:    make(map[string]int),
	}
}

// FailWith makes every subsequent call to op ("GetItem", "PutItem",
// "DeleteItem" or "Scan") return err. A nil err clears the failure.
func (m *MemoryClient) FailWith(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, op)
		return
	}
	m.failures[op] = err
}

// Calls returns how many times op has been invoked, failed calls included.
func (m *MemoryClient) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// Len returns the number of stored items.
func (m *MemoryClient) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Item returns a copy of the item stored under key, or nil.
func (m *MemoryClient) Item(key string) bookshelf.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item, ok := m.items[key]; ok {
		return maps.Clone(item)
	}
	return nil
}

// begin records a call to op and returns its injected failure, if any.
// The caller must hold m.mu.
func (m *MemoryClient) begin(op string) error {
	m.calls[op]++
	return m.failures[op]
}

// GetItem returns the item stored under the request key.
func (m *MemoryClient) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin("GetItem"); err != nil {
		return nil, err
	}

	key, err := m.keyOf(params.Key)
	if err != nil {
		return nil, err
	}

	out := &dynamodb.GetItemOutput{}
	if item, ok := m.items[key]; ok {
		out.Item = maps.Clone(item)
	}
	return out, nil
}

// PutItem stores the request item after checking its condition.
func (m *MemoryClient) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin("PutItem"); err != nil {
		return nil, err
	}

	key, err := m.keyOf(params.Item)
	if err != nil {
		return nil, err
	}

	_, exists := m.items[key]
	if err := m.checkCondition(params.ConditionExpression, params.ExpressionAttributeNames, exists); err != nil {
		return nil, err
	}

	if !exists {
		m.order = append(m.order, key)
	}
	m.items[key] = maps.Clone(params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

// DeleteItem removes the item stored under the request key after checking
// the condition. Deleting a missing item without a condition is a no-op.
func (m *MemoryClient) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin("DeleteItem"); err != nil {
		return nil, err
	}

	key, err := m.keyOf(params.Key)
	if err != nil {
		return nil, err
	}

	_, exists := m.items[key]
	if err := m.checkCondition(params.ConditionExpression, params.ExpressionAttributeNames, exists); err != nil {
		return nil, err
	}

	if exists {
		delete(m.items, key)
		m.order = slices.DeleteFunc(m.order, func(k string) bool { return k == key })
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

// Scan returns items in insertion order. When Limit stops the scan before
// the end of the table, LastEvaluatedKey holds the key of the last item
// returned.
func (m *MemoryClient) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.begin("Scan"); err != nil {
		return nil, err
	}

	start := 0
	if params.ExclusiveStartKey != nil {
		key, err := m.keyOf(params.ExclusiveStartKey)
		if err != nil {
			return nil, err
		}
		start = slices.Index(m.order, key) + 1
	}

	end := len(m.order)
	if limit := int(aws.ToInt32(params.Limit)); limit > 0 && start+limit < end {
		end = start + limit
	}

	out := &dynamodb.ScanOutput{}
	for _, key := range m.order[start:end] {
		out.Items = append(out.Items, maps.Clone(m.items[key]))
	}
	out.Count = int32(len(out.Items))
	out.ScannedCount = out.Count

	if end < len(m.order) && end > start {
		out.LastEvaluatedKey = bookshelf.Item{
			m.KeyName: &types.AttributeValueMemberS{Value: m.order[end-1]},
		}
	}
	return out, nil
}

func (m *MemoryClient) keyOf(item bookshelf.Item) (string, error) {
	attr, ok := item[m.KeyName].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("dynamock: missing string key attribute %s", m.KeyName)
	}
	return attr.Value, nil
}

func (m *MemoryClient) checkCondition(expr *string, names map[string]string, exists bool) error {
	if expr == nil {
		return nil
	}

	match := conditionPattern.FindStringSubmatch(strings.TrimSpace(*expr))
	if match == nil || names[match[2]] != m.KeyName {
		return fmt.Errorf("dynamock: unsupported condition expression %q", *expr)
	}

	if wantExists := match[1] == ""; wantExists != exists {
		return &types.ConditionalCheckFailedException{
			Message: aws.String("The conditional request failed"),
		}
	}
	return nil
}
