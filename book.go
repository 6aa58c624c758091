package bookshelf

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Status is the reading state of a book. The values are wire-format literals
// and are stored and returned exactly as declared.
type Status string

const (
	StatusUnread Status = "未読" // not yet read; the default for new books
	StatusRead   Status = "読了" // finished
)

// Valid reports whether s is one of the declared statuses.
func (s Status) Valid() bool {
	return s == StatusUnread || s == StatusRead
}

// Book is the single catalog record. The dynamodbav tags name the table
// attributes and the json tags name the response fields.
type Book struct {
	ID            string `dynamodbav:"BookId" json:"bookId"`
	Title         string `dynamodbav:"title" json:"title"`
	Author        string `dynamodbav:"author" json:"author"`
	Status        Status `dynamodbav:"status" json:"status"`
	PublishedDate string `dynamodbav:"publishedDate,omitempty" json:"publishedDate,omitempty"`
}

const (
	AttributeNameID            = "BookId"
	AttributeNameTitle         = "title"
	AttributeNameAuthor        = "author"
	AttributeNameStatus        = "status"
	AttributeNamePublishedDate = "publishedDate"
)

// Item is an alias for the dynamodb attribute value map.
type Item = map[string]types.AttributeValue

// MarshalBook converts b into a table item.
func MarshalBook(b Book) (Item, error) {
	item, err := attributevalue.MarshalMap(b)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal book %s: %w", b.ID, err)
	}
	return item, nil
}

// UnmarshalBook converts a table item into a Book. Items without a
// BookId attribute are rejected.
func UnmarshalBook(item Item) (Book, error) {
	var b Book
	if _, ok := item[AttributeNameID]; !ok {
		return b, errors.New("item has no BookId attribute")
	}
	if err := attributevalue.UnmarshalMap(item, &b); err != nil {
		return b, fmt.Errorf("failed to unmarshal book: %w", err)
	}
	return b, nil
}

// UnmarshalBooks calls [UnmarshalBook] on each item in items.
func UnmarshalBooks(items []Item) ([]Book, error) {
	books := make([]Book, 0, len(items))
	for i, item := range items {
		b, err := UnmarshalBook(item)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal item %d: %w", i, err)
		}
		books = append(books, b)
	}
	return books, nil
}

// DynamoDBClient is the subset of the DynamoDB API the store depends on.
// *dynamodb.Client satisfies it.
type DynamoDBClient interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
}
