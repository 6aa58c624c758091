package bookshelf

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Store persists books. Implementations return ErrBookNotFound for missing
// books and wrap communication failures in *StoreError.
type Store interface {
	// CreateBook stores a new book. It returns ErrBookExists if the id is taken.
	CreateBook(ctx context.Context, b Book) error
	// GetBook returns the book stored under id.
	GetBook(ctx context.Context, id string) (Book, error)
	// ScanBooks returns at most limit books in store order.
	ScanBooks(ctx context.Context, limit int) (*ScanResult, error)
	// ReplaceBook overwrites an existing book. It returns ErrBookNotFound if
	// the book was removed in the meantime.
	ReplaceBook(ctx context.Context, b Book) error
	// DeleteBook removes the book stored under id.
	DeleteBook(ctx context.Context, id string) error
}

// ScanResult is a single page of books.
type ScanResult struct {
	Books []Book
	// LastKey is the id of the last book examined when the store holds more
	// books beyond this page. It is empty otherwise.
	LastKey string
}

// DynamoStore is a Store backed by a DynamoDB table.
type DynamoStore struct {
	table  *Table
	client DynamoDBClient
}

var _ Store = (*DynamoStore)(nil)

// NewDynamoStore returns a Store that reads and writes table through client.
func NewDynamoStore(client DynamoDBClient, table *Table) *DynamoStore {
	return &DynamoStore{
		table:  table,
		client: client,
	}
}

// CreateBook implements Store.
func (s *DynamoStore) CreateBook(ctx context.Context, b Book) error {
	input, err := s.table.MarshalCreate(b)
	if err != nil {
		return err
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		if isConditionFailure(err) {
			return ErrBookExists
		}
		return newStoreError("PutItem", err)
	}
	return nil
}

// GetBook implements Store.
func (s *DynamoStore) GetBook(ctx context.Context, id string) (Book, error) {
	out, err := s.client.GetItem(ctx, s.table.MarshalGet(id))
	if err != nil {
		return Book{}, newStoreError("GetItem", err)
	}

	if len(out.Item) == 0 {
		return Book{}, ErrBookNotFound
	}

	return UnmarshalBook(out.Item)
}

// ScanBooks implements Store.
func (s *DynamoStore) ScanBooks(ctx context.Context, limit int) (*ScanResult, error) {
	input, err := s.table.MarshalScan(limit)
	if err != nil {
		return nil, err
	}

	out, err := s.client.Scan(ctx, input)
	if err != nil {
		return nil, newStoreError("Scan", err)
	}

	books, err := UnmarshalBooks(out.Items)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{Books: books}
	if key, ok := out.LastEvaluatedKey[AttributeNameID]; ok {
		if err := attributevalue.Unmarshal(key, &result.LastKey); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// ReplaceBook implements Store.
func (s *DynamoStore) ReplaceBook(ctx context.Context, b Book) error {
	input, err := s.table.MarshalReplace(b)
	if err != nil {
		return err
	}

	if _, err := s.client.PutItem(ctx, input); err != nil {
		if isConditionFailure(err) {
			return ErrBookNotFound
		}
		return newStoreError("PutItem", err)
	}
	return nil
}

// DeleteBook implements Store.
func (s *DynamoStore) DeleteBook(ctx context.Context, id string) error {
	input, err := s.table.MarshalDelete(id)
	if err != nil {
		return err
	}

	if _, err := s.client.DeleteItem(ctx, input); err != nil {
		if isConditionFailure(err) {
			return ErrBookNotFound
		}
		return newStoreError("DeleteItem", err)
	}
	return nil
}

func isConditionFailure(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}
