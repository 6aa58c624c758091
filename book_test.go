package bookshelf

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func TestMarshalBookRoundTrip(t *testing.T) {
	book := Book{ID: "B1", Title: "吾輩は猫である", Author: "夏目漱石", Status: StatusRead, PublishedDate: "1905"}

	item, err := MarshalBook(book)
	if err != nil {
		t.Fatalf("Failed to marshal: %v", err)
	}

	if s, ok := item[AttributeNameStatus].(*types.AttributeValueMemberS); !ok || s.Value != "読了" {
		t.Errorf("Expected status stored verbatim, got %v", item[AttributeNameStatus])
	}

	got, err := UnmarshalBook(item)
	if err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if got != book {
		t.Errorf("Expected %+v, got %+v", book, got)
	}
}

func TestUnmarshalBookRequiresID(t *testing.T) {
	item := Item{
		AttributeNameTitle: &types.AttributeValueMemberS{Value: "Dune"},
	}

	if _, err := UnmarshalBook(item); err == nil {
		t.Error("Expected error for item without BookId")
	}
}

func TestUnmarshalBooks(t *testing.T) {
	items := []Item{
		{AttributeNameID: &types.AttributeValueMemberS{Value: "B1"}},
		{AttributeNameID: &types.AttributeValueMemberS{Value: "B2"}},
	}

	books, err := UnmarshalBooks(items)
	if err != nil {
		t.Fatalf("Failed to unmarshal: %v", err)
	}
	if len(books) != 2 || books[0].ID != "B1" || books[1].ID != "B2" {
		t.Errorf("Unexpected books %+v", books)
	}

	empty, err := UnmarshalBooks(nil)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Errorf("Expected empty non-nil slice, got %v, %v", empty, err)
	}
}
