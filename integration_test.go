package bookshelf_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/nisimpson/bookshelf"
	"github.com/nisimpson/bookshelf/dynamock"
	"github.com/nisimpson/bookshelf/dynamock/assert"
)

// Integration tests run against DynamoDB Local and are skipped when it is
// not listening on port 8000.

func TestIntegrationStore(t *testing.T) {
	dynamock.RunIntegrationTest(t, nil, func(local *dynamock.LocalDynamoDB, tableName string) {
		ctx := context.Background()
		store := bookshelf.NewDynamoStore(local.Client, bookshelf.NewTable(tableName))
		book := dynamock.NewBook(dynamock.WithID("B1"), dynamock.WithTitle("Dune")).Build()

		if err := store.CreateBook(ctx, book); err != nil {
			t.Fatalf("Failed to create book: %v", err)
		}
		if err := store.CreateBook(ctx, book); !errors.Is(err, bookshelf.ErrBookExists) {
			t.Errorf("Expected ErrBookExists, got %v", err)
		}

		got, err := store.GetBook(ctx, "B1")
		if err != nil {
			t.Fatalf("Failed to get book: %v", err)
		}
		if got != book {
			t.Errorf("Expected %+v, got %+v", book, got)
		}

		if err := store.ReplaceBook(ctx, dynamock.NewBook(dynamock.WithID("B2")).Build()); !errors.Is(err, bookshelf.ErrBookNotFound) {
			t.Errorf("Expected ErrBookNotFound replacing a missing book, got %v", err)
		}

		if err := store.DeleteBook(ctx, "B1"); err != nil {
			t.Fatalf("Failed to delete book: %v", err)
		}
		if err := store.DeleteBook(ctx, "B1"); !errors.Is(err, bookshelf.ErrBookNotFound) {
			t.Errorf("Expected ErrBookNotFound on second delete, got %v", err)
		}
	})
}

func TestIntegrationRouterList(t *testing.T) {
	dynamock.RunIntegrationTest(t, nil, func(local *dynamock.LocalDynamoDB, tableName string) {
		ctx := context.Background()
		seeder := dynamock.NewSeedTestData(local.Client, tableName)
		for i := 0; i < 3; i++ {
			if err := seeder.SeedBook(ctx, dynamock.NewBook().Build()); err != nil {
				t.Fatalf("Failed to seed: %v", err)
			}
		}

		router := bookshelf.NewRouter(bookshelf.NewDynamoStore(local.Client, bookshelf.NewTable(tableName)))
		resp := call(t, router, http.MethodGet, "/books", "")
		assert.Response(t, resp).HasStatus(http.StatusOK).HasItemCount(3)
	})
}
