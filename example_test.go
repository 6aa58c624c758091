package bookshelf_test

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/nisimpson/bookshelf"
	"github.com/nisimpson/bookshelf/dynamock"
)

// Example demonstrates the create, fetch and delete round trip
func Example() {
	// An in-memory table stands in for DynamoDB
	store := bookshelf.NewDynamoStore(dynamock.NewMemoryClient(), bookshelf.NewTable("books"))

	router := bookshelf.NewRouter(store, func(o *bookshelf.RouterOptions) {
		o.NewID = func() string { return "B1" }
	})

	ctx := context.Background()
	requests := []events.APIGatewayProxyRequest{
		{HTTPMethod: "POST", Path: "/prod/books", Body: `{"title":"Dune","author":"Herbert"}`},
		{HTTPMethod: "GET", Path: "/prod/books/B1"},
		{HTTPMethod: "PUT", Path: "/prod/books/B1", Body: `{"status":"読了"}`},
		{HTTPMethod: "DELETE", Path: "/prod/books/B1"},
		{HTTPMethod: "GET", Path: "/prod/books/B1"},
	}

	for _, req := range requests {
		resp, _ := router.Handle(ctx, req)
		fmt.Println(resp.StatusCode, resp.Body)
	}

	// Output:
	// 201 {"bookId":"B1"}
	// 200 {"bookId":"B1","title":"Dune","author":"Herbert","status":"未読"}
	// 200 {"bookId":"B1","title":"Dune","author":"Herbert","status":"読了"}
	// 200 {"deleted":true,"bookId":"B1"}
	// 404 {"code":"NOT_FOUND","message":"book not found"}
}

// ExampleTable_MarshalCreate shows the conditional put issued for a new book
func ExampleTable_MarshalCreate() {
	table := bookshelf.NewTable("books")

	input, err := table.MarshalCreate(bookshelf.Book{
		ID:     "B1",
		Title:  "Dune",
		Author: "Herbert",
		Status: bookshelf.StatusUnread,
	})
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Println(*input.TableName)
	fmt.Println(*input.ConditionExpression, input.ExpressionAttributeNames["#0"])

	// Output:
	// books
	// attribute_not_exists (#0) BookId
}
