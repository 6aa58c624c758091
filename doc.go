// Package bookshelf implements the request-handling layer of a book catalog
// running behind an API Gateway proxy integration and backed by a single
// DynamoDB table.
//
// # Routes
//
//	POST   .../books        create a book, returns 201 {"bookId": ...}
//	GET    .../books/{id}   fetch a book
//	GET    .../books        list up to 100 books
//	PUT    .../books/{id}   partially update a book
//	DELETE .../books/{id}   delete a book
//
// Failures are reported as {"code": ..., "message": ...} where code is one of
// VALIDATION_ERROR (400), NOT_FOUND (404), DDB_ERROR (503) or
// INTERNAL_ERROR (500).
//
// # Basic Usage
//
//	cfg, _ := config.LoadDefaultConfig(ctx)
//	store := bookshelf.NewDynamoStore(dynamodb.NewFromConfig(cfg), bookshelf.NewTable("books"))
//	router := bookshelf.NewRouter(store, func(o *bookshelf.RouterOptions) {
//	    o.Logger = logger
//	})
//	lambda.Start(router.Handle)
//
// The router also implements http.Handler for running outside Lambda.
//
// # Table
//
// The table is keyed by the string attribute BookId and holds the
// attributes title, author, status and, optionally, publishedDate.
// Writes are conditional: creates require the id to be free, and updates
// and deletes require the book to still exist.
package bookshelf
