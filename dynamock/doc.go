// Package dynamock provides testing utilities for the bookshelf package.
//
// This package includes:
//   - An expectation-based mock DynamoDB client for unit testing
//   - An in-memory DynamoDB table for end-to-end handler tests
//   - Book builders with functional options
//   - JSON:API fixture seeding
//   - DynamoDB Local helpers with automatic table cleanup
//
// # Mock Client
//
// Set an expectation for each operation the code under test performs; any
// other call fails the test:
//
//	mock := dynamock.NewMockClient(t)
//	mock.GetFunc = func(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
//		return &dynamodb.GetItemOutput{}, nil
//	}
//
//	store := bookshelf.NewDynamoStore(mock, bookshelf.NewTable("books"))
//
// # Memory Client
//
// MemoryClient keeps items in memory and honors the conditional writes the
// store issues, so a Router can be exercised without DynamoDB:
//
//	client := dynamock.NewMemoryClient()
//	router := bookshelf.NewRouter(bookshelf.NewDynamoStore(client, bookshelf.NewTable("books")))
//
//	client.FailWith("GetItem", errors.New("throttled")) // simulate an outage
//
// # Builders
//
//	book := dynamock.NewBook(
//		dynamock.WithID("B1"),
//		dynamock.WithTitle("Dune"),
//		dynamock.WithAuthor("Herbert"),
//		dynamock.Read(),
//	).Build()
//
// # Seeding
//
//	seeder := dynamock.NewSeedTestData(client, "books")
//	err := seeder.SeedBooks(ctx, book)
//	n, err := seeder.SeedFromJSON(ctx, strings.NewReader(fixtures))
//
// # Local DynamoDB
//
//	dynamock.RunIntegrationTest(t, nil, func(local *dynamock.LocalDynamoDB, tableName string) {
//		store := bookshelf.NewDynamoStore(local.Client, bookshelf.NewTable(tableName))
//		// ...
//	})
package dynamock
