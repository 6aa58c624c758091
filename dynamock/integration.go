package dynamock

import (
	"context"
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/nisimpson/bookshelf"
)

// unsafeTableChars matches characters DynamoDB rejects in table names.
var unsafeTableChars = regexp.MustCompile(`[^a-zA-Z0-9_.-]+`)

// NewTestTable generates a unique table name for testing.
func NewTestTable(prefix string) string {
	name := fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
	return unsafeTableChars.ReplaceAllString(name, "-")
}

// IntegrationTestConfig holds configuration for integration tests.
type IntegrationTestConfig struct {
	Port             int
	SkipIfNotRunning bool
	TablePrefix      string
	CleanupTimeout   time.Duration
}

// DefaultIntegrationTestConfig returns a default configuration for integration tests.
func DefaultIntegrationTestConfig() *IntegrationTestConfig {
	return &IntegrationTestConfig{
		Port:             DefaultLocalPort,
		SkipIfNotRunning: true,
		TablePrefix:      "bookshelf-test",
		CleanupTimeout:   30 * time.Second,
	}
}

// RunIntegrationTest creates a fresh books table on DynamoDB Local, runs fn
// and deletes the table afterwards. The test is skipped in short mode and,
// unless configured otherwise, when DynamoDB Local is not running.
func RunIntegrationTest(t *testing.T, config *IntegrationTestConfig, fn func(local *LocalDynamoDB, tableName string)) {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	if config == nil {
		config = DefaultIntegrationTestConfig()
	}

	local := NewLocalDynamoDB(config.Port)
	ctx := context.Background()

	if !local.IsAvailable(ctx) {
		if config.SkipIfNotRunning {
			t.Skipf("DynamoDB Local not available on port %d", config.Port)
		}
		t.Fatalf("DynamoDB Local not available on port %d", config.Port)
	}

	tableName := NewTestTable(config.TablePrefix)
	if err := local.CreateBooksTable(ctx, tableName); err != nil {
		t.Fatalf("Failed to create test table %s: %v", tableName, err)
	}

	defer func() {
		cleanupCtx, cancel := context.WithTimeout(context.Background(), config.CleanupTimeout)
		defer cancel()

		if err := local.DeleteTable(cleanupCtx, tableName); err != nil {
			t.Errorf("Failed to cleanup table %s: %v", tableName, err)
		}
	}()

	fn(local, tableName)
}

// SeedTestData is a helper for seeding books into a table.
type SeedTestData struct {
	store *bookshelf.DynamoStore
}

// NewSeedTestData creates a seeder writing to tableName through client.
func NewSeedTestData(client bookshelf.DynamoDBClient, tableName string) *SeedTestData {
	return &SeedTestData{
		store: bookshelf.NewDynamoStore(client, bookshelf.NewTable(tableName)),
	}
}

// SeedBook stores a single book. It fails if the id is already taken.
func (s *SeedTestData) SeedBook(ctx context.Context, book bookshelf.Book) error {
	if err := s.store.CreateBook(ctx, book); err != nil {
		return fmt.Errorf("failed to put book: %w", err)
	}
	return nil
}

// SeedBooks stores each book in order, stopping at the first failure.
func (s *SeedTestData) SeedBooks(ctx context.Context, books ...bookshelf.Book) error {
	for _, book := range books {
		if err := s.SeedBook(ctx, book); err != nil {
			return err
		}
	}
	return nil
}
