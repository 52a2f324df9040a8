package integration

import (
	"context"
	"testing"
	"time"

	"stocktrack/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS products (
			id VARCHAR(50) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			code VARCHAR(100) NOT NULL,
			price DECIMAL(10, 2) NOT NULL,
			quantity INTEGER NOT NULL,
			low_stock_threshold INTEGER NOT NULL DEFAULT 5,
			category VARCHAR(100) NOT NULL,
			image_url TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
		);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedProducts inserts test product data and returns the records in
// insertion order.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) []model.Product {
	t.Helper()

	ctx := context.Background()
	base := time.Now().UTC().Truncate(time.Second)

	seeds := []model.Product{
		{Name: "Cola 500ml", Code: "DRK-001", Price: 1.50, Quantity: 24, LowStockThreshold: 10, Category: "Drinks"},
		{Name: "Potato Chips", Code: "SNK-014", Price: 2.20, Quantity: 3, LowStockThreshold: 5, Category: "Snacks"},
		{Name: "Dish Soap", Code: "CLN-003", Price: 3.10, Quantity: 12, LowStockThreshold: 4, Category: "Cleaning"},
	}

	for i := range seeds {
		seeds[i].ID = uuid.NewString()
		seeds[i].ImageURL = "https://example.com/" + seeds[i].Code + ".jpg"
		seeds[i].CreatedAt = base.Add(time.Duration(i) * time.Second)
		seeds[i].UpdatedAt = seeds[i].CreatedAt

		_, err := pool.Exec(ctx,
			`INSERT INTO products (id, name, code, price, quantity, low_stock_threshold, category, image_url, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			seeds[i].ID, seeds[i].Name, seeds[i].Code, seeds[i].Price, seeds[i].Quantity,
			seeds[i].LowStockThreshold, seeds[i].Category, seeds[i].ImageURL,
			seeds[i].CreatedAt, seeds[i].UpdatedAt,
		)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", seeds[i].Code, err)
		}
	}

	return seeds
}

// CleanupDB removes all data from the database.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	if _, err := pool.Exec(ctx, "DELETE FROM products"); err != nil {
		t.Fatalf("failed to cleanup database: %v", err)
	}
}
