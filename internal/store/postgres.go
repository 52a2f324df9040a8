package store

import (
	"context"

	"stocktrack/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productStore implements RecordStore on a PostgreSQL products table.
type productStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductStore creates a PostgreSQL-backed record store.
func NewProductStore(pool *pgxpool.Pool, logger zerolog.Logger) RecordStore {
	return &productStore{
		pool:   pool,
		logger: logger.With().Str("store", "product").Logger(),
	}
}

// ListAll fetches the entire collection, ordered by creation time.
func (s *productStore) ListAll(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, code, price, quantity, low_stock_threshold, category, image_url, created_at, updated_at
		FROM products
		ORDER BY created_at, id
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to query products")
		return nil, &ConnectivityError{Err: err}
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		err := rows.Scan(
			&p.ID, &p.Name, &p.Code, &p.Price, &p.Quantity,
			&p.LowStockThreshold, &p.Category, &p.ImageURL,
			&p.CreatedAt, &p.UpdatedAt,
		)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, &ConnectivityError{Err: err}
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		s.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, &ConnectivityError{Err: err}
	}

	return products, nil
}

// Create persists a new record under a freshly assigned identifier.
func (s *productStore) Create(ctx context.Context, p model.Product) (string, error) {
	id := uuid.NewString()

	query := `
		INSERT INTO products (id, name, code, price, quantity, low_stock_threshold, category, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.pool.Exec(ctx, query,
		id, p.Name, p.Code, p.Price, p.Quantity,
		p.LowStockThreshold, p.Category, p.ImageURL,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("name", p.Name).Msg("failed to insert product")
		return "", &WriteError{Op: "create", Err: err}
	}

	s.logger.Debug().Str("product_id", id).Str("name", p.Name).Msg("product created")
	return id, nil
}

// Replace overwrites every field of an existing record.
func (s *productStore) Replace(ctx context.Context, id string, p model.Product) error {
	query := `
		UPDATE products
		SET name = $2, code = $3, price = $4, quantity = $5,
		    low_stock_threshold = $6, category = $7, image_url = $8, updated_at = $9
		WHERE id = $1
	`

	tag, err := s.pool.Exec(ctx, query,
		id, p.Name, p.Code, p.Price, p.Quantity,
		p.LowStockThreshold, p.Category, p.ImageURL, p.UpdatedAt,
	)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		return &WriteError{Op: "replace", ID: id, Err: err}
	}

	if tag.RowsAffected() == 0 {
		s.logger.Warn().Str("product_id", id).Msg("product vanished before update")
		return &NotFoundError{ID: id}
	}

	s.logger.Debug().Str("product_id", id).Msg("product replaced")
	return nil
}

// Delete removes a record by id.
func (s *productStore) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		return &WriteError{Op: "delete", ID: id, Err: err}
	}

	if tag.RowsAffected() == 0 {
		s.logger.Warn().Str("product_id", id).Msg("product vanished before delete")
		return &NotFoundError{ID: id}
	}

	s.logger.Debug().Str("product_id", id).Msg("product deleted")
	return nil
}
