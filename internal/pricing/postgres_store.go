package pricing

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mkwei/pricelens/internal/profile"
)

// PostgresStore persists quotes in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a PostgreSQL-backed quote audit store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the quotes table if it doesn't exist. cmd/migrate owns
// the canonical schema; this keeps demo deployments working without it.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS quotes (
			id           VARCHAR(36) PRIMARY KEY,
			sku          VARCHAR(64) NOT NULL,
			category     VARCHAR(32) NOT NULL,
			strategy     VARCHAR(20) NOT NULL CHECK (strategy IN ('multiplicative', 'interactive')),
			base_price   NUMERIC(12,2) NOT NULL CHECK (base_price > 0),
			final_price  NUMERIC(12,2) NOT NULL,
			adjustments  JSONB NOT NULL DEFAULT '[]',
			user_profile JSONB NOT NULL DEFAULT '{}',
			quoted_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_quotes_quoted_at
			ON quotes (quoted_at DESC);

		CREATE INDEX IF NOT EXISTS idx_quotes_sku
			ON quotes (sku, quoted_at DESC);
	`)
	return err
}

func (s *PostgresStore) Record(ctx context.Context, quote *Quote) error {
	adjustmentsJSON, err := json.Marshal(quote.Adjustments)
	if err != nil {
		return fmt.Errorf("failed to marshal adjustments: %w", err)
	}
	profileJSON, err := json.Marshal(quote.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO quotes (id, sku, category, strategy, base_price, final_price, adjustments, user_profile, quoted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		quote.ID,
		quote.SKU,
		quote.Category,
		quote.Strategy,
		quote.BasePrice,
		quote.FinalPrice,
		adjustmentsJSON,
		profileJSON,
		quote.QuotedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record quote: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, limit int) ([]*Quote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sku, category, strategy, base_price, final_price, adjustments, user_profile, quoted_at
		FROM quotes
		ORDER BY quoted_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list quotes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var result []*Quote
	for rows.Next() {
		var q Quote
		var adjustmentsJSON, profileJSON []byte
		var quotedAt time.Time

		if err := rows.Scan(&q.ID, &q.SKU, &q.Category, &q.Strategy, &q.BasePrice, &q.FinalPrice, &adjustmentsJSON, &profileJSON, &quotedAt); err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		q.QuotedAt = quotedAt
		_ = json.Unmarshal(adjustmentsJSON, &q.Adjustments)
		var p profile.Profile
		if err := json.Unmarshal(profileJSON, &p); err == nil {
			q.Profile = &p
		}
		result = append(result, &q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quotes: %w", err)
	}
	return result, nil
}
