package presets

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/suite-emprende/internal/pricing"
)

// ErrNotFound is returned when a mode or the quote settings row is missing.
var ErrNotFound = errors.New("preset not found")

// Store reads and updates pricing presets and quote settings.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store over an already migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// List returns the bounds of every stored mode.
func (s *Store) List(ctx context.Context) (pricing.Presets, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT mode, min_margin, max_margin, default_margin
		FROM pricing_presets
		ORDER BY mode
	`)
	if err != nil {
		return nil, fmt.Errorf("query pricing presets: %w", err)
	}
	defer rows.Close()

	presets := make(pricing.Presets)
	for rows.Next() {
		var mode string
		var b pricing.Bounds
		if err := rows.Scan(&mode, &b.MinMargin, &b.MaxMargin, &b.DefaultMargin); err != nil {
			return nil, fmt.Errorf("scan pricing preset: %w", err)
		}
		presets[pricing.Mode(mode)] = b
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pricing presets: %w", err)
	}

	return presets, nil
}

// Get returns the bounds of mode.
func (s *Store) Get(ctx context.Context, mode pricing.Mode) (pricing.Bounds, error) {
	var b pricing.Bounds
	err := s.db.QueryRowContext(ctx, `
		SELECT min_margin, max_margin, default_margin
		FROM pricing_presets
		WHERE mode = ?
	`, string(mode)).Scan(&b.MinMargin, &b.MaxMargin, &b.DefaultMargin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pricing.Bounds{}, fmt.Errorf("mode %s: %w", mode, ErrNotFound)
		}
		return pricing.Bounds{}, fmt.Errorf("query pricing preset %s: %w", mode, err)
	}
	return b, nil
}

// Update replaces the bounds of an existing mode.
func (s *Store) Update(ctx context.Context, mode pricing.Mode, b pricing.Bounds) error {
	if err := b.Validate(); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE pricing_presets
		SET
			min_margin = ?,
			max_margin = ?,
			default_margin = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE mode = ?
	`, b.MinMargin, b.MaxMargin, b.DefaultMargin, string(mode))
	if err != nil {
		return fmt.Errorf("update pricing preset %s: %w", mode, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update pricing preset %s: %w", mode, err)
	}
	if affected == 0 {
		return fmt.Errorf("mode %s: %w", mode, ErrNotFound)
	}
	return nil
}

// TaxRate returns the default IVA percent for new quotes.
func (s *Store) TaxRate(ctx context.Context) (decimal.Decimal, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT tax_rate FROM quote_settings WHERE id = 1`).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Decimal{}, fmt.Errorf("quote settings: %w", ErrNotFound)
		}
		return decimal.Decimal{}, fmt.Errorf("query quote settings: %w", err)
	}

	rate, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse stored tax rate %q: %w", raw, err)
	}
	return rate, nil
}
