package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/Simplici0/suite-emprende/internal/presets"
	"github.com/Simplici0/suite-emprende/internal/pricing"
)

const defaultCurrency = "CLP"

// Config contains the values required by startup seed. Missing rows are
// inserted; existing rows are only rewritten for the keys listed in
// Settings.Overrides.
type Config struct {
	Settings presets.Settings
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Updates int
}

// Run executes the startup seed in an idempotent way.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	modes := make([]pricing.Mode, 0, len(cfg.Settings.Presets))
	for mode := range cfg.Settings.Presets {
		modes = append(modes, mode)
	}
	sort.Slice(modes, func(i, j int) bool { return modes[i] < modes[j] })

	for _, mode := range modes {
		if err := ensurePreset(ctx, tx, mode, cfg.Settings.Presets[mode], cfg.Settings.Overrides.Mode(mode), &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}
	if err := ensureQuoteSettings(ctx, tx, cfg.Settings.TaxRate, cfg.Settings.Overrides.TaxRate, &stats); err != nil {
		_ = tx.Rollback()
		return Stats{}, err
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensurePreset(ctx context.Context, tx *sql.Tx, mode pricing.Mode, b pricing.Bounds, overwrite bool, stats *Stats) error {
	var current pricing.Bounds
	err := tx.QueryRowContext(ctx, `
		SELECT min_margin, max_margin, default_margin
		FROM pricing_presets
		WHERE mode = ?
	`, string(mode)).Scan(&current.MinMargin, &current.MaxMargin, &current.DefaultMargin)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pricing_presets (mode, min_margin, max_margin, default_margin)
			VALUES (?, ?, ?, ?)
		`, string(mode), b.MinMargin, b.MaxMargin, b.DefaultMargin); err != nil {
			return fmt.Errorf("insert pricing preset %s: %w", mode, err)
		}
		stats.Inserts++
		return nil
	case err != nil:
		return fmt.Errorf("check pricing preset %s: %w", mode, err)
	}

	if !overwrite || current == b {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE pricing_presets
		SET min_margin = ?, max_margin = ?, default_margin = ?, updated_at = CURRENT_TIMESTAMP
		WHERE mode = ?
	`, b.MinMargin, b.MaxMargin, b.DefaultMargin, string(mode)); err != nil {
		return fmt.Errorf("update pricing preset %s: %w", mode, err)
	}
	stats.Updates++
	return nil
}

func ensureQuoteSettings(ctx context.Context, tx *sql.Tx, taxRate decimal.Decimal, overwrite bool, stats *Stats) error {
	var raw string
	err := tx.QueryRowContext(ctx, `SELECT tax_rate FROM quote_settings WHERE id = 1`).Scan(&raw)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO quote_settings (id, tax_rate, currency)
			VALUES (1, ?, ?)
		`, taxRate.String(), defaultCurrency); err != nil {
			return fmt.Errorf("insert quote settings singleton: %w", err)
		}
		stats.Inserts++
		return nil
	case err != nil:
		return fmt.Errorf("check quote settings existence: %w", err)
	}

	current, err := decimal.NewFromString(raw)
	if err == nil && (!overwrite || current.Equal(taxRate)) {
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE quote_settings
		SET tax_rate = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`, taxRate.String()); err != nil {
		return fmt.Errorf("update quote settings: %w", err)
	}
	stats.Updates++
	return nil
}
