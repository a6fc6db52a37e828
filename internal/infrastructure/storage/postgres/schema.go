package postgres

import (
	"context"
	"fmt"

	"confeito/pkg/logger"
)

// createStatements bootstrap the schema on an empty database.
var createStatements = []string{
	`CREATE TABLE IF NOT EXISTS ingredients (
		id UUID PRIMARY KEY,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 1,
		name TEXT NOT NULL UNIQUE,
		total_price NUMERIC(18,6) NOT NULL DEFAULT 0,
		purchased_quantity NUMERIC(18,6) NOT NULL DEFAULT 0,
		unit TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS clients (
		id UUID PRIMARY KEY,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 1,
		name TEXT NOT NULL,
		birthday DATE NOT NULL,
		address TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS recipes (
		id UUID PRIMARY KEY,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 1,
		name TEXT NOT NULL,
		selling_price NUMERIC(18,6) NOT NULL DEFAULT 0,
		labor_pct NUMERIC(9,4) NOT NULL DEFAULT 0,
		overhead_pct NUMERIC(9,4) NOT NULL DEFAULT 0,
		portions INTEGER NOT NULL DEFAULT 1
	)`,
	`CREATE TABLE IF NOT EXISTS recipe_lines (
		recipe_id UUID NOT NULL REFERENCES recipes(id),
		ingredient_id UUID NOT NULL REFERENCES ingredients(id),
		quantity_used NUMERIC(18,6) NOT NULL,
		line_no INTEGER NOT NULL,
		PRIMARY KEY (recipe_id, line_no)
	)`,
	`CREATE TABLE IF NOT EXISTS purchases (
		id UUID PRIMARY KEY,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by TEXT NOT NULL DEFAULT '',
		updated_by TEXT NOT NULL DEFAULT '',
		date TIMESTAMPTZ NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		client_id UUID NOT NULL REFERENCES clients(id),
		flat_discount NUMERIC(18,6) NOT NULL DEFAULT 0,
		pct_discount NUMERIC(9,4) NOT NULL DEFAULT 0,
		discount_enabled BOOLEAN NOT NULL DEFAULT FALSE
	)`,
	`CREATE TABLE IF NOT EXISTS purchase_items (
		purchase_id UUID NOT NULL REFERENCES purchases(id),
		recipe_id UUID NOT NULL REFERENCES recipes(id),
		quantity NUMERIC(18,6) NOT NULL,
		line_no INTEGER NOT NULL,
		PRIMARY KEY (purchase_id, line_no)
	)`,
	`CREATE TABLE IF NOT EXISTS expenses (
		id UUID PRIMARY KEY,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 1,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_by TEXT NOT NULL DEFAULT '',
		updated_by TEXT NOT NULL DEFAULT '',
		date TIMESTAMPTZ NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		description TEXT NOT NULL,
		amount NUMERIC(18,6) NOT NULL,
		category TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		deletion_mark BOOLEAN NOT NULL DEFAULT FALSE,
		version INTEGER NOT NULL DEFAULT 1,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sys_audit (
		id UUID PRIMARY KEY,
		entity_type TEXT NOT NULL,
		entity_id UUID NOT NULL,
		action TEXT NOT NULL,
		user_id TEXT NOT NULL DEFAULT '',
		changes JSONB,
		changes_compressed BYTEA,
		compression_algo TEXT NOT NULL DEFAULT 'none',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_purchases_date ON purchases(date)`,
	`CREATE INDEX IF NOT EXISTS idx_purchases_client ON purchases(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`,
	`CREATE INDEX IF NOT EXISTS idx_sys_audit_entity ON sys_audit(entity_type, entity_id)`,
}

// evolveStatements bring an older database forward. Only additive
// changes with defaults are allowed so existing rows survive untouched.
var evolveStatements = []string{
	`ALTER TABLE ingredients ADD COLUMN IF NOT EXISTS unit TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE clients ADD COLUMN IF NOT EXISTS address TEXT NOT NULL DEFAULT ''`,
	`ALTER TABLE recipes ADD COLUMN IF NOT EXISTS labor_pct NUMERIC(9,4) NOT NULL DEFAULT 0`,
	`ALTER TABLE recipes ADD COLUMN IF NOT EXISTS overhead_pct NUMERIC(9,4) NOT NULL DEFAULT 0`,
	`ALTER TABLE recipes ADD COLUMN IF NOT EXISTS portions INTEGER NOT NULL DEFAULT 1`,
	`ALTER TABLE purchases ADD COLUMN IF NOT EXISTS flat_discount NUMERIC(18,6) NOT NULL DEFAULT 0`,
	`ALTER TABLE purchases ADD COLUMN IF NOT EXISTS pct_discount NUMERIC(9,4) NOT NULL DEFAULT 0`,
	`ALTER TABLE purchases ADD COLUMN IF NOT EXISTS discount_enabled BOOLEAN NOT NULL DEFAULT FALSE`,
	`ALTER TABLE expenses ADD COLUMN IF NOT EXISTS description TEXT NOT NULL DEFAULT ''`,
}

// Bootstrap creates missing tables and applies additive schema evolution.
// Safe to run on every startup.
func Bootstrap(ctx context.Context, txManager *TxManager) error {
	return txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		querier := txManager.GetQuerier(ctx)
		for _, stmt := range createStatements {
			if _, err := querier.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("bootstrap schema: %w", err)
			}
		}
		for _, stmt := range evolveStatements {
			if _, err := querier.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("evolve schema: %w", err)
			}
		}
		logger.Info(ctx, "database schema up to date")
		return nil
	})
}
