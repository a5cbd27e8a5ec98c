// Package testutil provides an in-memory database with the service schema for
// repository and usecase tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/fekuna/omnipos-assistant-service/internal/model"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE products (
    id           TEXT PRIMARY KEY,
    workspace_id TEXT NOT NULL,
    name         TEXT NOT NULL,
    sku          TEXT NOT NULL,
    category     TEXT NOT NULL DEFAULT '',
    threshold    INTEGER NOT NULL DEFAULT 20,
    is_active    BOOLEAN NOT NULL DEFAULT 1,
    created_at   TIMESTAMP NOT NULL,
    updated_at   TIMESTAMP NOT NULL
);
CREATE UNIQUE INDEX products_workspace_sku_key ON products (workspace_id, lower(sku));

CREATE TABLE locations (
    id           TEXT PRIMARY KEY,
    workspace_id TEXT NOT NULL,
    name         TEXT NOT NULL,
    type         TEXT NOT NULL,
    city         TEXT NOT NULL,
    is_active    BOOLEAN NOT NULL DEFAULT 1,
    created_at   TIMESTAMP NOT NULL,
    updated_at   TIMESTAMP NOT NULL
);

CREATE TABLE inventory_items (
    id           TEXT PRIMARY KEY,
    workspace_id TEXT NOT NULL,
    product_id   TEXT NOT NULL,
    location_id  TEXT NOT NULL,
    quantity     INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
    threshold    INTEGER NOT NULL DEFAULT 20,
    updated_at   TIMESTAMP NOT NULL,
    UNIQUE (product_id, location_id)
);

CREATE TABLE orders (
    id             TEXT PRIMARY KEY,
    workspace_id   TEXT NOT NULL,
    product_id     TEXT NOT NULL,
    location_id    TEXT NOT NULL,
    to_location_id TEXT,
    type           TEXT NOT NULL,
    quantity       INTEGER NOT NULL CHECK (quantity > 0),
    source         TEXT NOT NULL DEFAULT 'manual',
    note           TEXT NOT NULL DEFAULT '',
    created_at     TIMESTAMP NOT NULL
);

CREATE TABLE command_runs (
    id                TEXT PRIMARY KEY,
    workspace_id      TEXT NOT NULL,
    user_id           TEXT NOT NULL,
    conversation_id   TEXT,
    prompt            TEXT NOT NULL,
    model             TEXT NOT NULL,
    status            TEXT NOT NULL,
    assistant_message TEXT NOT NULL DEFAULT '',
    clarification     TEXT,
    execution_result  TEXT,
    normalized_intent TEXT,
    error             TEXT,
    created_at        TIMESTAMP NOT NULL,
    updated_at        TIMESTAMP NOT NULL,
    confirmed_at      TIMESTAMP,
    executed_at       TIMESTAMP
);
CREATE INDEX command_runs_user_created_idx ON command_runs (user_id, created_at DESC);

CREATE TABLE command_actions (
    id               TEXT PRIMARY KEY,
    run_id           TEXT NOT NULL,
    workspace_id     TEXT NOT NULL,
    user_id          TEXT NOT NULL,
    action_index     INTEGER NOT NULL,
    kind             TEXT NOT NULL,
    action_payload   TEXT NOT NULL,
    resolved_payload TEXT,
    status           TEXT NOT NULL,
    error            TEXT,
    result           TEXT,
    created_at       TIMESTAMP NOT NULL,
    updated_at       TIMESTAMP NOT NULL,
    UNIQUE (run_id, action_index)
);
`

// NewDB opens a private in-memory database. A single connection keeps every
// statement on the same database, so tests must not query outside an open
// transaction while it is in flight.
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(schema)
	require.NoError(t, err)
	return db
}

func SeedProduct(t *testing.T, db *sqlx.DB, workspaceID, name, sku string) *model.Product {
	t.Helper()

	now := time.Now().UTC()
	p := &model.Product{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Name:        name,
		SKU:         sku,
		Category:    "General",
		Threshold:   model.DefaultThreshold,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := db.NamedExecContext(context.Background(), `
        INSERT INTO products (id, workspace_id, name, sku, category, threshold, is_active, created_at, updated_at)
        VALUES (:id, :workspace_id, :name, :sku, :category, :threshold, :is_active, :created_at, :updated_at)`, p)
	require.NoError(t, err)
	return p
}

func SeedLocation(t *testing.T, db *sqlx.DB, workspaceID, name, city string, typ model.LocationType) *model.Location {
	t.Helper()

	now := time.Now().UTC()
	l := &model.Location{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Name:        name,
		Type:        typ,
		City:        city,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	_, err := db.NamedExecContext(context.Background(), `
        INSERT INTO locations (id, workspace_id, name, type, city, is_active, created_at, updated_at)
        VALUES (:id, :workspace_id, :name, :type, :city, :is_active, :created_at, :updated_at)`, l)
	require.NoError(t, err)
	return l
}

func SeedInventory(t *testing.T, db *sqlx.DB, workspaceID, productID, locationID string, quantity, threshold int) {
	t.Helper()

	_, err := db.Exec(`
        INSERT INTO inventory_items (id, workspace_id, product_id, location_id, quantity, threshold, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), workspaceID, productID, locationID, quantity, threshold, time.Now().UTC())
	require.NoError(t, err)
}

// Quantity returns the stored quantity, or -1 when no inventory row exists.
func Quantity(t *testing.T, db *sqlx.DB, productID, locationID string) int {
	t.Helper()

	var qty []int
	err := db.Select(&qty, `SELECT quantity FROM inventory_items WHERE product_id = ? AND location_id = ?`, productID, locationID)
	require.NoError(t, err)
	if len(qty) == 0 {
		return -1
	}
	return qty[0]
}

func CountRows(t *testing.T, db *sqlx.DB, table string) int {
	t.Helper()

	var n int
	require.NoError(t, db.Get(&n, "SELECT count(*) FROM "+table))
	return n
}
