package store

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

//go:embed schema.sql
var schema string

// EnsureSchema creates any missing tables in the connection's search_path.
// Existing tables are left as they are; there is no versioning.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, schemaName string) error {
	if schemaName != "" {
		_, err := pool.Exec(ctx, fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %q", schemaName))
		if err != nil {
			return fmt.Errorf("failed to create schema %s: %w", schemaName, err)
		}
	}

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	return nil
}
