package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
)

// Builder is the squirrel statement builder configured for PostgreSQL placeholders.
var Builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Sqlizer is implemented by every squirrel builder.
type Sqlizer interface {
	ToSql() (string, []any, error)
}

// Select runs a built query and scans all rows into dst (a pointer to a slice).
func Select(ctx context.Context, q Querier, dst any, query Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	return pgxscan.Select(ctx, q, dst, sql, args...)
}

// Get runs a built query and scans exactly one row into dst.
// It returns pgx.ErrNoRows when the query matches nothing.
func Get(ctx context.Context, q Querier, dst any, query Sqlizer) error {
	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}
	if err := pgxscan.Get(ctx, q, dst, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return pgx.ErrNoRows
		}
		return err
	}
	return nil
}

// Exec runs a built statement and returns the number of affected rows.
func Exec(ctx context.Context, q Querier, stmt Sqlizer) (int64, error) {
	sql, args, err := stmt.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build statement: %w", err)
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// ColumnList joins column names for RETURNING clauses.
func ColumnList(cols []string) string {
	return strings.Join(cols, ", ")
}
