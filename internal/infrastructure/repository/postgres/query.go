package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	qb "github.com/riskibarqy/rotation-engine/internal/platform/querybuilder"
)

// liveRow restricts a select to rows that are not soft-deleted.
func liveRow(key string, id int64) []qb.Condition {
	return []qb.Condition{qb.Eq(key, id), qb.IsNull("deleted_at")}
}

// getOne scans at most one row into T. found is false when nothing matches.
func getOne[T any](ctx context.Context, db sqlx.QueryerContext, q *qb.SelectBuilder, what string, args ...any) (T, bool, error) {
	var row T
	query, params, err := q.Limit(1).ToSQL()
	if err != nil {
		return row, false, crerr.Wrapf(err, "build select %s query", what)
	}
	if err := sqlx.GetContext(ctx, db, &row, query, params...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return row, false, nil
		}
		return row, false, crerr.Wrapf(err, "select %s", describe(what, args))
	}
	return row, true, nil
}

func selectAll[T any](ctx context.Context, db sqlx.QueryerContext, q *qb.SelectBuilder, what string, args ...any) ([]T, error) {
	query, params, err := q.ToSQL()
	if err != nil {
		return nil, crerr.Wrapf(err, "build select %s query", what)
	}
	var rows []T
	if err := sqlx.SelectContext(ctx, db, &rows, query, params...); err != nil {
		return nil, crerr.Wrapf(err, "select %s", describe(what, args))
	}
	return rows, nil
}

// describe renders e.g. "games season=3" for error messages.
func describe(what string, args []any) string {
	if len(args) < 2 {
		return what
	}
	return fmt.Sprintf("%s %v=%v", what, args[0], args[1])
}
