package app

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/rotation-engine/internal/config"
	"github.com/riskibarqy/rotation-engine/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

const maxTracedQueryLength = 512

// openDatabase opens a traced postgres handle and checks it is reachable.
func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open(
		"postgres",
		cfg.DatabaseURL(),
		otelsql.WithDBName(cfg.DatabaseName()),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: ping database: %w", usecase.ErrDependencyUnavailable, err)
	}
	return db, nil
}

// traceQuery collapses whitespace and caps the statement recorded on spans.
func traceQuery(query string) string {
	out := strings.Join(strings.Fields(query), " ")
	if len(out) <= maxTracedQueryLength {
		return out
	}
	cut := maxTracedQueryLength
	for cut > 0 && !utf8.RuneStart(out[cut]) {
		cut--
	}
	return out[:cut] + "..."
}
