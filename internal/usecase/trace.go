package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/riskibarqy/rotation-engine/internal/usecase")

// startSpan opens a child span only when the caller is already traced, so a
// plain CLI run records nothing.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func gameAttr(gameID int64) attribute.KeyValue {
	return attribute.Int64("rotation.game_id", gameID)
}

func seasonAttr(seasonID int64) attribute.KeyValue {
	return attribute.Int64("rotation.season_id", seasonID)
}
