package utils

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "app-cadastro"

// StartStep opens a child span named "step.<name>" for one stage of a request
func StartStep(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs, attribute.String("step.name", name))
	return otel.Tracer(tracerName).Start(ctx, "step."+name, trace.WithAttributes(attrs...))
}

// TraceInputParsing traces request body decoding
func TraceInputParsing(ctx context.Context, inputType string) (context.Context, trace.Span) {
	return StartStep(ctx, "parse_input", attribute.String("input.type", inputType))
}

// TraceSectionValidation traces validation of one wizard section
func TraceSectionValidation(ctx context.Context, section string) (context.Context, trace.Span) {
	return StartStep(ctx, "validate_section", attribute.String("validation.section", section))
}

// TraceDatabase traces a MongoDB operation (find, upsert, delete, insert)
func TraceDatabase(ctx context.Context, operation, collection, filter string) (context.Context, trace.Span) {
	return StartStep(ctx, "database_"+operation,
		attribute.String("db.system", "mongodb"),
		attribute.String("db.operation", operation),
		attribute.String("db.collection", collection),
		attribute.String("db.filter", filter),
	)
}

// TraceCache traces a Redis operation on key (get, set, delete)
func TraceCache(ctx context.Context, operation, key string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append(attrs,
		attribute.String("cache.operation", operation),
		attribute.String("cache.key", key),
	)
	return StartStep(ctx, "cache_"+operation, attrs...)
}

// CacheTTL is the attribute recorded on cache writes
func CacheTTL(ttl time.Duration) attribute.KeyValue {
	return attribute.String("cache.ttl", ttl.String())
}

// TraceBusinessLogic traces business logic operations
func TraceBusinessLogic(ctx context.Context, logicType string) (context.Context, trace.Span) {
	return StartStep(ctx, "business_logic", attribute.String("logic.type", logicType))
}

// TraceExternalService traces calls to the lending backend and ViaCEP
func TraceExternalService(ctx context.Context, serviceName, operation string) (context.Context, trace.Span) {
	return StartStep(ctx, "external_service",
		attribute.String("service.name", serviceName),
		attribute.String("service.operation", operation),
	)
}

// AddTimingToSpan records the time elapsed since start
func AddTimingToSpan(span trace.Span, start time.Time) {
	duration := time.Since(start)
	span.SetAttributes(
		attribute.Int64("duration_ms", duration.Milliseconds()),
		attribute.String("duration", duration.String()),
	)
}

// RecordErrorInSpan marks the span failed
func RecordErrorInSpan(span trace.Span, err error, attrs ...attribute.KeyValue) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if len(attrs) > 0 {
		span.SetAttributes(attrs...)
	}
}

// AddSpanAttribute adds a single attribute of a basic type to a span
func AddSpanAttribute(span trace.Span, key string, value interface{}) {
	var kv attribute.KeyValue
	switch v := value.(type) {
	case string:
		kv = attribute.String(key, v)
	case int:
		kv = attribute.Int(key, v)
	case int64:
		kv = attribute.Int64(key, v)
	case bool:
		kv = attribute.Bool(key, v)
	case float64:
		kv = attribute.Float64(key, v)
	default:
		kv = attribute.String(key, fmt.Sprint(v))
	}
	span.SetAttributes(kv)
}
