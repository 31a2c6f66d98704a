package utils

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func withRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() {
		otel.SetTracerProvider(previous)
		_ = provider.Shutdown(context.Background())
	})
	return recorder
}

func attrMap(attrs []attribute.KeyValue) map[string]attribute.Value {
	out := make(map[string]attribute.Value, len(attrs))
	for _, a := range attrs {
		out[string(a.Key)] = a.Value
	}
	return out
}

func TestStartStep_NestsUnderParent(t *testing.T) {
	recorder := withRecorder(t)

	ctx, parent := otel.Tracer("test").Start(context.Background(), "request")
	_, child := StartStep(ctx, "parse_input", attribute.String("input.type", "json"))
	child.End()
	parent.End()

	ended := recorder.Ended()
	require.Len(t, ended, 2)
	assert.Equal(t, "step.parse_input", ended[0].Name())
	assert.Equal(t, parent.SpanContext().SpanID(), ended[0].Parent().SpanID())

	attrs := attrMap(ended[0].Attributes())
	assert.Equal(t, "parse_input", attrs["step.name"].AsString())
	assert.Equal(t, "json", attrs["input.type"].AsString())
}

func TestStepHelpers(t *testing.T) {
	recorder := withRecorder(t)
	ctx := context.Background()

	_, s := TraceSectionValidation(ctx, "DadosPessoais")
	s.End()
	_, s = TraceDatabase(ctx, "upsert", "form_sections", "form_key_section")
	s.End()
	_, s = TraceCache(ctx, "set", "wizard:session:1", CacheTTL(time.Minute))
	s.End()
	_, s = TraceCache(ctx, "get", "wizard:session:1")
	s.End()
	_, s = TraceBusinessLogic(ctx, "submit_client")
	s.End()
	_, s = TraceExternalService(ctx, "viacep", "lookup")
	s.End()

	ended := recorder.Ended()
	require.Len(t, ended, 6)

	names := make([]string, 0, len(ended))
	for _, span := range ended {
		names = append(names, span.Name())
	}
	assert.Equal(t, []string{
		"step.validate_section",
		"step.database_upsert",
		"step.cache_set",
		"step.cache_get",
		"step.business_logic",
		"step.external_service",
	}, names)

	db := attrMap(ended[1].Attributes())
	assert.Equal(t, "mongodb", db["db.system"].AsString())
	assert.Equal(t, "form_sections", db["db.collection"].AsString())

	set := attrMap(ended[2].Attributes())
	assert.Equal(t, "1m0s", set["cache.ttl"].AsString())
	assert.Equal(t, "wizard:session:1", set["cache.key"].AsString())
	assert.NotContains(t, attrMap(ended[3].Attributes()), "cache.ttl")
}

func TestRecordErrorInSpan(t *testing.T) {
	recorder := withRecorder(t)

	_, span := TraceBusinessLogic(context.Background(), "submit_client")
	RecordErrorInSpan(span, errors.New("backend rejected"), attribute.String("wizard.id", "abc"))
	AddSpanAttribute(span, "client.id", "42")
	AddSpanAttribute(span, "attempt", 1)
	AddSpanAttribute(span, "valid", false)
	AddSpanAttribute(span, "section", struct{ Name string }{"Contato"})
	AddTimingToSpan(span, time.Now().Add(-time.Second))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Len(t, ended[0].Events(), 1)
	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "backend rejected", ended[0].Status().Description)

	attrs := attrMap(ended[0].Attributes())
	assert.Equal(t, "abc", attrs["wizard.id"].AsString())
	assert.Equal(t, "42", attrs["client.id"].AsString())
	assert.Equal(t, int64(1), attrs["attempt"].AsInt64())
	assert.False(t, attrs["valid"].AsBool())
	assert.Equal(t, "{Contato}", attrs["section"].AsString())
	assert.GreaterOrEqual(t, attrs["duration_ms"].AsInt64(), int64(1000))
}

func TestRecordErrorInSpan_WithoutAttributes(t *testing.T) {
	recorder := withRecorder(t)

	_, span := TraceInputParsing(context.Background(), "set_field_request")
	RecordErrorInSpan(span, errors.New("invalid json"))
	span.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "invalid json", ended[0].Status().Description)
}
