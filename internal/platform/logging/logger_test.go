package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func TestLogger_WritesFieldsAndNamedErrors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Output: &buf}).With("component", "signups")

	logger.Warn("toggle paid failed", "signup_id", "s-1", "error", errors.New("store offline"))

	var line map[string]any
	if err := sonic.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("decode log line: %v (raw=%q)", err, buf.String())
	}
	if line["msg"] != "toggle paid failed" {
		t.Fatalf("unexpected msg: %v", line["msg"])
	}
	if line["component"] != "signups" {
		t.Fatalf("expected component field, got %v", line["component"])
	}
	if line["signup_id"] != "s-1" {
		t.Fatalf("unexpected signup_id: %v", line["signup_id"])
	}
	if line["error"] != "store offline" {
		t.Fatalf("unexpected error field: %v", line["error"])
	}
	if caller, _ := line["caller"].(string); !strings.Contains(caller, "logger_test.go") {
		t.Fatalf("expected caller to point at test file, got %q", caller)
	}
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.DebugContext(ctx, "workspace loaded")

	out := buf.String()
	if !strings.Contains(out, `"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`) {
		t.Fatalf("expected trace_id in %q", out)
	}
	if !strings.Contains(out, `"span_id":"00f067aa0ba902b7"`) {
		t.Fatalf("expected span_id in %q", out)
	}
}

func TestLogger_LevelFiltersAndNilSafety(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := New(Options{Level: LevelError, Output: &buf})
	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered, got %q", buf.String())
	}

	var nilLogger *Logger
	nilLogger.Info("no panic")
	if nilLogger.With("k", "v") == nil {
		t.Fatalf("expected With on nil logger to return a usable logger")
	}
}
