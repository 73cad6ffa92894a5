package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/odpi/itinfra/pkg/logger"
)

func TestContextValuesRoundTrip(t *testing.T) {
	ctx := WithTraceID(context.Background(), "trace-1")
	ctx = WithUserID(ctx, "garygeeke")
	ctx = WithServerName(ctx, "cocoMDS1")

	if GetTraceID(ctx) != "trace-1" || GetUserID(ctx) != "garygeeke" || GetServerName(ctx) != "cocoMDS1" {
		t.Fatalf("context values not preserved")
	}
	if WithTraceID(ctx, "") != ctx {
		t.Fatalf("empty trace id should not derive a new context")
	}
	if GetUserID(context.Background()) != "" {
		t.Fatalf("expected empty user for bare context")
	}
}

func TestLogRequestLevels(t *testing.T) {
	base := logger.New(logger.LoggingConfig{Level: "debug", Format: "json"})
	var buf bytes.Buffer
	base.Entry.Logger.SetOutput(&buf)
	log := New("http", base)

	ctx := WithTraceID(context.Background(), "t-42")
	log.LogRequest(ctx, http.MethodGet, "/servers/x", http.StatusInternalServerError, 15*time.Millisecond)

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if line["level"] != "error" {
		t.Fatalf("expected error level for 5xx, got %v", line["level"])
	}
	if line["trace_id"] != "t-42" {
		t.Fatalf("expected trace id, got %v", line["trace_id"])
	}
}

func TestNewTraceIDIsUnique(t *testing.T) {
	a, b := NewTraceID(), NewTraceID()
	if a == b || strings.TrimSpace(a) == "" {
		t.Fatalf("trace ids should be unique and non-empty: %q %q", a, b)
	}
}
