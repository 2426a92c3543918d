package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &payload); err != nil {
		t.Fatalf("invalid json log: %v\n%s", err, buf.String())
	}
	return payload
}

func TestLogger_IncludesStackAndServiceOnError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("test-service", &buf)
	log.Error().Stack().Err(errors.New("boom")).Msg("something failed")

	payload := decodeLine(t, &buf)
	if payload["service"] != "test-service" {
		t.Fatalf("expected service=test-service, got %v", payload["service"])
	}
	if payload["level"] != "error" {
		t.Fatalf("expected level=error, got %v", payload["level"])
	}
	if _, ok := payload["stack"]; !ok {
		t.Fatalf("expected stack field in error log: %s", buf.String())
	}
	if payload["error"] != "boom" {
		t.Fatalf("expected error=boom, got %v", payload["error"])
	}
}

func TestLogger_KeepsPkgErrorsStack(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("svc", &buf)
	log.Error().Stack().Err(pkgerrors.New("wrapped")).Msg("failed")

	payload := decodeLine(t, &buf)
	frames, ok := payload["stack"].([]any)
	if !ok || len(frames) == 0 {
		t.Fatalf("expected stack frames, got %v", payload["stack"])
	}
}

func TestLogger_NoStackWithoutError(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("svc", &buf)
	log.Info().Msg("hello")

	payload := decodeLine(t, &buf)
	if _, ok := payload["stack"]; ok {
		t.Fatalf("did not expect stack on info log")
	}
	if _, ok := payload["time"]; !ok {
		t.Fatalf("expected timestamp")
	}
}
