package observability

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
)

func lastLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]interface{}
	if err := json.Unmarshal(lines[len(lines)-1], &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	return entry
}

func TestLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	logger.Info("server started")

	entry := lastLine(t, &buf)
	if entry["msg"] != "server started" {
		t.Errorf("msg = %v, want server started", entry["msg"])
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %v, want INFO", entry["level"])
	}
}

func TestLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	logger.WithField("user_id", "abc").
		WithError(errors.New("connection refused")).
		Error("directory fan-out failed")

	entry := lastLine(t, &buf)
	if entry["user_id"] != "abc" {
		t.Errorf("user_id = %v, want abc", entry["user_id"])
	}
	if entry["error"] != "connection refused" {
		t.Errorf("error = %v, want connection refused", entry["error"])
	}
}

func TestLogger_WithError_Nil(t *testing.T) {
	logger := NewLogger(InfoLevel, &bytes.Buffer{})
	if logger.WithError(nil) != logger {
		t.Error("WithError(nil) should return the same logger")
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(ErrorLevel, &buf)

	logger.Debug("noise")
	logger.Info("noise")
	logger.Warn("noise")

	if buf.Len() != 0 {
		t.Errorf("below-threshold messages should be dropped, got %q", buf.String())
	}

	logger.Error("kept")
	if buf.Len() == 0 {
		t.Error("error messages should pass an error-level filter")
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := WithRequestID(context.Background(), "req-123")
	if got := GetRequestID(ctx); got != "req-123" {
		t.Errorf("GetRequestID = %q, want req-123", got)
	}
	if got := GetRequestID(context.Background()); got != "" {
		t.Errorf("GetRequestID on an empty context = %q, want empty", got)
	}
}

func TestFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(InfoLevel, &buf)

	ctx := WithLogger(context.Background(), logger)
	ctx = WithRequestID(ctx, "req-123")

	FromContext(ctx).Info("handled")

	entry := lastLine(t, &buf)
	if entry["request_id"] != "req-123" {
		t.Errorf("request_id = %v, want req-123", entry["request_id"])
	}
}
