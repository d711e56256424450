package pkglog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

type captureHandler struct {
	attrs map[string]slog.Value
}

func (h *captureHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	if h.attrs == nil {
		h.attrs = make(map[string]slog.Value)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.attrs[a.Key] = a.Value
		return true
	})
	return nil
}

func (h *captureHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	return h
}

func (h *captureHandler) WithGroup(_ string) slog.Handler {
	return h
}

func TestContextHandlerAddsServiceCIDAndSession(t *testing.T) {
	capture := &captureHandler{}
	handler := &contextHandler{Handler: capture}

	ctx := SetCorrelationID(context.Background(), "cid-abc")
	ctx = SetSessionID(ctx, "sid-xyz")
	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)

	if err := handler.Handle(ctx, rec); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if got := capture.attrs["service"].String(); got != ServiceName {
		t.Fatalf("expected service=%s, got %q", ServiceName, got)
	}
	if got := capture.attrs["_cID"].String(); got != "cid-abc" {
		t.Fatalf("expected _cID=cid-abc, got %q", got)
	}
	if got := capture.attrs["session_id"].String(); got != "sid-xyz" {
		t.Fatalf("expected session_id=sid-xyz, got %q", got)
	}
}

func TestContextHandlerSkipsInvalidCID(t *testing.T) {
	capture := &captureHandler{}
	handler := &contextHandler{Handler: capture}

	rec := slog.NewRecord(time.Now(), slog.LevelInfo, "hello", 0)

	if err := handler.Handle(context.Background(), rec); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if _, ok := capture.attrs["_cID"]; ok {
		t.Fatalf("did not expect _cID to be set")
	}
	if _, ok := capture.attrs["session_id"]; ok {
		t.Fatalf("did not expect session_id to be set")
	}
}

func TestNewLoggerRenamesKeysAndFiltersLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelWarn)

	logger.Info("dropped")
	logger.Warn("kept", "k", "v")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected exactly one json line, got %q: %v", buf.String(), err)
	}
	if line["msg"] != "kept" {
		t.Fatalf("unexpected msg: %v", line["msg"])
	}
	if line["severity"] != "WARN" {
		t.Fatalf("unexpected severity: %v", line["severity"])
	}
	if _, ok := line["ts"]; !ok {
		t.Fatalf("expected ts key")
	}
	if line["service"] != ServiceName {
		t.Fatalf("unexpected service: %v", line["service"])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
