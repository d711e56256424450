package pkglog

import (
	"context"
	"testing"
)

func TestCorrelationID(t *testing.T) {
	ctx := context.Background()
	if got := GetCorrelationID(ctx); got != "[invalid_chain_id]" {
		t.Fatalf("expected invalid chain id, got %q", got)
	}

	ctx = SetCorrelationID(ctx, "cid-123")
	if got := GetCorrelationID(ctx); got != "cid-123" {
		t.Fatalf("expected cid-123, got %q", got)
	}
}

func TestSessionID(t *testing.T) {
	ctx := context.Background()
	if got := GetSessionID(ctx); got != "" {
		t.Fatalf("expected empty session id, got %q", got)
	}

	ctx = SetSessionID(ctx, "sid-1")
	if got := GetSessionID(ctx); got != "sid-1" {
		t.Fatalf("expected sid-1, got %q", got)
	}
}
