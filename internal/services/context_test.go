package services_test

import (
	"context"
	"testing"

	"gpu-runtime/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithMethod(ctx, "transcribe")
	ctx = services.WithRequestID(ctx, "req-123")

	if method, ok := services.MethodFromContext(ctx); !ok || method != "transcribe" {
		t.Fatalf("unexpected method: %v %v", method, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestBlankValuesPreserveContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithMethod(ctx, "")
	ctx = services.WithRequestID(ctx, "")
	if _, ok := services.MethodFromContext(ctx); ok {
		t.Fatal("expected no method value")
	}
	if _, ok := services.RequestIDFromContext(ctx); ok {
		t.Fatal("expected no request id value")
	}
}
