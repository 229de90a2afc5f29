package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestWithSession_SessionFromCtx(t *testing.T) {
	want := Session{ID: "sess-123", ExpiresAt: time.Now().Add(time.Hour)}
	ctx := WithSession(context.Background(), want)

	got, err := SessionFromCtx(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != want.ID {
		t.Fatalf("expected %q, got %q", want.ID, got.ID)
	}
}

func TestSessionFromCtx_EmptyContext(t *testing.T) {
	_, err := SessionFromCtx(context.Background())
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionFromCtx_EmptyID(t *testing.T) {
	ctx := WithSession(context.Background(), Session{})
	_, err := SessionFromCtx(ctx)
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound for empty session id, got %v", err)
	}
}

func TestSessionFromCtx_Isolation(t *testing.T) {
	ctx1 := WithSession(context.Background(), Session{ID: "one"})
	ctx2 := WithSession(context.Background(), Session{ID: "two"})

	got1, _ := SessionFromCtx(ctx1)
	got2, _ := SessionFromCtx(ctx2)

	if got1.ID != "one" {
		t.Fatalf("ctx1: expected %q, got %q", "one", got1.ID)
	}
	if got2.ID != "two" {
		t.Fatalf("ctx2: expected %q, got %q", "two", got2.ID)
	}
}
