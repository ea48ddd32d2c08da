package redis

import (
	"context"
	"os"
	"testing"
)

// Runs only when REDIS_ADDR points at a disposable server.
func TestStore(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	ctx := context.Background()
	s, err := New(ctx, Conf{Addr: addr, DB: 15})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer s.Close()

	key := "ratecraft-test-title"
	defer s.Delete(ctx, key)

	if _, found, err := s.Get(ctx, key); err != nil || found {
		t.Fatalf("Get on missing key = (found=%v, err=%v)", found, err)
	}
	if err := s.Set(ctx, key, "Studio"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, found, err := s.Get(ctx, key)
	if err != nil || !found || v != "Studio" {
		t.Errorf("Get = (%q, %v, %v)", v, found, err)
	}
	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, found, _ := s.Get(ctx, key); found {
		t.Error("expected key to be deleted")
	}
}

func TestNew_Unreachable(t *testing.T) {
	_, err := New(context.Background(), Conf{Addr: "127.0.0.1:1"})
	if err == nil {
		t.Error("expected error for unreachable server")
	}
}
