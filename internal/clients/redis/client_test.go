package redis

import (
	"context"
	"errors"
	"os"
	"testing"
)

func TestNewClientRequiresAddr(t *testing.T) {
	_, err := NewClient(context.Background(), nil, Config{Addr: "  "})
	if !errors.Is(err, ErrMissingAddr) {
		t.Fatalf("expected ErrMissingAddr, got %v", err)
	}
}

func TestNewClientPings(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}
	rdb, err := NewClient(context.Background(), nil, Config{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer rdb.Close()
	if err := Ping(rdb)(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestNewClientFailsOnUnreachableAddr(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewClient(ctx, nil, Config{Addr: "127.0.0.1:1"}); err == nil {
		t.Fatalf("expected ping failure")
	}
}
