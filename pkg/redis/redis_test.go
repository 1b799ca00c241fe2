package redis

import (
	"context"
	"testing"

	"github.com/wonny/vulture/pkg/config"
)

func TestDisabledClient(t *testing.T) {
	cfg := &config.Config{}
	cfg.Redis.Enabled = false

	client, err := New(cfg)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if client.Enabled() {
		t.Error("expected disabled client")
	}

	if err := client.Close(); err != nil {
		t.Errorf("Close() on disabled client failed: %v", err)
	}
}

func TestCacheNoopWhenDisabled(t *testing.T) {
	client := &Client{enabled: false}
	cache := NewCache(client, "vulture")
	ctx := context.Background()

	if err := cache.Set(ctx, "listing:kospi", []string{"005930"}, 0); err != nil {
		t.Errorf("Set() on disabled cache failed: %v", err)
	}

	var dest []string
	found, err := cache.Get(ctx, "listing:kospi", &dest)
	if err != nil {
		t.Errorf("Get() on disabled cache failed: %v", err)
	}
	if found {
		t.Error("disabled cache must always miss")
	}

	if err := cache.Delete(ctx, "listing:kospi"); err != nil {
		t.Errorf("Delete() on disabled cache failed: %v", err)
	}
}
