package redis

import (
	"context"
	"testing"
	"time"

	"github.com/iho/gobooks/internal/report"
)

func TestDigestCacheRoundTrip(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewDigestCache(client, time.Minute)
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx, "bs:key"); err != nil || ok {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := cache.Set(ctx, "bs:key", []byte(`{"assets":1000}`)); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	payload, ok, err := cache.Get(ctx, "bs:key")
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if string(payload) != `{"assets":1000}` {
		t.Fatalf("unexpected payload %s", payload)
	}
}

func TestDigestCacheInvalidate(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewDigestCache(client, time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, "a", []byte("1")); err != nil {
		t.Fatal(err)
	}
	if err := cache.Set(ctx, "b", []byte("2")); err != nil {
		t.Fatal(err)
	}

	if err := cache.Invalidate(ctx, "a"); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}
	if _, ok, _ := cache.Get(ctx, "a"); ok {
		t.Fatal("invalidated key still cached")
	}
	if _, ok, _ := cache.Get(ctx, "b"); !ok {
		t.Fatal("unrelated key was dropped")
	}

	if err := cache.Flush(ctx); err != nil {
		t.Fatalf("flush failed: %v", err)
	}
	if _, ok, _ := cache.Get(ctx, "b"); ok {
		t.Fatal("flushed key still cached")
	}
}

func TestDigestCacheKey(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewDigestCache(client, time.Minute)

	to := time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	snapshot := cache.Key("balance_sheet", report.StatementMeta{ToDate: to})
	period := cache.Key("income_statement", report.StatementMeta{FromDate: &from, ToDate: to})
	scoped := cache.Key("income_statement", report.StatementMeta{FromDate: &from, ToDate: to, EntityUnitID: "unit-a"})

	if snapshot == period || period == scoped {
		t.Fatalf("keys must differ per scope: %s / %s / %s", snapshot, period, scoped)
	}
}
