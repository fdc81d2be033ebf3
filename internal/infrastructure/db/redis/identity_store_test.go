package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = rdb.Close()
		mr.Close()
	})
	return mr, rdb
}

func TestIdentityStore_SaveLoadDelete(t *testing.T) {
	_, rdb := newTestRedis(t)
	store := NewIdentityStore(rdb, 0)
	ctx := context.Background()
	key := "vetcare:session:sid-1:currentUser"

	got, err := store.Load(ctx, key)
	if err != nil || got != nil {
		t.Fatalf("expected (nil, nil) for missing key, got (%q, %v)", got, err)
	}

	payload := []byte(`{"id":"1","name":"Ana","email":"admin@vetcare.test","role":"admin"}`)
	if err := store.Save(ctx, key, payload); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	got, err = store.Load(ctx, key)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatalf("unexpected payload %q", got)
	}

	for i := 0; i < 2; i++ {
		if err := store.Delete(ctx, key); err != nil {
			t.Fatalf("Delete #%d returned error: %v", i+1, err)
		}
	}
	if got, _ := store.Load(ctx, key); got != nil {
		t.Fatalf("expected key to be gone, got %q", got)
	}
}

func TestIdentityStore_TTL(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()

	if err := NewIdentityStore(rdb, 0).Save(ctx, "no-ttl", []byte("x")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if ttl := mr.TTL("no-ttl"); ttl != 0 {
		t.Fatalf("expected no expiry, got %v", ttl)
	}

	if err := NewIdentityStore(rdb, time.Hour).Save(ctx, "with-ttl", []byte("x")); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if ttl := mr.TTL("with-ttl"); ttl != time.Hour {
		t.Fatalf("expected 1h expiry, got %v", ttl)
	}
}

func TestIdentityStore_Unavailable(t *testing.T) {
	mr, rdb := newTestRedis(t)
	store := NewIdentityStore(rdb, 0)
	mr.Close()

	if _, err := store.Load(context.Background(), "k"); err == nil {
		t.Fatalf("expected error when redis is down")
	}
	if err := store.Save(context.Background(), "k", []byte("v")); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}

func TestConnect_PingFailure(t *testing.T) {
	if _, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 200 * time.Millisecond}); err == nil {
		t.Fatalf("expected ping failure")
	}
}

func TestConfig_Options(t *testing.T) {
	opts := Config{Addr: "cache:6379", DB: 2}.options()
	if opts.Addr != "cache:6379" || opts.DB != 2 {
		t.Fatalf("unexpected options %+v", opts)
	}
	if opts.DialTimeout != defaultTimeout || opts.ReadTimeout != defaultTimeout || opts.WriteTimeout != defaultTimeout {
		t.Fatalf("expected default timeouts, got %v/%v/%v", opts.DialTimeout, opts.ReadTimeout, opts.WriteTimeout)
	}
	if got := (Config{Timeout: time.Second}).options().ReadTimeout; got != time.Second {
		t.Fatalf("custom timeout not applied: %v", got)
	}
}

func TestConnect_Miniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := Connect(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("Connect returned error: %v", err)
	}
	_ = client.Close()
}
