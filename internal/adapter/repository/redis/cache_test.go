package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iho/goexpense/internal/usecase"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "report:user-1:personal", []byte(`{"mode":"personal"}`), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "report:user-1:personal")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if string(val) != `{"mode":"personal"}` {
		t.Fatalf("unexpected value %s", val)
	}

	if !mr.Exists(cache.prefix + "report:user-1:personal") {
		t.Fatalf("expected key to be stored under the cache prefix")
	}
}

func TestCacheGetMiss(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	_, err := NewCache(client).Get(context.Background(), "missing")
	if !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
}

func TestCacheExpires(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "short", []byte("v"), time.Second); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	if _, err := cache.Get(ctx, "short"); !errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected key to expire, got %v", err)
	}
}

func TestCacheDeleteMany(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := cache.Set(ctx, key, []byte(key), time.Minute); err != nil {
			t.Fatalf("set %s failed: %v", key, err)
		}
	}

	if err := cache.Delete(ctx, "a", "b", "never-set"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	for _, key := range []string{"a", "b"} {
		if _, err := cache.Get(ctx, key); !errors.Is(err, usecase.ErrCacheMiss) {
			t.Fatalf("expected %s to be deleted, got %v", key, err)
		}
	}

	if _, err := cache.Get(ctx, "c"); err != nil {
		t.Fatalf("expected c to survive, got %v", err)
	}

	if err := cache.Delete(ctx); err != nil {
		t.Fatalf("empty delete failed: %v", err)
	}
}

func TestCacheServerDown(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer client.Close()
	mr.Close()

	_, err := NewCache(client).Get(context.Background(), "key")
	if err == nil || errors.Is(err, usecase.ErrCacheMiss) {
		t.Fatalf("expected connection error, got %v", err)
	}
}
