package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

type testPayload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestCacheHelper_SetGet(t *testing.T) {
	client := newTestClient(t)
	helper := NewCacheHelper(client, "stats:")
	ctx := context.Background()

	in := testPayload{Name: "dashboard", Count: 3}
	if err := helper.Set(ctx, "dashboard", in, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var out testPayload
	if err := helper.Get(ctx, "dashboard", &out); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if out != in {
		t.Errorf("Get() = %+v, want %+v", out, in)
	}

	// Key carries the prefix.
	exists, err := client.Exists(ctx, "stats:dashboard").Result()
	if err != nil || exists != 1 {
		t.Errorf("prefixed key missing: exists=%d err=%v", exists, err)
	}
}

func TestCacheHelper_GetMissing(t *testing.T) {
	helper := NewCacheHelper(newTestClient(t), "stats:")

	var out testPayload
	err := helper.Get(context.Background(), "nope", &out)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelper_Delete(t *testing.T) {
	helper := NewCacheHelper(newTestClient(t), "stats:")
	ctx := context.Background()

	if err := helper.Set(ctx, "dashboard", testPayload{}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := helper.Delete(ctx, "dashboard"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var out testPayload
	if err := helper.Get(ctx, "dashboard", &out); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrCacheNotFound", err)
	}
}

func TestCacheHelper_NilClient(t *testing.T) {
	helper := NewCacheHelper(nil, "stats:")
	ctx := context.Background()

	// Writes degrade to no-ops, reads report the cache as unavailable.
	if err := helper.Set(ctx, "k", testPayload{}, time.Minute); err != nil {
		t.Errorf("Set() with nil client error = %v", err)
	}
	if err := helper.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() with nil client error = %v", err)
	}

	var out testPayload
	if err := helper.Get(ctx, "k", &out); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Get() with nil client error = %v, want ErrCacheNotAvailable", err)
	}
}

func TestCacheManager_Invalidation(t *testing.T) {
	client := newTestClient(t)
	cm := NewCacheManager(client)
	ctx := context.Background()

	if err := cm.Stats.Set(ctx, "dashboard", testPayload{Count: 1}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cm.Course.Set(ctx, "all", testPayload{Count: 2}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := cm.InvalidateDashboard(ctx); err != nil {
		t.Fatalf("InvalidateDashboard() error = %v", err)
	}

	var out testPayload
	if err := cm.Stats.Get(ctx, "dashboard", &out); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("dashboard still cached after invalidation: %v", err)
	}
	// The course list is untouched by a dashboard invalidation.
	if err := cm.Course.Get(ctx, "all", &out); err != nil {
		t.Errorf("course list lost: %v", err)
	}

	if err := cm.InvalidateCourses(ctx); err != nil {
		t.Fatalf("InvalidateCourses() error = %v", err)
	}
	if err := cm.Course.Get(ctx, "all", &out); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("course list still cached after invalidation: %v", err)
	}
}

func TestCacheManager_ClearAll(t *testing.T) {
	client := newTestClient(t)
	cm := NewCacheManager(client)
	ctx := context.Background()

	if err := cm.Stats.Set(ctx, "dashboard", testPayload{}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cm.Course.Set(ctx, "all", testPayload{}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := cm.ClearAll(ctx); err != nil {
		t.Fatalf("ClearAll() error = %v", err)
	}

	keys, err := client.Keys(ctx, "*").Result()
	if err != nil {
		t.Fatalf("Keys() error = %v", err)
	}
	if len(keys) != 0 {
		t.Errorf("keys remaining after ClearAll: %v", keys)
	}
}
