package cache

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"
)

// backendTest exercises the Cache contract shared by every backend.
func backendTest(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	// Miss on unknown key.
	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Errorf("Get(missing) = hit=%v, err=%v", hit, err)
	}

	// Round trip.
	want := []byte("payload")
	if err := c.Set(ctx, "k", want, 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get after Set = hit=%v, err=%v", hit, err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Get = %q, want %q", got, want)
	}

	// Delete, including a missing key.
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Get after Delete still hits")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	backendTest(t, c)
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry still hits")
	}
}

func TestLRUCache(t *testing.T) {
	c, err := NewLRUCache(16)
	if err != nil {
		t.Fatalf("NewLRUCache: %v", err)
	}
	defer c.Close()
	backendTest(t, c)
}

func TestLRUCacheEviction(t *testing.T) {
	c, err := NewLRUCache(2)
	if err != nil {
		t.Fatalf("NewLRUCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set(%s): %v", k, err)
		}
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("oldest entry survived eviction")
	}
	if _, hit, _ := c.Get(ctx, "c"); !hit {
		t.Error("newest entry evicted")
	}
}

func TestLRUCacheExpiry(t *testing.T) {
	c, err := NewLRUCache(4)
	if err != nil {
		t.Fatalf("NewLRUCache: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry still hits")
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, hit, err := c.Get(ctx, "k"); err != nil || hit {
		t.Errorf("NullCache.Get = hit=%v, err=%v, want miss", hit, err)
	}
}

func TestKeyerDistinguishesInputs(t *testing.T) {
	k := NewDefaultKeyer()

	base := k.GraphKey("dependency", "hash1", GraphKeyOpts{})
	variants := []string{
		k.GraphKey("structure", "hash1", GraphKeyOpts{}),
		k.GraphKey("dependency", "hash2", GraphKeyOpts{}),
		k.GraphKey("dependency", "hash1", GraphKeyOpts{MaxDepth: 3}),
		k.GraphKey("dependency", "hash1", GraphKeyOpts{IncludeExternal: true}),
	}
	for i, v := range variants {
		if v == base {
			t.Errorf("variant %d collides with base key", i)
		}
	}

	// Same inputs give the same key.
	if again := k.GraphKey("dependency", "hash1", GraphKeyOpts{}); again != base {
		t.Error("identical inputs produced different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "user:42:")

	key := scoped.LayoutKey("h", LayoutKeyOpts{StepX: 1, StepY: 1})
	plain := inner.LayoutKey("h", LayoutKeyOpts{StepX: 1, StepY: 1})
	if key != "user:42:"+plain {
		t.Errorf("scoped key = %q, want prefix + %q", key, plain)
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	// Non-retryable errors fail immediately.
	calls := 0
	err := RetryWithBackoff(ctx, func() error {
		calls++
		return errors.New("fatal")
	})
	if err == nil || calls != 1 {
		t.Errorf("non-retryable: calls = %d, err = %v", calls, err)
	}

	// Retryable errors are attempted again.
	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errors.New("transient"))
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retryable: calls = %d, err = %v", calls, err)
	}
}
