package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "workspace", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "admin-1", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "workspace" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	boom := errors.New("boom")

	if _, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
		return 0, boom
	}); !errors.Is(err, boom) {
		t.Fatalf("expected loader error, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected failed load to leave store empty")
	}

	got, err := store.GetOrLoad(context.Background(), "k", func(context.Context) (int, error) {
		return 7, nil
	})
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if got != 7 {
		t.Fatalf("unexpected value: %d", got)
	}
}

func TestStore_SlidingExpiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := NewStore[string](10*time.Minute, Sliding())
	store.now = func() time.Time { return now }

	store.Set(context.Background(), "admin-1", "ws")

	now = now.Add(8 * time.Minute)
	if _, ok := store.Get(context.Background(), "admin-1"); !ok {
		t.Fatalf("expected entry before ttl")
	}

	now = now.Add(8 * time.Minute)
	if _, ok := store.Get(context.Background(), "admin-1"); !ok {
		t.Fatalf("expected sliding get to extend expiry")
	}

	now = now.Add(11 * time.Minute)
	if _, ok := store.Get(context.Background(), "admin-1"); ok {
		t.Fatalf("expected entry to expire after idle ttl")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore[int](time.Minute)
	ctx := context.Background()
	store.Set(ctx, "division:setting:a", 1)
	store.Set(ctx, "division:setting:b", 2)
	store.Set(ctx, "setting:list", 3)

	store.DeletePrefix(ctx, "division:")

	if store.Len() != 1 {
		t.Fatalf("expected one entry left, got %d", store.Len())
	}
	if _, ok := store.Get(ctx, "setting:list"); !ok {
		t.Fatalf("expected unrelated key to survive")
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestStore_GetOrLoad_InvalidationDuringLoad(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	ctx := context.Background()

	started := make(chan struct{})
	release := make(chan struct{})
	staleDone := make(chan string, 1)
	go func() {
		v, _ := store.GetOrLoad(ctx, "announcement:list", func(context.Context) (string, error) {
			close(started)
			<-release
			return "v0", nil
		})
		staleDone <- v
	}()
	<-started

	store.DeletePrefix(ctx, "announcement:")
	got, err := store.GetOrLoad(ctx, "announcement:list", func(context.Context) (string, error) {
		return "v1", nil
	})
	if err != nil {
		t.Fatalf("load after invalidation: %v", err)
	}
	if got != "v1" {
		t.Fatalf("load after invalidation returned %q, want v1", got)
	}

	close(release)
	if v := <-staleDone; v != "v0" {
		t.Fatalf("earlier load returned %q, want v0", v)
	}

	cached, ok := store.Get(ctx, "announcement:list")
	if !ok || cached != "v1" {
		t.Fatalf("cache holds %q (ok=%t), want v1", cached, ok)
	}
}
