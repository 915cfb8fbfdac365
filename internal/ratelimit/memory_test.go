package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestCheck_AllowsUpToLimit(t *testing.T) {
	store := newMemoryStore(Policy{Window: 10 * time.Minute, MaxRequests: 3})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		result, err := store.Check(ctx, "user-1")
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}
		if !result.Allowed {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
		expectedRemaining := 3 - (i + 1)
		if result.Remaining != expectedRemaining {
			t.Errorf("Expected remaining %d, got %d", expectedRemaining, result.Remaining)
		}
	}

	result, err := store.Check(ctx, "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if result.Allowed {
		t.Error("Expected fourth request to be rejected")
	}
	if result.Remaining != 0 {
		t.Errorf("Expected remaining 0, got %d", result.Remaining)
	}
	if result.ResetAt.IsZero() {
		t.Error("Expected ResetAt to be set on rejection")
	}
}

func TestCheck_IdentitiesAreIndependent(t *testing.T) {
	store := newMemoryStore(Policy{Window: 10 * time.Minute, MaxRequests: 1})
	ctx := context.Background()

	if result, _ := store.Check(ctx, "user-1"); !result.Allowed {
		t.Fatal("Expected user-1 to be admitted")
	}
	if result, _ := store.Check(ctx, "user-2"); !result.Allowed {
		t.Error("Expected user-2 to be admitted despite user-1 being at limit")
	}
}

// Exactly one of N concurrent checks against a fresh counter with
// MaxRequests=1 may pass.
func TestCheck_ConcurrentAdmissionIsAtomic(t *testing.T) {
	store := newMemoryStore(Policy{Window: 10 * time.Minute, MaxRequests: 1})
	ctx := context.Background()

	const concurrency = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0

	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			result, err := store.Check(ctx, "user-1")
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
				return
			}
			if result.Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != 1 {
		t.Errorf("Expected exactly 1 admission, got %d", allowed)
	}
}

func TestCheck_ExpiredWindowResets(t *testing.T) {
	policy := Policy{Window: 10 * time.Minute, MaxRequests: 2}
	store := newMemoryStore(policy)
	ctx := context.Background()

	// Counter exhausted in a window that has already elapsed
	store.counters["user-1"] = &memoryCounter{
		windowStart: time.Now().Add(-11 * time.Minute),
		count:       2,
	}

	result, err := store.Check(ctx, "user-1")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if !result.Allowed {
		t.Fatal("Expected admission after window expiry")
	}

	// Fresh window: this admission is the first of the new window
	counter := store.counters["user-1"]
	if counter.count != 1 {
		t.Errorf("Expected count 1 in fresh window, got %d", counter.count)
	}
	if time.Since(counter.windowStart) > time.Minute {
		t.Error("Expected window_start to be reset to now")
	}
	if result.Remaining != 1 {
		t.Errorf("Expected remaining 1, got %d", result.Remaining)
	}
}

func TestCheck_RejectionDoesNotIncrement(t *testing.T) {
	store := newMemoryStore(Policy{Window: 10 * time.Minute, MaxRequests: 1})
	ctx := context.Background()

	store.Check(ctx, "user-1")
	store.Check(ctx, "user-1")
	store.Check(ctx, "user-1")

	if count := store.counters["user-1"].count; count != 1 {
		t.Errorf("Expected count to stay at 1 after rejections, got %d", count)
	}
}

func TestNew_UnknownDriver(t *testing.T) {
	if _, err := New(Driver("bogus"), Policy{Window: time.Minute, MaxRequests: 1}); err != ErrInvalidDriver {
		t.Errorf("Expected ErrInvalidDriver, got %v", err)
	}
}

func TestNew_MissingDriverConfig(t *testing.T) {
	if _, err := New(DriverPostgres, Policy{Window: time.Minute, MaxRequests: 1}); err != ErrInvalidConfig {
		t.Errorf("Expected ErrInvalidConfig for postgres without DB, got %v", err)
	}
	if _, err := New(DriverRedis, Policy{Window: time.Minute, MaxRequests: 1}); err != ErrInvalidConfig {
		t.Errorf("Expected ErrInvalidConfig for redis without client, got %v", err)
	}
}
