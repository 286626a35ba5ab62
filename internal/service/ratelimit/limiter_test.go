package ratelimit

import (
	"context"
	"testing"
	"time"
)

func TestAllowConsumesTokens(t *testing.T) {
	l := New()
	if !l.Allow("yahoo", 2, 0.001) {
		t.Fatal("first token should be available")
	}
	if !l.Allow("yahoo", 2, 0.001) {
		t.Fatal("second token should be available")
	}
	if l.Allow("yahoo", 2, 0.001) {
		t.Fatal("bucket should be empty")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0.001) {
		t.Fatal("key a should have a token")
	}
	if !l.Allow("b", 1, 0.001) {
		t.Fatal("draining a must not affect b")
	}
}

func TestAllowRefills(t *testing.T) {
	l := New()
	if !l.Allow("k", 1, 100) {
		t.Fatal("initial token missing")
	}
	if l.Allow("k", 1, 100) {
		t.Fatal("bucket should be empty right after draining")
	}
	time.Sleep(50 * time.Millisecond)
	if !l.Allow("k", 1, 100) {
		t.Fatal("bucket should have refilled")
	}
}

func TestWaitBlocksUntilRefill(t *testing.T) {
	l := New()
	l.Allow("k", 1, 50)

	start := time.Now()
	if err := l.Wait(context.Background(), "k", 1, 50); err != nil {
		t.Fatalf("Wait err = %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("Wait took too long for a 50/s refill")
	}
}

func TestWaitHonorsContext(t *testing.T) {
	l := New()
	l.Allow("k", 1, 0.001)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx, "k", 1, 0.001); err == nil {
		t.Fatal("Wait should fail when the context expires")
	}
}
