package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_SetGetDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, found, _ := s.Get(ctx, "missing"); found {
		t.Fatalf("missing key reported found")
	}
	if err := s.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("set err=%v", err)
	}
	got, found, err := s.Get(ctx, "k")
	if err != nil || !found || string(got) != "v" {
		t.Fatalf("got=%q found=%v err=%v", got, found, err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete err=%v", err)
	}
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatalf("deleted key reported found")
	}
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if err := s.Set(ctx, "k", []byte("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("set err=%v", err)
	}
	time.Sleep(20 * time.Millisecond)
	if _, found, _ := s.Get(ctx, "k"); found {
		t.Fatalf("expired key reported found")
	}
}

func TestMemoryStore_GetReturnsCopy(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Set(ctx, "k", []byte("abc"), 0)
	got, _, _ := s.Get(ctx, "k")
	got[0] = 'z'
	again, _, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("stored value mutated via returned slice: %q", again)
	}
}
