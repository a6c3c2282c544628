package storage

import (
	"context"
	"errors"
	"sync"
	"testing"
)

func TestMemoryKV(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	if _, err := kv.Get(ctx, "token"); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}

	value := []byte("abc")
	if err := kv.Set(ctx, "token", value); err != nil {
		t.Fatal(err)
	}
	value[0] = 'x'

	got, err := kv.Get(ctx, "token")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "abc" {
		t.Errorf("expected abc (stored copy), got %s", got)
	}
	got[0] = 'y'
	again, _ := kv.Get(ctx, "token")
	if string(again) != "abc" {
		t.Errorf("Get must return a copy, got %s", again)
	}

	if err := kv.Delete(ctx, "token"); err != nil {
		t.Fatal(err)
	}
	if err := kv.Delete(ctx, "token"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
	if _, err := kv.Get(ctx, "token"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("expected ErrKeyNotFound after delete, got %v", err)
	}
}

func TestMemoryKV_Close(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	_ = kv.Set(ctx, "token", []byte("abc"))
	_ = kv.Set(ctx, "user", []byte("{}"))
	if n := kv.Len(); n != 2 {
		t.Errorf("Len() = %d, want 2", n)
	}

	if err := kv.Close(); err != nil {
		t.Fatal(err)
	}
	if n := kv.Len(); n != 0 {
		t.Errorf("Len() after Close = %d, want 0", n)
	}
	if err := kv.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := kv.Get(ctx, "token"); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if err := kv.Set(ctx, "token", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
}

func TestMemoryKV_Concurrent(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = kv.Set(ctx, "token", []byte("v"))
			_, _ = kv.Get(ctx, "token")
			_ = kv.Delete(ctx, "token")
		}()
	}
	wg.Wait()
}
