package cache

import "testing"

func TestRistrettoCache_GetPut(t *testing.T) {
	t.Parallel()

	c, err := NewRistrettoCache(64)
	if err != nil {
		t.Fatalf("NewRistrettoCache: %v", err)
	}
	defer c.Close()

	if _, ok := c.Get("missing"); ok {
		t.Error("expected a miss on an empty cache")
	}

	c.Put("fp1", "compiled-output")
	got, ok := c.Get("fp1")
	if !ok {
		t.Fatal("expected a hit after Put")
	}
	if got != "compiled-output" {
		t.Errorf("Get = %q, want %q", got, "compiled-output")
	}
}
