package cache

import "testing"

func TestMemoryCache_GetPut(t *testing.T) {
	t.Parallel()

	c := NewMemoryCache()
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

func TestMemoryCache_Overwrite(t *testing.T) {
	t.Parallel()

	c := NewMemoryCache()
	c.Put("fp", "v1")
	c.Put("fp", "v2")

	got, _ := c.Get("fp")
	if got != "v2" {
		t.Errorf("expected overwrite to win, got %q", got)
	}
}
