// internal/cache/lru_test.go

package cache

import "testing"

func TestLRUEviction(t *testing.T) {
	c := New(2)
	c.Add("a", 1)
	c.Add("b", 2)

	// Touch "a" so "b" becomes the eviction candidate.
	if v, ok := c.Get("a"); !ok || v.(int) != 1 {
		t.Fatalf("Get(a) = %v, %v", v, ok)
	}

	c.Add("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a to survive")
	}
	if c.Len() != 2 {
		t.Fatalf("Len = %d, want 2", c.Len())
	}
}

func TestLRUUpdate(t *testing.T) {
	c := New(2)
	c.Add("a", 1)
	c.Add("a", 2)
	if v, _ := c.Get("a"); v.(int) != 2 {
		t.Fatalf("update lost: %v", v)
	}
	if c.Len() != 1 {
		t.Fatalf("Len = %d, want 1", c.Len())
	}
}
