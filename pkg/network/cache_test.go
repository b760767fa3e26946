package network

import "testing"

func TestRequirementCache_UnboundedWhenSizeZero(t *testing.T) {
	c := newRequirementCache(0)
	key := newRequirementKey([]string{"a"}, []string{"b"})

	c.add(key, cachedRequirement{requiredInputs: []string{"a"}})
	got, ok := c.get(key)
	if !ok || len(got.requiredInputs) != 1 {
		t.Fatalf("expected cached entry, got %v ok=%v", got, ok)
	}
	if c.len() != 1 {
		t.Fatalf("len() = %d, want 1", c.len())
	}
}

func TestRequirementCache_BoundedEvictsLeastRecentlyUsed(t *testing.T) {
	c := newRequirementCache(1)

	k1 := newRequirementKey([]string{"a"}, nil)
	k2 := newRequirementKey([]string{"b"}, nil)

	c.add(k1, cachedRequirement{requiredInputs: []string{"a"}})
	c.add(k2, cachedRequirement{requiredInputs: []string{"b"}})

	if _, ok := c.get(k1); ok {
		t.Fatalf("k1 should have been evicted once the bound of 1 was exceeded")
	}
	if _, ok := c.get(k2); !ok {
		t.Fatalf("k2 should still be cached")
	}
}

func TestRequirementCache_Clear(t *testing.T) {
	c := newRequirementCache(0)
	key := newRequirementKey([]string{"a"}, nil)
	c.add(key, cachedRequirement{})
	c.clear()
	if c.len() != 0 {
		t.Fatalf("len() after clear = %d, want 0", c.len())
	}
}
