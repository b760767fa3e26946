package network

import (
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

// requirementKey is the canonical EvaluateComputationRequirements cache key:
// sorted, comma-joined input and output slot names.
type requirementKey struct {
	inputs  string
	outputs string
}

func newRequirementKey(sortedInputs, sortedOutputs []string) requirementKey {
	return requirementKey{
		inputs:  strings.Join(sortedInputs, ","),
		outputs: strings.Join(sortedOutputs, ","),
	}
}

// cachedRequirement is EvaluateComputationRequirements' memoized result.
type cachedRequirement struct {
	requiredInputs []string
	plan           []PlanStep
}

// requirementCache memoizes EvaluateComputationRequirements by (sorted
// available inputs, sorted requested outputs). A size of 0 means unbounded,
// matching config.Config.MaxRequirementCacheEntries; any other size is
// backed by an LRU so a long-running network's cache doesn't grow without
// bound as it's called with varying input/output combinations.
type requirementCache struct {
	unbounded map[requirementKey]cachedRequirement
	bounded   *lru.Cache
}

func newRequirementCache(size int) *requirementCache {
	if size <= 0 {
		return &requirementCache{unbounded: make(map[requirementKey]cachedRequirement)}
	}
	c, err := lru.New(size)
	if err != nil {
		// config.Validate rejects negative sizes before this is ever
		// reached; New only errors on size <= 0, which is handled above.
		return &requirementCache{unbounded: make(map[requirementKey]cachedRequirement)}
	}
	return &requirementCache{bounded: c}
}

func (c *requirementCache) get(key requirementKey) (cachedRequirement, bool) {
	if c.bounded != nil {
		v, ok := c.bounded.Get(key)
		if !ok {
			return cachedRequirement{}, false
		}
		return v.(cachedRequirement), true
	}
	v, ok := c.unbounded[key]
	return v, ok
}

func (c *requirementCache) add(key requirementKey, val cachedRequirement) {
	if c.bounded != nil {
		c.bounded.Add(key, val)
		return
	}
	c.unbounded[key] = val
}

func (c *requirementCache) clear() {
	if c.bounded != nil {
		c.bounded.Purge()
		return
	}
	c.unbounded = make(map[requirementKey]cachedRequirement)
}

func (c *requirementCache) len() int {
	if c.bounded != nil {
		return c.bounded.Len()
	}
	return len(c.unbounded)
}
