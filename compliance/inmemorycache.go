package compliance

import (
	"sync"
	"time"
)

// InMemoryRuleCache is a thread-safe in-memory implementation of RuleCache.
type InMemoryRuleCache struct {
	rules    []*Rule
	cachedAt time.Time
	config   CacheConfig
	mu       sync.RWMutex
	isValid  bool
}

// NewInMemoryRuleCache creates a new in-memory rule cache.
func NewInMemoryRuleCache(config CacheConfig) *InMemoryRuleCache {
	return &InMemoryRuleCache{
		config:  config,
		isValid: false,
	}
}

// Get retrieves cached rules, or nil if the cache is invalid or expired.
func (c *InMemoryRuleCache) Get() []*Rule {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.isValid {
		return nil
	}

	if c.config.TTL > 0 && time.Since(c.cachedAt) > c.config.TTL {
		return nil
	}

	// Return a copy to prevent external modifications
	rulesCopy := make([]*Rule, len(c.rules))
	copy(rulesCopy, c.rules)
	return rulesCopy
}

// Set stores rules in the cache.
func (c *InMemoryRuleCache) Set(rules []*Rule) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.rules = make([]*Rule, len(rules))
	copy(c.rules, rules)
	c.cachedAt = time.Now()
	c.isValid = true
}

// Invalidate clears the cache.
func (c *InMemoryRuleCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.isValid = false
	c.rules = nil
}

// IsValid returns true if the cache contains unexpired data.
func (c *InMemoryRuleCache) IsValid() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.isValid {
		return false
	}

	if c.config.TTL > 0 {
		return time.Since(c.cachedAt) <= c.config.TTL
	}

	return true
}
