package compliance

import "time"

// RuleCache caches the active-rules list between mutations, so a validation
// request does not hit the database once per wizard step.
type RuleCache interface {
	// Get retrieves cached rules, returns nil on cache miss or expiry
	Get() []*Rule

	// Set stores rules in cache
	Set(rules []*Rule)

	// Invalidate clears the cache, forcing a refresh on next Get
	Invalidate()

	// IsValid returns true if cache has valid data
	IsValid() bool
}

// CacheConfig holds configuration for cache behavior.
type CacheConfig struct {
	// TTL is the time-to-live for cached entries.
	// Set to 0 for no expiration (manual invalidation only).
	TTL time.Duration
}

// DefaultCacheConfig returns the defaults used by the engine: no TTL, the
// cache is invalidated only when rules are mutated.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL: 0,
	}
}
