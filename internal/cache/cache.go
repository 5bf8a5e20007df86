// Package cache memoizes compiled chronicles for callers of the chronicle
// service. Entries are keyed by civilization and event-set fingerprint, so a
// changed history never returns a stale chronicle.
package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/talgya/chronicler/internal/chronicle"
)

// Chronicles is an in-memory, expiring chronicle cache.
type Chronicles struct {
	cache *gocache.Cache
}

// New creates a cache whose entries expire after ttl. A ttl of zero or less
// keeps entries until Clear.
func New(ttl time.Duration) *Chronicles {
	cleanup := 10 * time.Minute
	if ttl <= 0 {
		ttl = gocache.NoExpiration
		cleanup = 0
	}
	return &Chronicles{cache: gocache.New(ttl, cleanup)}
}

// Key builds the cache key for a civilization's event fingerprint.
func Key(civID, fingerprint string) string {
	return "chronicle:v1:" + civID + ":" + fingerprint
}

// Get returns the cached chronicle, if any.
func (c *Chronicles) Get(civID, fingerprint string) (*chronicle.CompiledChronicle, bool) {
	if val, found := c.cache.Get(Key(civID, fingerprint)); found {
		return val.(*chronicle.CompiledChronicle), true
	}
	return nil, false
}

// Put stores a chronicle under its own civilization and fingerprint.
func (c *Chronicles) Put(cc *chronicle.CompiledChronicle) {
	c.cache.SetDefault(Key(cc.CivilizationID, cc.Fingerprint), cc)
}

// Len returns the number of cached chronicles, expired ones included until cleanup.
func (c *Chronicles) Len() int {
	return c.cache.ItemCount()
}

// Clear drops every entry.
func (c *Chronicles) Clear() {
	c.cache.Flush()
}
