// Package pool implements the bounded, time-expiring cache that makes
// repeated toolset resolution cheap. Entries expire a fixed duration after
// insertion and are checked lazily on access; there is no background sweep.
//
// Cache hits are lock-free reads. The entire miss path (re-check, eviction,
// load, insert) runs under one process-wide mutex, so the loader is invoked
// at most once per miss episode even when many callers race on the same
// cold or expired id. The lock is global rather than per-key, so a slow
// load for one id blocks misses for all other ids.
package pool

import (
	"context"
	"sync"
	"time"

	"toolhub/internal/toolset"
	"toolhub/pkg/logging"
)

// LoaderFunc loads a toolset on a cache miss. The id is already normalized.
type LoaderFunc func(ctx context.Context, id string) (*toolset.Toolset, error)

type entry struct {
	value      *toolset.Toolset
	insertedAt time.Time
}

// Pool is a thread-safe toolset cache with a maximum entry count and a
// fixed expire-after-insert window.
type Pool struct {
	entries sync.Map // normalized id -> *entry

	maxSize int
	ttl     time.Duration

	// mu serializes the entire miss path and all writes.
	mu sync.Mutex

	// now is replaceable in tests.
	now func() time.Time
}

// New creates a pool with the given entry ceiling and expiration window.
func New(maxSize int, ttl time.Duration) *Pool {
	logging.Info("Pool", "Initialized toolset pool with maxSize=%d, ttl=%s", maxSize, ttl)
	return &Pool{
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

func (p *Pool) expired(e *entry) bool {
	return p.now().Sub(e.insertedAt) > p.ttl
}

// GetOrLoad returns the cached toolset for id, loading it via loaderFn on a
// miss or after expiry. All concurrent callers during one miss episode
// observe the same result, and loaderFn runs at most once for it. A failed
// or empty load is not cached, so the next call retries.
func (p *Pool) GetOrLoad(ctx context.Context, id string, loaderFn LoaderFunc) (*toolset.Toolset, error) {
	id = toolset.NormalizeID(id)

	// Fast path: lock-free hit.
	if v, ok := p.entries.Load(id); ok {
		e := v.(*entry)
		if !p.expired(e) {
			logging.Debug("Pool", "Cache hit for toolset: %s", id)
			e.value.Touch()
			return e.value, nil
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Re-check under the lock: another caller may have completed the load.
	if v, ok := p.entries.Load(id); ok {
		e := v.(*entry)
		if !p.expired(e) {
			logging.Debug("Pool", "Cache hit after lock for toolset: %s", id)
			e.value.Touch()
			return e.value, nil
		}
	}

	p.evictLocked()

	value, err := loaderFn(ctx, id)
	if err != nil {
		return nil, err
	}
	if value == nil || len(value.Tools) == 0 {
		logging.Warn("Pool", "Loader returned no tools for toolset: %s, not caching", id)
		return value, nil
	}

	p.entries.Store(id, &entry{value: value, insertedAt: p.now()})
	logging.Info("Pool", "Cached toolset: %s (cache size: %d)", id, p.Size())
	return value, nil
}

// Put inserts a toolset directly, bypassing the loader. It takes the same
// lock as the miss path, so a concurrent Put and GetOrLoad on the same id
// serialize instead of racing.
func (p *Pool) Put(id string, value *toolset.Toolset) {
	id = toolset.NormalizeID(id)

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.entries.Load(id); !exists {
		p.evictLocked()
	}
	p.entries.Store(id, &entry{value: value, insertedAt: p.now()})
	logging.Debug("Pool", "Put toolset in cache: %s", id)
}

// Get returns the cached toolset without loading. An expired entry is
// removed and reported as absent.
func (p *Pool) Get(id string) (*toolset.Toolset, bool) {
	id = toolset.NormalizeID(id)

	v, ok := p.entries.Load(id)
	if !ok {
		return nil, false
	}
	e := v.(*entry)
	if p.expired(e) {
		// Only remove the entry we observed. A concurrent Put or miss-path
		// insert may have replaced it with a fresh one, which must survive.
		p.entries.CompareAndDelete(id, v)
		return nil, false
	}
	e.value.Touch()
	return e.value, true
}

// Evict removes a toolset from the cache. It reports whether an entry was
// present.
func (p *Pool) Evict(id string) bool {
	id = toolset.NormalizeID(id)

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.entries.Load(id); !ok {
		return false
	}
	p.entries.Delete(id)
	logging.Debug("Pool", "Evicted toolset from cache: %s", id)
	return true
}

// Clear removes all cached toolsets.
func (p *Pool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	count := 0
	p.entries.Range(func(k, _ any) bool {
		p.entries.Delete(k)
		count++
		return true
	})
	logging.Info("Pool", "Cleared %d toolsets from cache", count)
}

// Size returns the number of cached entries, including any that have
// expired but not yet been collected.
func (p *Pool) Size() int {
	n := 0
	p.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Keys returns the ids of all live (non-expired) entries.
func (p *Pool) Keys() []string {
	var keys []string
	p.entries.Range(func(k, v any) bool {
		if !p.expired(v.(*entry)) {
			keys = append(keys, k.(string))
		}
		return true
	})
	return keys
}

// evictLocked removes expired entries, then frees one slot by evicting the
// oldest-inserted entry if the pool is still at or over capacity. Must be
// called with mu held.
func (p *Pool) evictLocked() {
	p.entries.Range(func(k, v any) bool {
		if p.expired(v.(*entry)) {
			p.entries.Delete(k)
		}
		return true
	})

	if p.Size() < p.maxSize {
		return
	}

	var oldestKey string
	var oldestAt time.Time
	p.entries.Range(func(k, v any) bool {
		e := v.(*entry)
		if oldestKey == "" || e.insertedAt.Before(oldestAt) {
			oldestKey = k.(string)
			oldestAt = e.insertedAt
		}
		return true
	})

	if oldestKey != "" {
		p.entries.Delete(oldestKey)
		logging.Debug("Pool", "Evicted oldest toolset from cache: %s", oldestKey)
	}
}
