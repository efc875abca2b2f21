package toolset

import "sync"

// Context is the shared, request-independent context object injected into
// providers that implement ContextAware. Per-request data travels through
// context.Context arguments; this object only carries process-wide values
// such as deployment metadata.
type Context struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewContext creates an empty shared context.
func NewContext() *Context {
	return &Context{values: make(map[string]string)}
}

// Set stores a value under the given key.
func (c *Context) Set(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

// Value returns the value for a key and whether it was present.
func (c *Context) Value(key string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}
