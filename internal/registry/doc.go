// Package registry ties the security gate, the pool and the loader into
// the single entry point the server talks to.
//
// Resolution order is fixed: the allow-list is checked first, so ids that
// are not permitted never reach the loader and are never cached. Permitted
// ids go through the pool, which loads on miss and serves from cache until
// the entry expires or is evicted.
//
// Invocation separates two failure planes. Security and resolution
// problems (not allowed, not found, load failure) surface as Go errors.
// Failures inside a tool, including panics, are captured in the CallResult
// envelope so one bad tool cannot be mistaken for a broken service.
package registry
