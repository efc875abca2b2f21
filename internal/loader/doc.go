// Package loader resolves a toolset id to a resolved toolset by trying a
// fixed, ordered list of strategies:
//
//  1. Builtin table lookup: known ids (and their aliases) map to provider
//     constructors compiled into the binary.
//  2. Namespace-derived resolution: the id is converted to a type name
//     (order-tools -> OrderTools) and probed against a short ordered list
//     of registered type namespaces.
//  3. External plugin loading: an explicit (id -> command) binding from
//     configuration launches the plugin as an MCP server subprocess over
//     stdio, keeping foreign code isolated behind a process boundary.
//
// The first strategy to produce providers wins. Every instantiated
// provider is passed through the schema builder once, at load time, and
// the resulting definitions are concatenated into one Toolset. Ids that no
// strategy recognizes fail with toolset.ErrNotFound; a strategy that
// matches but fails to instantiate or introspect fails with
// *toolset.LoadError.
//
// The loader never caches: callers are expected to sit behind the pool.
package loader
