// Package toolset defines the core data model for dynamically resolved
// toolsets: tool definitions with parameter schemas, the resolved toolset
// container, the error taxonomy shared by the loader/pool/registry layers,
// and the reflection-based schema builder that turns a plain Go provider
// value into a list of invocable tool definitions.
//
// # Providers
//
// A provider is any value whose exported methods should be exposed as
// tools. The schema builder inspects the provider's method set and derives
// one ToolDefinition per eligible method. Method parameters become schema
// parameters; a context.Context parameter is excluded from the schema and
// supplied from the invocation context at call time.
//
// Go reflection cannot recover parameter names, so providers may implement
// the optional ToolAnnotator interface to supply names, descriptions, and
// required flags per method (the equivalent of parameter annotations in
// other ecosystems). Without annotations, positional names (arg1, arg2, ...)
// are generated and every parameter is required.
//
// Providers that already know their tool definitions (for example proxies
// for external plugin processes) implement DefinitionProvider and bypass
// reflection entirely.
//
// # Ownership
//
// A Toolset and its definitions are created once by the loader (or by
// explicit registration) and are immutable afterwards; only the last-access
// timestamp mutates, atomically. Definitions are never shared between
// toolsets.
package toolset
