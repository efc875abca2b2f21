// Package logging provides structured logging for toolhub built on Go's
// standard slog package.
//
// All log entries carry a subsystem identifier so that output can be
// filtered by component:
//
//   - **Bootstrap**: application initialization and startup
//   - **Config**: configuration loading and validation
//   - **Pool**: toolset cache operations (hits, loads, evictions)
//   - **Loader**: dynamic toolset resolution
//   - **Plugin**: external plugin subprocess management
//   - **Registry**: toolset dispatch and security decisions
//   - **Schema**: tool schema introspection
//   - **Server**: HTTP transport operations
//
// # Usage
//
//	import "toolhub/pkg/logging"
//
//	logging.InitForCLI(logging.LevelInfo, os.Stdout)
//
//	logging.Info("Bootstrap", "Application starting up")
//	logging.Debug("Config", "Loaded configuration from %s", configPath)
//	logging.Warn("Pool", "Failed to load toolset %s", name)
//	logging.Error("Server", err, "Failed to start HTTP listener")
//
// Level filtering happens at the handler, so messages below the configured
// level cost no allocations. The package is safe for concurrent use.
package logging
