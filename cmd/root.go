package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the toolhub application.
var rootCmd = &cobra.Command{
	Use:   "toolhub",
	Short: "Serve dynamically loaded MCP toolsets over HTTP",
	Long: `toolhub exposes named toolsets to MCP clients. Toolsets are resolved
on demand through a chain of loading strategies (builtin tables, registered
type namespaces, external plugin processes), gated by an allow-list and
cached with a bounded TTL pool. Clients select the toolset per request via
the X-Toolset header, a query parameter, or the request body.`,
	// SilenceUsage prevents Cobra from printing the usage message on errors
	// that are handled by the application.
	SilenceUsage: true,
}

// SetVersion sets the version for the root command. Called from the main
// package to inject the build version.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return rootCmd.Version
}

// Execute is the main entry point for the CLI application.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "toolhub version %s\n" .Version}}`)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
