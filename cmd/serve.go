package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"toolhub/internal/config"
	"toolhub/internal/loader"
	"toolhub/internal/pool"
	"toolhub/internal/registry"
	"toolhub/internal/server"
	"toolhub/internal/tools"
	"toolhub/internal/toolset"
	"toolhub/pkg/logging"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// serveConfigPath specifies a custom configuration directory. When unset,
// the per-user default (~/.config/toolhub) is used.
var serveConfigPath string

// serveDebug forces debug logging regardless of the configured level.
var serveDebug bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the toolhub server",
	Long: `Starts the HTTP server exposing toolsets to MCP clients.

Configuration is read from config.yaml in the configuration directory
(default ~/.config/toolhub). It controls the listen address, the toolset
allow-list, the cache bounds and external plugin bindings. A missing file
starts the server with defaults and an empty allow-list, which permits
every toolset and logs a warning.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	configPath := serveConfigPath
	if configPath == "" {
		configPath = config.GetDefaultConfigPathOrPanic()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if serveDebug {
		level = logging.LevelDebug
	}
	logging.InitForCLI(level, os.Stderr)
	logging.Info("Bootstrap", "Starting toolhub %s", GetVersion())

	shared := toolset.NewContext()
	shared.Set("serverVersion", GetVersion())

	pluginStrategy := loader.NewPluginStrategy(pluginBindings(cfg.Toolsets.Plugins))
	defer func() {
		if err := pluginStrategy.Close(); err != nil {
			logging.Warn("Bootstrap", "Error closing plugin processes: %v", err)
		}
	}()

	toolsetLoader := loader.New(shared,
		loader.NewBuiltinStrategy(tools.BuiltinConstructors()),
		loader.NewNamespaceStrategy(tools.BuiltinNamespace()),
		pluginStrategy,
	)

	reg := registry.New(
		registry.NewAllowList(cfg.Toolsets.Allowed),
		pool.New(cfg.Toolsets.Cache.MaxSize, time.Duration(cfg.Toolsets.Cache.TTLMinutes)*time.Minute),
		toolsetLoader,
	)

	srv := server.New(cfg.Server, reg, GetVersion())

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Stop(shutdownCtx)
	})

	return g.Wait()
}

func pluginBindings(plugins []config.Plugin) []loader.PluginBinding {
	bindings := make([]loader.PluginBinding, 0, len(plugins))
	for _, p := range plugins {
		bindings = append(bindings, loader.PluginBinding{
			ID:      p.ID,
			Command: p.Command,
			Args:    p.Args,
			Env:     p.Env,
		})
	}
	return bindings
}

func init() {
	serveCmd.Flags().StringVar(&serveConfigPath, "config-path", "", "Configuration directory (default ~/.config/toolhub)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "Enable debug logging")
	rootCmd.AddCommand(serveCmd)
}
