package config

// Config is the root configuration structure.
type Config struct {
	LogLevel string         `yaml:"logLevel,omitempty"`
	Server   ServerConfig   `yaml:"server,omitempty"`
	Toolsets ToolsetsConfig `yaml:"toolsets,omitempty"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// ToolsetsConfig configures the security gate, the cache and external
// plugins.
type ToolsetsConfig struct {
	// Allowed is the toolset allow-list. Empty means every toolset is
	// loadable, which logs a startup warning.
	Allowed []string    `yaml:"allowed,omitempty"`
	Cache   CacheConfig `yaml:"cache,omitempty"`
	Plugins []Plugin    `yaml:"plugins,omitempty"`
}

// CacheConfig configures the toolset pool.
type CacheConfig struct {
	MaxSize    int `yaml:"maxSize,omitempty"`
	TTLMinutes int `yaml:"ttlMinutes,omitempty"`
}

// Plugin binds a toolset id to an external MCP server command.
type Plugin struct {
	ID      string            `yaml:"id"`
	Command string            `yaml:"command"`
	Args    []string          `yaml:"args,omitempty"`
	Env     map[string]string `yaml:"env,omitempty"`
}
