package config

// Default values applied when config.yaml is absent or leaves fields unset.
const (
	DefaultHost       = "localhost"
	DefaultPort       = 8080
	DefaultMaxSize    = 10
	DefaultTTLMinutes = 30
	DefaultLogLevel   = "info"
)

// GetDefaultConfig returns the configuration used when no config.yaml
// exists.
func GetDefaultConfig() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		Server: ServerConfig{
			Host: DefaultHost,
			Port: DefaultPort,
		},
		Toolsets: ToolsetsConfig{
			Cache: CacheConfig{
				MaxSize:    DefaultMaxSize,
				TTLMinutes: DefaultTTLMinutes,
			},
		},
	}
}
