package config

const (
	defaultConfigPath          = "~/.config/clipcache/config.toml"
	defaultPolicy              = PolicyPreload
	defaultMaxLoadedClips      = 300
	defaultNumPrecedingPreload = 1
	defaultNumFollowingPreload = 2
	defaultPageSize            = 50
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultMetricsNamespace    = "clipcache"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Policy: defaultPolicy,
		Paging: Paging{
			MaxLoadedClips:      defaultMaxLoadedClips,
			NumPrecedingPreload: defaultNumPrecedingPreload,
			NumFollowingPreload: defaultNumFollowingPreload,
			PageSize:            defaultPageSize,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Metrics: Metrics{
			Namespace: defaultMetricsNamespace,
		},
	}
}
