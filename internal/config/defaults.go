package config

const (
	defaultDataDir                    = "~/.local/share/atlas"
	defaultLogDir                     = "~/.local/share/atlas/logs"
	defaultLogFormat                  = "console"
	defaultLogLevel                   = "info"
	defaultStorageRegion              = "us-east-1"
	defaultNotificationRequestTimeout = 10
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Storage: Storage{
			Region: defaultStorageRegion,
			UseSSL: true,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotificationRequestTimeout,
			Import:         true,
			BulkImages:     true,
			Errors:         true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
