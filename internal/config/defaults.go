package config

const (
	defaultHost           = "http://localhost:32400"
	defaultSection        = "1"
	defaultCollectionName = "Movies with Extras"
	defaultStateDir       = "~/.local/share/plexextras"
	defaultLogDir         = "~/.local/share/plexextras/logs"
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Plex: Plex{
			Host:    defaultHost,
			Section: defaultSection,
		},
		Collection: Collection{
			Name: defaultCollectionName,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
