package config

const (
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultHistoryKeep = 200
)

var (
	defaultLabelExtensions = []string{".txt"}
	defaultImageExtensions = []string{".jpg", ".png", ".jpeg"}
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StateDir: defaultStateDir(),
		},
		Extensions: Extensions{
			Labels: append([]string(nil), defaultLabelExtensions...),
			Images: append([]string(nil), defaultImageExtensions...),
		},
		History: History{
			Enabled: true,
			Keep:    defaultHistoryKeep,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
