package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// Values in the config file override defaults, including explicit zero values.
type Config struct {
	View     ViewConfig     `json:"view"`
	Settings SettingsConfig `json:"settings"`
	Search   SearchConfig   `json:"search"`
	Log      LogConfig      `json:"log"`
}

type ViewConfig struct {
	Perspective     string `json:"perspective"`       // Default: "grid"
	SortBy          string `json:"sort_by"`           // Default: "byName"
	Ascending       bool   `json:"ascending"`         // Default: true
	FoldersFirst    bool   `json:"folders_first"`     // Default: true
	HideHiddenFiles bool   `json:"hide_hidden_files"` // Default: true
}

type SettingsConfig struct {
	// Enhanced stores perspective settings per folder in .ts/tsm.json.
	Enhanced bool `json:"enhanced"` // Default: true
	// LocalPath overrides ~/.config/dirview/settings.json.
	LocalPath string `json:"local_path"`
}

type SearchConfig struct {
	MaxResults int `json:"max_results"` // Default: 10000
}

type LogConfig struct {
	Level  string `json:"level"`  // Default: "info"
	Format string `json:"format"` // Default: "json"
	Path   string `json:"path"`   // Default: $TMPDIR/dirview.log
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		View: ViewConfig{
			Perspective:     "grid",
			SortBy:          "byName",
			Ascending:       true,
			FoldersFirst:    true,
			HideHiddenFiles: true,
		},
		Settings: SettingsConfig{
			Enhanced: true,
		},
		Search: SearchConfig{
			MaxResults: 10000,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
