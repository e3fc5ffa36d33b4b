package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds every tunable the panel and its surfaces read.
type Config struct {
	// CachePath is the local cache database location.
	CachePath string
	// RemoteURL is the base URL of the optional remote endpoint.
	// Empty means no remote is configured.
	RemoteURL string
	// NotebookRoot is the directory scanned for notebook TODO markers.
	NotebookRoot string
	// ScanTTL is how long a scan result is reused.
	ScanTTL time.Duration
	// ShowNotebookTodos surfaces notebook-derived items in the panel.
	ShowNotebookTodos bool
	// ListenAddr is the REST server bind address.
	ListenAddr string
	// StoragePath is the REST server's item storage file.
	StoragePath string
	// LogLevel is a logrus level name.
	LogLevel string
}

// Init reads the config file and environment. cfgFile overrides the
// default search path (~/.config/todopanel/config.yaml); environment
// variables use the TODOPANEL_ prefix.
func Init(cfgFile string) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		viper.AddConfigPath(filepath.Join(home, ".config", "todopanel"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TODOPANEL")

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, _ := os.UserHomeDir()
		dataDir = filepath.Join(home, ".local", "share")
	}

	viper.SetDefault("cache_path", filepath.Join(dataDir, "todopanel", "cache.db"))
	viper.SetDefault("remote_url", "")
	viper.SetDefault("notebook_root", ".")
	viper.SetDefault("scan_ttl", "5s")
	viper.SetDefault("show_notebook_todos", false)
	viper.SetDefault("listen_addr", "localhost:8877")
	viper.SetDefault("storage_path", filepath.Join(dataDir, "todopanel", "items.json"))
	viper.SetDefault("log_level", "warn")

	// A missing config file is fine, defaults and env cover it.
	_ = viper.ReadInConfig()
}

// Load materializes the current configuration.
func Load() Config {
	return Config{
		CachePath:         viper.GetString("cache_path"),
		RemoteURL:         viper.GetString("remote_url"),
		NotebookRoot:      viper.GetString("notebook_root"),
		ScanTTL:           viper.GetDuration("scan_ttl"),
		ShowNotebookTodos: viper.GetBool("show_notebook_todos"),
		ListenAddr:        viper.GetString("listen_addr"),
		StoragePath:       viper.GetString("storage_path"),
		LogLevel:          viper.GetString("log_level"),
	}
}
