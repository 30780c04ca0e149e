package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gnioc"

	// DefaultDataDir is where generated data goes unless configured
	// otherwise.
	DefaultDataDir = "./gendata"

	// TaxonomyDirName is the name of the store directory inside DataDir.
	TaxonomyDirName = "ioc"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnioc by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnioc/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gnioc/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
