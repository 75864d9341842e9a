package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/sitefleet/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyTemplateDir = "template_dir"
	KeyMarker      = "marker"
	KeyBackupDir   = "backup_dir"
	KeyInstallCmd  = "commands.install"
	KeyBuildCmd    = "commands.build"
	KeyVCSInitCmd  = "commands.vcs_init"
)

// Settings is the typed view over the loaded configuration.
type Settings struct {
	TemplateDir string
	Marker      string
	BackupDir   string
	Install     []string
	Build       []string
	VCSInit     []string
}

// Dir returns the path to the config directory (~/.sitefleet/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.sitefleet/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyMarker, branding.InstanceMarker())
	viper.SetDefault(KeyBackupDir, "backup")
	viper.SetDefault(KeyInstallCmd, []string{"npm", "install"})
	viper.SetDefault(KeyBuildCmd, []string{"npm", "run", "build"})
	viper.SetDefault(KeyVCSInitCmd, []string{"git", "init"})

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set. Command
// lists are joined with spaces.
func Get(key string) string {
	switch viper.Get(key).(type) {
	case []string, []any:
		return strings.Join(viper.GetStringSlice(key), " ")
	}
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// Current returns the typed settings. Load must have been called first.
func Current() Settings {
	return Settings{
		TemplateDir: viper.GetString(KeyTemplateDir),
		Marker:      viper.GetString(KeyMarker),
		BackupDir:   viper.GetString(KeyBackupDir),
		Install:     commandList(KeyInstallCmd),
		Build:       commandList(KeyBuildCmd),
		VCSInit:     commandList(KeyVCSInitCmd),
	}
}

// commandList reads a command setting. A YAML list is used as-is; a plain
// string (the usual shape of an environment override) is split on spaces.
func commandList(key string) []string {
	s := viper.GetStringSlice(key)
	if len(s) == 1 {
		return strings.Fields(s[0])
	}
	return s
}
