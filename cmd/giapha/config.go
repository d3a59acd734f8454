// Config loading for the giapha CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/dangdinh/giapha/internal/paths"
	"github.com/dangdinh/giapha/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyMode       = "mode"
	cfgKeyDataDir    = "data_dir"
	cfgKeyListenAddr = "listen_addr"
	cfgKeySupaURL    = "supabase_url"
	cfgKeySupaKey    = "supabase_service_key"

	defaultListenAddr = "127.0.0.1:8374"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# GiaPha configuration

# Storage mode: desktop (local SQLite file) or web (hosted Supabase project)
mode: desktop

# Data directory for the desktop database and media files
# (optional; overridable by --data-dir flag)
# data_dir:

# Address the local API server binds to
listen_addr: 127.0.0.1:8374

# Web mode credentials. The service key bypasses row-level security and
# must never be committed anywhere.
# supabase_url:
# supabase_service_key:
`

// loadConfig reads config.yaml from the config directory, creating the
// directory and a default file on first run. Environment variables with the
// GIAPHA_ prefix override file values, so the service key can stay out of
// the file entirely.
func loadConfig(configDir string) (types.Config, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return types.Config{}, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return types.Config{}, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyMode, types.ModeDesktop)
	v.SetDefault(cfgKeyListenAddr, defaultListenAddr)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("GIAPHA")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return types.Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	dataDir, err := paths.ResolveDataDir(flagDataDir, v.GetString(cfgKeyDataDir))
	if err != nil {
		return types.Config{}, err
	}

	cfg := types.Config{
		Mode:               v.GetString(cfgKeyMode),
		DataDir:            dataDir,
		ListenAddr:         v.GetString(cfgKeyListenAddr),
		SupabaseURL:        v.GetString(cfgKeySupaURL),
		SupabaseServiceKey: v.GetString(cfgKeySupaKey),
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// ensureDefaultConfigFile creates a default config.yaml if the file does
// not exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// schedulePath returns the schedule file location beside config.yaml.
func schedulePath() (string, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "schedule.yaml"), nil
}
