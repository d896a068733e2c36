package pductl

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/OpenCHAMI/pductl/internal/util"
	"github.com/spf13/viper"
)

// LoadConfig() will load a YAML config file at the specified path. There are some general
// considerations about how this is done with spf13/viper:
//
// 1. There are intentionally no search paths set, so config path has to be set explicitly
// 2. No data will be written to the config file from the tool
// 3. Parameters passed as CLI flags and envirnoment variables should always have
// precedence over values set in the config.
func LoadConfig(path string) error {
	dir, filename, ext := util.SplitPathForViper(path)
	viper.AddConfigPath(dir)
	viper.SetConfigName(filename)
	viper.SetConfigType(ext)
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return fmt.Errorf("config file not found: %w", err)
		} else {
			return fmt.Errorf("failed to load config file: %w", err)
		}
	}

	return nil
}

// DefaultCachePath is where outlet states are recorded unless --cache says otherwise.
func DefaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "pductl", "outlets.db")
}

// SetDefaults() resets all of the viper properties back to their
// default values.
func SetDefaults() {
	viper.SetDefault("concurrency", -1)
	viper.SetDefault("timeout", 2)
	viper.SetDefault("retries", 1)
	viper.SetDefault("config", "")
	viper.SetDefault("log-level", "info")
	viper.SetDefault("log-file", "")
	viper.SetDefault("snmp-trace", false)
	viper.SetDefault("cache", DefaultCachePath())
	viper.SetDefault("disable-cache", false)
	viper.SetDefault("outlet.cycle-delay", "5s")
	viper.SetDefault("pdu.format", "json")
	viper.SetDefault("pdu.output", "")
	viper.SetDefault("daemon.endpoint", "localhost:8080")
}
