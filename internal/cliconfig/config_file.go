package cliconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors Config but uses strings for durations so files stay readable.
// The same struct decodes TOML and YAML.
type FileConfig struct {
	Host            string `toml:"host" yaml:"host"`
	Port            int    `toml:"port" yaml:"port"`
	Path            string `toml:"path" yaml:"path"`
	DeviceID        string `toml:"device_id" yaml:"device_id"`
	AccountName     string `toml:"account" yaml:"account"`
	NMEAFile        string `toml:"nmea_file" yaml:"nmea_file"`
	SerialPort      string `toml:"serial" yaml:"serial"`
	SerialBaud      int    `toml:"baud" yaml:"baud"`
	WatchDir        string `toml:"watch_dir" yaml:"watch_dir"`
	BatchSize       int    `toml:"batch_size" yaml:"batch_size"`
	SendInterval    string `toml:"send_interval" yaml:"send_interval"`
	HTTPTimeout     string `toml:"http_timeout" yaml:"http_timeout"`
	QueueCapacity   int    `toml:"queue_capacity" yaml:"queue_capacity"`
	ShutdownTimeout string `toml:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel        string `toml:"log_level" yaml:"log_level"`
	DryRun          *bool  `toml:"dry_run" yaml:"dry_run"`
}

// LoadFileConfig reads a config file. Files ending in .yaml or .yml are
// parsed as YAML, everything else as TOML.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse yaml %s: %w", path, err)
		}
	default:
		if err := toml.Unmarshal(b, &fc); err != nil {
			return fc, fmt.Errorf("parse toml %s: %w", path, err)
		}
	}
	return fc, nil
}

// DefaultConfigPath returns ~/.gtship/config.toml, or "" if the home
// directory cannot be determined.
func DefaultConfigPath() string {
	if h, err := os.UserHomeDir(); err == nil {
		return filepath.Join(h, ".gtship", "config.toml")
	}
	return ""
}

// ApplyFileConfig applies configuration from a file to the Config struct.
// It respects flags that have been explicitly set (changed map).
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("host", fc.Host, &cfg.Host)
	s.setInt("port", fc.Port, &cfg.Port)
	s.setString("path", fc.Path, &cfg.Path)
	s.setString("device-id", fc.DeviceID, &cfg.DeviceID)
	s.setString("account", fc.AccountName, &cfg.AccountName)
	s.setString("nmea-file", fc.NMEAFile, &cfg.NMEAFile)
	s.setString("serial", fc.SerialPort, &cfg.SerialPort)
	s.setInt("baud", fc.SerialBaud, &cfg.SerialBaud)
	s.setString("watch-dir", fc.WatchDir, &cfg.WatchDir)
	s.setInt("batch-size", fc.BatchSize, &cfg.BatchSize)
	s.setInt("queue-capacity", fc.QueueCapacity, &cfg.QueueCapacity)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)

	if err := s.setDuration("send-interval", fc.SendInterval, &cfg.SendInterval); err != nil {
		return err
	}
	if err := s.setDuration("timeout", fc.HTTPTimeout, &cfg.HTTPTimeout); err != nil {
		return err
	}
	if err := s.setDuration("shutdown-timeout", fc.ShutdownTimeout, &cfg.ShutdownTimeout); err != nil {
		return err
	}

	s.setBool("dry-run", fc.DryRun, &cfg.DryRun)

	return nil
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
