package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oshokin/battery-monitor/internal/domain/battery"
)

// Config holds the monitoring settings read from the YAML settings file.
type Config struct {
	// BatteryThreshold is the charge percentage below which an alert fires.
	BatteryThreshold int `yaml:"battery_threshold"`
	// CheckInterval is the number of seconds between two samples.
	CheckInterval int `yaml:"check_interval"`
	// NotificationRepeatDelay is the number of seconds before a low-battery alert repeats.
	NotificationRepeatDelay int `yaml:"notification_repeat_delay"`
	// LogLevel is one of DEBUG, INFO, WARNING, ERROR or CRITICAL.
	LogLevel string `yaml:"log_level"`
	// LogFile is where log lines are appended in addition to stdout. Empty disables it.
	LogFile string `yaml:"log_file"`
	// TelemetryFile is the CSV file receiving one row per sample. Empty disables it.
	TelemetryFile string `yaml:"telemetry_file"`
	// TelemetryDB is an optional SQLite database receiving one row per sample.
	TelemetryDB string `yaml:"telemetry_db"`
}

// Overrides carries command line values applied on top of the settings file.
// Zero values leave the corresponding setting untouched.
type Overrides struct {
	// Threshold replaces BatteryThreshold when not zero.
	Threshold int
	// Interval replaces CheckInterval when not zero.
	Interval int
	// Debug forces the DEBUG log level.
	Debug bool
	// TestMode forces the TestModeInterval sampling interval.
	TestMode bool
}

const (
	// DefaultConfigFilename is the default filename for monitor settings.
	DefaultConfigFilename = "battery-monitor.yaml"

	// DefaultThreshold is the default alert threshold in percent.
	DefaultThreshold = 15
	// DefaultCheckInterval is the default sampling interval in seconds.
	DefaultCheckInterval = 60
	// DefaultRepeatDelay is the default alert repeat delay in seconds.
	DefaultRepeatDelay = 300
	// DefaultLogLevel is the default log level name.
	DefaultLogLevel = "INFO"
	// DefaultLogFile is the default log file path.
	DefaultLogFile = "logs/battery_monitor.log"
	// DefaultTelemetryFile is the default CSV telemetry path.
	DefaultTelemetryFile = "battery_log.csv"

	// MinThreshold and MaxThreshold bound the alert threshold.
	MinThreshold = 1
	MaxThreshold = 99
	// MinCheckInterval is the smallest accepted sampling interval in seconds.
	MinCheckInterval = 10
	// TestModeInterval is the sampling interval used by the fast test mode.
	TestModeInterval = 10

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// ErrMalformed is returned alongside the default settings when the file cannot be parsed.
	ErrMalformed = errors.New("malformed settings file")
	// ErrInvalidThreshold is returned when the threshold is outside [1, 99].
	ErrInvalidThreshold = errors.New("threshold must be between 1 and 99")
	// ErrInvalidInterval is returned when the interval is below 10 seconds.
	ErrInvalidInterval = errors.New("interval must be at least 10 seconds")
	// ErrInvalidRepeatDelay is returned when the repeat delay is negative.
	ErrInvalidRepeatDelay = errors.New("notification repeat delay must not be negative")
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
)

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		BatteryThreshold:        DefaultThreshold,
		CheckInterval:           DefaultCheckInterval,
		NotificationRepeatDelay: DefaultRepeatDelay,
		LogLevel:                DefaultLogLevel,
		LogFile:                 DefaultLogFile,
		TelemetryFile:           DefaultTelemetryFile,
	}
}

// Load reads settings from the provided path, filling missing keys from Default.
//
// A missing file is created with the default settings. A file that cannot be
// parsed yields the complete default settings together with an error wrapping
// ErrMalformed; callers are expected to log it and carry on. Any other error,
// including out-of-range values, is returned with a nil Config.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read settings: %w", err)
		}

		cfg := Default()
		if err = Save(path, cfg); err != nil {
			return nil, err
		}

		return cfg, nil
	}

	cfg := Default()
	if err = yaml.Unmarshal(contents, cfg); err != nil {
		return Default(), fmt.Errorf("%w: %s: %w", ErrMalformed, path, err)
	}

	if err = Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes settings to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err = os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings directory: %w", err)
		}
	}

	// Restrict permissions.
	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks value ranges and normalizes the log level name.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.BatteryThreshold < MinThreshold || cfg.BatteryThreshold > MaxThreshold {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, cfg.BatteryThreshold)
	}

	if cfg.CheckInterval < MinCheckInterval {
		return fmt.Errorf("%w: got %d", ErrInvalidInterval, cfg.CheckInterval)
	}

	if cfg.NotificationRepeatDelay < 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRepeatDelay, cfg.NotificationRepeatDelay)
	}

	cfg.LogLevel = strings.ToUpper(strings.TrimSpace(cfg.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}

	return nil
}

// ApplyOverrides applies command line values and validates the result.
// The test mode interval is applied first so that an explicit interval wins.
func ApplyOverrides(cfg *Config, o Overrides) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if o.TestMode {
		cfg.CheckInterval = TestModeInterval
	}

	if o.Threshold != 0 {
		if o.Threshold < MinThreshold || o.Threshold > MaxThreshold {
			return fmt.Errorf("%w: got %d", ErrInvalidThreshold, o.Threshold)
		}

		cfg.BatteryThreshold = o.Threshold
	}

	if o.Interval != 0 {
		if o.Interval < MinCheckInterval {
			return fmt.Errorf("%w: got %d", ErrInvalidInterval, o.Interval)
		}

		cfg.CheckInterval = o.Interval
	}

	if o.Debug {
		cfg.LogLevel = "DEBUG"
	}

	return Validate(cfg)
}

// Interval returns the sampling interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.CheckInterval) * time.Second
}

// Policy returns the alert parameters derived from the settings.
func (c *Config) Policy() battery.Policy {
	return battery.Policy{
		Threshold:   c.BatteryThreshold,
		RepeatDelay: time.Duration(c.NotificationRepeatDelay) * time.Second,
	}
}
