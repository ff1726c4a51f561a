package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/battery-monitor/internal/domain/battery"
)

// TestLoadMissingFileCreatesDefaults ensures an absent file yields the defaults and is created.
func TestLoadMissingFileCreatesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 15, cfg.BatteryThreshold)
	require.Equal(t, 60, cfg.CheckInterval)
	require.Equal(t, 300, cfg.NotificationRepeatDelay)
	require.Equal(t, "INFO", cfg.LogLevel)

	_, err = os.Stat(path)
	require.NoError(t, err)

	// The created file loads back to the same record.
	again, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}

// TestLoadPartialFileMergesDefaults checks that missing keys are filled from defaults.
func TestLoadPartialFileMergesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("battery_threshold: 25\nlog_level: debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 25, cfg.BatteryThreshold)
	require.Equal(t, DefaultCheckInterval, cfg.CheckInterval)
	require.Equal(t, DefaultRepeatDelay, cfg.NotificationRepeatDelay)
	require.Equal(t, "DEBUG", cfg.LogLevel)
	require.Equal(t, DefaultTelemetryFile, cfg.TelemetryFile)
}

// TestLoadMalformedFileFallsBackToDefaults verifies the whole default record is returned.
func TestLoadMalformedFileFallsBackToDefaults(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"broken_syntax": "battery_threshold: [\n",
		"wrong_type":    "battery_threshold: 25\ncheck_interval: soon\n",
	}

	for name, contents := range cases {
		contents := contents

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "settings.yaml")
			require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

			cfg, err := Load(path)
			require.ErrorIs(t, err, ErrMalformed)
			require.Equal(t, Default(), cfg)
		})
	}
}

// TestLoadRejectsOutOfRangeValues makes range errors fatal rather than silently defaulted.
func TestLoadRejectsOutOfRangeValues(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("check_interval: 5\n"), 0o600))

	cfg, err := Load(path)
	require.ErrorIs(t, err, ErrInvalidInterval)
	require.Nil(t, cfg)
}

// TestValidate checks range validations for every numeric setting.
func TestValidate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
		err    error
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "threshold_low", mutate: func(c *Config) { c.BatteryThreshold = 0 }, err: ErrInvalidThreshold},
		{name: "threshold_high", mutate: func(c *Config) { c.BatteryThreshold = 100 }, err: ErrInvalidThreshold},
		{name: "threshold_edges", mutate: func(c *Config) { c.BatteryThreshold = 99 }},
		{name: "interval_low", mutate: func(c *Config) { c.CheckInterval = 9 }, err: ErrInvalidInterval},
		{name: "interval_edge", mutate: func(c *Config) { c.CheckInterval = 10 }},
		{name: "negative_delay", mutate: func(c *Config) { c.NotificationRepeatDelay = -1 }, err: ErrInvalidRepeatDelay},
		{name: "zero_delay", mutate: func(c *Config) { c.NotificationRepeatDelay = 0 }},
	}

	for _, tc := range cases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			tc.mutate(cfg)

			err := Validate(cfg)
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
		})
	}

	require.Error(t, Validate(nil))
}

// TestApplyOverrides covers the command line overrides and their validation.
func TestApplyOverrides(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, ApplyOverrides(cfg, Overrides{Threshold: 20, Interval: 30, Debug: true}))
	require.Equal(t, 20, cfg.BatteryThreshold)
	require.Equal(t, 30, cfg.CheckInterval)
	require.Equal(t, "DEBUG", cfg.LogLevel)

	cfg = Default()
	require.NoError(t, ApplyOverrides(cfg, Overrides{TestMode: true}))
	require.Equal(t, TestModeInterval, cfg.CheckInterval)

	cfg = Default()
	require.ErrorIs(t, ApplyOverrides(cfg, Overrides{Threshold: 120}), ErrInvalidThreshold)
	require.Equal(t, DefaultThreshold, cfg.BatteryThreshold)

	cfg = Default()
	require.ErrorIs(t, ApplyOverrides(cfg, Overrides{Interval: 5}), ErrInvalidInterval)
	require.Equal(t, DefaultCheckInterval, cfg.CheckInterval)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	settings := &Config{
		BatteryThreshold:        30,
		CheckInterval:           120,
		NotificationRepeatDelay: 0,
		LogLevel:                "WARNING",
		TelemetryFile:           "samples.csv",
		TelemetryDB:             "samples.db",
	}

	require.NoError(t, Save(path, settings))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, settings, loaded)

	require.Error(t, Save(path, nil))
}

// TestDerivedValues checks the duration and policy helpers.
func TestDerivedValues(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.Equal(t, time.Minute, cfg.Interval())
	require.Equal(t, battery.Policy{Threshold: 15, RepeatDelay: 5 * time.Minute}, cfg.Policy())
}
