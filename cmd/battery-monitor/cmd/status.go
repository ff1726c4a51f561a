package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/battery-monitor/internal/config"
	"github.com/oshokin/battery-monitor/internal/domain/battery"
	"github.com/oshokin/battery-monitor/internal/service/power"
)

// newStatusCommand returns the `status` subcommand printing one power sample.
func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the current battery status.",
		Long: `Read the power supply once and print the charge level, the charger state and
whether the configured threshold would raise an alert.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			quietLogs()

			cfg, err := config.Load(configPath)
			if err != nil && !errors.Is(err, config.ErrMalformed) {
				return fmt.Errorf("load configuration: %w", err)
			}

			sample := power.NewReader().Read(cmd.Context())
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), describeSample(sample, cfg.Policy()))

			return nil
		},
	}
}

func describeSample(sample battery.Sample, policy battery.Policy) string {
	if !sample.Present {
		return "Battery: not available"
	}

	charger := "disconnected"
	if sample.OnExternalPower {
		charger = "connected"
	}

	line := fmt.Sprintf("Battery: %d%%, charger %s, threshold %d%%", sample.ChargePercent, charger, policy.Threshold)
	if policy.IsLow(sample) {
		line += " (low)"
	}

	return line
}
