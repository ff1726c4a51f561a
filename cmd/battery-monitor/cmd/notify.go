package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oshokin/battery-monitor/internal/service/notify"
)

const (
	defaultTestTitle   = "Battery Monitor"
	defaultTestMessage = "This is a test notification."
)

// newNotifyCommand returns the `notify` subcommand sending a test notification.
func newNotifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "notify [title] [message]",
		Short: "Send a test notification.",
		Long: `Send a notification through the same methods the monitor uses and print
the method that delivered it. Exits with a non-zero status when every method fails.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			quietLogs()

			title, message := defaultTestTitle, defaultTestMessage
			if len(args) > 0 {
				title = args[0]
			}

			if len(args) > 1 {
				message = args[1]
			}

			return sendTestNotification(cmd, notify.NewPlatformDispatcher(), title, message)
		},
	}
}

// prober sends a notification and reports the delivering method.
type prober interface {
	Probe(ctx context.Context, title, message string) (string, error)
}

func sendTestNotification(cmd *cobra.Command, p prober, title, message string) error {
	method, err := p.Probe(cmd.Context(), title, message)
	if err != nil {
		return fmt.Errorf("send test notification: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Notification sent via %s\n", method)

	return nil
}
