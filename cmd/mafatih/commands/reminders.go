// cmd/mafatih/commands/reminders.go
package commands

import (
	"github.com/spf13/cobra"

	"mafatih/internal/reminder"
)

func newRemindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Show reminder templates and default prayer times",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "templates",
			Short: "List the reminder templates",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printJSON(cmd, reminder.Templates())
			},
		},
		&cobra.Command{
			Use:   "prayer-times",
			Short: "List the default prayer times",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return printJSON(cmd, reminder.DefaultPrayerTimes())
			},
		},
	)
	return cmd
}
