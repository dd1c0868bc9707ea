package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/turtacn/warrify/internal/app"
	"github.com/turtacn/warrify/internal/application/reminder"
)

// tickResult adapts a TickReport for text and table output.
type tickResult struct {
	*reminder.TickReport
}

func (r tickResult) String() string {
	if r.LockHeld {
		return "another instance is running the reminder tick; nothing sent"
	}
	return fmt.Sprintf("checked %d, sent %d, failed %d, skipped %d", r.Checked, r.Sent, r.Failed, r.Skipped)
}

func (r tickResult) TableHeaders() []string {
	return []string{"CHECKED", "SENT", "FAILED", "SKIPPED", "LOCK HELD"}
}

func (r tickResult) TableRows() [][]string {
	return [][]string{{
		strconv.Itoa(r.Checked),
		strconv.Itoa(r.Sent),
		strconv.Itoa(r.Failed),
		strconv.Itoa(r.Skipped),
		strconv.FormatBool(r.LockHeld),
	}}
}

// NewRemindersCmd groups reminder maintenance commands.
func NewRemindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Expiry reminder operations",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "run",
		Short: "Run one reminder tick now",
		Long: "Send the 30/7/1 day expiry reminders due today, exactly as the daily\n" +
			"job would. Reminders already sent are skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cliCtx.Timeout)
			defer cancel()
			cmd.SetContext(ctx)

			return withContainer(cmd, func(ctx context.Context, c *app.Container) error {
				report, err := c.Scheduler.RunOnce(ctx)
				if err != nil {
					return err
				}
				return PrintResult(cmd, tickResult{report})
			})
		},
	})
	return cmd
}
