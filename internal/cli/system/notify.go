package system

import (
	"fmt"

	"github.com/julianstephens/accountable/internal/cli"
	"github.com/julianstephens/accountable/internal/notifier"
)

type NotifyCmd struct {
	DryRun bool `help:"Print the notification to stdout instead of sending it."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	ctx.Scheduler.Initialize()
	missed := ctx.Scheduler.MissedHours()

	if len(missed) == 0 {
		if c.DryRun {
			fmt.Println("No missed hours, nothing to notify.")
		}
		return nil
	}

	msg := fmt.Sprintf("%d hour(s) need an activity entry", len(missed))
	if c.DryRun {
		fmt.Println("[DryRun] " + msg)
		return nil
	}

	if err := notifier.New().Notify(msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
