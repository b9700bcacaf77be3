package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/julianstephens/accountable/internal/logger"
	"github.com/julianstephens/accountable/internal/notifier"
)

type WatchCmd struct {
	Notify bool `help:"Send desktop notifications through the tray app when the missed-hour count changes."`
}

func (c *WatchCmd) Run(ctx *Context) error {
	settings := ctx.LoadSettings()
	ctx.Scheduler.SetReminderWindow(settings.ReminderWindowMin)

	ctx.Scheduler.OnMissedHoursChanged(func(count int) {
		logger.Info("Missed hours changed", "count", count)
		if c.Notify && count > 0 {
			msg := fmt.Sprintf("%d hour(s) need an activity entry", count)
			if err := notifier.New().Notify(msg); err != nil {
				// The tray app may simply not be running.
				logger.Debug("Tray notification failed", "error", err)
			}
		}
	})

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Watching for missed hours. Press Ctrl+C to stop.")
	ctx.Scheduler.Run(runCtx, func(missed []time.Time) {
		if err := PromptAndRecord(ctx, missed, ""); err != nil {
			logger.Error("Reminder prompt failed", "error", err)
		}
	})

	fmt.Println("\nStopped.")
	return nil
}
