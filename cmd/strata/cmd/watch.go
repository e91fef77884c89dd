package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jhizzard/Strata/scheduler"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Revalue the portfolio on a cron schedule",
	Long: `Run the valuation configured in the config file every time schedule.cron
fires, journaling each run, until interrupted.

The cron expression takes an optional leading seconds field.

Examples:
  strata watch -c eod.yaml
  strata watch --cron "0 */15 * * * *" --now`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

var (
	watchCron string
	watchNow  bool
)

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVar(&watchCron, "cron", "", "cron expression (default from schedule.cron)")
	watchCmd.Flags().BoolVar(&watchNow, "now", false, "also value once at start")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if watchCron != "" {
		cfg.Schedule.Cron = watchCron
	}
	if watchNow {
		cfg.Schedule.RunOnStart = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return watch(ctx, cmd, timeNow)
}

func watch(ctx context.Context, cmd *cobra.Command, now func() time.Time) error {
	job, err := newValuationJob(now)
	if err != nil {
		return err
	}
	defer job.Close()

	out := cmd.OutOrStdout()
	revalue := func(ctx context.Context) error {
		run, err := job.value(ctx)
		if err != nil {
			return err
		}
		return printRun(out, run)
	}

	s := scheduler.New(ctx, zap.L())
	id, err := s.Add("revalue", cfg.Schedule.Cron, revalue)
	if err != nil {
		return err
	}
	if cfg.Schedule.RunOnStart {
		if err := s.RunNow("revalue", revalue); err != nil {
			zap.L().Error("initial valuation failed", zap.Error(err))
		}
	}

	s.Start()
	defer s.Stop()
	fmt.Fprintf(out, "Watching %s, next run %s\n", job.book.Name, s.Next(id).Format(time.RFC3339))

	<-ctx.Done()
	return nil
}
