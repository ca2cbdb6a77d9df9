// Package schedule implements the schedule command: recurring extraction
// runs on a cron expression.
package schedule

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	cmdcommon "github.com/jonesrussell/newsminer/cmd/common"
	"github.com/jonesrussell/newsminer/internal/pipeline"
)

// cronSpec holds the --cron flag value.
var cronSpec string

// Command returns the schedule command.
func Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Run extractions on a schedule",
		Long: `Run the extraction pipeline on a cron schedule until interrupted
with Ctrl+C. Each tick performs one full scrape, export, and persist cycle.`,
		RunE: runSchedule,
	}
	cmd.Flags().StringVar(&cronSpec, "cron", "0 6 * * *",
		"cron expression for extraction runs")
	return cmd
}

// runSchedule executes the schedule command.
func runSchedule(cmd *cobra.Command, _ []string) error {
	cfgFile, _ := cmd.Root().PersistentFlags().GetString("config")
	debug, _ := cmd.Root().PersistentFlags().GetBool("debug")

	deps, err := cmdcommon.NewCommandDeps(cfgFile, debug)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	if err := deps.Config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cronSpec, func() {
		summary, runErr := pipeline.Run(ctx, deps.Config, deps.Logger)
		if runErr != nil {
			deps.Logger.Error("scheduled extraction failed", "error", runErr)
			return
		}
		deps.Logger.Info("scheduled extraction complete",
			"run_id", summary.RunID, "articles", len(summary.Results))
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", cronSpec, err)
	}

	deps.Logger.Info("scheduler started", "cron", cronSpec)
	scheduler.Start()

	<-ctx.Done()
	deps.Logger.Info("shutdown signal received")

	// Let an in-flight run finish before exiting.
	<-scheduler.Stop().Done()
	return nil
}
