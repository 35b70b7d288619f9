package cmd

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/emrgen/wiki/internal/jobs"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "background jobs",
}

func init() {
	jobsCmd.AddCommand(runJobsCmd())
}

func runJobsCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "run",
		Short: "run the scheduled jobs until interrupted",
		Run: withContext(func(cmd *cobra.Command, app *appContext) error {
			executor := jobs.NewTaskExecutor(
				jobs.NewPendingReviewTask(app.cfg.ReportSchedule, app.edits),
			)
			if err := executor.Run(); err != nil {
				return err
			}

			sigs := make(chan os.Signal, 1)
			signal.Notify(sigs, unix.SIGTERM, unix.SIGINT)
			<-sigs
			// clean Ctrl+C output
			fmt.Println()

			executor.Stop()
			return nil
		}),
	}

	return command
}
