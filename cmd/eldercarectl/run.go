package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/wldnd519/BE/internal/config"
	"github.com/wldnd519/BE/internal/jobs"
)

var runJSON bool

var runCmd = &cobra.Command{
	Use:   "run <checkin|summary>",
	Short: "Run a daily job once, now",
	Long: `Run one of the daily jobs immediately, outside its schedule.

Example usage:
  eldercarectl run checkin
  eldercarectl run summary --json
  eldercarectl run session-cleanup`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{jobs.JobCheckIn, jobs.JobSummary, jobs.JobSessionCleanup},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := loadApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		rep, err := a.Scheduler.RunNow(contextOf(cmd), args[0])
		if err != nil {
			return err
		}
		if runJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(rep)
		}
		printReport(cmd.OutOrStdout(), rep)
		if rep.Err != nil {
			return fmt.Errorf("run aborted: %w", rep.Err)
		}
		return nil
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Show when each job fires next",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		now := time.Now().In(cfg.Location())
		for _, j := range []struct{ name, cron string }{
			{jobs.JobCheckIn, cfg.CheckInCron},
			{jobs.JobSummary, cfg.SummaryCron},
			{jobs.JobSessionCleanup, cfg.SessionCleanupCron},
		} {
			next, err := jobs.NextRun(j.cron, now)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %-12s %s (%s)\n", j.name, j.cron,
				next.Format(time.RFC3339), humanize.RelTime(next, now, "ago", "from now"))
		}
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runJSON, "json", false, "print the full report as JSON")
	rootCmd.AddCommand(runCmd, nextCmd)
}

func printReport(w io.Writer, rep jobs.Report) {
	fmt.Fprintf(w, "%s: %d sent, %d skipped, %d failed, %d degraded in %s\n",
		rep.Job, rep.Sent(), rep.Skipped(), rep.Failed(), rep.Degraded(), rep.Duration().Round(time.Millisecond))
	for _, it := range rep.Items {
		if it.Status == jobs.StatusFailed || it.Degraded {
			fmt.Fprintf(w, "  %-8s %s: %s\n", it.Status, it.SeniorName, it.Reason)
		}
	}
	if rep.Removed > 0 {
		fmt.Fprintf(w, "  removed %s rows\n", humanize.Comma(rep.Removed))
	}
	if rep.Error != "" {
		fmt.Fprintf(w, "aborted: %s\n", rep.Error)
	}
}
