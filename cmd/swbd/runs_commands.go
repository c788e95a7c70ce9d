package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"swbd/internal/logs"
	"swbd/internal/manifest"
	"swbd/internal/pipeline"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded conversion runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *manifest.Store) error {
				runs, err := store.ListRuns(cmd.Context(), limit)
				if err != nil {
					return err
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
					return nil
				}
				rows := make([][]string, 0, len(runs))
				for _, run := range runs {
					rows = append(rows, []string{
						shortID(run.ID),
						run.Command,
						string(run.Status),
						formatStarted(run.StartedAt),
						formatDuration(run),
						run.OutputDir,
					})
				}
				fmt.Fprint(cmd.OutOrStdout(), renderTable(
					[]string{"ID", "Command", "Status", "Started", "Duration", "Output"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
				))
				return nil
			})
		},
	}
	runsCmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show (0 for all)")

	runsCmd.AddCommand(newRunsShowCommand(ctx))
	runsCmd.AddCommand(newRunsRemoveCommand(ctx))
	runsCmd.AddCommand(newRunsLogCommand(ctx))
	return runsCmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var failedOnly bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show the files of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *manifest.Store) error {
				run, err := store.FindRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				files, err := store.Files(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				summary, err := store.Summarize(cmd.Context(), run.ID)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Run:      %s\n", run.ID)
				fmt.Fprintf(out, "Command:  %s\n", run.Command)
				fmt.Fprintf(out, "Status:   %s\n", run.Status)
				fmt.Fprintf(out, "Input:    %s\n", run.InputDir)
				fmt.Fprintf(out, "Output:   %s\n", run.OutputDir)
				fmt.Fprintf(out, "Started:  %s\n", formatStarted(run.StartedAt))
				fmt.Fprintf(out, "Duration: %s\n", formatDuration(run))
				if run.LogPath != "" {
					fmt.Fprintf(out, "Log:      %s\n", run.LogPath)
				}
				if run.ErrorMessage != "" {
					fmt.Fprintf(out, "Error:    %s\n", run.ErrorMessage)
				}
				fmt.Fprintf(out, "Files:    %d (%d ok, %d skipped, %d failed)\n",
					summary.Files, summary.OK, summary.Skipped, summary.Failed)

				rows := fileRows(files, failedOnly)
				if len(rows) == 0 {
					return nil
				}
				fmt.Fprint(out, renderTable(
					[]string{"File", "Section", "In", "Out", "Tokens", "Status", "Error"},
					rows,
					[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft},
				))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "Only list skipped and failed files")
	return cmd
}

func newRunsRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <run-id>",
		Short: "Delete a run and its file records",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *manifest.Store) error {
				run, err := store.FindRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if err := store.DeleteRun(cmd.Context(), run.ID); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted run %s\n", run.ID)
				return nil
			})
		},
	}
}

func newRunsLogCommand(ctx *commandContext) *cobra.Command {
	var (
		lines  int
		follow bool
	)

	cmd := &cobra.Command{
		Use:   "log <run-id>",
		Short: "Print the log of one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *manifest.Store) error {
				run, err := store.FindRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if run.LogPath == "" {
					return fmt.Errorf("run %s has no log file", shortID(run.ID))
				}

				out := cmd.OutOrStdout()
				emit := func(batch []string) {
					for _, line := range batch {
						fmt.Fprintln(out, line)
					}
				}
				tail, offset, err := logs.Last(run.LogPath, lines)
				if err != nil {
					return err
				}
				emit(tail)
				if !follow || run.Status != manifest.RunRunning {
					return nil
				}

				runID := run.ID
				return logs.Follow(cmd.Context(), run.LogPath, offset, logs.FollowOptions{
					Done: func() bool {
						current, err := store.FindRun(cmd.Context(), runID)
						return err != nil || current.Status != manifest.RunRunning
					},
				}, emit)
			})
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to print (0 for all)")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing while the run is still going")
	return cmd
}

func fileRows(files []*manifest.File, failedOnly bool) [][]string {
	rows := make([][]string, 0, len(files))
	for _, f := range files {
		if failedOnly && f.Status == pipeline.StatusOK {
			continue
		}
		rows = append(rows, []string{
			f.Path,
			f.Section,
			strconv.Itoa(f.SentencesIn),
			strconv.Itoa(f.SentencesOut),
			strconv.Itoa(f.TokensOut),
			f.Status,
			truncate(f.ErrorMessage, 60),
		})
	}
	return rows
}

func formatStarted(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04:05")
}

func formatDuration(run *manifest.Run) string {
	if run.FinishedAt.IsZero() {
		return "-"
	}
	return run.Duration().Round(time.Millisecond).String()
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
