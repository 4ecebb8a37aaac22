package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCommand(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded searches",
		Long: `History lists finished searches recorded in the configured store, newest
first. The memory store only holds runs from the current process, so use
--store sqlite or --store mysql to keep history between invocations.`,
		Example: `  puzzle history --store sqlite --dsn runs.db --limit 10
  puzzle history show 6f1c... --store sqlite --dsn runs.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			runs, err := a.history.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded runs.")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tALGORITHM\tSTART\tFOUND\tMOVES\tEXPANDED\tDURATION\tCREATED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%d\t%d\t%s\t%s\n",
					r.ID, r.Algorithm, r.Start, r.Found, r.Moves(), r.Expanded,
					time.Duration(r.DurationMS)*time.Millisecond,
					r.CreatedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to list (0 = all)")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <run-id>",
		Short: "Draw the solution of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := a.history.LoadRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !run.Found {
				fmt.Fprintf(out, "Run %s (%s) found no solution for:\n\n", run.ID, run.Algorithm)
				return run.Start.Render(out, 0)
			}
			for i, b := range run.Path {
				if err := b.Render(out, i); err != nil {
					return err
				}
			}
			fmt.Fprintf(out, "Run %s: %d moves with %s\n", run.ID, run.Moves(), run.Algorithm)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "rm <run-id>...",
		Short: "Delete recorded runs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, id := range args {
				if err := a.history.DeleteRun(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete %s: %w", id, err)
				}
				a.logger.Info().Str("run_id", id).Msg("deleted run")
			}
			return nil
		},
	})

	return cmd
}
