package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/informed-search/puzzle"
	"github.com/dshills/informed-search/search"
)

func newStepCommand(a *app) *cobra.Command {
	var (
		board    string
		moves    int
		seed     uint64
		over     searchOverrides
		every    int
		maxTicks int
	)

	cmd := &cobra.Command{
		Use:   "step",
		Short: "Solve a board one step at a time, reporting progress",
		Long: `Step drives the engine in resumable mode: each tick extracts one frontier
node. Progress is logged every --every ticks, and --max-ticks stops the run
early while leaving the frontier intact for inspection.`,
		Example: `  puzzle step --board "867/254/301" --every 1000
  puzzle step --algorithm best-first --max-ticks 50`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			start, err := a.startBoard(board, moves, seed)
			if err != nil {
				return err
			}
			engine, err := a.newEngine(over)
			if err != nil {
				return err
			}
			defer engine.Cleanup()

			if every <= 0 {
				every = a.cfg.Puzzle.ProgressEvery
			}

			if err := engine.Init(start, puzzle.Goal()); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			ticks := 0
			for !engine.IsDone() {
				if maxTicks > 0 && ticks >= maxTicks {
					st := engine.Stats()
					cur, _ := engine.Current()
					fmt.Fprintf(out, "Stopped after %d ticks: frontier %d, visited %d, last board %s\n",
						ticks, st.Frontier, st.Visited, cur)
					return nil
				}

				if _, err := engine.Step(ctx); err != nil {
					return err
				}
				ticks++

				if ticks%every == 0 {
					st := engine.Stats()
					a.logger.Info().
						Int("tick", ticks).
						Int("expanded", st.Expanded).
						Int("frontier", st.Frontier).
						Int("visited", st.Visited).
						Int("stale", st.Stale).
						Msg("progress")
				}
			}

			if engine.Phase() == search.PhaseExhausted {
				fmt.Fprint(out, "No solution found for:\n\n")
				return start.Render(out, 0)
			}

			if err := renderPath(out, engine); err != nil {
				return err
			}
			res, err := engine.Result()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Solved in %d moves after %d ticks (max frontier %d)\n",
				len(res.Path)-1, ticks, res.Stats.MaxFrontier)
			return nil
		},
	}

	addBoardFlags(cmd, &board, &moves, &seed, &over)
	cmd.Flags().IntVar(&every, "every", 0, "log progress every N ticks (default from config)")
	cmd.Flags().IntVar(&maxTicks, "max-ticks", 0, "stop after N ticks (0 = run to completion)")

	return cmd
}
