package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/informed-search/puzzle"
	"github.com/dshills/informed-search/search"
)

func newSolveCommand(a *app) *cobra.Command {
	var (
		board string
		moves int
		seed  uint64
		over  searchOverrides
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve a board and print every step",
		Long: `Solve runs the search to completion and draws each board from the start
to the goal. Without --board a solvable board is generated by walking the
blank randomly away from the goal.`,
		Example: `  # Solve a random board with A* and Manhattan distance
  puzzle solve

  # Solve a specific board with Dijkstra
  puzzle solve --board "813/402/765" --algorithm dijkstra

  # Record the run in SQLite
  puzzle solve --store sqlite --dsn runs.db`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := a.startBoard(board, moves, seed)
			if err != nil {
				return err
			}

			engine, err := a.newEngine(over)
			if err != nil {
				return err
			}
			defer engine.Cleanup()

			if !start.Solvable() {
				a.logger.Warn().Str("board", start.String()).Msg("board has odd parity; the search will exhaust")
			}

			found, err := engine.Find(cmd.Context(), start, puzzle.Goal())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !found {
				fmt.Fprint(out, "No solution found for:\n\n")
				return start.Render(out, 0)
			}

			if !quiet {
				if err := renderPath(out, engine); err != nil {
					return err
				}
			}

			res, err := engine.Result()
			if err != nil {
				return err
			}
			a.logger.Info().
				Str("run_id", res.RunID).
				Str("algorithm", res.Algorithm.String()).
				Float64("moves", res.Cost).
				Int("expanded", res.Stats.Expanded).
				Dur("duration", res.Duration).
				Msg("solved")
			fmt.Fprintf(out, "Solved in %d moves with %s (expanded %d, generated %d, reopened %d)\n",
				len(res.Path)-1, res.Algorithm, res.Stats.Expanded, res.Stats.Generated, res.Stats.Reopened)
			return nil
		},
	}

	addBoardFlags(cmd, &board, &moves, &seed, &over)
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the summary")

	return cmd
}

func addBoardFlags(cmd *cobra.Command, board *string, moves *int, seed *uint64, over *searchOverrides) {
	cmd.Flags().StringVarP(board, "board", "b", "", "start board, e.g. 813/402/765 (default: scramble)")
	cmd.Flags().IntVar(moves, "moves", 0, "scramble length when --board is not given")
	cmd.Flags().Uint64Var(seed, "seed", 0, "scramble seed (0 = config or random)")
	cmd.Flags().StringVarP(&over.algorithm, "algorithm", "a", "", "astar, dijkstra or best-first")
	cmd.Flags().StringVar(&over.heuristic, "heuristic", "", "manhattan or misplaced")
}

// renderPath draws the solution with the cursor, start first.
func renderPath(w io.Writer, engine *search.Engine[puzzle.Board]) error {
	step := 0
	b, err := engine.First()
	for err == nil {
		if rerr := b.Render(w, step); rerr != nil {
			return rerr
		}
		step++
		b, err = engine.Next()
	}
	if errors.Is(err, search.ErrPathEnd) {
		return nil
	}
	return err
}
