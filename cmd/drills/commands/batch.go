package commands

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mrled/suns/drills/internal/plan"
	"github.com/mrled/suns/drills/internal/plan/watch"
	"github.com/mrled/suns/drills/internal/presenter"
)

func newBatchCmd(c *cli) *cobra.Command {
	var flags struct {
		Watch    bool
		Template bool
	}

	cmd := &cobra.Command{
		Use:     "batch PLAN",
		Short:   "Run every enabled step of a YAML plan",
		GroupID: "history",
		Long: `Run the steps listed in a YAML plan file in order. Steps marked
"skip: true" are listed but not run. The first failing step stops the batch.

A plan looks like:

  name: warmup
  steps:
    - kind: swap
      args: [10, 20]
    - kind: prime
      args: 7
    - kind: palindrome
      args: madam
      skip: true

With --watch the plan is re-run every time the file changes, until interrupted.
Use --template to print the default plan as a starting point.`,
		Args: usageArgs(func(cmd *cobra.Command, args []string) error {
			if flags.Template {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		}),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.Template {
				return plan.Default().Encode(cmd.OutOrStdout())
			}

			path := args[0]
			p, err := plan.Load(path)
			if err != nil {
				return UsageError{err}
			}
			if err := c.runPlan(cmd, p); err != nil {
				if !flags.Watch {
					return err
				}
				c.log.Error("Plan failed", slog.String("error", err.Error()))
			}
			if !flags.Watch {
				return nil
			}

			w, err := watch.New(path, c.cfg.Plan.Debounce, func(ctx context.Context) error {
				p, err := plan.Load(path)
				if err != nil {
					return err
				}
				return c.runPlan(cmd, p)
			}, c.log)
			if err != nil {
				return ExitWithCode(ExitFailure, err)
			}
			c.log.Info("Watching plan for changes", slog.String("path", path))
			return w.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&flags.Watch, "watch", "w", false, "Re-run the plan whenever the file changes")
	cmd.Flags().BoolVar(&flags.Template, "template", false, "Print the default plan and exit")
	return cmd
}

// runPlan executes p and prints the output lines of each step that ran
func (c *cli) runPlan(cmd *cobra.Command, p *plan.Plan) error {
	r, err := c.runner(cmd.Context())
	if err != nil {
		return err
	}

	results, err := plan.Execute(cmd.Context(), r, p)
	for _, res := range results {
		if res.Skipped {
			c.log.Debug("Skipped step", slog.Int("step", res.Index+1), slog.String("kind", string(res.Step.Kind)))
			continue
		}
		if werr := presenter.WriteLines(cmd.OutOrStdout(), res.Result.Lines); werr != nil {
			return ExitWithCode(ExitFailure, werr)
		}
	}
	return classify(err)
}
