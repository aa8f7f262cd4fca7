package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mrled/suns/drills/internal/exercise"
	"github.com/mrled/suns/drills/internal/model"
	"github.com/mrled/suns/drills/internal/presenter"
)

func newShowCmd(c *cli) *cobra.Command {
	var flags struct {
		Kinds   []string
		IDs     []string
		Outputs []string
		Format  string
		SortBy  string
	}

	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Show recorded results from the data store",
		GroupID: "history",
		Long: `Display recorded exercise runs, optionally filtered by kind, ID or output.

Repeated filter flags of the same kind are ORed; different filters are ANDed.
Without --file or --dynamodb-table results only live for one invocation, so
there is nothing to show.

Examples:
  # Show all results
  drills show --file ./results.json

  # Show prime checks that came out true
  drills show --file ./results.json --kind prime --output true

  # Newest first, one line per result
  drills show --file ./results.json --sort run-time --format compact`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := model.ResultFilter{IDs: flags.IDs, Outputs: flags.Outputs}
			for _, name := range flags.Kinds {
				kind, err := exercise.ParseKind(name)
				if err != nil {
					return UsageError{fmt.Errorf("%w\n%s", err, exercise.ValidKindsText())}
				}
				filter.Kinds = append(filter.Kinds, kind)
			}
			if flags.Format != "detailed" && flags.Format != "compact" {
				return UsageError{fmt.Errorf("invalid format %q: must be detailed or compact", flags.Format)}
			}

			repo, err := c.repository(cmd.Context())
			if err != nil {
				return err
			}
			all, err := repo.List(cmd.Context())
			if err != nil {
				return ExitWithCode(ExitFailure, fmt.Errorf("failed to list results: %w", err))
			}

			results := model.FilterResults(all, filter)
			model.SortResults(results, flags.SortBy)

			out := cmd.OutOrStdout()
			if len(results) == 0 {
				fmt.Fprintln(out, "No results found matching the specified criteria.")
				return nil
			}

			switch flags.Format {
			case "compact":
				displayResultsCompact(out, results)
			default:
				displayResultsDetailed(out, results)
			}
			fmt.Fprintf(out, "\nTotal results: %d\n", len(results))
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&flags.Kinds, "kind", "k", nil, "Filter by exercise kind")
	cmd.Flags().StringSliceVar(&flags.IDs, "id", nil, "Filter by result ID")
	cmd.Flags().StringSliceVarP(&flags.Outputs, "output", "o", nil, "Filter by output value")
	cmd.Flags().StringVar(&flags.Format, "format", "detailed", "Output format: detailed or compact")
	cmd.Flags().StringVar(&flags.SortBy, "sort", "", "Sort by: kind, output, or run-time")
	return cmd
}

// displayResultsDetailed groups results by exercise
func displayResultsDetailed(w io.Writer, results []*model.Result) {
	fmt.Fprintln(w, "=== Results ===")

	grouped := model.GroupByKind(results)
	for _, kind := range exercise.Kinds {
		group, ok := grouped[kind]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\nKind: %s (%d)\n", kind, len(group))
		for _, r := range group {
			fmt.Fprintf(w, "  - %s => %s (id: %s, ran: %s)\n",
				formatArgs(r.Args),
				r.Output,
				r.ID,
				presenter.FormatTimeSince(r.RunTime))
		}
	}
}

func displayResultsCompact(w io.Writer, results []*model.Result) {
	fmt.Fprintf(w, "%-36s  %-10s  %-20s  %-20s  %s\n", "ID", "Kind", "Args", "Output", "Ran")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range results {
		fmt.Fprintf(w, "%-36s  %-10s  %-20s  %-20s  %s\n",
			truncateString(r.ID, 36),
			r.Kind,
			truncateString(formatArgs(r.Args), 20),
			truncateString(r.Output, 20),
			presenter.FormatTimeSinceCompact(r.RunTime))
	}
}

func formatArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = fmt.Sprintf("%q", a)
	}
	return strings.Join(quoted, " ")
}

// truncateString truncates a string to maxLen runes with ellipsis
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
