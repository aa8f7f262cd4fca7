package commands

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/mrled/suns/drills/internal/exercise"
	"github.com/mrled/suns/drills/internal/presenter"
	"github.com/mrled/suns/drills/internal/service/runner"
)

// nPrompt is shown when a numeric exercise is run without its argument
const nPrompt = "Enter the value of n: "

type exerciseInfo struct {
	use   string
	short string
}

var exerciseHelp = map[exercise.Kind]exerciseInfo{
	exercise.Swap:       {"swap A B", "Exchange two integers and print them"},
	exercise.SumN:       {"sumn [N]", fmt.Sprintf("Print the sum of the first N natural numbers (N <= %d)", exercise.MaxSumN)},
	exercise.Factorial:  {"fact [N]", fmt.Sprintf("Print N factorial (0 <= N <= %d)", exercise.MaxFactorial)},
	exercise.Halve:      {"divide [N]", fmt.Sprintf("Print N and keep halving it while it is greater than %d", exercise.HalvingThreshold)},
	exercise.EvenOdd:    {"evenodd [N]", "Report whether N is even or odd"},
	exercise.Prime:      {"prime [N]", fmt.Sprintf("Report whether N is prime (N <= %d)", exercise.MaxPrimeCandidate)},
	exercise.Palindrome: {"palindrome TEXT", "Report whether TEXT reads the same in both directions"},
}

func newExerciseCommands(c *cli) []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(exercise.Kinds))
	for _, kind := range exercise.Kinds {
		cmds = append(cmds, newExerciseCmd(c, kind))
	}
	return cmds
}

func newExerciseCmd(c *cli, kind exercise.Kind) *cobra.Command {
	info := exerciseHelp[kind]

	// Single integer exercises prompt for n when it is not given
	prompts := !exercise.TakesText(kind) && exercise.ArgCount(kind) == 1
	args := cobra.ExactArgs(exercise.ArgCount(kind))
	if prompts {
		args = cobra.MaximumNArgs(1)
	}

	return &cobra.Command{
		Use:     info.use,
		Short:   info.short,
		Long:    exerciseLong(kind, info),
		Aliases: aliasesFor(kind),
		GroupID: "exercises",
		Args:    usageArgs(args),
		RunE: func(cmd *cobra.Command, args []string) error {
			if prompts && len(args) == 0 {
				n, err := promptForN(cmd.InOrStdin(), cmd.OutOrStdout())
				if err != nil {
					return err
				}
				args = []string{n}
			}
			return c.runExercise(cmd, runner.Request{Kind: kind, Args: args})
		},
	}
}

func newRunCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "run KIND [ARG]...",
		Short:   "Run any exercise by name",
		GroupID: "exercises",
		Long: `Run an exercise named by its kind or one of its aliases.

` + exercise.ValidKindsText() + `

Example:
  drills run factorial 5
  drills run swap 10 20`,
		Args: usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExercise(cmd, runner.Request{Kind: exercise.Kind(args[0]), Args: args[1:]})
		},
	}
}

// exerciseLong adds usage examples to the short help. Arguments starting
// with "-" would otherwise be parsed as flags, so they go after "--".
func exerciseLong(kind exercise.Kind, info exerciseInfo) string {
	name := string(kind)
	note := "Negative numbers must follow \"--\"."
	var example string
	switch {
	case exercise.TakesText(kind):
		note = "Text starting with \"-\" must follow \"--\"."
		example = fmt.Sprintf("  drills %s racecar\n  drills %s -- -a-", name, name)
	case exercise.ArgCount(kind) == 2:
		example = fmt.Sprintf("  drills %s 10 20\n  drills %s -- -3 7", name, name)
	default:
		example = fmt.Sprintf("  drills %s 5\n  drills %s -- -5\n  drills %s    (prompts for N)", name, name, name)
	}
	return info.short + ".\n\n" + note + "\n\nExample:\n" + example
}

func (c *cli) runExercise(cmd *cobra.Command, req runner.Request) error {
	r, err := c.runner(cmd.Context())
	if err != nil {
		return err
	}
	result, err := r.Run(cmd.Context(), req)
	if err != nil {
		return classify(err)
	}
	return presenter.WriteLines(cmd.OutOrStdout(), result.Lines)
}

// promptForN asks for n the way the interactive driver does and reads one token
func promptForN(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, nPrompt)
	var n string
	if _, err := fmt.Fscan(in, &n); err != nil {
		return "", UsageError{fmt.Errorf("no value given for n: %w", err)}
	}
	return n, nil
}

func aliasesFor(kind exercise.Kind) []string {
	var aliases []string
	for name, k := range exercise.NameToKind {
		if k == kind && name != string(kind) {
			aliases = append(aliases, name)
		}
	}
	sort.Strings(aliases)
	return aliases
}
