package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mrled/suns/drills/internal/config"
	"github.com/mrled/suns/drills/internal/logger"
	"github.com/mrled/suns/drills/internal/model"
	"github.com/mrled/suns/drills/internal/plan"
	"github.com/mrled/suns/drills/internal/repository"
	"github.com/mrled/suns/drills/internal/service/runner"
)

// cli carries state shared by every subcommand of one root command
type cli struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	log     *slog.Logger
	repo    model.ResultRepository
}

// NewRootCommand builds the drills command tree
func NewRootCommand() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "drills",
		Short: "Drills runs small introductory programming exercises",
		Long: `Drills runs seven classic introductory exercises: swap, sum of the first N
naturals, factorial, repeated halving, even/odd, primality and palindromes.

Run with no subcommand to execute the default plan, which checks whether
"madam" is a palindrome.`,
		Args:              usageArgs(cobra.NoArgs),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlan(cmd, plan.Default())
		},
	}
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return UsageError{err}
	})

	rootCmd.PersistentFlags().StringVar(&c.cfgFile, "config", "", "Config file (default: drills.yaml in . or ./configs)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: text or json")
	addPersistenceFlags(rootCmd)

	c.bind("log.level", rootCmd.PersistentFlags(), "log-level")
	c.bind("log.format", rootCmd.PersistentFlags(), "log-format")
	bindPersistenceFlags(c, rootCmd)

	rootCmd.AddGroup(
		&cobra.Group{ID: "exercises", Title: "Exercises:"},
		&cobra.Group{ID: "history", Title: "Batches and history:"},
	)
	for _, cmd := range newExerciseCommands(c) {
		rootCmd.AddCommand(cmd)
	}
	rootCmd.AddCommand(newRunCmd(c))
	rootCmd.AddCommand(newBatchCmd(c))
	rootCmd.AddCommand(newShowCmd(c))
	rootCmd.AddCommand(newServeCmd(c))

	return rootCmd
}

// Execute runs the root command until it finishes or the process is interrupted
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// setup loads configuration and configures logging to stderr so stdout
// carries only exercise output
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.v, c.cfgFile)
	if err != nil {
		return UsageError{err}
	}
	c.cfg = cfg

	log := logger.NewLogger(logger.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
		Output:    cmd.ErrOrStderr(),
	})
	c.log = logger.WithExecutable(log, "drills")
	logger.SetDefault(c.log)
	return nil
}

func (c *cli) bind(key string, flags *pflag.FlagSet, name string) {
	if err := c.v.BindPFlag(key, flags.Lookup(name)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", name, err))
	}
}

// repository opens the configured result store once per invocation
func (c *cli) repository(ctx context.Context) (model.ResultRepository, error) {
	if c.repo != nil {
		return c.repo, nil
	}
	repoCfg := c.cfg.Repository()
	repo, err := repository.NewRepository(ctx, repoCfg)
	if err != nil {
		return nil, ExitWithCode(ExitFailure, err)
	}
	c.log.Debug("Result store opened", slog.String("backend", repoCfg.Backend()))
	c.repo = repo
	return repo, nil
}

func (c *cli) runner(ctx context.Context) (*runner.Runner, error) {
	repo, err := c.repository(ctx)
	if err != nil {
		return nil, err
	}
	return runner.New(repo, runner.WithLogger(c.log)), nil
}
