package cli

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg   *Config
	flags rootFlags
)

// rootFlags holds command line values; they override the loaded config only when set
type rootFlags struct {
	configPath string
	winTarget  int
	firstMover string
	strategy   string
	seed       uint64
	noClear    bool
	output     string
	verbose    bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = nil
	flags = rootFlags{}

	rootCmd := &cobra.Command{
		Use:   "tictactoe",
		Short: "Play tic-tac-toe against the computer",
		Long: `tictactoe is a terminal tic-tac-toe game against a computer opponent.

The first player to win the target number of rounds (3 by default) is the
grand winner. Settings are read from $XDG_CONFIG_HOME/tictactoe/config.yml,
then TTT_* environment variables, then flags.`,
		Args: cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := LoadConfig(flags.configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, loaded)
			if err := loaded.Validate(); err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd)
		},
		SilenceUsage: true,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "Config file path (default: search XDG config dirs for "+ConfigFileName+")")
	pf.IntVar(&flags.winTarget, "win-target", 0, "Round wins needed to take the match (env: TTT_WIN_TARGET)")
	pf.StringVar(&flags.firstMover, "first", "", "Who opens each round: human, opponent (env: TTT_FIRST_MOVER)")
	pf.StringVar(&flags.strategy, "strategy", "", "Opponent strategy: heuristic, random (env: TTT_STRATEGY)")
	pf.Uint64Var(&flags.seed, "seed", 0, "Seed for reproducible opponent moves, 0 included; unset means unrepeatable (env: TTT_SEED)")
	pf.BoolVar(&flags.noClear, "no-clear", false, "Do not clear the screen between turns (env: TTT_NO_CLEAR)")
	pf.StringVarP(&flags.output, "output", "o", "", "Output format: text, json (env: TTT_OUTPUT)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "Debug logging to stderr")

	// Add subcommands
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStrategiesCmd())

	return rootCmd
}

// applyFlags copies explicitly set flags over the loaded config
func applyFlags(cmd *cobra.Command, c *Config) {
	fs := cmd.Flags()
	if fs.Changed("win-target") {
		c.WinTarget = flags.winTarget
	}
	if fs.Changed("first") {
		c.FirstMover = flags.firstMover
	}
	if fs.Changed("strategy") {
		c.Strategy = flags.strategy
	}
	if fs.Changed("seed") {
		c.SetSeed(flags.seed)
	}
	if fs.Changed("no-clear") {
		c.NoClear = flags.noClear
	}
	if fs.Changed("output") {
		c.Output = flags.output
	}
	if flags.verbose {
		c.LogLevel = "debug"
	}
}

// newLogger builds the JSON logger used for diagnostics
func newLogger(w io.Writer, c *Config) *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
}

// Execute runs the root command
func Execute(ctx context.Context) {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
