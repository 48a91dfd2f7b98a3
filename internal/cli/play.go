package cli

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mcoot/tictactoe-go/internal/factory"
	"github.com/mcoot/tictactoe-go/internal/model"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a session of matches (the default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd)
		},
	}
}

func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()
	logger := newLogger(cmd.ErrOrStderr(), cfg)
	out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())

	console := NewConsole(cmd.InOrStdin(), cmd.OutOrStdout(), out, ConsoleOptions{
		HumanName:    cfg.HumanName,
		OpponentName: cfg.OpponentName,
		NoClear:      cfg.NoClear,
	}, logger)
	defer console.Close()

	app, err := factory.New(factory.Config{
		Logger:       logger,
		Strategy:     cfg.Strategy,
		Seed:         cfg.ReproducibleSeed(),
		Match:        cfg.MatchConfig(),
		HumanName:    cfg.HumanName,
		OpponentName: cfg.OpponentName,
		Sink:         console,
	})
	if err != nil {
		return err
	}

	console.Welcome()

	err = app.MatchController.Run(ctx, console)
	if errors.Is(err, ErrInputClosed) || errors.Is(err, context.Canceled) {
		logger.Info("session ended before the match finished",
			slog.String("reason", err.Error()),
		)
		console.println("")
		err = nil
	}
	if err != nil {
		return err
	}

	summaries, err := app.MatchController.Summaries(context.WithoutCancel(ctx))
	if err != nil {
		return err
	}

	console.Goodbye()
	out.PrintRecord(NewSessionReport(summaries))
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			out.Print(ConfigView{
				Config:       *cfg,
				SearchedPath: DefaultConfigPath(),
			})
			return nil
		},
	}
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the available opponent strategies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := factory.New(factory.Config{
				Logger:   newLogger(cmd.ErrOrStderr(), cfg),
				Strategy: cfg.Strategy,
			})
			if err != nil {
				return err
			}

			names := app.BotService.Names()
			strategies := make([]StrategyInfo, 0, len(names))
			for _, name := range names {
				strategies = append(strategies, StrategyInfo{
					Name:        name,
					Description: model.BotStrategyDisplayName(name),
				})
			}

			out := NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
			out.Print(strategies)
			return nil
		},
	}
}
