package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Aunggrid/wildmarch/internal/config"
	"github.com/Aunggrid/wildmarch/internal/game"
	"github.com/Aunggrid/wildmarch/internal/telemetry"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Start an interactive session in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd.Context())
		},
	}
}

func runPlay(parent context.Context) error {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "telemetry disabled: %v\n", err)
	} else {
		defer func() { _ = shutdown(context.Background()) }()
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagSeed != 0 {
		cfg.Seed = flagSeed
	}

	g, err := game.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("starting game: %w", err)
	}
	if err := g.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}
