package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"perfect-widget/internal/infra/perfectapi"
	"perfect-widget/internal/pkg/config"

	"github.com/spf13/cobra"
)

var (
	Version   = "dev"
	CommitSHA = "none"
)

type rootOptions struct {
	verbose bool
}

func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "perfectctl",
		Short:         "Check availability and book tables through the Perfect restaurant API",
		Version:       fmt.Sprintf("%s (%s)", Version, CommitSHA),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log HTTP traffic to stderr")

	root.AddCommand(newPartySizesCmd(opts))
	root.AddCommand(newTimesCmd(opts))
	root.AddCommand(newBookCmd(opts))

	return root
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// remote bundles what every subcommand needs from the PERFECT_* environment.
type remote struct {
	client *perfectapi.Client
	cfg    config.PerfectConfig
	loc    *time.Location
	logger *slog.Logger
}

func newRemote(opts *rootOptions) (*remote, error) {
	cfg, err := config.LoadPerfectConfig()
	if err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client, err := perfectapi.NewClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &remote{client: client, cfg: cfg, loc: loc, logger: logger}, nil
}
