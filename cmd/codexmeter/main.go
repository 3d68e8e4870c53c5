package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/tnunamak/codexmeter/internal/api"
	"github.com/tnunamak/codexmeter/internal/cli"
	"github.com/tnunamak/codexmeter/internal/config"
	"github.com/tnunamak/codexmeter/internal/logging"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "codexmeter: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var plain bool
	cmd := &cobra.Command{
		Use:   "codexmeter",
		Short: "Show Codex rate-limit usage for the signed-in ChatGPT account",
		Long: `Show how much of the Codex 5-hour and 7-day rate limits has been used.

Credentials are read, in order, from CODEX_ACCESS_TOKEN (with optional
CODEX_ACCOUNT_ID), OPENAI_API_KEY, ~/.codex/auth.json,
~/.config/codex/auth.json and the OS keychain.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := cli.ModeFancy
			if plain {
				mode = cli.ModePlain
			}
			return status(cmd.Context(), mode)
		},
	}
	cmd.Flags().BoolVarP(&plain, "plain", "p", false, "plain text output, no color or bars")
	return cmd
}

func status(ctx context.Context, mode cli.Mode) error {
	logger := logging.New(os.Stderr)

	path, err := config.DefaultPath()
	if err != nil {
		return fmt.Errorf("config path: %w", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	logger.Debug("config loaded", "path", path)

	runner := &cli.Runner{
		Resolver:    api.NewResolver(api.NewCommandStore(), cfg.KeychainServices, logger),
		Fetcher:     api.NewClient(cfg.UsageURL, cfg.UserAgent, logger),
		Stdout:      os.Stdout,
		Logger:      logger,
		Interactive: cli.IsTTY(os.Stdout),
	}
	return runner.Status(ctx, mode)
}
