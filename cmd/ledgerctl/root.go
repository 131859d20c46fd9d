package main

import (
	"context"
	"fmt"
	"io"

	"github.com/danmuck/ledgerwire/internal/client"
	"github.com/danmuck/ledgerwire/internal/config"
	"github.com/danmuck/ledgerwire/internal/logging"
	"github.com/danmuck/ledgerwire/internal/observability"
	"github.com/danmuck/ledgerwire/internal/protocol"
	"github.com/spf13/cobra"
)

type app struct {
	configPath string
	cfg        cliConfig
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Talk to a ledger cluster over its binary protocol",
		Long: `ledgerctl opens one client session against a ledger cluster, registers,
and issues a single operation per invocation.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.ConfigureRuntime()
			if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
				return nil
			}
			cfg, err := loadCLIConfig(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to ledgerctl TOML config")

	root.AddCommand(
		a.registerCmd(),
		a.createAccountsCmd(),
		a.createTransfersCmd(),
		a.lookupAccountsCmd(),
		a.lookupTransfersCmd(),
		a.transfersCmd(),
		a.balancesCmd(),
		configCmd(),
	)
	return root
}

// withSession dials, registers and hands the live client to fn.
func (a *app) withSession(cmd *cobra.Command, fn func(ctx context.Context, c *client.Client) error) error {
	ctx := cmd.Context()
	logger := logging.Component("ledgerctl")

	if a.cfg.MetricsListen != "" {
		metricsCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := observability.ServeMetrics(metricsCtx, a.cfg.MetricsListen, logger); err != nil {
				logger.Warn().Err(err).Msg("metrics server stopped")
			}
		}()
	}

	c, err := client.Dial(ctx, a.cfg.Client)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := c.Register(ctx); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	return fn(ctx, c)
}

func parseIDs(args []string) ([]protocol.Uint128, error) {
	out := make([]protocol.Uint128, 0, len(args))
	for _, arg := range args {
		id, err := config.ParseID("id", arg)
		if err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, nil
}

func (a *app) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Open a session and print its number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(_ context.Context, c *client.Client) error {
				printf(cmd.OutOrStdout(), "client=%s session=%d\n", c.ID(), c.Session())
				return nil
			})
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Write or check ledgerctl config files",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init <path>",
		Short: "Write a config template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.WriteTemplate(args[0], "client", force); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	validateCmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Strictly validate a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ValidateFile(args[0]); err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "valid %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}

func printf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
