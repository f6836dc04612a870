// Package cmd implements the mailbridge CLI commands.
package cmd

import (
	"context"
	"errors"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/mailbridge"
	"github.com/dmitrymomot/mailbridge/pkg/dsn"
	"github.com/dmitrymomot/mailbridge/pkg/logger"
)

// Version is set at build time
var Version = "0.1.0"

// state is shared by the subcommands of one root command.
type state struct {
	cfg     Config
	log     *slog.Logger
	envFile string
	dsn     string
}

// NewRootCmd builds the mailbridge command tree.
func NewRootCmd() *cobra.Command {
	s := &state{}

	root := &cobra.Command{
		Use:   "mailbridge",
		Short: "Send email through any transport named by a DSN",
		Long: `mailbridge builds an email transport from a DSN and uses it to send
or verify messages.

The DSN comes from --dsn or MAILER_DSN. Settings are read from the
environment after loading the --env-file, if it exists.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "schemes" {
				return nil
			}

			cfg, err := loadConfig(s.envFile)
			if err != nil {
				return err
			}
			if s.dsn != "" {
				cfg.DSN = s.dsn
			}

			s.cfg = cfg
			s.log = logger.NewFromConfig(cmd.ErrOrStderr(), cfg.Logger,
				logger.ContextAttrs("command", "scheme")...,
			)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&s.envFile, "env-file", ".env", "Environment file to load")
	root.PersistentFlags().StringVar(&s.dsn, "dsn", "", "Mailer DSN (default: $MAILER_DSN)")

	root.AddCommand(newSendCmd(s), newCheckCmd(s), newSchemesCmd())

	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// transport parses the configured DSN, tags ctx for logging and builds the transport.
func (s *state) transport(ctx context.Context, command string) (context.Context, mailbridge.Transport, error) {
	if s.cfg.DSN == "" {
		return ctx, nil, errors.New("no DSN: set --dsn or MAILER_DSN")
	}

	d, err := dsn.Parse(s.cfg.DSN)
	if err != nil {
		return ctx, nil, err
	}
	ctx = logger.ContextWith(ctx,
		slog.String("command", command),
		slog.String("scheme", d.Scheme),
	)

	t, err := mailbridge.FromDSN(s.cfg.DSN, mailbridge.WithLogger(s.log))
	if err != nil {
		s.log.ErrorContext(ctx, "failed to build transport", slog.String("error", err.Error()))
		return ctx, nil, err
	}
	return ctx, t, nil
}
