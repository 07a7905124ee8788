package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dsh2dsh/imgtag"
	"github.com/dsh2dsh/imgtag/internal/config"
)

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	var cfgPath string
	var logLevel string
	var policy *imgtag.Policy

	getPolicy := func() *imgtag.Policy { return policy }

	cmd := &cobra.Command{
		Use:           "imgtag",
		Short:         "Render safe img tags from untrusted wiki markup",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !requiresPolicy(cmd) {
				return nil
			}
			logger, err := newLogger(cmd.ErrOrStderr(), logLevel)
			if err != nil {
				return err
			}
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrInvalidInput, err)
			}
			policy = cfg.Policy(logger)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Config file path")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn",
		"Log level: debug, info, warn, error, disabled")

	cmd.AddCommand(newRenderCmd(getPolicy))
	cmd.AddCommand(newTagCmd(getPolicy))
	cmd.AddCommand(newValidateCmd(getPolicy))
	cmd.AddCommand(newUsedCmd())

	return cmd
}

func newLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("%w: invalid log level %q", ErrInvalidInput, level)
	}
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}).Level(lvl).With().Timestamp().Logger(), nil
}

func requiresPolicy(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		name := c.Name()
		if name == "help" || name == "completion" {
			return false
		}
	}
	return true
}
