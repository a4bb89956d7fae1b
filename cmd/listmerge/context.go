package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/listmerge/internal/config"
	"github.com/backmassage/listmerge/internal/logging"
)

// commandContext carries the configuration and logger shared by every
// subcommand. Flags are bound into cfg when the tree is built; setup layers
// the config file and environment underneath them before a command runs.
type commandContext struct {
	cfg   config.Config
	flags *config.Flags
	log   *logging.Logger
}

func newCommandContext() *commandContext {
	return &commandContext{cfg: config.DefaultConfig()}
}

// setup loads and validates configuration, then opens the logger.
func (c *commandContext) setup(cmd *cobra.Command) error {
	path, err := config.Load(&c.cfg, c.flags, cmd.Flags())
	if err != nil {
		return err
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}
	log, err := logging.NewLogger(&c.cfg)
	if err != nil {
		return err
	}
	c.log = log
	if path != "" {
		log.Debug(c.cfg.Verbose, "Config: %s", path)
	}
	return nil
}

func (c *commandContext) close() {
	if c.log != nil {
		_ = c.log.Close()
	}
}

// signalContext returns a context cancelled on SIGINT or SIGTERM so the
// pipeline can stop at the next file or stage boundary.
func (c *commandContext) signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			c.log.Warn("Received interrupt, stopping after the current file…")
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

// setArg overrides dst with a positional argument when one was given.
func setArg(args []string, i int, dst *string, normalize bool) {
	if i >= len(args) || args[i] == "" {
		return
	}
	if normalize {
		*dst = config.NormalizeDirArg(args[i])
		return
	}
	*dst = args[i]
}
