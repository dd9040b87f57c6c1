package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pion/mediafilter/internal/config"
	"github.com/pion/mediafilter/internal/logging"
	"github.com/spf13/cobra"
)

// Version is the application version.
const Version = "0.1.0"

var (
	// cfg is loaded before any subcommand runs
	cfg *config.Config

	cfgPath  string
	logLevel string
)

var logger = logging.NewLogger("mediafilter/cli")

var rootCmd = &cobra.Command{
	Use:     "mediafilter",
	Short:   "Live video filters for cameras, screens and test patterns",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}

		level := cfg.LogLevel
		if logLevel != "" {
			level = logLevel
		}
		if level == "" {
			return nil
		}
		l, err := logging.ParseLevel(level)
		if err != nil {
			return err
		}
		logging.SetLevel(l)
		return nil
	},
}

// Execute runs the root command until it finishes or the process is
// interrupted.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Path to the YAML config file (default: $"+config.EnvPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: disabled, error, warn, info, debug, trace")
}
