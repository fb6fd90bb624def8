// Command bible-study is a terminal client for the study assistant. It runs
// the same session store, exploration client and shell as the REST server,
// in process.
package main

import (
	"context"
	"fmt"
	"os"

	"bible-study-be/internal/bootstrap"
	"bible-study-be/internal/config"
	"bible-study-be/internal/pkg/logger"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
)

var (
	verbose bool
	noColor bool
)

var rootCmd = &cobra.Command{
	Use:   "bible-study",
	Short: "Explore biblical topics, passages and questions from the terminal",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			color.NoColor = true
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(exploreCmd, suggestCmd, loginCmd, logoutCmd, sessionCmd, eventsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openContainer loads configuration, refusing to start without the model
// credential, and wires the application.
func openContainer(ctx context.Context) (*bootstrap.Container, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level := zapcore.WarnLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	return bootstrap.NewContainer(ctx, cfg, logger.NewConsoleLogger(level))
}
