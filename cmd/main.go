package main

import (
	"log/slog"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(pterm.NewSlogHandler(&pterm.DefaultLogger))
	slog.SetDefault(logger)

	if err := rootCmd(logger).Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd(logger *slog.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "rpsls",
		Short:        "Rock-Paper-Scissors-Lizard-Spock elimination tournament for a shared pot",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				pterm.DefaultLogger.Level = pterm.LogLevelDebug
			}
		},
	}
	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.AddCommand(
		serveCmd(logger),
		playCmd(logger),
		findCmd(),
	)
	return cmd
}
