package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/walteh/filo/cmd/filo/commands"
	"github.com/walteh/filo/cmd/filo/opts"
)

func main() {
	// Cancellation is cooperative: Ctrl-C stops the run between files and
	// the partial result is still reported.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootOpts := &opts.RootOpts{}

	// Create root command
	rootCmd := &cobra.Command{
		Use:   "filo",
		Short: "A tool for classifying and relocating files by rule",
		Long: `filo classifies files in a folder against user-defined criteria and
moves or copies the matches, with templated destinations, integrity
verification and reversible undo.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Flags are parsed by now; wire dependencies.
			setupLogging()
			ctx := log.Logger.WithContext(cmd.Context())
			cmd.SetContext(ctx)

			o, err := newRootOpts(ctx)
			if err != nil {
				return err
			}
			*rootOpts = *o
			return nil
		},
	}

	// Add shared flags
	addRootFlags(rootCmd)

	// Add commands
	rootCmd.AddCommand(
		commands.NewRunCmd(rootOpts),
		commands.NewRunAllCmd(rootOpts),
		commands.NewRulesCmd(rootOpts),
		commands.NewUndoCmd(rootOpts),
		commands.NewUndoAllCmd(rootOpts),
		commands.NewLsCmd(rootOpts),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
