package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/filo/cmd/filo/opts"
	"github.com/walteh/filo/pkg/transfer"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// NewUndoCmd creates a new undo command
func NewUndoCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "undo <original-source> <current-destination>",
		Short: "Reverse a completed move",
		Long: `Undo moves a previously relocated file back to its original
location. It refuses to overwrite a file that reappeared at the original
location. Only move results can be undone.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "undo").Logger().WithContext(ctx)

			if err := opts.Coordinator.Executor().Undo(ctx, args[0], args[1]); err != nil {
				return errors.Errorf("undoing move: %w", err)
			}

			opts.Printer.Success("restored " + args[0])
			return nil
		},
	}

	return cmd
}

// NewUndoAllCmd creates a new undo-all command
func NewUndoAllCmd(opts *opts.RootOpts) *cobra.Command {
	var pairsFile string

	cmd := &cobra.Command{
		Use:   "undo-all",
		Short: "Reverse a batch of completed moves",
		Long: `Undo-all reads source/destination pairs from a YAML file and
reverses each move independently. One failure does not stop the remaining
pairs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "undo-all").Logger().WithContext(ctx)

			data, err := os.ReadFile(pairsFile)
			if err != nil {
				return errors.Errorf("reading pairs file: %w", err)
			}
			var pairs []transfer.UndoPair
			if err := yaml.Unmarshal(data, &pairs); err != nil {
				return errors.Errorf("parsing pairs file: %w", err)
			}

			results := opts.Coordinator.Executor().UndoAll(ctx, pairs)

			failed := 0
			for i, err := range results {
				if err != nil {
					failed++
					opts.Printer.Errorf("%s: %v", pairs[i].Destination, err)
				} else {
					opts.Printer.Success("restored " + pairs[i].Source)
				}
			}

			if failed > 0 {
				return errors.Errorf("%d of %d undo operations failed", failed, len(pairs))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pairsFile, "pairs", "p", "", "YAML file of source/destination pairs")
	_ = cmd.MarkFlagRequired("pairs")

	return cmd
}
