package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/filo/cmd/filo/opts"
	"github.com/walteh/filo/pkg/engine"
	"gitlab.com/tozd/go/errors"
)

// NewRunAllCmd creates a new run-all command
func NewRunAllCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run-all",
		Short: "Execute every enabled rule in order",
		Long: `Run-all executes the enabled rules strictly sequentially, in rule
file order, and prints one result report per rule.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "run-all").Logger().WithContext(ctx)

			enabled := opts.RuleFile.Enabled()
			if len(enabled) == 0 {
				opts.Printer.Warning("no enabled rules")
				return nil
			}

			opts.Printer.Header("executing all enabled rules")
			results := opts.Coordinator.ExecuteAll(ctx, enabled, opts.Sink)

			failed := 0
			for _, res := range results {
				opts.Printer.Result(res)
				if res.Status == engine.StatusFailed {
					failed++
				}
			}

			if failed > 0 {
				return errors.Errorf("%d of %d rules failed", failed, len(results))
			}
			return nil
		},
	}

	return cmd
}
