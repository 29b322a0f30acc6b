package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/filo/cmd/filo/opts"
	"github.com/walteh/filo/pkg/engine"
	"gitlab.com/tozd/go/errors"
)

// NewRunCmd creates a new run command
func NewRunCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <rule-id-or-name>",
		Short: "Execute a single rule",
		Long: `Run executes one rule against its source folder.
It will:
1. Enumerate the files directly inside the source folder
2. Classify each file against the rule's filters
3. Move or copy the matches to the destination
4. Print a per-file result report`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ctx = zerolog.Ctx(ctx).With().Str("command", "run").Logger().WithContext(ctx)

			r, ok := opts.RuleFile.FindByID(args[0])
			if !ok {
				r, ok = opts.RuleFile.FindByName(args[0])
			}
			if !ok {
				return errors.Errorf("rule not found: %s", args[0])
			}

			opts.Printer.Header("executing " + r.Name)
			res := opts.Coordinator.ExecuteRule(ctx, r, opts.Sink)
			opts.Printer.Result(res)

			if res.Status == engine.StatusFailed {
				return errors.Errorf("rule %s failed", r.Name)
			}
			return nil
		},
	}

	return cmd
}
