package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/filo/cmd/filo/opts"
)

// NewRulesCmd creates a new rules command
func NewRulesCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the loaded rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(opts.RuleFile.Rules) == 0 {
				opts.Printer.Warning("no rules defined in " + opts.RulePath)
				return nil
			}

			data := pterm.TableData{
				{"ID", "NAME", "ENABLED", "ACTION", "SOURCE", "DESTINATION"},
			}
			for _, r := range opts.RuleFile.Rules {
				enabled := "no"
				if r.Enabled {
					enabled = "yes"
				}
				data = append(data, []string{
					r.ID, r.Name, enabled, string(r.Action), r.SourceDir, r.DestinationDir,
				})
			}

			return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
		},
	}

	return cmd
}
