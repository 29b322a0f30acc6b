package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/filo/cmd/filo/opts"
	"gitlab.com/tozd/go/errors"
)

// NewLsCmd creates a new ls command
func NewLsCmd(opts *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ls <folder>",
		Short: "List the files a rule would see in a folder",
		Long: `Ls prints the filenames directly inside a folder, sorted, without
recursing. This is the same listing rule execution operates on, so it is
useful for testing patterns against real folder contents.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := opts.Coordinator.ListSourceFiles(args[0])
			if err != nil {
				return errors.Errorf("listing folder: %w", err)
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	return cmd
}
