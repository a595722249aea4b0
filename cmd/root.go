// Package cmd implements the nwv CLI commands.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root nwv command with all subcommands registered.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nwv",
		Short:         "nwv - render an outline note graph into a static HTML site",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE:          rootRunE,
	}
	root.AddCommand(NewPublishCmd(newDefaultHost))
	root.AddCommand(NewStatsCmd(fsHost{}))
	root.AddCommand(NewBacklinksCmd(fsHost{}))
	return root
}

func rootRunE(cmd *cobra.Command, _ []string) error {
	return cmd.Help()
}
