package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cbrandt/noteweave/internal/graph"
	"github.com/cbrandt/noteweave/internal/noteparse"
)

// NewBacklinksCmd creates the backlinks subcommand: it builds the graph for
// --input and prints every referrer of the given target.
func NewBacklinksCmd(lister StatsLister) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:          "backlinks <target>",
		Short:        "List notes that link to the given target",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return fmt.Errorf("--input flag is required")
			}
			target := args[0]

			files, err := lister.ListNotes(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("listing notes: %w", err)
			}

			g := graph.New(graph.DefaultConfig())
			parseCfg := noteparse.DefaultConfig()
			for _, f := range files {
				note, perr := noteparse.Parse(f.RelPath, f.Content, parseCfg)
				if perr != nil {
					continue
				}
				g.Insert(note)
			}

			resolved, ok := g.ResolveTarget(target)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "%s has no resolved note; showing raw back-references\n", target)
				resolved = target
			}

			backs := g.BackLinks(resolved)
			if len(backs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no backlinks found")
				return nil
			}
			for _, b := range backs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (as %q)\n", b.Referrer, b.Display)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "directory containing the note graph (required)")
	return cmd
}
