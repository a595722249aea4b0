package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cbrandt/noteweave/internal/graph"
	"github.com/cbrandt/noteweave/internal/noteparse"
	"github.com/cbrandt/noteweave/internal/publish"
)

// StatsLister is the read-only half of publish.Host that the stats command
// needs: it never writes output, so it has no WriteFile method.
type StatsLister interface {
	ListNotes(ctx context.Context, root string) ([]publish.SourceFile, error)
}

// NewStatsCmd creates the stats subcommand: it parses and builds the graph
// the same way publish does, but only reports the resulting counts.
func NewStatsCmd(lister StatsLister) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:          "stats",
		Short:        "Report note, block, link, and orphan counts for a note directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input == "" {
				return fmt.Errorf("--input flag is required")
			}

			files, err := lister.ListNotes(cmd.Context(), input)
			if err != nil {
				return fmt.Errorf("listing notes: %w", err)
			}

			g := graph.New(graph.DefaultConfig())
			parseCfg := noteparse.DefaultConfig()
			var skipped int
			for _, f := range files {
				note, perr := noteparse.Parse(f.RelPath, f.Content, parseCfg)
				if perr != nil {
					skipped++
					fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %v\n", f.RelPath, perr)
					continue
				}
				g.Insert(note)
			}

			gs := g.Stats()
			fmt.Fprintf(cmd.OutOrStdout(),
				"pages: %d\nblocks: %d\nlinks: %d\norphans: %d\nskipped: %d\n",
				gs.PageCount, gs.TotalBlocks, gs.TotalLinks, gs.OrphanPages, skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "directory containing the note graph (required)")
	return cmd
}
