package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cbrandt/noteweave/internal/publish"
)

// publishResult is the CLI JSON output of a publish run: a version field,
// the run's stat counters, and the skip diagnostics from the run.
type publishResult struct {
	Version      string            `json:"version"`
	PageCount    int               `json:"page_count"`
	TotalBlocks  int               `json:"total_blocks"`
	TotalLinks   int               `json:"total_links"`
	OrphanPages  int               `json:"orphan_pages"`
	BytesWritten int64             `json:"bytes_written"`
	Skipped      []publish.Skipped `json:"skipped"`
}

// NewPublishCmd creates the publish subcommand. newHost builds the host
// implementation once --output is known, since publish.Host's WriteFile
// contract takes output-relative paths and needs a root to resolve them
// against.
func NewPublishCmd(newHost func(outputRoot string) publish.Host) *cobra.Command {
	var (
		input        string
		output       string
		theme        string
		noBacklinks  bool
		graphView    bool
		cssPath      string
		caseFold     bool
		slashEncoded bool
		jsonMode     bool
	)

	cmd := &cobra.Command{
		Use:          "publish",
		Short:        "Render a note directory into a static HTML site",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if input == "" {
				return fmt.Errorf("--input flag is required")
			}
			if output == "" {
				return fmt.Errorf("--output flag is required")
			}

			cfg := publish.DefaultConfig()
			cfg.InputRoot = input
			cfg.OutputRoot = output
			cfg.Theme = theme
			cfg.IncludeBacklinks = !noBacklinks
			cfg.IncludeGraphView = graphView
			cfg.CaseInsensitive = caseFold
			if !slashEncoded {
				cfg.SlashEncoding = "none"
			}
			cfg.RunID = uuid.NewString()

			if cssPath != "" {
				css, err := os.ReadFile(cssPath)
				if err != nil {
					return fmt.Errorf("reading --css file: %w", err)
				}
				cfg.CustomCSS = string(css)
			}

			host := newHost(output)
			stats, err := publish.Publish(cmd.Context(), host, cfg)
			if err != nil {
				return emitPublishError(cmd, err)
			}

			if jsonMode {
				result := publishResult{
					Version:      "1",
					PageCount:    stats.PageCount,
					TotalBlocks:  stats.TotalBlocks,
					TotalLinks:   stats.TotalLinks,
					OrphanPages:  stats.OrphanPages,
					BytesWritten: stats.BytesWritten,
					Skipped:      stats.Skipped,
				}
				return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
			}

			for _, s := range stats.Skipped {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s: %s\n", s.SourcePath, s.Reason)
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"published %d pages (%d blocks, %d links, %d orphans), %d bytes written\n",
				stats.PageCount, stats.TotalBlocks, stats.TotalLinks, stats.OrphanPages, stats.BytesWritten)
			return nil
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "directory containing the note graph (required)")
	cmd.Flags().StringVar(&output, "output", "", "directory to write the published site to (required)")
	cmd.Flags().StringVar(&theme, "theme", "", "CSS theme name (default, dark)")
	cmd.Flags().BoolVar(&noBacklinks, "no-backlinks", false, "omit the backlinks section from every page")
	cmd.Flags().BoolVar(&graphView, "graph-view", false, "emit the graph-view script hook")
	cmd.Flags().StringVar(&cssPath, "css", "", "path to a CSS file appended after the default theme")
	cmd.Flags().BoolVar(&caseFold, "case-insensitive", true, "resolve wiki-link targets case-insensitively")
	cmd.Flags().BoolVar(&slashEncoded, "slash-encoding", true, "decode \"___\" as \"/\" in link targets and titles")
	cmd.Flags().BoolVar(&jsonMode, "json", false, "output the run summary as JSON instead of plain text")

	return cmd
}

// emitPublishError writes a one-line diagnostic for a run-aborting error and
// returns a non-nil error so the caller exits with a non-zero status.
func emitPublishError(cmd *cobra.Command, err error) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "error: publish aborted: %v\n", err)
	return fmt.Errorf("publish aborted: %w", err)
}

// fsHost implements publish.Host against the real filesystem, writing every
// output artifact relative to outputRoot. It performs OS calls directly.
type fsHost struct {
	outputRoot string
}

func newDefaultHost(outputRoot string) publish.Host {
	return fsHost{outputRoot: outputRoot}
}

func (fsHost) ListNotes(_ context.Context, root string) ([]publish.SourceFile, error) {
	var files []publish.SourceFile
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		if ext != ".md" && ext != ".markdown" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files = append(files, publish.SourceFile{RelPath: filepath.ToSlash(rel), Content: content})
		return nil
	})
	if files == nil {
		files = []publish.SourceFile{}
	}
	return files, err
}

func (h fsHost) WriteFile(_ context.Context, path string, data []byte) error {
	full := filepath.Join(h.outputRoot, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return err
	}
	return os.WriteFile(full, data, 0o644)
}

func (fsHost) Cancelled(ctx context.Context) bool {
	return ctx.Err() != nil
}
