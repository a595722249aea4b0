// Package publish is the orchestrator: it drives the note parser, the
// graph builder, and the HTML exporter using host-supplied I/O callbacks,
// per spec.md §2 and §5. It never touches the filesystem itself.
package publish

import (
	"context"
	"errors"

	"github.com/cbrandt/noteweave/internal/errs"
	"github.com/cbrandt/noteweave/internal/export"
	"github.com/cbrandt/noteweave/internal/graph"
	"github.com/cbrandt/noteweave/internal/noteparse"
	"github.com/cbrandt/noteweave/internal/pathguard"
)

// SourceFile is one (relative_path, content_bytes) pair as enumerated by
// the host's list_notes operation.
type SourceFile struct {
	RelPath string
	Content []byte
}

// Host is the three-capability contract spec.md §6 requires of the caller:
// list source files, write an output file, and report a cancellation
// signal. Each method may suspend the run; the core never calls any other
// form of I/O.
type Host interface {
	ListNotes(ctx context.Context, root string) ([]SourceFile, error)
	WriteFile(ctx context.Context, path string, data []byte) error
	Cancelled(ctx context.Context) bool
}

// Config is the host's publish request: where to read from, where to
// write to, and the ExportConfig fields from spec.md §3, plus the two
// Open-Question configuration points from spec.md §9.
type Config struct {
	InputRoot  string
	OutputRoot string

	Theme            string
	IncludeBacklinks bool
	IncludeGraphView bool
	CustomCSS        string

	// CaseInsensitive and SlashEncoding configure link-target resolution
	// (spec.md §9 Open Questions 1 and 2). Zero-value Config gets the
	// specification's suggested defaults via DefaultConfig.
	CaseInsensitive bool
	SlashEncoding   string

	TabWidth int
	MaxDepth int

	// RunID is an optional run identifier surfaced in exported pages for
	// support triage; it has no effect on parsing, resolution, or output
	// byte content beyond the one meta tag it stamps.
	RunID string
}

// DefaultConfig returns Config populated with spec.md's suggested defaults
// for every field the specification leaves to the implementer.
func DefaultConfig() Config {
	return Config{
		IncludeBacklinks: true,
		CaseInsensitive:  true,
		SlashEncoding:    noteparse.SlashEncodingTripleUnderscore,
		TabWidth:         2,
		MaxDepth:         256,
	}
}

// Skipped records why one note or artifact did not make it into the final
// output (spec.md §7: parse/path/export errors abort only the one item).
type Skipped struct {
	SourcePath string `json:"source_path"`
	Reason     string `json:"reason"`
}

// Stats is the statistics record returned on every non-abort completion
// (spec.md §4.2, §6, §7).
type Stats struct {
	PageCount    int
	TotalBlocks  int
	TotalLinks   int
	OrphanPages  int
	BytesWritten int64
	Skipped      []Skipped
}

// Publish runs one full parse → build → export → write cycle. On success it
// returns the final Stats and a nil error. On an I/O failure from the host
// or a cancellation, it returns whatever partial Stats had accumulated
// alongside the error (spec.md §7: "On abort, the run returns the error and
// whatever partial statistics have been accumulated"). A parse, path, or
// export failure confined to a single note never aborts the run; it is
// recorded in Stats.Skipped instead.
func Publish(ctx context.Context, host Host, cfg Config) (Stats, error) {
	var stats Stats

	if cfg.TabWidth <= 0 {
		cfg.TabWidth = 2
	}
	if cfg.MaxDepth <= 0 {
		cfg.MaxDepth = 256
	}
	if cfg.SlashEncoding == "" {
		cfg.SlashEncoding = noteparse.SlashEncodingTripleUnderscore
	}

	if host.Cancelled(ctx) {
		return stats, errs.Cancelled()
	}

	files, err := host.ListNotes(ctx, cfg.InputRoot)
	if err != nil {
		return stats, errs.IO(cfg.InputRoot, err)
	}

	parseCfg := noteparse.Config{
		TabWidth:      cfg.TabWidth,
		MaxDepth:      cfg.MaxDepth,
		SlashEncoding: cfg.SlashEncoding,
	}
	graphCfg := graph.Config{
		CaseInsensitive: cfg.CaseInsensitive,
		SlashEncoding:   cfg.SlashEncoding,
	}

	g := graph.New(graphCfg)

	for _, f := range files {
		if host.Cancelled(ctx) {
			return stats, errs.Cancelled()
		}

		if gerr := pathguard.Validate(f.RelPath, pathguard.Options{}); gerr != nil {
			stats.Skipped = append(stats.Skipped, Skipped{SourcePath: f.RelPath, Reason: gerr.Error()})
			continue
		}

		note, perr := noteparse.Parse(f.RelPath, f.Content, parseCfg)
		if perr != nil {
			stats.Skipped = append(stats.Skipped, Skipped{SourcePath: f.RelPath, Reason: perr.Error()})
			continue
		}
		g.Insert(note) // unresolved-link errors are informational; see graph.Insert
	}

	if host.Cancelled(ctx) {
		return stats, errs.Cancelled()
	}

	exporter := export.New(g, export.Config{
		Theme:            cfg.Theme,
		IncludeBacklinks: cfg.IncludeBacklinks,
		IncludeGraphView: cfg.IncludeGraphView,
		CustomCSS:        cfg.CustomCSS,
		RunID:            cfg.RunID,
	})
	artifacts, exportProblems := exporter.Export()
	for _, p := range exportProblems {
		stats.Skipped = append(stats.Skipped, Skipped{SourcePath: exportProblemPath(p), Reason: p.Error()})
	}

	for _, a := range artifacts {
		if host.Cancelled(ctx) {
			return stats, errs.Cancelled()
		}
		if err := host.WriteFile(ctx, a.Path, a.Bytes); err != nil {
			return stats, errs.IO(a.Path, err)
		}
		stats.BytesWritten += int64(len(a.Bytes))
	}

	gs := g.Stats()
	stats.PageCount = gs.PageCount
	stats.TotalBlocks = gs.TotalBlocks
	stats.TotalLinks = gs.TotalLinks
	stats.OrphanPages = gs.OrphanPages

	return stats, nil
}

// exportProblemPath extracts the source path an export-stage failure
// names, so Stats.Skipped identifies the note by path rather than leaving
// it buried in the free-text Reason string.
func exportProblemPath(err error) string {
	var e *errs.Error
	if errors.As(err, &e) {
		return e.Path
	}
	return ""
}
