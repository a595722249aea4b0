package graph

import "github.com/cbrandt/noteweave/internal/noteparse"

// Stats is the four-count statistics record described in spec.md §4.2.
type Stats struct {
	PageCount   int
	TotalBlocks int
	TotalLinks  int
	OrphanPages int
}

// Stats computes page_count, total_blocks, total_links, and orphan_pages
// over the current graph contents. It is safe to call at any point; the
// graph need not be "finished."
func (g *Graph) Stats() Stats {
	var s Stats
	s.PageCount = len(g.notes)

	for _, path := range g.order {
		note := g.notes[path]
		s.TotalBlocks += noteparse.CountBlocks(note.Blocks)
		s.TotalLinks += len(note.ForwardLinks)

		if len(note.ForwardLinks) == 0 && len(g.BackLinks(path)) == 0 {
			s.OrphanPages++
		}
	}

	return s
}

// IsOrphan reports whether the note at sourcePath has neither forward links
// nor back-links.
func (g *Graph) IsOrphan(sourcePath string) bool {
	note, ok := g.notes[sourcePath]
	if !ok {
		return false
	}
	return len(note.ForwardLinks) == 0 && len(g.BackLinks(sourcePath)) == 0
}
