package graph

// Neighbors returns the set of source_paths reachable from sourcePath
// through forward links within maxDepth hops (sourcePath itself excluded).
// It is an iterative work-list traversal with O(1) average visited-set
// membership checks, never recursion, per spec.md §4.2.
func (g *Graph) Neighbors(sourcePath string, maxDepth int) []string {
	type item struct {
		path  string
		depth int
	}

	visited := map[string]bool{sourcePath: true}
	var out []string

	queue := []item{{path: sourcePath, depth: 0}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth >= maxDepth {
			continue
		}

		note, ok := g.notes[cur.path]
		if !ok {
			continue
		}

		for _, link := range note.ForwardLinks {
			target, resolved := g.ResolveTarget(link.Target)
			if !resolved || visited[target] {
				continue
			}
			visited[target] = true
			out = append(out, target)
			queue = append(queue, item{path: target, depth: cur.depth + 1})
		}
	}

	return out
}
