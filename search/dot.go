package search

import (
	"fmt"

	"github.com/awalterschulze/gographviz"
)

// DOT renders the DAG's reachable nodes (from the root) as a Graphviz dot
// document, for offline inspection of what the search actually explored.
func (s *Search) DOT() (string, error) {
	graph := gographviz.NewGraph()
	if err := graph.SetName("search"); err != nil {
		return "", err
	}
	if err := graph.SetDir(true); err != nil {
		return "", err
	}

	visited := map[Naughty]bool{}
	var walk func(n Naughty) error
	walk = func(n Naughty) error {
		if visited[n] {
			return nil
		}
		visited[n] = true

		node := s.dag.node(n)
		label := fmt.Sprintf("\"v=%.1f n=%d\"", node.Value().Total, node.Visits())
		if err := graph.AddNode("search", nodeName(n), map[string]string{"label": label}); err != nil {
			return err
		}

		node.mu.Lock()
		children := append([]edge(nil), node.children...)
		node.mu.Unlock()

		for _, e := range children {
			if err := walk(e.child); err != nil {
				return err
			}
			edgeLabel := fmt.Sprintf("\"%s\"", e.placement.Piece.PieceState.Piece)
			if err := graph.AddEdge(nodeName(n), nodeName(e.child), true, map[string]string{"label": edgeLabel}); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(s.dag.root); err != nil {
		return "", err
	}
	return graph.String(), nil
}

func nodeName(n Naughty) string { return fmt.Sprintf("n%d", n) }
