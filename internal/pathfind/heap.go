package pathfind

import (
	"container/heap"

	"github.com/Aunggrid/wildmarch/internal/grid"
)

// node is an open-set entry. seq records insertion order so that equal
// f-scores pop in the order they were discovered.
type node struct {
	pos grid.Coord
	f   float64
	seq int
}

// openSet is a min-heap ordered by f-score, then insertion order.
type openSet struct {
	nodes []*node
	next  int
}

func (s *openSet) Len() int { return len(s.nodes) }

func (s *openSet) Less(i, j int) bool {
	if s.nodes[i].f != s.nodes[j].f {
		return s.nodes[i].f < s.nodes[j].f
	}
	return s.nodes[i].seq < s.nodes[j].seq
}

func (s *openSet) Swap(i, j int) {
	s.nodes[i], s.nodes[j] = s.nodes[j], s.nodes[i]
}

func (s *openSet) Push(x any) {
	s.nodes = append(s.nodes, x.(*node))
}

func (s *openSet) Pop() any {
	old := s.nodes
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	s.nodes = old[:n-1]
	return item
}

// push stamps the node with the next sequence number and adds it.
func (s *openSet) push(n *node) {
	n.seq = s.next
	s.next++
	heap.Push(s, n)
}
