// Package dbg builds and exposes a node-weighted de Bruijn graph over
// canonical k-mers.
//
// Every k-mer is canonicalized at insertion, so a k-mer and its reverse
// complement always map to one node. Nodes live in an id-indexed arena and
// adjacency is stored by index, which keeps traversal and union-find working
// unmodified on graphs containing cycles (from repeats or palindromic
// k-mers). The graph is built once and is read-only afterwards.
package dbg

// Arc is one undirected edge incident to a node, stored with the strand
// orientation of both endpoints. Reading the edge left to right, the owning
// node in orientation FromFwd (true = canonical form) overlaps the target
// node in orientation ToFwd by k-1 bases.
//
// Arcs are stored symmetrically: the target node holds the mirrored arc
// {To: owner, FromFwd: !ToFwd, ToFwd: !FromFwd}, which is the same edge read
// on the opposite strand.
type Arc struct {
	To      int32
	FromFwd bool
	ToFwd   bool
}

// Node is one canonical k-mer with its occurrence count and adjacency.
// Immutable after Build returns.
type Node struct {
	Kmer  string
	Count uint32
	Arcs  []Arc
}

// Graph is an id-indexed arena of canonical k-mer nodes.
type Graph struct {
	k     int
	nodes []Node
	index map[string]int32
}

// Lookup resolves a canonical k-mer string to its node id.
func (g *Graph) Lookup(canon string) (int32, bool) {
	id, ok := g.index[canon]
	return id, ok
}

// K returns the k-mer length the graph was built with, or 0 for an empty graph.
func (g *Graph) K() int { return g.k }

// NodeCount returns the number of canonical k-mers in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// ArcCount returns the total number of stored arcs. Each undirected edge
// between distinct nodes contributes two.
func (g *Graph) ArcCount() int {
	n := 0
	for i := range g.nodes {
		n += len(g.nodes[i].Arcs)
	}
	return n
}

// Node returns the node with the given id. The id must be in range.
func (g *Graph) Node(id int32) *Node { return &g.nodes[id] }

// Count returns the occurrence count of the node.
func (g *Graph) Count(id int32) uint32 { return g.nodes[id].Count }

// Kmer returns the canonical k-mer string of the node.
func (g *Graph) Kmer(id int32) string { return g.nodes[id].Kmer }

// Arcs returns all arcs incident to the node. The returned slice is a
// read-only view into the arena.
func (g *Graph) Arcs(id int32) []Arc { return g.nodes[id].Arcs }

// RightArcs returns the arcs extending the node one k-mer to the right when
// the node is read in the given orientation (fwd = canonical form). Left
// extensions of an orientation are the right extensions of its opposite.
func (g *Graph) RightArcs(id int32, fwd bool) []Arc {
	var out []Arc
	for _, a := range g.nodes[id].Arcs {
		if a.FromFwd == fwd {
			out = append(out, a)
		}
	}
	return out
}

// RightDegree counts the arcs extending the node to the right in the given
// orientation without allocating.
func (g *Graph) RightDegree(id int32, fwd bool) int {
	n := 0
	for _, a := range g.nodes[id].Arcs {
		if a.FromFwd == fwd {
			n++
		}
	}
	return n
}
