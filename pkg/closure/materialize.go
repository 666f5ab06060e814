package closure

import (
	"github.com/dbgtools/closetig/pkg/dbg"
	"github.com/dbgtools/closetig/pkg/kmer"
)

// Unitig is one materialized closed unitig: a nucleotide string and the
// support shared by all of its k-mers. Immutable once created.
type Unitig struct {
	Seq     string
	Support uint32
}

// Len returns the number of k-mer positions in the unitig.
func (u Unitig) Len(k int) int { return len(u.Seq) - k + 1 }

// Materialize decomposes the component-induced subgraph into its maximal
// simple paths and emits one nucleotide string per path, each tagged with the
// component's support. The induced subgraph may branch where ties merged
// several directions at once; every member k-mer appears as a substring of
// exactly one emitted string.
//
// Path extraction starts from the lowest member id for reproducible output:
// members are scanned in ascending id order, each path is walked from a node
// where it cannot be extended leftwards, and components that are pure cycles
// are traversed exactly once starting from their lowest member.
func Materialize(g *dbg.Graph, comp Component) []Unitig {
	w := walker{
		g:       g,
		support: comp.Support,
		member:  make(map[int32]bool, len(comp.Members)),
		visited: make(map[int32]bool, len(comp.Members)),
	}
	for _, id := range comp.Members {
		w.member[id] = true
	}

	var out []Unitig
	for _, id := range comp.Members {
		if w.visited[id] {
			continue
		}
		for _, fwd := range [2]bool{true, false} {
			if w.visited[id] {
				break
			}
			if w.isPathStart(id, fwd) {
				out = append(out, w.walk(id, fwd))
			}
		}
	}

	// Members still unvisited sit on cycles with no path start; traverse each
	// cycle once from its lowest member.
	for _, id := range comp.Members {
		if w.visited[id] {
			continue
		}
		fwd := w.rightDegree(id, true) > 0
		out = append(out, w.walk(id, fwd))
	}

	return out
}

// walker holds the per-component traversal state.
type walker struct {
	g       *dbg.Graph
	support uint32
	member  map[int32]bool
	visited map[int32]bool
}

// successors returns the induced arcs extending the oriented node one k-mer
// to the right.
func (w *walker) successors(id int32, fwd bool) []dbg.Arc {
	var out []dbg.Arc
	for _, a := range w.g.Arcs(id) {
		if a.FromFwd == fwd && w.member[a.To] {
			out = append(out, a)
		}
	}
	return out
}

// rightDegree counts induced arcs on the right side of the oriented node.
// The in-degree of an oriented node equals the right degree of its opposite
// orientation, since arcs are stored symmetrically.
func (w *walker) rightDegree(id int32, fwd bool) int {
	n := 0
	for _, a := range w.g.Arcs(id) {
		if a.FromFwd == fwd && w.member[a.To] {
			n++
		}
	}
	return n
}

// isPathStart reports whether the oriented node begins a maximal simple path:
// it has no unique predecessor, or its unique predecessor branches.
func (w *walker) isPathStart(id int32, fwd bool) bool {
	preds := w.successors(id, !fwd)
	if len(preds) != 1 {
		return true
	}
	p := preds[0]
	return w.rightDegree(p.To, !p.ToFwd) != 1
}

// walk extends the oriented node rightwards while the walk stays simple:
// exactly one induced successor, entered through its only induced
// predecessor, and not yet visited. Each step appends one base.
func (w *walker) walk(id int32, fwd bool) Unitig {
	w.visited[id] = true
	seq := []byte(w.oriented(id, fwd))
	cur, curFwd := id, fwd
	for {
		succs := w.successors(cur, curFwd)
		if len(succs) != 1 {
			break
		}
		next, nextFwd := succs[0].To, succs[0].ToFwd
		if w.visited[next] || w.rightDegree(next, !nextFwd) != 1 {
			break
		}
		w.visited[next] = true
		km := w.oriented(next, nextFwd)
		seq = append(seq, km[len(km)-1])
		cur, curFwd = next, nextFwd
	}
	return Unitig{Seq: string(seq), Support: w.support}
}

// oriented returns the node's k-mer on the requested strand.
func (w *walker) oriented(id int32, fwd bool) string {
	if fwd {
		return w.g.Kmer(id)
	}
	return kmer.ReverseComplement(w.g.Kmer(id))
}
