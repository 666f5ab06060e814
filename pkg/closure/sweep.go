// Package closure partitions a canonical k-mer graph into the support sets of
// its closed unitigs and materializes each set as nucleotide strings.
//
// A closed unitig is a unitig that cannot be extended by a single k-mer
// without strictly lowering its support (the minimum count among its
// constituent k-mers). The decomposition sweeps the distinct count values in
// descending order, maintaining connected components of the already-activated
// nodes with a union-find structure. When a batch introduces the value c,
// every component whose support just became c is the support set of one
// closed unitig: it is snapshotted and emitted with support c, and keeps
// growing as lower values activate. A k-mer therefore appears in one emitted
// set per count value at or below its own count within its component — the
// original per-k-mer count is recovered as the maximum support over emitted
// unitigs containing it.
//
// Cyclic and repeat-bearing graphs need no special casing: union-find does
// not require acyclicity, and a component may legally contain a cycle.
package closure

import (
	"slices"
	"sort"

	"github.com/dbgtools/closetig/pkg/dbg"
	"github.com/dbgtools/closetig/pkg/errors"
)

// Component is the finalized support set of one closed unitig: the member
// node ids (ascending) and the shared support value, the minimum count among
// the members.
type Component struct {
	Support uint32
	Members []int32
}

// Decompose partitions the graph's nodes into closed-unitig support sets
// using a descending-count sweep.
//
// Nodes are processed in batches of equal count, highest first. Activating a
// node creates a singleton component which is immediately unioned with every
// already-activated neighbor; a merged component's support becomes the batch
// value, the smallest count introduced so far. Once all unions of a batch
// have completed — the closure test must not run earlier — every component
// whose support equals the batch value is subjected to the closure test and
// emitted. The result is deterministic: unions are commutative and
// associative, so in-batch order does not matter.
//
// A closure-test failure cannot occur when batches descend; it is reported
// as an INTERNAL_ERROR because it always indicates a defect, never an input
// condition.
func Decompose(g *dbg.Graph) ([]Component, error) {
	n := g.NodeCount()
	if n == 0 {
		return nil, nil
	}

	order := make([]int32, n)
	for i := range order {
		order[i] = int32(i)
	}
	sort.Slice(order, func(a, b int) bool {
		ca, cb := g.Count(order[a]), g.Count(order[b])
		if ca != cb {
			return ca > cb
		}
		return order[a] < order[b]
	})

	uf := newUnionFind(n)
	var comps []Component

	for lo := 0; lo < n; {
		c := g.Count(order[lo])
		hi := lo
		for hi < n && g.Count(order[hi]) == c {
			hi++
		}
		batch := order[lo:hi]

		// Union phase: activate the batch and connect it to everything
		// already activated (every neighbor with count >= c).
		for _, id := range batch {
			uf.activate(id, c)
			for _, a := range g.Arcs(id) {
				if uf.active(a.To) {
					uf.union(id, a.To)
				}
			}
		}

		// Closure phase. Runs strictly after the batch's last union: a
		// component tested before its unions finish could be emitted
		// prematurely.
		seen := make(map[int32]struct{})
		for _, id := range batch {
			root := uf.find(id)
			if _, dup := seen[root]; dup {
				continue
			}
			seen[root] = struct{}{}
			if uf.support[root] != c {
				continue
			}
			if open := openNeighbor(g, uf, root, c); open >= 0 {
				return nil, errors.New(errors.ErrCodeInternal,
					"component at support %d has unmerged neighbor %s (count %d)",
					c, g.Kmer(open), g.Count(open))
			}
			members := slices.Clone(uf.members[root])
			slices.Sort(members)
			comps = append(comps, Component{Support: c, Members: members})
		}

		lo = hi
	}

	return comps, nil
}

// openNeighbor runs the closure test on the component rooted at root: every
// not-yet-activated neighbor reachable from any member must have a count
// strictly below c. It returns the id of a violating neighbor, or -1 when the
// component is closed. Activated neighbors need no inspection — they were
// unioned into this component when they or the member activated.
func openNeighbor(g *dbg.Graph, uf *unionFind, root int32, c uint32) int32 {
	for _, m := range uf.members[root] {
		for _, a := range g.Arcs(m) {
			if !uf.active(a.To) && g.Count(a.To) >= c {
				return a.To
			}
		}
	}
	return -1
}
